package engine

import (
	"errors"

	"github.com/Beastly713/matryoshka/pkg/mt19937"
	"github.com/Beastly713/matryoshka/pkg/pixel"
	"github.com/Beastly713/matryoshka/pkg/seedchain"
)

var errStreamExhausted = errors.New("address stream exhausted")

// addressStream emits distinct pixel coordinates in the order dictated by
// the seeded generator, rejecting coordinates it already emitted and
// coordinates reserved by earlier chain levels. Rejection keeps drawing
// from the same generator state; the stream is never reseeded mid-level.
type addressStream struct {
	rng  *mt19937.Source
	w, h int
	skip map[pixel.Point]struct{}
	seen map[pixel.Point]struct{}
}

// newAddressStream opens a stream over a w by h carrier. skip is borrowed
// read-only for the life of the stream.
func newAddressStream(key [seedchain.KeySize]byte, w, h int, skip map[pixel.Point]struct{}) *addressStream {
	rng := mt19937.New()
	rng.SeedFromKey(key)
	return &addressStream{
		rng:  rng,
		w:    w,
		h:    h,
		skip: skip,
		seen: make(map[pixel.Point]struct{}),
	}
}

// next returns the next free coordinate. The x draw precedes the y draw;
// swapping them would desynchronise the stream from carriers written by
// conforming implementations. Exhaustion is checked up front so the
// rejection loop cannot spin on an empty pool.
func (s *addressStream) next() (pixel.Point, error) {
	if len(s.skip)+len(s.seen) >= s.w*s.h {
		return pixel.Point{}, errStreamExhausted
	}
	for {
		x := s.rng.UniformInt(0, s.w-1)
		y := s.rng.UniformInt(0, s.h-1)
		p := pixel.Point{X: x, Y: y}
		if _, taken := s.skip[p]; taken {
			continue
		}
		if _, taken := s.seen[p]; taken {
			continue
		}
		s.seen[p] = struct{}{}
		return p, nil
	}
}
