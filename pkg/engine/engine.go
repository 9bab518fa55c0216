// Package engine hides and recovers byte payloads in the pixels of a
// lossless carrier image. Pixel selection is driven by a seeded generator
// rather than scan order, writes use the LSB-matching rule, and multiple
// independent payloads can be layered into one carrier under a chain of
// seeds with the guarantee that no pixel serves two levels. Revealing the
// chain prefix S1..Sk discloses only the first k payloads.
//
// An Engine borrows its carrier for the duration of each call and is not
// safe for concurrent use. Failed operations leave already-performed
// writes in place; callers needing atomicity snapshot the carrier first.
package engine

import (
	"fmt"

	"github.com/Beastly713/matryoshka/pkg/pixel"
	"github.com/Beastly713/matryoshka/pkg/seedchain"
)

// Config selects the non-default engine behaviours.
type Config struct {
	// RawSeed disables key derivation: each seed is used directly as the
	// generator key, truncated or zero-padded to 32 bytes. Strongly
	// discouraged outside of interop with direct-seeding tools.
	RawSeed bool

	// TestMode replaces payload writes with per-level marker colours so
	// the pixel coverage of each chain level can be inspected visually.
	// Extraction is unavailable while set.
	TestMode bool
}

// Engine drives hide and extract over one carrier and one seed chain.
type Engine struct {
	img      pixel.Image
	keys     [][seedchain.KeySize]byte
	level    int
	used     map[pixel.Point]struct{}
	consumed map[pixel.Point]struct{}
	testmode bool
}

// New prepares an engine over img for the given seed chain. The carrier is
// borrowed, not copied.
func New(img pixel.Image, seeds [][]byte, cfg Config) (*Engine, error) {
	if len(seeds) == 0 {
		return nil, ErrEmptySeedChain
	}
	var keys [][seedchain.KeySize]byte
	if cfg.RawSeed {
		keys = seedchain.Raw(seeds)
	} else {
		keys = seedchain.Derive(img.Width(), img.Height(), seeds)
	}
	return &Engine{
		img:      img,
		keys:     keys,
		used:     make(map[pixel.Point]struct{}),
		consumed: make(map[pixel.Point]struct{}),
		testmode: cfg.TestMode,
	}, nil
}

// Level reports the current chain level, 1-based.
func (e *Engine) Level() int { return e.level + 1 }

// Levels reports the length of the seed chain.
func (e *Engine) Levels() int { return len(e.keys) }

// Capacity returns how many payload bytes the current level can still
// carry, accounting for pixels reserved by earlier levels and by
// operations already performed at this level. One byte is withheld for
// the sentinel.
func (e *Engine) Capacity() int {
	free := e.img.Width()*e.img.Height() - len(e.used) - len(e.consumed)
	c := free/pixelsPerGroup - 1
	if c < 0 {
		c = 0
	}
	return c
}

// openStream starts a fresh address stream for the current level. The skip
// set is the union of every earlier level's pixels and anything already
// consumed at this level, so repeated operations at one level never
// collide.
func (e *Engine) openStream() *addressStream {
	skip := e.used
	if len(e.consumed) > 0 {
		skip = make(map[pixel.Point]struct{}, len(e.used)+len(e.consumed))
		for p := range e.used {
			skip[p] = struct{}{}
		}
		for p := range e.consumed {
			skip[p] = struct{}{}
		}
	}
	return newAddressStream(e.keys[e.level], e.img.Width(), e.img.Height(), skip)
}

// Hide embeds data at the current chain level, followed by the sentinel
// byte. In test mode the payload bytes only determine how many pixels are
// visited; each visited pixel is overwritten with the level's marker
// colour instead.
func (e *Engine) Hide(data []byte) error {
	need := pixelsPerGroup * (len(data) + 1)
	free := e.img.Width()*e.img.Height() - len(e.used) - len(e.consumed)
	if need > free {
		return fmt.Errorf("%w: need %d free pixels, have %d", ErrCapacityExceeded, need, free)
	}

	st := e.openStream()
	for _, b := range data {
		if err := e.writeGroup(st, encodeGroup(b, false)); err != nil {
			return err
		}
	}
	return e.writeGroup(st, encodeGroup(0, true))
}

func (e *Engine) writeGroup(st *addressStream, bits [groupBits]uint8) error {
	for i := 0; i < pixelsPerGroup; i++ {
		p, err := st.next()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCapacityExceeded, err)
		}
		e.consumed[p] = struct{}{}

		if e.testmode {
			e.img.Set(p.X, p.Y, Marker(e.Level()))
			continue
		}

		c := e.img.At(p.X, p.Y)
		c.R = forceLSB(c.R, bits[i*3])
		c.G = forceLSB(c.G, bits[i*3+1])
		c.B = forceLSB(c.B, bits[i*3+2])
		e.img.Set(p.X, p.Y, c)
	}
	return nil
}

// Extract recovers the payload hidden at the current chain level, reading
// three pixels per byte until the sentinel group terminates the stream.
func (e *Engine) Extract() ([]byte, error) {
	if e.testmode {
		return nil, ErrTestMode
	}

	st := e.openStream()
	var out []byte
	for {
		var bits [groupBits]uint8
		for i := 0; i < pixelsPerGroup; i++ {
			p, err := st.next()
			if err != nil {
				return nil, fmt.Errorf("%w after %d bytes", ErrTruncated, len(out))
			}
			e.consumed[p] = struct{}{}
			c := e.img.At(p.X, p.Y)
			bits[i*3] = lsb(c.R)
			bits[i*3+1] = lsb(c.G)
			bits[i*3+2] = lsb(c.B)
		}
		b, sentinel := decodeGroup(bits)
		if sentinel {
			return out, nil
		}
		out = append(out, b)
	}
}

// Next commits the pixels consumed at the current level into the
// cumulative reserved set and advances to the next seed in the chain.
func (e *Engine) Next() error {
	if e.level+1 >= len(e.keys) {
		return ErrNoMoreSeeds
	}
	for p := range e.consumed {
		e.used[p] = struct{}{}
	}
	e.consumed = make(map[pixel.Point]struct{})
	e.level++
	return nil
}
