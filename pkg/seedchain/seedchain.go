// Package seedchain derives the per-level PRNG keys from the user's seed
// chain and the carrier geometry. Level 1 binds the Basis constant and the
// image dimensions; every later level hashes only the two adjacent user
// seeds, so revealing the chain prefix S1..Sk discloses the first k levels
// and nothing beyond them.
package seedchain

import (
	"crypto/sha512"
	"encoding/binary"
)

// KeySize is the width of a derived PRNG key.
const KeySize = 32

// basis is a fixed, versioned constant that salts the level-1 key. It is
// part of the on-image format and must never change between releases.
var basis = [KeySize]byte([]byte("matryoshka-lsb-mws-v1.0-basis..."))

// h32 hashes the concatenation of parts with SHA-512 and keeps the last
// 32 bytes of the digest.
func h32(parts ...[]byte) [KeySize]byte {
	d := sha512.New()
	for _, p := range parts {
		d.Write(p)
	}
	sum := d.Sum(nil)
	return [KeySize]byte(sum[len(sum)-KeySize:])
}

// geometryTag is the canonical encoding of the carrier dimensions: the
// big-endian 32-bit unsigned width followed by the big-endian 32-bit
// unsigned height.
func geometryTag(width, height int) []byte {
	tag := make([]byte, 8)
	binary.BigEndian.PutUint32(tag[:4], uint32(width))
	binary.BigEndian.PutUint32(tag[4:], uint32(height))
	return tag
}

// Initialisator returns H32(Basis || geometryTag). It is reproducible from
// the dimensions alone and is the only place geometry enters the chain.
func Initialisator(width, height int) [KeySize]byte {
	return h32(basis[:], geometryTag(width, height))
}

// Derive maps the user seed chain to the corresponding chain of PRNG keys:
//
//	K1 = H32(I || S1)
//	Ki = H32(S(i-1) || Si)   for i >= 2
//
// Returns nil for an empty chain; callers are expected to reject that case
// before deriving.
func Derive(width, height int, seeds [][]byte) [][KeySize]byte {
	if len(seeds) == 0 {
		return nil
	}
	keys := make([][KeySize]byte, len(seeds))
	init := Initialisator(width, height)
	keys[0] = h32(init[:], seeds[0])
	for i := 1; i < len(seeds); i++ {
		keys[i] = h32(seeds[i-1], seeds[i])
	}
	return keys
}

// Raw bypasses derivation entirely: each key is the user seed truncated or
// zero-padded to KeySize bytes. No geometry binding, no chaining. Intended
// only for interoperating with carriers written by tools that seed the
// generator directly.
func Raw(seeds [][]byte) [][KeySize]byte {
	keys := make([][KeySize]byte, len(seeds))
	for i, s := range seeds {
		copy(keys[i][:], s)
	}
	return keys
}
