package engine

import "errors"

// ErrCapacityExceeded indicates the carrier ran out of free pixels before
// the payload and its sentinel were fully written.
var ErrCapacityExceeded = errors.New("payload exceeds carrier capacity")

// ErrTruncated indicates extraction exhausted the carrier before decoding
// an end-of-payload sentinel.
var ErrTruncated = errors.New("stream exhausted before end-of-payload sentinel")

// ErrNoMoreSeeds indicates Next was called past the end of the seed chain.
var ErrNoMoreSeeds = errors.New("seed chain exhausted")

// ErrEmptySeedChain indicates the engine was constructed with zero seeds.
var ErrEmptySeedChain = errors.New("seed chain must contain at least one seed")

// ErrTestMode indicates extraction was attempted on a test-mode engine,
// whose carrier holds marker colours rather than payload bits.
var ErrTestMode = errors.New("extract is unavailable in test mode")
