package augment

import (
	"fmt"
	"math/rand/v2"
)

// Transform is a reusable, immutable specification of one operation on an
// item. A single Transform value is applied to arbitrarily many items, from
// arbitrarily many goroutines; implementations must not carry mutable state.
//
// Randomized transforms never draw randomness inside Apply. Instead the
// caller draws a state once per logical application via RandState and passes
// the identical value to every entry point it invokes. This is what lets the
// same augmentation be replayed across an image and its paired mask, and
// across the allocating and buffered paths.
type Transform interface {
	// RandState draws the per-application random state from rng.
	// Deterministic transforms return nil.
	RandState(rng *rand.Rand) any

	// Apply allocates and returns a new item; the input is never mutated.
	// state must be the value drawn by RandState for this application, or
	// nil for deterministic transforms.
	Apply(item Item, state any) (Item, error)
}

// BufferedTransform is the capability marker for transforms whose output
// shape is size-stable, so the result can be written into a preallocated
// buffer item instead of a fresh allocation.
//
// For any (transform, item, state) triple, ApplyTo must produce a payload
// identical to what Apply would produce.
type BufferedTransform interface {
	Transform

	// ApplyTo writes the result into buf's payload and returns buf.
	// buf must have the shape and element type Apply would have produced;
	// it is mutated in place.
	ApplyTo(buf Item, item Item, state any) (Item, error)
}

// AffineTransform is the capability marker for transforms that resolve to a
// linear map against an input's bounds. Consecutive affine transforms in a
// pipeline are collapsed into one resolved map before resampling.
type AffineTransform interface {
	Transform

	// ResolveAffine resolves the size-independent specification into a
	// concrete linear map for the given bounds. Deterministic
	// specifications accept and ignore state.
	ResolveAffine(bounds Bounds, state any) (LinearMap, error)
}

// ApplyBuffered applies tfm to item, writing the result into buf.
//
// If tfm does not support buffered application the call fails with
// ErrBufferedUnsupported. There is no silent fallback to allocation: callers
// that rely on the allocation-free guarantee must see the failure.
func ApplyBuffered(buf Item, tfm Transform, item Item, state any) (Item, error) {
	bt, ok := tfm.(BufferedTransform)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrBufferedUnsupported, tfm)
	}
	return bt.ApplyTo(buf, item, state)
}

// kindMismatch builds the standard error for a transform rejecting an item.
func kindMismatch(tfm Transform, item Item) error {
	return fmt.Errorf("%w: %T cannot accept %s", ErrKindMismatch, tfm, item)
}
