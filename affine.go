package augment

import (
	"fmt"
	"math/rand/v2"
)

// The scale specifications below are size-independent: they declare intent
// ("scale to 224x224", "scale so the shortest side is at least 256") and are
// resolved into a concrete LinearMap only once an input's bounds are known.
// All three are deterministic; they accept a random state for signature
// uniformity with randomized affine transforms and ignore it.

// RatioScale scales each axis by a fixed factor. It is the base case every
// other scale specification reduces to.
type RatioScale struct {
	fy, fx float64
	opts   scaleOptions
}

// ScaleRatio creates a scale specification applying the same factor to both
// axes.
func ScaleRatio(f float64, opts ...ScaleOption) *RatioScale {
	return ScaleRatioXY(f, f, opts...)
}

// ScaleRatioXY creates a scale specification with independent vertical and
// horizontal factors.
func ScaleRatioXY(fy, fx float64, opts ...ScaleOption) *RatioScale {
	o := defaultScaleOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &RatioScale{fy: fy, fx: fx, opts: o}
}

// RandState implements Transform. Ratio scaling is deterministic.
func (t *RatioScale) RandState(*rand.Rand) any { return nil }

// ResolveAffine resolves to the diagonal map with the configured factors.
func (t *RatioScale) ResolveAffine(b Bounds, _ any) (LinearMap, error) {
	if !b.Valid() {
		return LinearMap{}, fmt.Errorf("%w: %dx%d", ErrInvalidBounds, b.Height, b.Width)
	}
	return Diagonal(t.fy, t.fx), nil
}

func (t *RatioScale) scaleOpts() scaleOptions { return t.opts }

// Apply resolves the specification against the item's bounds and resamples.
func (t *RatioScale) Apply(item Item, state any) (Item, error) {
	return applyResolved(t, t.opts, item, state)
}

// FixedScale scales an input to an exact target size.
type FixedScale struct {
	height, width int
	opts          scaleOptions
}

// ScaleFixed creates a scale specification that resolves to whatever ratio
// maps the input's bounds onto the target size exactly.
func ScaleFixed(height, width int, opts ...ScaleOption) *FixedScale {
	o := defaultScaleOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &FixedScale{height: height, width: width, opts: o}
}

// RandState implements Transform. Fixed scaling is deterministic.
func (t *FixedScale) RandState(*rand.Rand) any { return nil }

// ResolveAffine computes the per-axis target/bounds ratios and resolves them
// as a ratio specification. Zero or negative bounds fail rather than
// producing Inf or NaN entries.
func (t *FixedScale) ResolveAffine(b Bounds, state any) (LinearMap, error) {
	if !b.Valid() {
		return LinearMap{}, fmt.Errorf("%w: %dx%d", ErrInvalidBounds, b.Height, b.Width)
	}
	if t.height <= 0 || t.width <= 0 {
		return LinearMap{}, fmt.Errorf("%w: target size %dx%d", ErrInvalidBounds, t.height, t.width)
	}
	fy := t.opts.precision.ratio(float64(t.height), float64(b.Height))
	fx := t.opts.precision.ratio(float64(t.width), float64(b.Width))
	ratio := RatioScale{fy: fy, fx: fx, opts: t.opts}
	return ratio.ResolveAffine(b, state)
}

func (t *FixedScale) scaleOpts() scaleOptions { return t.opts }

// Apply resolves the specification against the item's bounds and resamples.
func (t *FixedScale) Apply(item Item, state any) (Item, error) {
	return applyResolved(t, t.opts, item, state)
}

// KeepAspectScale scales both axes by a single factor chosen so that each
// output axis is at least as large as its target length.
type KeepAspectScale struct {
	minHeight, minWidth int
	opts                scaleOptions
}

// ScaleKeepAspect creates an aspect-preserving scale specification with the
// same minimum length on both axes: the shorter side of the output will be
// at least minLen.
func ScaleKeepAspect(minLen int, opts ...ScaleOption) *KeepAspectScale {
	return ScaleKeepAspectXY(minLen, minLen, opts...)
}

// ScaleKeepAspectXY creates an aspect-preserving scale specification with
// independent per-axis minimum lengths.
func ScaleKeepAspectXY(minHeight, minWidth int, opts ...ScaleOption) *KeepAspectScale {
	o := defaultScaleOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &KeepAspectScale{minHeight: minHeight, minWidth: minWidth, opts: o}
}

// RandState implements Transform. Keep-aspect scaling is deterministic.
func (t *KeepAspectScale) RandState(*rand.Rand) any { return nil }

// ResolveAffine computes the per-axis target/bounds ratios and applies the
// larger of the two uniformly. Taking the maximum guarantees both output
// axes meet their minimum length simultaneously.
func (t *KeepAspectScale) ResolveAffine(b Bounds, state any) (LinearMap, error) {
	if !b.Valid() {
		return LinearMap{}, fmt.Errorf("%w: %dx%d", ErrInvalidBounds, b.Height, b.Width)
	}
	if t.minHeight <= 0 || t.minWidth <= 0 {
		return LinearMap{}, fmt.Errorf("%w: minimum lengths %dx%d", ErrInvalidBounds, t.minHeight, t.minWidth)
	}
	ry := t.opts.precision.ratio(float64(t.minHeight), float64(b.Height))
	rx := t.opts.precision.ratio(float64(t.minWidth), float64(b.Width))
	f := max(ry, rx)
	ratio := RatioScale{fy: f, fx: f, opts: t.opts}
	return ratio.ResolveAffine(b, state)
}

func (t *KeepAspectScale) scaleOpts() scaleOptions { return t.opts }

// Apply resolves the specification against the item's bounds and resamples.
func (t *KeepAspectScale) Apply(item Item, state any) (Item, error) {
	return applyResolved(t, t.opts, item, state)
}

// applyResolved is the shared allocate-mode path for affine specifications:
// resolve against the item's bounds, then resample once.
func applyResolved(spec AffineTransform, o scaleOptions, item Item, state any) (Item, error) {
	b, err := item.Bounds()
	if err != nil {
		return nil, err
	}
	m, err := spec.ResolveAffine(b, state)
	if err != nil {
		return nil, err
	}
	return warpItem(item, m, o)
}
