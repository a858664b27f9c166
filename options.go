package augment

import "golang.org/x/image/draw"

// ScaleOption configures a scale specification during creation.
//
// Example:
//
//	// Default: bilinear resampling, single-precision ratios.
//	tfm := augment.ScaleKeepAspect(224)
//
//	// High-quality resampling, double-precision ratios.
//	tfm := augment.ScaleKeepAspect(224,
//	    augment.WithInterpolator(draw.CatmullRom),
//	    augment.WithPrecision(augment.PrecisionFloat64))
type ScaleOption func(*scaleOptions)

// scaleOptions holds optional configuration shared by all scale
// specifications.
type scaleOptions struct {
	precision    Precision
	interpolator draw.Interpolator
}

// defaultScaleOptions returns the default scale options.
func defaultScaleOptions() scaleOptions {
	return scaleOptions{
		precision:    PrecisionFloat32,
		interpolator: draw.BiLinear,
	}
}

// WithPrecision sets the floating point width used for ratio arithmetic when
// the specification is resolved against an input's bounds.
func WithPrecision(p Precision) ScaleOption {
	return func(o *scaleOptions) {
		o.precision = p
	}
}

// WithInterpolator sets the resampling interpolator used when the resolved
// map is applied to image payloads. Masks always resample nearest-neighbor
// regardless of this option, since class indices cannot be blended.
func WithInterpolator(ip draw.Interpolator) ScaleOption {
	return func(o *scaleOptions) {
		if ip != nil {
			o.interpolator = ip
		}
	}
}
