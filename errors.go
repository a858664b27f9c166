package augment

import "errors"

// Common errors for transform construction, resolution, and application.
var (
	// ErrInvalidBounds is returned when an affine specification is resolved
	// against a spatial extent that is zero or negative.
	ErrInvalidBounds = errors.New("augment: invalid bounds")

	// ErrKindMismatch is returned when a transform is applied to an item
	// kind it does not accept. The data is never touched in this case.
	ErrKindMismatch = errors.New("augment: item kind not accepted by transform")

	// ErrBufferedUnsupported is returned by ApplyBuffered when the transform
	// only supports allocate-mode application. Callers that depend on
	// allocation-free application must treat this as a hard failure; the
	// library never falls back to allocating silently.
	ErrBufferedUnsupported = errors.New("augment: transform does not support buffered application")

	// ErrZeroDeviation is returned when intensity normalization encounters a
	// payload whose standard deviation is zero or undefined.
	ErrZeroDeviation = errors.New("augment: zero standard deviation")

	// ErrClassRange is returned when a mask contains a class index outside
	// the declared class count.
	ErrClassRange = errors.New("augment: class index out of range")

	// ErrColorAmbiguous is returned by TensorToImage when the channel count
	// does not determine a color kind and none was given explicitly.
	ErrColorAmbiguous = errors.New("augment: channel count requires an explicit color kind")
)
