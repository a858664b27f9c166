// Package augment provides composable data transforms for preparing labeled
// array and image data for machine-learning consumption.
//
// # Overview
//
// Data flows through pipelines as typed items: raw numeric arrays
// (ArrayItem), color images (ImageItem), and categorical segmentation masks
// (MaskItem). Transforms are immutable specifications applied to items
// either by allocating a fresh result or by writing into a caller-supplied
// buffer, so tight training loops can reuse one buffer per batch slot
// instead of reallocating every step.
//
// # Quick Start
//
//	import "github.com/isentropic/augment"
//
//	norm, _ := augment.NewNormalize(
//	    []float64{0.485, 0.456, 0.406},
//	    []float64{0.229, 0.224, 0.225})
//
//	pipe := augment.NewPipeline(
//	    augment.ScaleKeepAspect(256),
//	    augment.ImageToTensor{},
//	    norm,
//	)
//
//	out, err := pipe.Apply(augment.NewImageItem(img), nil)
//
// # Affine Resolution
//
// Geometric transforms are declared without reference to any particular
// input size: ScaleFixed, ScaleRatio, and ScaleKeepAspect all resolve into a
// concrete LinearMap only when an input's bounds are known. Resolved maps
// compose by matrix multiplication, and a Pipeline collapses consecutive
// affine transforms into a single map so composed scaling resamples the data
// exactly once.
//
// # Buffered Application
//
// Transforms whose output shape is size-stable implement BufferedTransform
// and can write results into a preallocated item via ApplyTo. For the same
// transform, item, and random state the buffered path produces payloads
// identical to the allocating path. Transforms without the capability fail
// with ErrBufferedUnsupported; there is no silent fallback to allocation.
//
// # Randomness
//
// Randomized transforms never draw randomness internally. The caller draws a
// state once per logical application via RandState and passes the identical
// value to whichever entry points it invokes, so the same augmentation can
// be replayed across an image and its paired mask.
//
// # Concurrency
//
// Transform specifications are immutable and safe to share across
// arbitrarily many goroutines. Items and buffers are not: each buffer
// belongs to exactly one logical slot and concurrent buffered applications
// against the same buffer are a caller error.
package augment
