package augment

import (
	"fmt"
	"image"

	"github.com/isentropic/augment/tensor"
)

// Bounds is the spatial extent of an item, in (height, width) order to match
// row-major payload layout.
type Bounds struct {
	Height int
	Width  int
}

// Valid reports whether both extents are positive.
func (b Bounds) Valid() bool {
	return b.Height > 0 && b.Width > 0
}

// Item is one unit of data flowing through a pipeline: a raw array, a color
// image, or a categorical mask. The concrete kind determines which transforms
// accept the item; a transform invoked on a kind it does not accept fails
// with ErrKindMismatch before touching any data.
//
// Items produced by allocate-mode application are owned by the caller. Items
// used as buffers in ApplyTo are mutated in place and must not be shared
// across concurrent applications.
type Item interface {
	// Bounds returns the spatial extent of the item. It fails when the item
	// has no meaningful two-dimensional extent, so that affine resolution
	// cannot silently compute on nonsense.
	Bounds() (Bounds, error)

	// String describes the item kind and shape, for errors and logs.
	String() string
}

// ArrayItem wraps a plain numeric tensor of any supported element type.
type ArrayItem struct {
	Data tensor.Tensor
}

// NewArrayItem creates an array item around the given payload.
func NewArrayItem(data tensor.Tensor) *ArrayItem {
	return &ArrayItem{Data: data}
}

// Bounds returns the extents of the first two axes.
func (it *ArrayItem) Bounds() (Bounds, error) {
	shape := it.Data.Shape()
	if len(shape) < 2 {
		return Bounds{}, fmt.Errorf("%w: array of rank %d has no spatial extent",
			ErrInvalidBounds, len(shape))
	}
	b := Bounds{Height: shape[0], Width: shape[1]}
	if !b.Valid() {
		return Bounds{}, fmt.Errorf("%w: %dx%d", ErrInvalidBounds, b.Height, b.Width)
	}
	return b, nil
}

func (it *ArrayItem) String() string {
	return fmt.Sprintf("ArrayItem[%s]%v", it.Data.DType(), it.Data.Shape())
}

// ImageItem wraps a decoded color image. Grayscale and RGB images are
// understood natively; other color models are converted at the layout
// boundary (ImageToTensor).
type ImageItem struct {
	Image image.Image
}

// NewImageItem creates an image item around the given image.
func NewImageItem(img image.Image) *ImageItem {
	return &ImageItem{Image: img}
}

// Bounds returns the pixel extent of the image.
func (it *ImageItem) Bounds() (Bounds, error) {
	r := it.Image.Bounds()
	b := Bounds{Height: r.Dy(), Width: r.Dx()}
	if !b.Valid() {
		return Bounds{}, fmt.Errorf("%w: %dx%d image", ErrInvalidBounds, b.Height, b.Width)
	}
	return b, nil
}

func (it *ImageItem) String() string {
	r := it.Image.Bounds()
	return fmt.Sprintf("ImageItem[%T]%dx%d", it.Image, r.Dy(), r.Dx())
}

// MaskItem wraps a categorical segmentation mask: an integer tensor of class
// indices in [1..NumClasses], one per position.
type MaskItem struct {
	Classes    *tensor.Dense[int32]
	NumClasses int
}

// NewMaskItem creates a mask item with the declared class count.
// The class count must be positive; individual indices are validated when a
// transform consumes them.
func NewMaskItem(classes *tensor.Dense[int32], numClasses int) (*MaskItem, error) {
	if numClasses <= 0 {
		return nil, fmt.Errorf("%w: mask declares %d classes", ErrClassRange, numClasses)
	}
	return &MaskItem{Classes: classes, NumClasses: numClasses}, nil
}

// Bounds returns the extents of the first two axes of the mask.
func (it *MaskItem) Bounds() (Bounds, error) {
	shape := it.Classes.Shape()
	if len(shape) < 2 {
		return Bounds{}, fmt.Errorf("%w: mask of rank %d has no spatial extent",
			ErrInvalidBounds, len(shape))
	}
	b := Bounds{Height: shape[0], Width: shape[1]}
	if !b.Valid() {
		return Bounds{}, fmt.Errorf("%w: %dx%d", ErrInvalidBounds, b.Height, b.Width)
	}
	return b, nil
}

func (it *MaskItem) String() string {
	return fmt.Sprintf("MaskItem[%d classes]%v", it.NumClasses, it.Classes.Shape())
}
