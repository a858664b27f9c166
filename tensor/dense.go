// Package tensor provides the dense N-dimensional array payloads that flow
// through augment pipelines.
//
// A tensor stores its elements in a contiguous row-major slice. The generic
// Dense[T] type is the only implementation; the non-generic Tensor interface
// exists so items and transforms can carry payloads of mixed element types
// and dispatch on the concrete type at the boundary.
package tensor

import (
	"errors"
	"fmt"
)

// Common errors for tensor operations.
var (
	// ErrInvalidShape is returned when a shape has no axes or a non-positive
	// extent.
	ErrInvalidShape = errors.New("tensor: invalid shape")

	// ErrDataSize is returned when provided data does not match the shape's
	// element count.
	ErrDataSize = errors.New("tensor: data length does not match shape")

	// ErrShapeMismatch is returned when two tensors that must agree in shape
	// do not.
	ErrShapeMismatch = errors.New("tensor: shape mismatch")
)

// Tensor is the type-erased view of a Dense tensor. It exposes everything
// that does not depend on the element type; callers that need the elements
// type-assert to the concrete *Dense[T].
type Tensor interface {
	// Shape returns the axis extents. The returned slice must not be
	// modified.
	Shape() []int

	// Len returns the total number of elements.
	Len() int

	// DType returns the element type.
	DType() DType

	// CloneTensor returns a deep copy with the same concrete type.
	CloneTensor() Tensor
}

// Dense is a contiguous row-major N-dimensional array of T.
type Dense[T Scalar] struct {
	shape []int
	data  []T
}

// New creates a zero-filled dense tensor with the given shape.
// Returns an error if the shape is empty or has a non-positive extent.
func New[T Scalar](shape ...int) (*Dense[T], error) {
	n, err := checkShape(shape)
	if err != nil {
		return nil, err
	}
	return &Dense[T]{
		shape: append([]int(nil), shape...),
		data:  make([]T, n),
	}, nil
}

// FromSlice creates a dense tensor that adopts data as its backing store.
// The data length must equal the product of the shape extents; data is not
// copied.
func FromSlice[T Scalar](data []T, shape ...int) (*Dense[T], error) {
	n, err := checkShape(shape)
	if err != nil {
		return nil, err
	}
	if len(data) != n {
		return nil, fmt.Errorf("%w: got %d elements, shape %v wants %d",
			ErrDataSize, len(data), shape, n)
	}
	return &Dense[T]{
		shape: append([]int(nil), shape...),
		data:  data,
	}, nil
}

// checkShape validates a shape and returns its element count.
func checkShape(shape []int) (int, error) {
	if len(shape) == 0 {
		return 0, fmt.Errorf("%w: no axes", ErrInvalidShape)
	}
	n := 1
	for i, d := range shape {
		if d <= 0 {
			return 0, fmt.Errorf("%w: axis %d has extent %d", ErrInvalidShape, i, d)
		}
		n *= d
	}
	return n, nil
}

// Shape returns the axis extents. The returned slice must not be modified.
func (t *Dense[T]) Shape() []int { return t.shape }

// Len returns the total number of elements.
func (t *Dense[T]) Len() int { return len(t.data) }

// DType returns the element type.
func (t *Dense[T]) DType() DType { return DTypeOf[T]() }

// Data returns the backing slice in row-major order. Modifying it modifies
// the tensor.
func (t *Dense[T]) Data() []T { return t.data }

// Clone returns a deep copy.
func (t *Dense[T]) Clone() *Dense[T] {
	data := make([]T, len(t.data))
	copy(data, t.data)
	return &Dense[T]{
		shape: append([]int(nil), t.shape...),
		data:  data,
	}
}

// CloneTensor implements Tensor.
func (t *Dense[T]) CloneTensor() Tensor { return t.Clone() }

// Zero sets every element to zero.
func (t *Dense[T]) Zero() {
	clear(t.data)
}

// Offset returns the flat index of the element at the given coordinates.
// The number of coordinates must equal the number of axes.
func (t *Dense[T]) Offset(coords ...int) int {
	off := 0
	for i, c := range coords {
		off = off*t.shape[i] + c
	}
	return off
}

// At returns the element at the given coordinates.
func (t *Dense[T]) At(coords ...int) T {
	return t.data[t.Offset(coords...)]
}

// Set stores v at the given coordinates.
func (t *Dense[T]) Set(v T, coords ...int) {
	t.data[t.Offset(coords...)] = v
}

// SameShape reports whether two tensors have identical shapes.
func SameShape(a, b Tensor) bool {
	as, bs := a.Shape(), b.Shape()
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
