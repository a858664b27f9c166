package augment

import (
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/isentropic/augment/tensor"
)

func TestArrayItemBounds(t *testing.T) {
	d, _ := tensor.New[float32](10, 20, 3)
	b, err := NewArrayItem(d).Bounds()
	if err != nil {
		t.Fatalf("Bounds failed: %v", err)
	}
	if b != (Bounds{10, 20}) {
		t.Errorf("Bounds = %+v, want {10 20}", b)
	}
}

func TestArrayItemBoundsRankOne(t *testing.T) {
	d, _ := tensor.New[float32](10)
	if _, err := NewArrayItem(d).Bounds(); !errors.Is(err, ErrInvalidBounds) {
		t.Errorf("error = %v, want ErrInvalidBounds", err)
	}
}

func TestImageItemBounds(t *testing.T) {
	it := NewImageItem(image.NewGray(image.Rect(0, 0, 7, 5)))
	b, err := it.Bounds()
	if err != nil {
		t.Fatalf("Bounds failed: %v", err)
	}
	if b != (Bounds{5, 7}) {
		t.Errorf("Bounds = %+v, want {5 7}", b)
	}
}

func TestImageItemBoundsEmpty(t *testing.T) {
	it := NewImageItem(image.NewGray(image.Rect(0, 0, 0, 5)))
	if _, err := it.Bounds(); !errors.Is(err, ErrInvalidBounds) {
		t.Errorf("error = %v, want ErrInvalidBounds", err)
	}
}

func TestNewMaskItemValidation(t *testing.T) {
	classes, _ := tensor.New[int32](2, 2)
	if _, err := NewMaskItem(classes, 0); err == nil {
		t.Error("NewMaskItem accepted zero classes")
	}
	if _, err := NewMaskItem(classes, -1); err == nil {
		t.Error("NewMaskItem accepted negative classes")
	}
	m, err := NewMaskItem(classes, 3)
	if err != nil {
		t.Fatalf("NewMaskItem failed: %v", err)
	}
	if m.NumClasses != 3 {
		t.Errorf("NumClasses = %d, want 3", m.NumClasses)
	}
}

func TestItemStrings(t *testing.T) {
	d, _ := tensor.New[float32](2, 3)
	classes, _ := tensor.New[int32](2, 2)
	mask, _ := NewMaskItem(classes, 5)
	tests := []struct {
		name string
		item Item
		want string
	}{
		{"array", NewArrayItem(d), "ArrayItem[float32]"},
		{"image", NewImageItem(image.NewGray(image.Rect(0, 0, 2, 2))), "ImageItem"},
		{"mask", mask, "MaskItem[5 classes]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.String(); !strings.HasPrefix(got, tt.want) {
				t.Errorf("String() = %q, want prefix %q", got, tt.want)
			}
		})
	}
}
