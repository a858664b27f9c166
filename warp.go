package augment

import (
	"fmt"
	"image"
	"log/slog"

	"golang.org/x/image/draw"

	"github.com/isentropic/augment/tensor"
)

// warpItem applies a resolved linear map to an item's payload, producing a
// freshly allocated result. Images resample with the configured
// interpolator; masks resample nearest-neighbor over class indices. Raw
// array items have no resampling semantics and are rejected.
func warpItem(item Item, m LinearMap, o scaleOptions) (Item, error) {
	switch it := item.(type) {
	case *ImageItem:
		return &ImageItem{Image: warpImage(it.Image, m, o.interpolator)}, nil
	case *MaskItem:
		classes, err := warpMask(it.Classes, m)
		if err != nil {
			return nil, err
		}
		return &MaskItem{Classes: classes, NumClasses: it.NumClasses}, nil
	default:
		return nil, fmt.Errorf("%w: affine resampling cannot accept %s",
			ErrKindMismatch, item)
	}
}

// warpImage resamples an image under the linear map. The destination keeps
// the source's color family: grayscale stays grayscale, everything else
// lands in NRGBA.
func warpImage(img image.Image, m LinearMap, ip draw.Interpolator) image.Image {
	sb := img.Bounds()
	out := m.OutputBounds(Bounds{Height: sb.Dy(), Width: sb.Dx()})
	if out.Height < 1 {
		out.Height = 1
	}
	if out.Width < 1 {
		out.Width = 1
	}

	var dst draw.Image
	if _, ok := img.(*image.Gray); ok {
		dst = image.NewGray(image.Rect(0, 0, out.Width, out.Height))
	} else {
		dst = image.NewNRGBA(image.Rect(0, 0, out.Width, out.Height))
	}

	Logger().Debug("resampling image",
		slog.Int("srcHeight", sb.Dy()), slog.Int("srcWidth", sb.Dx()),
		slog.Int("dstHeight", out.Height), slog.Int("dstWidth", out.Width),
		slog.Bool("diagonal", m.IsDiagonal()))

	if m.IsDiagonal() {
		// A pure per-axis scale maps the source rectangle onto the
		// destination rectangle exactly.
		ip.Scale(dst, dst.Bounds(), img, sb, draw.Src, nil)
		return dst
	}

	// General case: hand the map to the transformer, shifted so the source
	// origin lands at the destination origin.
	a := m.aff3()
	a[2] = -(a[0]*float64(sb.Min.X) + a[1]*float64(sb.Min.Y))
	a[5] = -(a[3]*float64(sb.Min.X) + a[4]*float64(sb.Min.Y))
	ip.Transform(dst, a, img, sb, draw.Src, nil)
	return dst
}

// warpMask resamples a rank-2 class-index mask under the linear map using
// nearest-neighbor lookup. Class indices are categorical and must never be
// blended.
func warpMask(src *tensor.Dense[int32], m LinearMap) (*tensor.Dense[int32], error) {
	shape := src.Shape()
	if len(shape) != 2 {
		return nil, fmt.Errorf("%w: rank-%d mask", ErrInvalidBounds, len(shape))
	}
	inv, ok := m.Invert()
	if !ok {
		return nil, fmt.Errorf("%w: singular map %+v", ErrInvalidBounds, m)
	}

	out := m.OutputBounds(Bounds{Height: shape[0], Width: shape[1]})
	if out.Height < 1 {
		out.Height = 1
	}
	if out.Width < 1 {
		out.Width = 1
	}
	dst, err := tensor.New[int32](out.Height, out.Width)
	if err != nil {
		return nil, err
	}

	srcData, dstData := src.Data(), dst.Data()
	for i := range out.Height {
		for j := range out.Width {
			// Sample at the pixel center, map back into source space.
			sy, sx := inv.Apply(float64(i)+0.5, float64(j)+0.5)
			yi := clampInt(int(sy), 0, shape[0]-1)
			xi := clampInt(int(sx), 0, shape[1]-1)
			dstData[i*out.Width+j] = srcData[yi*shape[1]+xi]
		}
	}
	return dst, nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
