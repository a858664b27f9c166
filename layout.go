package augment

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/isentropic/augment/tensor"
)

// ImageToTensor reinterprets an image item as a float32 array item with an
// explicit trailing channel axis: a grayscale image of extent HxW becomes an
// (H, W, 1) tensor, a color image an (H, W, 3) tensor. Channel values are
// scaled from the 0..255 byte range into [0, 1].
type ImageToTensor struct{}

// RandState implements Transform. Layout conversion is deterministic.
func (ImageToTensor) RandState(*rand.Rand) any { return nil }

// Apply allocates the channel-last tensor and fills it from the image.
func (t ImageToTensor) Apply(item Item, _ any) (Item, error) {
	img, ok := item.(*ImageItem)
	if !ok {
		return nil, kindMismatch(t, item)
	}
	b := img.Image.Bounds()
	out, err := tensor.New[float32](b.Dy(), b.Dx(), imageChannels(img.Image))
	if err != nil {
		return nil, err
	}
	fillFromImage(out.Data(), img.Image)
	return &ArrayItem{Data: out}, nil
}

// ApplyTo writes the permuted channel values directly into buf's payload,
// with no intermediate allocation. buf must be a float32 array item of shape
// (height, width, channels) for the incoming image.
func (t ImageToTensor) ApplyTo(buf Item, item Item, _ any) (Item, error) {
	img, ok := item.(*ImageItem)
	if !ok {
		return nil, kindMismatch(t, item)
	}
	dst, ok := buf.(*ArrayItem)
	if !ok {
		return nil, fmt.Errorf("%w: buffer %s for %T", ErrKindMismatch, buf, t)
	}
	d, ok := dst.Data.(*tensor.Dense[float32])
	if !ok {
		return nil, fmt.Errorf("%w: buffer holds %s, want float32",
			ErrKindMismatch, dst.Data.DType())
	}
	b := img.Image.Bounds()
	want := []int{b.Dy(), b.Dx(), imageChannels(img.Image)}
	shape := d.Shape()
	if len(shape) != 3 || shape[0] != want[0] || shape[1] != want[1] || shape[2] != want[2] {
		return nil, fmt.Errorf("%w: buffer shape %v, image wants %v",
			tensor.ErrShapeMismatch, shape, want)
	}
	fillFromImage(d.Data(), img.Image)
	return dst, nil
}

// imageChannels returns the channel count an image contributes to the
// tensor: 1 for grayscale, 3 otherwise. Alpha is not carried.
func imageChannels(img image.Image) int {
	if _, ok := img.(*image.Gray); ok {
		return 1
	}
	return 3
}

// fillFromImage writes the image's channel values into a row-major
// channel-last float32 slice sized for it.
func fillFromImage(data []float32, img image.Image) {
	b := img.Bounds()
	switch src := img.(type) {
	case *image.Gray:
		i := 0
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := src.Pix[(y-b.Min.Y)*src.Stride:]
			for x := 0; x < b.Dx(); x++ {
				data[i] = float32(row[x]) / 255
				i++
			}
		}
	case *image.NRGBA:
		i := 0
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := src.Pix[(y-b.Min.Y)*src.Stride:]
			for x := 0; x < b.Dx(); x++ {
				data[i+0] = float32(row[x*4+0]) / 255
				data[i+1] = float32(row[x*4+1]) / 255
				data[i+2] = float32(row[x*4+2]) / 255
				i += 3
			}
		}
	default:
		i := 0
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				data[i+0] = float32(c.R) / 255
				data[i+1] = float32(c.G) / 255
				data[i+2] = float32(c.B) / 255
				i += 3
			}
		}
	}
}

// ColorKind selects the color family TensorToImage produces.
type ColorKind uint8

const (
	// ColorAuto infers the color family from the channel count: 1 is
	// grayscale, 3 is RGB. Any other count fails with ErrColorAmbiguous.
	ColorAuto ColorKind = iota

	// ColorGray produces a grayscale image from a single-channel tensor.
	ColorGray

	// ColorRGB produces a color image from a 3-channel tensor, or a
	// 4-channel tensor whose last channel is alpha.
	ColorRGB
)

// TensorToImage is the inverse of ImageToTensor: it reassembles a
// channel-last float tensor of shape (H, W, C) into an image, clamping
// values into [0, 1] and scaling to the 0..255 byte range.
//
// With the zero value the color family is inferred from the channel count;
// set Color explicitly for channel counts outside {1, 3}. TensorToImage
// supports allocate-mode application only.
type TensorToImage struct {
	Color ColorKind
}

// RandState implements Transform. Layout conversion is deterministic.
func (TensorToImage) RandState(*rand.Rand) any { return nil }

// Apply reassembles the tensor into a freshly allocated image item.
func (t TensorToImage) Apply(item Item, _ any) (Item, error) {
	arr, ok := item.(*ArrayItem)
	if !ok {
		return nil, kindMismatch(t, item)
	}
	d, ok := arr.Data.(*tensor.Dense[float32])
	if !ok {
		return nil, fmt.Errorf("%w: %T requires a float32 payload, got %s",
			ErrKindMismatch, t, arr.Data.DType())
	}
	shape := d.Shape()
	if len(shape) != 3 {
		return nil, fmt.Errorf("%w: rank-%d payload, want (height, width, channels)",
			tensor.ErrShapeMismatch, len(shape))
	}
	h, w, c := shape[0], shape[1], shape[2]

	kind := t.Color
	if kind == ColorAuto {
		switch c {
		case 1:
			kind = ColorGray
		case 3:
			kind = ColorRGB
		default:
			return nil, fmt.Errorf("%w: %d channels", ErrColorAmbiguous, c)
		}
	}

	data := d.Data()
	switch kind {
	case ColorGray:
		if c != 1 {
			return nil, fmt.Errorf("%w: grayscale wants 1 channel, got %d",
				ErrColorAmbiguous, c)
		}
		img := image.NewGray(image.Rect(0, 0, w, h))
		for y := range h {
			for x := range w {
				img.Pix[y*img.Stride+x] = toByte(data[y*w+x])
			}
		}
		return &ImageItem{Image: img}, nil
	case ColorRGB:
		if c != 3 && c != 4 {
			return nil, fmt.Errorf("%w: RGB wants 3 or 4 channels, got %d",
				ErrColorAmbiguous, c)
		}
		img := image.NewNRGBA(image.Rect(0, 0, w, h))
		for y := range h {
			for x := range w {
				src := (y*w + x) * c
				off := y*img.Stride + x*4
				img.Pix[off+0] = toByte(data[src+0])
				img.Pix[off+1] = toByte(data[src+1])
				img.Pix[off+2] = toByte(data[src+2])
				if c == 4 {
					img.Pix[off+3] = toByte(data[src+3])
				} else {
					img.Pix[off+3] = 255
				}
			}
		}
		return &ImageItem{Image: img}, nil
	default:
		return nil, fmt.Errorf("%w: unknown color kind %d", ErrColorAmbiguous, kind)
	}
}

// toByte clamps a [0, 1] channel value and scales it to 0..255.
func toByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(float64(v) * 255))
}
