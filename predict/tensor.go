package predict

import (
	"errors"
	"fmt"
	"image"
)

// Tensor is a single-channel input tensor of shape (1, W, H) with values
// in [0.0, 1.0]. It is created fresh for every prediction and handed to
// exactly one classifier call.
type Tensor struct {
	Width  int
	Height int

	// data holds element (0, x, y) at y*Width+x.
	data []float64
}

// ErrEmptyImage is returned when a tensor is requested for an image with
// zero width or height.
var ErrEmptyImage = errors.New("image has no pixels")

// NewTensorFromImage normalizes a grayscale image into a tensor by scaling
// intensities from [0,255] to [0.0,1.0]. Intensity 0 maps to exactly 0.0
// and 255 to exactly 1.0.
func NewTensorFromImage(img *image.Gray) (*Tensor, error) {
	if img == nil {
		return nil, ErrEmptyImage
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyImage
	}

	t := &Tensor{
		Width:  w,
		Height: h,
		data:   make([]float64, w*h),
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := img.GrayAt(b.Min.X+x, b.Min.Y+y).Y
			t.data[y*w+x] = float64(v) / 255.0
		}
	}
	return t, nil
}

// At returns element (0, x, y).
func (t *Tensor) At(x, y int) float64 {
	return t.data[y*t.Width+x]
}

// Float64s returns the tensor's backing buffer in row-major order. The
// buffer is owned by the tensor; callers must not retain it.
func (t *Tensor) Float64s() []float64 {
	return t.data
}

// Float32s returns a fresh row-major float32 copy of the tensor, the
// layout expected by the model runtimes.
func (t *Tensor) Float32s() []float32 {
	out := make([]float32, len(t.data))
	for i, v := range t.data {
		out[i] = float32(v)
	}
	return out
}

func (t *Tensor) String() string {
	return fmt.Sprintf("Tensor(1, %d, %d)", t.Width, t.Height)
}
