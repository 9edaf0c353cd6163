package predict

import (
	"image"
	"image/color"
	"testing"
)

func uniformGray(w, h int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}

func TestTensorShape(t *testing.T) {
	tensor, err := NewTensorFromImage(uniformGray(28, 14, 7))
	ok(t, err)
	equals(t, tensor.Width, 28)
	equals(t, tensor.Height, 14)
	equals(t, len(tensor.Float64s()), 28*14)
}

func TestTensorBoundaryExactness(t *testing.T) {
	black, err := NewTensorFromImage(uniformGray(4, 4, 0))
	ok(t, err)
	white, err := NewTensorFromImage(uniformGray(4, 4, 255))
	ok(t, err)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			equals(t, black.At(x, y), 0.0)
			equals(t, white.At(x, y), 1.0)
		}
	}
}

func TestTensorMidValue(t *testing.T) {
	tensor, err := NewTensorFromImage(uniformGray(4, 4, 128))
	ok(t, err)
	equals(t, tensor.At(2, 3), 128.0/255.0)
}

func TestTensorRange(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 16, 16))
	v := uint8(0)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.SetGray(x, y, color.Gray{Y: v})
			v++
		}
	}

	tensor, err := NewTensorFromImage(img)
	ok(t, err)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			got := tensor.At(x, y)
			if got < 0.0 || got > 1.0 {
				t.Fatalf("value %f at (%d,%d) outside [0,1]", got, x, y)
			}
		}
	}
}

func TestTensorEmptyImage(t *testing.T) {
	_, err := NewTensorFromImage(nil)
	equals(t, err, ErrEmptyImage)

	_, err = NewTensorFromImage(image.NewGray(image.Rect(0, 0, 0, 0)))
	equals(t, err, ErrEmptyImage)
}

func TestTensorOffsetBounds(t *testing.T) {
	img := image.NewGray(image.Rect(3, 5, 7, 9))
	img.SetGray(3, 5, color.Gray{Y: 255})

	tensor, err := NewTensorFromImage(img)
	ok(t, err)
	equals(t, tensor.Width, 4)
	equals(t, tensor.Height, 4)
	equals(t, tensor.At(0, 0), 1.0)
	equals(t, tensor.At(1, 0), 0.0)
}
