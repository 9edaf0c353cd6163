package raster

import (
	"errors"
	"testing"

	"github.com/hipwelljo/complex-gestures-demo/datastructures"
)

func stroke(points ...datastructures.Point) datastructures.Stroke {
	return datastructures.Stroke{Points: points}
}

func inkCount(t *testing.T, d datastructures.Drawing) int {
	t.Helper()
	img, err := Rasterize(d)
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	b := img.Bounds()
	if b.Dx() != Width || b.Dy() != Height {
		t.Fatalf("image is %dx%d, want %dx%d", b.Dx(), b.Dy(), Width, Height)
	}
	n := 0
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if img.GrayAt(x, y).Y > 0 {
				n++
			}
		}
	}
	return n
}

func TestRasterizeEmptyDrawing(t *testing.T) {
	_, err := Rasterize(datastructures.Drawing{})
	if !errors.Is(err, ErrEmptyDrawing) {
		t.Fatalf("got %v, want ErrEmptyDrawing", err)
	}
}

func TestRasterizeStrokesWithoutPoints(t *testing.T) {
	d := datastructures.Drawing{Strokes: []datastructures.Stroke{{}, {}}}
	_, err := Rasterize(d)
	if !errors.Is(err, ErrEmptyDrawing) {
		t.Fatalf("got %v, want ErrEmptyDrawing", err)
	}
}

func TestRasterizeDegenerateDrawing(t *testing.T) {
	d := datastructures.Drawing{Strokes: []datastructures.Stroke{
		stroke(datastructures.Point{X: 5, Y: 5}, datastructures.Point{X: 5, Y: 5}),
	}}
	_, err := Rasterize(d)
	if !errors.Is(err, ErrEmptyDrawing) {
		t.Fatalf("got %v, want ErrEmptyDrawing", err)
	}
}

func TestRasterizeXMark(t *testing.T) {
	d := datastructures.Drawing{Strokes: []datastructures.Stroke{
		stroke(datastructures.Point{X: 0, Y: 100}, datastructures.Point{X: 100, Y: 0}),
		stroke(datastructures.Point{X: 0, Y: 0}, datastructures.Point{X: 100, Y: 100}),
	}}

	n := inkCount(t, d)
	if n == 0 {
		t.Fatal("rasterized x mark contains no ink")
	}
	if n == Width*Height {
		t.Fatal("rasterized x mark floods the whole image")
	}
}

func TestRasterizeSinglePointStroke(t *testing.T) {
	// A dot (an eye of a face) next to a line must not fail.
	d := datastructures.Drawing{Strokes: []datastructures.Stroke{
		stroke(datastructures.Point{X: 30, Y: 30}),
		stroke(datastructures.Point{X: 0, Y: 80}, datastructures.Point{X: 100, Y: 80}),
	}}

	if inkCount(t, d) == 0 {
		t.Fatal("drawing contains no ink")
	}
}

func TestRasterizeDenseStrokeIsSimplified(t *testing.T) {
	// Many nearly collinear samples must rasterize the same as the
	// straight line through them.
	pts := make([]datastructures.Point, 0, 101)
	for i := 0; i <= 100; i++ {
		pts = append(pts, datastructures.Point{X: float64(i), Y: float64(i)})
	}
	dense := datastructures.Drawing{Strokes: []datastructures.Stroke{{Points: pts}}}
	sparse := datastructures.Drawing{Strokes: []datastructures.Stroke{
		stroke(datastructures.Point{X: 0, Y: 0}, datastructures.Point{X: 100, Y: 100}),
	}}

	dn := inkCount(t, dense)
	sn := inkCount(t, sparse)
	if dn == 0 || sn == 0 {
		t.Fatal("line drawings contain no ink")
	}
	diff := dn - sn
	if diff < 0 {
		diff = -diff
	}
	if diff > sn/2 {
		t.Fatalf("dense (%d px) and sparse (%d px) lines rasterize too differently", dn, sn)
	}
}
