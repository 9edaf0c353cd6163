// Package raster converts a user's drawing into the fixed-size grayscale
// bitmap the gesture model was trained on. Strokes are simplified, scaled
// into a padded square canvas and drawn as thick polylines at high
// resolution; box-filter downsampling then produces the anti-aliased
// 28x28 input image.
package raster

import (
	"errors"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	simplify "github.com/yrsh/simplify-go"

	"github.com/hipwelljo/complex-gestures-demo/datastructures"
)

// Width and Height of the produced image, matching the model's input.
const (
	Width  = 28
	Height = 28
)

const (
	// canvasSize is the resolution strokes are drawn at before
	// downsampling.
	canvasSize = 256

	// canvasMargin keeps ink away from the canvas border, as the training
	// data does.
	canvasMargin = 24

	// brushRadius is the stroke thickness on the canvas, in pixels.
	brushRadius = 6
)

// ErrEmptyDrawing is returned for drawings that contain no ink: no strokes,
// no points, or geometry with zero extent.
var ErrEmptyDrawing = errors.New("drawing contains nothing to rasterize")

// Rasterize renders a drawing into a Width x Height grayscale image with
// white ink on a black background. The drawing is fitted to the canvas
// preserving its aspect ratio.
func Rasterize(d datastructures.Drawing) (*image.Gray, error) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	n := 0
	for _, s := range d.Strokes {
		for _, p := range s.Points {
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
			n++
		}
	}
	if n == 0 {
		return nil, ErrEmptyDrawing
	}

	extent := math.Max(maxX-minX, maxY-minY)
	if extent <= 0 {
		// all points coincide
		return nil, ErrEmptyDrawing
	}

	// Fit the bounding box into the canvas, centered, preserving aspect.
	scale := float64(canvasSize-2*canvasMargin) / extent
	offX := (float64(canvasSize) - (maxX-minX)*scale) / 2
	offY := (float64(canvasSize) - (maxY-minY)*scale) / 2

	canvas := image.NewGray(image.Rect(0, 0, canvasSize, canvasSize))
	for _, s := range d.Strokes {
		drawStroke(canvas, simplifyStroke(s, extent), minX, minY, scale, offX, offY)
	}

	small := imaging.Resize(canvas, Width, Height, imaging.Box)

	out := image.NewGray(image.Rect(0, 0, Width, Height))
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			out.Set(x, y, color.GrayModel.Convert(small.At(x, y)))
		}
	}
	return out, nil
}

// simplifyStroke reduces the point count of a stroke with Douglas-Peucker
// simplification. The tolerance scales with the drawing extent so that
// slow, dense strokes and fast, sparse ones rasterize alike.
func simplifyStroke(s datastructures.Stroke, extent float64) []datastructures.Point {
	if len(s.Points) <= 2 {
		return s.Points
	}

	pts := make([][]float64, len(s.Points))
	for i, p := range s.Points {
		pts[i] = []float64{p.X, p.Y}
	}
	simplified := simplify.Simplify(pts, extent/200.0, true)

	out := make([]datastructures.Point, len(simplified))
	for i, p := range simplified {
		out[i] = datastructures.Point{X: p[0], Y: p[1]}
	}
	return out
}

func drawStroke(canvas *image.Gray, points []datastructures.Point, minX, minY, scale, offX, offY float64) {
	if len(points) == 0 {
		return
	}

	toCanvas := func(p datastructures.Point) (float64, float64) {
		return (p.X-minX)*scale + offX, (p.Y-minY)*scale + offY
	}

	if len(points) == 1 {
		x, y := toCanvas(points[0])
		stamp(canvas, x, y)
		return
	}

	for i := 1; i < len(points); i++ {
		x0, y0 := toCanvas(points[i-1])
		x1, y1 := toCanvas(points[i])
		drawLine(canvas, x0, y0, x1, y1)
	}
}

// drawLine stamps the brush along the segment at sub-pixel steps.
func drawLine(canvas *image.Gray, x0, y0, x1, y1 float64) {
	dx := x1 - x0
	dy := y1 - y0
	length := math.Hypot(dx, dy)

	steps := int(math.Ceil(length)) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		stamp(canvas, x0+dx*t, y0+dy*t)
	}
}

// stamp draws a filled disc of brushRadius at (cx, cy).
func stamp(canvas *image.Gray, cx, cy float64) {
	x0 := int(math.Floor(cx)) - brushRadius
	x1 := int(math.Ceil(cx)) + brushRadius
	y0 := int(math.Floor(cy)) - brushRadius
	y1 := int(math.Ceil(cy)) + brushRadius

	b := canvas.Bounds()
	for y := y0; y <= y1; y++ {
		if y < b.Min.Y || y >= b.Max.Y {
			continue
		}
		for x := x0; x <= x1; x++ {
			if x < b.Min.X || x >= b.Max.X {
				continue
			}
			ddx := float64(x) + 0.5 - cx
			ddy := float64(y) + 0.5 - cy
			if ddx*ddx+ddy*ddy <= brushRadius*brushRadius {
				canvas.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
}
