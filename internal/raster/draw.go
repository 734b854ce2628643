package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// drawLine draws a line on an image using Bresenham's algorithm.
// Widths above one are drawn as a square brush around each pixel.
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, width int, col color.Color) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	var sx, sy int
	if x1 < x2 {
		sx = 1
	} else {
		sx = -1
	}
	if y1 < y2 {
		sy = 1
	} else {
		sy = -1
	}

	err := dx - dy

	for {
		plot(img, x1, y1, width, col)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// plot sets a width x width block of pixels centred on x, y
func plot(img *image.RGBA, x, y, width int, col color.Color) {
	if width <= 1 {
		setPixel(img, x, y, col)
		return
	}
	lo := -(width - 1) / 2
	hi := width / 2
	for oy := lo; oy <= hi; oy++ {
		for ox := lo; ox <= hi; ox++ {
			setPixel(img, x+ox, y+oy, col)
		}
	}
}

func setPixel(img *image.RGBA, x, y int, col color.Color) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.Set(x, y, col)
	}
}

// fillEllipse fills an axis-aligned ellipse using horizontal scanlines
func fillEllipse(img *image.RGBA, cx, cy, rx, ry float64, col color.Color) {
	if rx <= 0 || ry <= 0 {
		return
	}
	bounds := img.Bounds()

	top := int(math.Max(float64(bounds.Min.Y), math.Floor(cy-ry)))
	bottom := int(math.Min(float64(bounds.Max.Y-1), math.Ceil(cy+ry)))

	for y := top; y <= bottom; y++ {
		// Sample at the pixel centre
		dy := (float64(y) + 0.5 - cy) / ry
		if dy*dy > 1 {
			continue
		}
		half := rx * math.Sqrt(1-dy*dy)

		xStart := int(math.Max(float64(bounds.Min.X), math.Round(cx-half)))
		xEnd := int(math.Min(float64(bounds.Max.X-1), math.Round(cx+half)-1))
		for x := xStart; x <= xEnd; x++ {
			img.Set(x, y, col)
		}
	}
}

// fillRect fills r clipped to the image
func fillRect(img *image.RGBA, r image.Rectangle, col color.Color) {
	draw.Draw(img, r.Intersect(img.Bounds()), image.NewUniform(col), image.Point{}, draw.Over)
}

// strokeRect outlines r with lines of the given width
func strokeRect(img *image.RGBA, r image.Rectangle, width int, col color.Color) {
	x1, y1 := r.Min.X, r.Min.Y
	x2, y2 := r.Max.X-1, r.Max.Y-1
	drawLine(img, x1, y1, x2, y1, width, col)
	drawLine(img, x2, y1, x2, y2, width, col)
	drawLine(img, x2, y2, x1, y2, width, col)
	drawLine(img, x1, y2, x1, y1, width, col)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
