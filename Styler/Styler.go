// Package Styler derives the high contrast variant of an icon.
package Styler

import (
	"image"
	"image/draw"

	log "github.com/sirupsen/logrus"
)

// HighContrast converts img to grayscale and stretches its luminance range.
func HighContrast(img image.Image) *image.Gray {
	return AutoContrast(Grayscale(img))
}

// HighContrastSet applies HighContrast to every image, keeping the order.
func HighContrastSet(images []image.Image) []image.Image {
	converted := make([]image.Image, 0, len(images))
	for _, img := range images {
		converted = append(converted, HighContrast(img))
	}
	return converted
}

// Grayscale returns a single-channel copy of img using the standard gray model.
// Transparent pixels become black.
func Grayscale(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(gray, gray.Bounds(), img, bounds.Min, draw.Src)
	return gray
}

// AutoContrast maps the darkest value present to 0 and the lightest to 255,
// scaling linearly in between. A flat image is returned unchanged.
// The result is a new image; src is not modified.
func AutoContrast(src *image.Gray) *image.Gray {
	var histogram [256]int
	bounds := src.Bounds()
	dst := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := src.Pix[src.PixOffset(bounds.Min.X, y):src.PixOffset(bounds.Max.X, y)]
		copy(dst.Pix[dst.PixOffset(bounds.Min.X, y):], row)
		for _, v := range row {
			histogram[v]++
		}
	}

	lo, hi := 0, 255
	for lo < 256 && histogram[lo] == 0 {
		lo++
	}
	for hi >= 0 && histogram[hi] == 0 {
		hi--
	}

	if hi <= lo {
		log.Trace("AutoContrast: flat or empty image, nothing to stretch")
		return dst
	}

	var lut [256]uint8
	for v := range lut {
		switch {
		case v <= lo:
			lut[v] = 0
		case v >= hi:
			lut[v] = 255
		default:
			lut[v] = uint8((v - lo) * 255 / (hi - lo))
		}
	}

	for i, v := range dst.Pix {
		dst.Pix[i] = lut[v]
	}

	log.Trace("AutoContrast stretched [", lo, ", ", hi, "] to [0, 255]")
	return dst
}
