package renderer

import (
	"image"
	"time"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels      int           // Total number of pixels rendered
	HitPixels        int           // Pixels whose camera ray hit an object
	ShadowRays       int           // Shadow rays cast toward lights
	OccludedRays     int           // Shadow rays blocked by an object
	Tiles            int           // Number of tiles the image was split into
	Workers          int           // Number of parallel workers used
	AverageLuminance float64       // Mean relative luminance of the output, 0 to 1
	Duration         time.Duration // Wall-clock render time
}

// BackgroundPixels returns the number of pixels that show the sky gradient
func (s RenderStats) BackgroundPixels() int {
	return s.TotalPixels - s.HitPixels
}

// CalculateAverageLuminance returns the mean Rec. 709 relative luminance of img,
// treating 8-bit channels as linear values in [0, 1]
func CalculateAverageLuminance(img *image.RGBA) float64 {
	b := img.Bounds()
	pixels := b.Dx() * b.Dy()
	if pixels == 0 {
		return 0
	}

	var sum float64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			sum += 0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)
		}
	}
	return sum / 255 / float64(pixels)
}
