package texture

import (
	"image"

	"github.com/anthonynsimon/bild/effect"

	"selective-search/internal/imaging"
)

// Sobel computes the per-channel Sobel gradient magnitude.
//
// The convolution itself comes from the bild library, which applies the
// Sobel operator to each RGB channel independently. Magnitudes are divided
// by 255 and clamped so output values lie in [0, 1].
//
// Parameters:
//   - img: The source image.
//
// Returns planes of the image's dimensions holding the per-channel gradients.
func Sobel(img image.Image) *imaging.Planes {
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return imaging.NewPlanes(bounds.Dx(), bounds.Dy())
	}

	grad := imaging.RGBPlanes(effect.Sobel(img))
	for c := 0; c < 3; c++ {
		for i, v := range grad.Ch[c] {
			v /= 255.0
			if v > 1 {
				v = 1
			}
			grad.Ch[c][i] = v
		}
	}
	return grad
}
