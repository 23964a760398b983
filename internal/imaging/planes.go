package imaging

import (
	"image"

	"github.com/lucasb-eyer/go-colorful"
)

// Planes holds an image decomposed into three flat float64 channel planes.
//
// Pixel (x, y) of channel c lives at Ch[c][y*Width+x]. The flat row-major
// layout keeps per-region gathers and whole-plane passes cache-friendly and
// lets channels be processed independently.
//
// Value ranges depend on the constructor: RGBPlanes and HSVPlanes both emit
// values in [0, 255].
type Planes struct {
	Width  int          // Plane width in pixels
	Height int          // Plane height in pixels
	Ch     [3][]float64 // Channel planes, row-major
}

// NewPlanes allocates zeroed planes of the given dimensions.
func NewPlanes(width, height int) *Planes {
	p := &Planes{Width: width, Height: height}
	for c := range p.Ch {
		p.Ch[c] = make([]float64, width*height)
	}
	return p
}

// At returns the value of channel c at pixel (x, y).
func (p *Planes) At(c, x, y int) float64 {
	return p.Ch[c][y*p.Width+x]
}

// Set assigns the value of channel c at pixel (x, y).
func (p *Planes) Set(c, x, y int, v float64) {
	p.Ch[c][y*p.Width+x] = v
}

// RGBPlanes decomposes an image into red, green and blue planes.
//
// Parameters:
//   - img: The source image. Any image.Image works; 16-bit components are
//     scaled down to 8-bit precision.
//
// Returns planes with channel order R, G, B and values in [0, 255].
func RGBPlanes(img image.Image) *Planes {
	bounds := img.Bounds()
	p := NewPlanes(bounds.Dx(), bounds.Dy())

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// Convert from 16-bit to 8-bit
			p.Ch[0][i] = float64(r >> 8)
			p.Ch[1][i] = float64(g >> 8)
			p.Ch[2][i] = float64(b >> 8)
			i++
		}
	}
	return p
}

// HSVPlanes decomposes an image into hue, saturation and value planes.
//
// The conversion itself comes from go-colorful. Hue (natively 0-360 degrees)
// and saturation/value (natively 0-1) are rescaled so every channel spans
// [0, 255]; that puts all three on the same footing as RGB planes and lets a
// single fixed histogram range serve either color space.
//
// Returns planes with channel order H, S, V and values in [0, 255].
func HSVPlanes(img image.Image) *Planes {
	bounds := img.Bounds()
	p := NewPlanes(bounds.Dx(), bounds.Dy())

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			c := colorful.Color{
				R: float64(r) / 0xffff,
				G: float64(g) / 0xffff,
				B: float64(b) / 0xffff,
			}
			h, s, v := c.Hsv()
			p.Ch[0][i] = h / 360 * 255
			p.Ch[1][i] = s * 255
			p.Ch[2][i] = v * 255
			i++
		}
	}
	return p
}
