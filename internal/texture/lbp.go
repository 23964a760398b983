package texture

import (
	"fmt"

	"selective-search/internal/imaging"
)

// Mode selects the texture descriptor.
type Mode string

const (
	// ModeLBP selects the local binary pattern descriptor.
	ModeLBP Mode = "lbp"

	// ModeSobel selects the Sobel gradient magnitude descriptor.
	ModeSobel Mode = "sobel"
)

// ParseMode validates a descriptor name from configuration.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeLBP, ModeSobel:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown texture mode %q (valid: lbp, sobel)", s)
}

// lbpOffsets are the 8 neighbors in bit order, starting east and proceeding
// clockwise in image coordinates (Y grows downward).
var lbpOffsets = [8][2]int{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

// LBP computes the 8-neighbor local binary pattern of each channel.
//
// For every pixel, each of its 8 neighbors contributes one bit: set when the
// neighbor value is greater than or equal to the center value. The resulting
// 0-255 code is divided by 255, so output values lie in [0, 1]. Neighbors
// outside the image clamp to the nearest edge pixel.
//
// Parameters:
//   - p: Source channel planes (any value range; only ordering matters).
//
// Returns planes of the same dimensions holding the per-channel codes.
func LBP(p *imaging.Planes) *imaging.Planes {
	out := imaging.NewPlanes(p.Width, p.Height)
	if p.Width == 0 || p.Height == 0 {
		return out
	}

	for c := 0; c < 3; c++ {
		for y := 0; y < p.Height; y++ {
			for x := 0; x < p.Width; x++ {
				center := p.At(c, x, y)
				code := 0
				for bit, off := range lbpOffsets {
					nx := clamp(x+off[0], 0, p.Width-1)
					ny := clamp(y+off[1], 0, p.Height-1)
					if p.At(c, nx, ny) >= center {
						code |= 1 << bit
					}
				}
				out.Set(c, x, y, float64(code)/255.0)
			}
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
