package canvas

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseHex parses a "#rrggbb" colour into an opaque NRGBA.
func ParseHex(s string) (color.NRGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// MustPalette parses a list of hex colours and panics on the first bad one.
// Intended for package-level palette tables.
func MustPalette(hex ...string) []color.NRGBA {
	out := make([]color.NRGBA, 0, len(hex))
	for _, h := range hex {
		c, err := ParseHex(h)
		if err != nil {
			panic(err)
		}
		out = append(out, c)
	}
	return out
}

// Fade scales the alpha channel of c by a (clamped to [0,1]).
func Fade(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(Clamp01(a) * float64(c.A))
	return c
}

// Blend mixes a and b in RGB space; t=0 gives a, t=1 gives b.
func Blend(a, b color.NRGBA, t float64) color.NRGBA {
	t = Clamp01(t)
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	r, g, bl := ca.BlendRgb(cb, t).Clamped().RGB255()
	alpha := float64(a.A) + (float64(b.A)-float64(a.A))*t
	return color.NRGBA{R: r, G: g, B: bl, A: uint8(alpha + 0.5)}
}

// ToNRGBA converts any colour to non-premultiplied RGBA.
func ToNRGBA(c color.Color) color.NRGBA {
	if n, ok := c.(color.NRGBA); ok {
		return n
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

// Clamp01 clamps v to [0,1]. NaN maps to 0.
func Clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
