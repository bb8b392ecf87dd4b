package core

import (
	"fmt"
	"strings"
)

// RGB stores explicit 8-bit color channels, decoupled from tcell
type RGB struct {
	R, G, B uint8
}

// Predefined colors
var (
	RGBBlack = RGB{0, 0, 0}
)

// Blend performs alpha blending: result = src*alpha + dst*(1-alpha)
func (c RGB) Blend(src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return c
	}
	if alpha >= 1 {
		return src
	}
	inv := 1.0 - alpha
	return RGB{
		R: uint8(float64(src.R)*alpha + float64(c.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(c.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(c.B)*inv),
	}
}

// Scale multiplies each channel by factor (for dimming inactive containers)
func (c RGB) Scale(factor float64) RGB {
	if factor <= 0 {
		return RGBBlack
	}
	if factor >= 1 {
		return c
	}
	return RGB{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
	}
}

// Color is a liquid unit color, a palette index
// ColorNone is the sentinel for "no color" (top of an empty container)
type Color uint8

const (
	ColorNone Color = iota
	ColorRed
	ColorBlue
	ColorGreen
	ColorYellow
	ColorPurple
	ColorOrange
	ColorCyan
	ColorPink
	ColorBrown
	ColorGray
	ColorLime
	ColorNavy
	ColorCount // Sentinel for iteration
)

type colorInfo struct {
	name string
	rgb  RGB
}

var palette = [ColorCount]colorInfo{
	ColorNone:   {"none", RGB{0, 0, 0}},
	ColorRed:    {"red", RGB{220, 50, 47}},
	ColorBlue:   {"blue", RGB{38, 100, 210}},
	ColorGreen:  {"green", RGB{60, 170, 70}},
	ColorYellow: {"yellow", RGB{240, 210, 40}},
	ColorPurple: {"purple", RGB{140, 70, 190}},
	ColorOrange: {"orange", RGB{245, 135, 30}},
	ColorCyan:   {"cyan", RGB{40, 200, 210}},
	ColorPink:   {"pink", RGB{245, 130, 190}},
	ColorBrown:  {"brown", RGB{130, 80, 40}},
	ColorGray:   {"gray", RGB{140, 140, 140}},
	ColorLime:   {"lime", RGB{170, 230, 60}},
	ColorNavy:   {"navy", RGB{25, 40, 110}},
}

// String returns the lowercase palette name
func (c Color) String() string {
	if c >= ColorCount {
		return fmt.Sprintf("color(%d)", uint8(c))
	}
	return palette[c].name
}

// RGB returns the display color
func (c Color) RGB() RGB {
	if c >= ColorCount {
		return RGBBlack
	}
	return palette[c].rgb
}

// Valid reports whether c is a real liquid color (not the sentinel)
func (c Color) Valid() bool {
	return c > ColorNone && c < ColorCount
}

// ParseColor resolves a palette name, case-insensitive
func ParseColor(name string) (Color, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i := ColorNone + 1; i < ColorCount; i++ {
		if palette[i].name == n {
			return i, nil
		}
	}
	return ColorNone, fmt.Errorf("unknown color %q", name)
}

// MarshalText encodes the color by name
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a color name
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
