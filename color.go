// Copyright 2025 Satori Komeiji
// SPDX-License-Identifier: MIT

package iconinverter

import (
	"fmt"
	"strings"
)

// RGB is an 8-bit-per-channel color with alpha.
type RGB struct {
	R, G, B, A uint8
}

// HSL is a hue/saturation/lightness color with all components in [0, 1].
// Hue is 0 for achromatic colors.
type HSL struct {
	H, S, L float64
}

// RGBToHSL converts c to the HSL color space. Alpha is not represented in
// HSL and must be carried separately.
func RGBToHSL(c RGB) HSL {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	max, min := r, r
	if g > max {
		max = g
	}
	if b > max {
		max = b
	}
	if g < min {
		min = g
	}
	if b < min {
		min = b
	}
	d := max - min

	var hsl HSL
	hsl.L = (max + min) / 2
	if d == 0 {
		// Achromatic.
		return hsl
	}

	if hsl.L > 0.5 {
		hsl.S = d / (2 - max - min)
	} else {
		hsl.S = d / (max + min)
	}

	switch max {
	case r:
		hsl.H = (g - b) / d
		if g < b {
			hsl.H += 6
		}
	case g:
		hsl.H = (b-r)/d + 2
	default:
		hsl.H = (r-g)/d + 4
	}
	hsl.H /= 6

	return hsl
}

// HSLToRGB converts c back to 8-bit RGB channels. The returned alpha is
// fully opaque.
func HSLToRGB(c HSL) RGB {
	if c.S == 0 {
		v := roundChannel(c.L)
		return RGB{R: v, G: v, B: v, A: 0xff}
	}

	var q float64
	if c.L < 0.5 {
		q = c.L * (1 + c.S)
	} else {
		q = c.L + c.S - c.L*c.S
	}
	p := 2*c.L - q

	return RGB{
		R: roundChannel(hueToChannel(p, q, c.H+1.0/3)),
		G: roundChannel(hueToChannel(p, q, c.H)),
		B: roundChannel(hueToChannel(p, q, c.H-1.0/3)),
		A: 0xff,
	}
}

func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	}
	return p
}

func roundChannel(v float64) uint8 {
	v = v*255 + 0.5
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// InvertLightness flips the perceived brightness of c, keeping hue,
// saturation and alpha.
func InvertLightness(c RGB) RGB {
	hsl := RGBToHSL(c)
	hsl.L = 1 - hsl.L
	out := HSLToRGB(hsl)
	out.A = c.A
	return out
}

// ParseHexColor parses a #RGB or #RRGGBB color token.
func ParseHexColor(s string) (RGB, bool) {
	if len(s) == 0 || s[0] != '#' {
		return RGB{}, false
	}
	digits := s[1:]

	switch len(digits) {
	case 3:
		var v [3]uint8
		for i := 0; i < 3; i++ {
			n, ok := hexNibble(digits[i])
			if !ok {
				return RGB{}, false
			}
			v[i] = n<<4 | n
		}
		return RGB{R: v[0], G: v[1], B: v[2], A: 0xff}, true
	case 6:
		var v [3]uint8
		for i := 0; i < 3; i++ {
			hi, ok1 := hexNibble(digits[2*i])
			lo, ok2 := hexNibble(digits[2*i+1])
			if !ok1 || !ok2 {
				return RGB{}, false
			}
			v[i] = hi<<4 | lo
		}
		return RGB{R: v[0], G: v[1], B: v[2], A: 0xff}, true
	}

	return RGB{}, false
}

func hexNibble(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}

// Hex formats c as an uppercase #RRGGBB token. Alpha is not encoded.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// InvertColorToken returns the lightness-inverted form of a color token.
// It declines (returns false) on keywords that carry no invertible color
// ("none", "transparent", "currentColor"), on url(...) paint references,
// and on any syntax other than hex colors.
func InvertColorToken(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	switch strings.ToLower(trimmed) {
	case "", "none", "transparent", "currentcolor":
		return "", false
	}
	if strings.HasPrefix(trimmed, "url(") {
		return "", false
	}

	c, ok := ParseHexColor(trimmed)
	if !ok {
		return "", false
	}
	return InvertLightness(c).Hex(), true
}
