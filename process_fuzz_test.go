// Copyright 2025 Satori Komeiji
// SPDX-License-Identifier: MIT

package iconinverter_test

import (
	"testing"

	iconinverter "github.com/satori5555/IconInverter"
)

func FuzzProcess(f *testing.F) {
	bmpPayload := makeRawBitmap(2, 2, 32, iconinverter.RGB{R: 40, G: 80, B: 120, A: 255})
	f.Add(encodeICO([]icoEntry{
		{w: 2, h: 2, bits: 32, size: uint32(len(bmpPayload)), offset: 22},
	}, bmpPayload))
	f.Add(encodeICO([]icoEntry{
		{w: 4, h: 4, bits: 32, size: 100, offset: 9999},
	}, nil))
	f.Add([]byte{0, 0, 1, 0, 1, 0})
	f.Add([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'})
	f.Add([]byte("garbage"))
	f.Add([]byte(nil))

	f.Fuzz(func(t *testing.T, data []byte) {
		out, err := iconinverter.Process(data, iconinverter.Options{})
		if err == nil && out == nil {
			t.Error("nil output without error")
		}
		if err != nil && !iconinverter.IsUnprocessable(err) {
			t.Errorf("non-terminal error: %v", err)
		}
	})
}

func FuzzInvertSVG(f *testing.F) {
	f.Add([]byte(`<svg xmlns="http://www.w3.org/2000/svg"><rect fill="#123456"/></svg>`))
	f.Add([]byte(`<svg><stop stop-color="#abc"/></svg>`))
	f.Add([]byte(`<not-xml`))
	f.Add([]byte(nil))

	f.Fuzz(func(t *testing.T, data []byte) {
		_, _ = iconinverter.InvertSVG(data)
	})
}

func FuzzInvertLightnessInvolution(f *testing.F) {
	f.Add(uint8(0), uint8(0), uint8(0), uint8(255))
	f.Add(uint8(255), uint8(255), uint8(255), uint8(0))
	f.Add(uint8(40), uint8(80), uint8(120), uint8(200))

	f.Fuzz(func(t *testing.T, r, g, b, a uint8) {
		col := iconinverter.RGB{R: r, G: g, B: b, A: a}
		back := iconinverter.InvertLightness(iconinverter.InvertLightness(col))
		if back.A != col.A {
			t.Fatalf("alpha changed: %+v -> %+v", col, back)
		}
		near := func(x, y uint8) bool {
			d := int(x) - int(y)
			return d >= -1 && d <= 1
		}
		if !near(back.R, col.R) || !near(back.G, col.G) || !near(back.B, col.B) {
			t.Fatalf("involution drift: %+v -> %+v", col, back)
		}
	})
}
