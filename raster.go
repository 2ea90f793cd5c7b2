// Copyright 2025 Satori Komeiji
// SPDX-License-Identifier: MIT

package iconinverter

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Upper bound on decoded pixel count. A tiny compressed stream can declare
// an enormous canvas; checking the header dimensions before decoding keeps
// hostile inputs from allocating gigabytes.
const maxDecodePixels = 64 << 20

// decodeNRGBA decodes b into an NRGBA pixel grid with alpha preserved. The
// PNG decoder is tried first, as PNG is the container's embedded codec;
// anything else goes through Go's sniffing decoder, which covers the
// formats registered by this package's codec imports (and any the caller
// registers on top, such as WebP).
func decodeNRGBA(b []byte) (*image.NRGBA, error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(b))
	if err != nil {
		cfg, _, err = image.DecodeConfig(bytes.NewReader(b))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxDecodePixels {
		return nil, fmt.Errorf("%w: image too large (%dx%d)", ErrDecodeFailed, cfg.Width, cfg.Height)
	}

	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		img, _, err = image.Decode(bytes.NewReader(b))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}
	return toNRGBA(img), nil
}

func toNRGBA(img image.Image) *image.NRGBA {
	if m, ok := img.(*image.NRGBA); ok {
		return m
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// invertImage flips the lightness of every pixel in place. Alpha is never
// altered.
func invertImage(m *image.NRGBA) {
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := m.Pix[(y-b.Min.Y)*m.Stride:]
		for x := 0; x < b.Dx(); x++ {
			p := row[x*4 : x*4+4]
			inv := InvertLightness(RGB{R: p[0], G: p[1], B: p[2], A: p[3]})
			p[0], p[1], p[2] = inv.R, inv.G, inv.B
		}
	}
}

func encodePNG(m image.Image) ([]byte, error) {
	var w bytes.Buffer
	if err := png.Encode(&w, m); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// InvertRaster decodes a plain raster image, inverts its lightness and
// re-encodes it. formatHint selects the encoder: "png", "jpg"/"jpeg",
// "bmp", "gif" or "tif"/"tiff"; empty means PNG.
func InvertRaster(b []byte, formatHint string) ([]byte, error) {
	img, err := decodeNRGBA(b)
	if err != nil {
		return nil, err
	}
	invertImage(img)

	var w bytes.Buffer
	switch formatHint {
	case "", "png":
		err = png.Encode(&w, img)
	case "jpg", "jpeg":
		err = jpeg.Encode(&w, img, nil)
	case "bmp":
		err = bmp.Encode(&w, img)
	case "gif":
		err = gif.Encode(&w, img, nil)
	case "tif", "tiff":
		err = tiff.Encode(&w, img, nil)
	default:
		return nil, fmt.Errorf("iconinverter: no encoder for format %q", formatHint)
	}
	if err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}
