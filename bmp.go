// Copyright 2025 Satori Komeiji
// SPDX-License-Identifier: MIT

package iconinverter

import (
	"encoding/binary"
)

// Size of the BITMAPINFOHEADER variant recognized here. Older core headers
// and the extended V4/V5 headers do not occur in icon payloads in practice.
const bmpInfoHeaderSize = 40

// BitmapInfoHeader is the sub-header at the start of a raw bitmap payload.
// Height is stored doubled: the XOR color plane rows are followed by the
// AND mask rows, so the real image height is Height/2.
type BitmapInfoHeader struct {
	HeaderSize    uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

// parseBitmapInfoHeader reads a bitmap sub-header at off. It returns false
// if fewer than 40 bytes remain; nothing is validated beyond length.
func parseBitmapInfoHeader(buf []byte, off int) (BitmapInfoHeader, bool) {
	if off < 0 || off+bmpInfoHeaderSize > len(buf) {
		return BitmapInfoHeader{}, false
	}
	b := buf[off : off+bmpInfoHeaderSize]
	return BitmapInfoHeader{
		HeaderSize:    binary.LittleEndian.Uint32(b[0:4]),
		Width:         int32(binary.LittleEndian.Uint32(b[4:8])),
		Height:        int32(binary.LittleEndian.Uint32(b[8:12])),
		Planes:        binary.LittleEndian.Uint16(b[12:14]),
		BitCount:      binary.LittleEndian.Uint16(b[14:16]),
		Compression:   binary.LittleEndian.Uint32(b[16:20]),
		SizeImage:     binary.LittleEndian.Uint32(b[20:24]),
		XPelsPerMeter: int32(binary.LittleEndian.Uint32(b[24:28])),
		YPelsPerMeter: int32(binary.LittleEndian.Uint32(b[28:32])),
		ClrUsed:       binary.LittleEndian.Uint32(b[32:36]),
		ClrImportant:  binary.LittleEndian.Uint32(b[36:40]),
	}, true
}

// plausibleIconHeader is the sanity predicate used by the recovery scan.
// Deliberately loose: the input population is damaged real-world icons, and
// coverage is preferred over rigor.
func (h BitmapInfoHeader) plausibleIconHeader() bool {
	return h.HeaderSize == bmpInfoHeaderSize &&
		h.Width > 0 &&
		h.Height > 0 &&
		h.Planes == 1 &&
		(h.BitCount == 24 || h.BitCount == 32)
}

// pixelDataSize is the byte size of the XOR color plane implied by the
// header, using the halved height. The AND mask rows are not counted.
func (h BitmapInfoHeader) pixelDataSize() int64 {
	return int64(h.Width) * int64(h.Height/2) * int64(h.BitCount/8)
}

// invertRawBitmap inverts the lightness of a 32-bit raw bitmap payload in
// place. The payload spans buf[off:off+length]; callers have already
// checked that range against the buffer.
//
// Rows are stored bottom to top in BGRA order. When the payload holds fewer
// pixel bytes than the header implies, the processed height is clamped and
// the uncovered rows are left untouched. The AND mask rows past the halved
// height are never addressed. Alpha is never altered.
func invertRawBitmap(buf []byte, off, length, index int, warnf func(string, ...any)) {
	h, ok := parseBitmapInfoHeader(buf, off)
	if !ok {
		warnf("entry %d: payload too short for a bitmap header, skipping", index)
		return
	}
	if h.BitCount != 32 {
		warnf("entry %d: unsupported bit depth %d, skipping", index, h.BitCount)
		return
	}

	width := int(h.Width)
	height := int(h.Height) / 2
	if width <= 0 || height <= 0 {
		warnf("entry %d: bad bitmap dimensions %dx%d, skipping", index, h.Width, h.Height)
		return
	}

	dataOff := off + bmpInfoHeaderSize
	avail := length - bmpInfoHeaderSize
	if rows := avail / (width * 4); rows < height {
		warnf("entry %d: pixel data short, clamping height from %d to %d", index, height, rows)
		height = rows
	}

	for y := 0; y < height; y++ {
		row := dataOff + (height-1-y)*width*4
		for x := 0; x < width; x++ {
			p := row + x*4
			c := RGB{R: buf[p+2], G: buf[p+1], B: buf[p+0], A: buf[p+3]}
			inv := InvertLightness(c)
			buf[p+0] = inv.B
			buf[p+1] = inv.G
			buf[p+2] = inv.R
		}
	}
}
