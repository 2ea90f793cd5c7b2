// Copyright 2025 Satori Komeiji
// SPDX-License-Identifier: MIT

package iconinverter

import (
	"bytes"
)

// pngSignature is the 8-byte magic prefix of every PNG stream. An entry
// payload starting with it is codec-encoded; anything else is treated as a
// raw bitmap.
var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// recoverContainer rebuilds a single-entry container from a buffer whose
// icon directory is absent, empty or entirely out of range.
//
// Two heuristics run in order, first match wins: a scan for an embedded PNG
// stream, then a byte-by-byte scan for a plausible bitmap sub-header. Both
// are pure reads over buf; nothing is mutated until a candidate has passed
// its sanity checks. Best effort only: a false-positive bitmap header is
// accepted by design.
func recoverContainer(buf []byte, opts Options) ([]byte, *directory, error) {
	if p := bytes.Index(buf, pngSignature); p >= 0 {
		if img, err := decodeNRGBA(buf[p:]); err == nil {
			b := img.Bounds()
			out, dir := synthesizeContainer(buf[p:], b.Dx(), b.Dy(), 32)
			return out, dir, nil
		} else {
			opts.Warnf("embedded PNG signature at offset %d did not decode: %v", p, err)
		}
	}

	if off, h, ok := scanBitmapHeader(buf); ok {
		end := off + bmpInfoHeaderSize + int(h.pixelDataSize())
		out, dir := synthesizeContainer(buf[off:end], int(h.Width), int(h.Height/2), h.BitCount)
		return out, dir, nil
	}

	return nil, nil, ErrRepairFailed
}

// scanBitmapHeader probes every offset of buf for a bitmap sub-header that
// passes the sanity predicate and whose implied pixel data fits in the
// remaining bytes.
func scanBitmapHeader(buf []byte) (int, BitmapInfoHeader, bool) {
	for off := 0; off+bmpInfoHeaderSize <= len(buf); off++ {
		// The loop bound keeps every probe within the buffer.
		h, _ := parseBitmapInfoHeader(buf, off)
		if !h.plausibleIconHeader() {
			continue
		}
		need := h.pixelDataSize()
		if need <= 0 || int64(off)+bmpInfoHeaderSize+need > int64(len(buf)) {
			continue
		}
		return off, h, true
	}
	return 0, BitmapInfoHeader{}, false
}

// synthesizeContainer wraps payload in a fresh single-entry container, the
// payload placed immediately after the directory table.
func synthesizeContainer(payload []byte, width, height int, bitCount uint16) ([]byte, *directory) {
	const tableEnd = icoHeaderSize + icoEntrySize

	dir := &directory{
		header:   IconDir{Type: icoTypeIcon, Count: 1},
		tableEnd: tableEnd,
		entries: []IconDirEntry{{
			// uint8 truncation encodes 256 as 0.
			Width:    uint8(width),
			Height:   uint8(height),
			Planes:   1,
			BitCount: bitCount,
			Size:     uint32(len(payload)),
			Offset:   tableEnd,
		}},
	}

	buf := make([]byte, tableEnd+len(payload))
	copy(buf[tableEnd:], payload)
	dir.write(buf)
	return buf, dir
}
