// Copyright 2025 Satori Komeiji
// SPDX-License-Identifier: MIT

package iconinverter

import (
	"errors"
)

const (
	icoHeaderSize = 6
	icoEntrySize  = 16

	// Type marker for icon containers. Cursor containers (type 2) reuse the
	// planes/bitCount fields for hotspot coordinates and are not handled.
	icoTypeIcon = 1
)

// Returned by parseDirectory when every parsed entry points outside the
// buffer. The caller falls through to structure recovery.
var errNoValidEntries = errors.New("iconinverter: no icon entry within bounds")

// IconDir is the fixed-size header of an icon container.
type IconDir struct {
	// Reserved must be zero per the format, but files produced by
	// third-party tools frequently violate this. Tolerated and preserved.
	Reserved uint16
	Type     uint16
	Count    uint16
}

// IconDirEntry is one 16-byte directory record describing an embedded image.
// Offset is absolute from the start of the file buffer.
type IconDirEntry struct {
	Width      uint8 // 0 encodes 256
	Height     uint8 // 0 encodes 256
	ColorCount uint8
	Reserved   uint8
	Planes     uint16
	BitCount   uint16
	Size       uint32
	Offset     uint32
}

// ActualWidth returns the entry width in pixels, decoding 0 as 256.
func (e IconDirEntry) ActualWidth() int {
	if e.Width == 0 {
		return 256
	}
	return int(e.Width)
}

// ActualHeight returns the entry height in pixels, decoding 0 as 256.
func (e IconDirEntry) ActualHeight() int {
	if e.Height == 0 {
		return 256
	}
	return int(e.Height)
}

// valid reports whether the entry's payload lies fully inside a buffer of
// bufLen bytes without overlapping the directory table.
func (e IconDirEntry) valid(tableEnd, bufLen int) bool {
	end := int64(e.Offset) + int64(e.Size)
	return int64(e.Offset) >= int64(tableEnd) && end <= int64(bufLen)
}

// directory is the parsed container structure. Entries hold offsets into
// the file buffer, not copies.
type directory struct {
	header  IconDir
	entries []IconDirEntry

	// End of the directory table actually present in the buffer:
	// icoHeaderSize + icoEntrySize*len(entries). With a truncated table this
	// is smaller than the end the declared count implies.
	tableEnd int
}

// validCount tallies entries whose payload range is inside the buffer.
func (d *directory) validCount(bufLen int) int {
	n := 0
	for _, e := range d.entries {
		if e.valid(d.tableEnd, bufLen) {
			n++
		}
	}
	return n
}

// parseDirectory reads the container header and directory table from buf.
//
// A directory table shorter than the declared count is tolerated: the entry
// count is clamped to however many whole records fit. The returned directory
// is non-nil even when the error is errNoValidEntries, so callers can
// inspect what was parsed.
func parseDirectory(buf []byte) (*directory, error) {
	if len(buf) < icoHeaderSize {
		return nil, ErrTruncatedHeader
	}

	e := newSliceReader(buf)

	var dir directory
	dir.header.Reserved = e.read2()
	dir.header.Type = e.read2()
	dir.header.Count = e.read2()

	if dir.header.Count == 0 {
		return nil, ErrEmptyContainer
	}

	n := int(dir.header.Count)
	if fit := e.remaining() / icoEntrySize; n > fit {
		n = fit
	}

	dir.entries = make([]IconDirEntry, 0, n)
	for i := 0; i < n; i++ {
		dir.entries = append(dir.entries, IconDirEntry{
			Width:      e.read1(),
			Height:     e.read1(),
			ColorCount: e.read1(),
			Reserved:   e.read1(),
			Planes:     e.read2(),
			BitCount:   e.read2(),
			Size:       e.read4(),
			Offset:     e.read4(),
		})
	}
	dir.tableEnd = e.pos()

	if len(dir.entries) == 0 || dir.validCount(len(buf)) == 0 {
		return &dir, errNoValidEntries
	}
	return &dir, nil
}

// write serializes the header and directory table over the original table
// region of buf. Payload bytes are untouched; only entry offsets and sizes
// may have changed since parsing.
func (d *directory) write(buf []byte) {
	put16(buf, 0, d.header.Reserved)
	put16(buf, 2, d.header.Type)
	put16(buf, 4, d.header.Count)

	off := icoHeaderSize
	for _, e := range d.entries {
		buf[off+0] = e.Width
		buf[off+1] = e.Height
		buf[off+2] = e.ColorCount
		buf[off+3] = e.Reserved
		put16(buf, off+4, e.Planes)
		put16(buf, off+6, e.BitCount)
		put32(buf, off+8, e.Size)
		put32(buf, off+12, e.Offset)
		off += icoEntrySize
	}
}
