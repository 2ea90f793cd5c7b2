// Copyright 2025 Satori Komeiji
// SPDX-License-Identifier: MIT

package iconinverter

import (
	"encoding/binary"
	"errors"
)

var errShortRead = errors.New("short read")

// sliceReader provides bounds-checked little-endian reads over the file
// buffer. A read past the end records the error and panics with errStop; the
// panic is recovered at the Process boundary.
// Note that this is not thread safe.
type sliceReader struct {
	buf []byte
	off int

	readErr error
}

func newSliceReader(buf []byte) *sliceReader {
	return &sliceReader{buf: buf}
}

func (e *sliceReader) pos() int {
	return e.off
}

func (e *sliceReader) remaining() int {
	return len(e.buf) - e.off
}

func (e *sliceReader) read1() uint8 {
	b := e.readN(1)
	return b[0]
}

func (e *sliceReader) read2() uint16 {
	return binary.LittleEndian.Uint16(e.readN(2))
}

func (e *sliceReader) read4() uint32 {
	return binary.LittleEndian.Uint32(e.readN(4))
}

func (e *sliceReader) read4s() int32 {
	return int32(e.read4())
}

// readN returns a view into the underlying buffer; the view is only valid
// while the buffer is not grown.
func (e *sliceReader) readN(n int) []byte {
	if n < 0 || e.off+n > len(e.buf) {
		e.stop(errShortRead)
	}
	b := e.buf[e.off : e.off+n]
	e.off += n
	return b
}

func (e *sliceReader) skip(n int) {
	if n < 0 || e.off+n > len(e.buf) {
		e.stop(errShortRead)
	}
	e.off += n
}

func (e *sliceReader) stop(err error) {
	if err != nil {
		e.readErr = err
	}
	panic(errStop)
}

// put16 and put32 write little-endian values in place. Writes are only
// issued over regions the parser has already validated.
func put16(buf []byte, off int, v uint16) {
	binary.LittleEndian.PutUint16(buf[off:off+2], v)
}

func put32(buf []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(buf[off:off+4], v)
}
