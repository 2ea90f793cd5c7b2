// Copyright 2025 Satori Komeiji
// SPDX-License-Identifier: MIT

// Package iconinverter inverts the perceived brightness of icon and image
// assets while preserving hue and saturation. The core is a tolerant
// processor for the legacy multi-resolution icon container format,
// including heuristic recovery of malformed files.
package iconinverter

import (
	"bytes"
	"errors"
	"fmt"
	"time"
)

// Options contains the options for the Process function.
type Options struct {
	// Warnf is called for each per-entry diagnostic. Skipped entries are
	// reported here, never as errors: a bad entry is copied through
	// verbatim and the rest of the container is still processed.
	Warnf func(string, ...any)

	// Timeout is the maximum time to spend on one buffer.
	// Mostly useful for batch callers facing pathologically slow decodes.
	// If set to 0, processing does not time out.
	Timeout time.Duration
}

// Process inverts the lightness of every image embedded in an icon
// container and returns the rewritten container.
//
// Malformed input is handled through a three-stage fallback chain: the
// declared directory structure is parsed if possible; failing that, the
// buffer is scanned for an embedded PNG stream or bitmap sub-header and a
// fresh single-entry container is synthesized around it; failing that too,
// the whole buffer is decoded as a plain raster image and rewrapped. When
// all three stages fail the input is reported as unprocessable (see
// IsUnprocessable) and no output is produced.
//
// The input slice is never modified.
func Process(input []byte, opts Options) (output []byte, err error) {
	if opts.Warnf == nil {
		opts.Warnf = func(string, ...any) {}
	}

	if opts.Timeout > 0 {
		type result struct {
			b   []byte
			err error
		}
		resc := make(chan result, 1)
		go func() {
			defer func() {
				if r := recover(); r != nil {
					resc <- result{nil, errFromRecover(r)}
				}
			}()
			b, err := processBuffer(input, opts)
			resc <- result{b, err}
		}()
		select {
		case <-time.After(opts.Timeout):
			return nil, fmt.Errorf("iconinverter: timed out after %s", opts.Timeout)
		case r := <-resc:
			return r.b, r.err
		}
	}

	defer func() {
		if r := recover(); r != nil {
			output, err = nil, errFromRecover(r)
		}
	}()

	return processBuffer(input, opts)
}

// errFromRecover converts a panic raised on hostile input into a terminal
// error, so that a batch caller can continue with the next file.
func errFromRecover(r any) error {
	if errp, ok := r.(error); ok {
		if errors.Is(errp, errStop) {
			errp = errShortRead
		}
		return newUnprocessableError(errp)
	}
	return newUnprocessableError(fmt.Errorf("unknown panic: %v", r))
}

// processBuffer runs the parse → repair → last-resort chain on one buffer.
// Each stage either yields a structure for the transform engine or advances
// to the next.
func processBuffer(input []byte, opts Options) ([]byte, error) {
	// The working buffer is exclusively owned for the whole pipeline; the
	// caller's bytes stay untouched.
	buf := make([]byte, len(input))
	copy(buf, input)

	dir, err := parseDirectory(buf)
	if err == nil {
		return transformContainer(buf, dir, opts), nil
	}
	opts.Warnf("icon directory unusable (%v), scanning for an embedded image", err)

	if out, rdir, rerr := recoverContainer(buf, opts); rerr == nil {
		return transformContainer(out, rdir, opts), nil
	}
	opts.Warnf("structure recovery failed, decoding the whole file as a plain image")

	out, err := lastResort(input, opts)
	if err != nil {
		return nil, newUnprocessableError(err)
	}
	return out, nil
}

// transformContainer applies the lightness inversion to every valid entry
// of dir and re-serializes the directory table. The entry count never
// changes; only offsets and sizes of individual entries may.
func transformContainer(buf []byte, dir *directory, opts Options) []byte {
	for i := range dir.entries {
		e := &dir.entries[i]
		if !e.valid(dir.tableEnd, len(buf)) {
			opts.Warnf("entry %d: payload out of range, leaving untouched", i)
			continue
		}

		payload := buf[e.Offset : int64(e.Offset)+int64(e.Size)]
		if bytes.HasPrefix(payload, pngSignature) {
			buf = transformPNGEntry(buf, i, e, opts)
			continue
		}
		invertRawBitmap(buf, int(e.Offset), int(e.Size), i, opts.Warnf)
	}

	dir.write(buf)
	return buf
}

// transformPNGEntry decodes a PNG payload, inverts it and writes the
// re-encoded bytes back, growing the buffer if they no longer fit.
func transformPNGEntry(buf []byte, i int, e *IconDirEntry, opts Options) []byte {
	payload := buf[e.Offset : int64(e.Offset)+int64(e.Size)]

	img, err := decodeNRGBA(payload)
	if err != nil {
		opts.Warnf("entry %d: %v, leaving untouched", i, err)
		return buf
	}
	invertImage(img)

	encoded, err := encodePNG(img)
	if err != nil {
		opts.Warnf("entry %d: re-encode failed (%v), leaving untouched", i, err)
		return buf
	}

	return placePayload(buf, e, encoded)
}

// placePayload stores a rewritten payload for e. If it fits the original
// slot it is written in place with the freed tail zeroed; otherwise it is
// appended to the buffer and the entry's offset updated. Appending is the
// only operation that grows the buffer, so entry offsets never go stale.
func placePayload(buf []byte, e *IconDirEntry, encoded []byte) []byte {
	if len(encoded) <= int(e.Size) {
		slot := buf[e.Offset : int64(e.Offset)+int64(e.Size)]
		n := copy(slot, encoded)
		for j := n; j < len(slot); j++ {
			slot[j] = 0
		}
		e.Size = uint32(len(encoded))
		return buf
	}

	e.Offset = uint32(len(buf))
	e.Size = uint32(len(encoded))
	return append(buf, encoded...)
}
