// Copyright 2025 Satori Komeiji
// SPDX-License-Identifier: MIT

package iconinverter

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncatedHeader is returned by the parser when the buffer is too
	// short to hold an icon directory header.
	ErrTruncatedHeader = errors.New("iconinverter: truncated icon header")

	// ErrEmptyContainer is returned by the parser when the icon directory
	// declares zero images.
	ErrEmptyContainer = errors.New("iconinverter: icon container has no images")

	// ErrRepairFailed is returned when neither the embedded-PNG scan nor the
	// bitmap-header scan could recover a usable structure.
	ErrRepairFailed = errors.New("iconinverter: unable to recover icon structure")

	// ErrDecodeFailed is returned when an image payload could not be decoded.
	ErrDecodeFailed = errors.New("iconinverter: image decode failed")

	// Internal sentinel used by sliceReader to abort on out-of-range reads.
	// Recovered at the Process boundary.
	errStop = errors.New("stop")
)

// UnprocessableError is the terminal per-file failure: the input survived
// neither parsing, repair nor last-resort recovery. No output is produced.
type UnprocessableError struct {
	err error
}

func (e *UnprocessableError) Error() string {
	return fmt.Sprintf("iconinverter: unprocessable input: %v", e.err)
}

func (e *UnprocessableError) Unwrap() error {
	return e.err
}

func newUnprocessableError(err error) error {
	if err == nil {
		return nil
	}
	return &UnprocessableError{err: err}
}

// IsUnprocessable reports whether err is terminal for its input file. A
// batch caller should skip the file and continue.
func IsUnprocessable(err error) bool {
	var e *UnprocessableError
	return errors.As(err, &e)
}
