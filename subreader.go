// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package gmx

import "io"

// recordReader is the scope a single resource record is decoded in. For
// generations >= 800 every record is wrapped in a zlib sub-stream
// (spec.md §3's "Each resource record in generations ≥ 800 is wrapped in a
// zlib sub-stream whose decompressed body must be fully consumed"); below
// 800, the record reads straight from the enclosing list's Reader.
//
// This mirrors saferwall-pe/section.go's pattern of handing each section a
// bounded view of the image rather than the whole file, except here the
// bound is "this record's inflated bytes" rather than "this section's raw
// range". Finish must be called (ideally via defer) on every exit path,
// matching spec.md §9's "scoped guard whose release checks the invariant
// on all exit paths (including error paths)".
type recordReader struct {
	*Reader
	owned bool
}

// newRecordReader wraps parent for a single record. When compressed is
// true, it reads one next_compressed sub-stream from parent and scopes the
// returned recordReader to the inflated bytes; the finish check then
// verifies that sub-stream was fully consumed. When compressed is false,
// the record reads directly from parent and finish is a no-op: there is no
// independent sub-stream to exhaust below generation 800.
func newRecordReader(parent *Reader, compressed bool) (*recordReader, error) {
	if !compressed {
		return &recordReader{Reader: parent}, nil
	}
	body, err := parent.NextCompressed()
	if err != nil {
		return nil, err
	}
	return &recordReader{Reader: NewReader(newByteReaderCounting(body)), owned: true}, nil
}

// finish asserts the invariant from spec.md §3: "trailing bytes = bug".
// Call it once decoding the record is believed complete. It is safe (and a
// no-op on the exhaustion check) to call on a non-owned recordReader, since
// those never had an independent sub-stream to exhaust.
func (rr *recordReader) finish() error {
	if !rr.owned {
		return nil
	}
	var probe [1]byte
	n, err := rr.r.Read(probe[:])
	if n > 0 || (err != nil && err != io.EOF) {
		return ErrSubStreamNotExhausted
	}
	return nil
}

// newByteReaderCounting is a small indirection point so recordReader can
// wrap an in-memory buffer the same way Reader wraps any other io.Reader,
// keeping the forward-only contract uniform across both owned and
// borrowed scopes.
func newByteReaderCounting(b []byte) io.Reader {
	return &sliceReader{b: b}
}
