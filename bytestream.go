// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package gmx

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/klauspost/compress/zlib"
	"golang.org/x/text/encoding/charmap"
)

// Reader exposes the stream primitives every resource reader is built on
// (§4.1): little-endian scalar reads, length-prefixed blobs and strings,
// skips, and zlib sub-streams. It wraps any io.Reader, so it never assumes
// its source is a byte slice, a file, or anything seekable — readers only
// ever move forward. This mirrors spec.md §9's "trait-polymorphic byte
// reader" note: the capability set is a method set on Reader, implementable
// over any forward byte source.
type Reader struct {
	r   io.Reader
	pos int64
}

// NewReader wraps r as a Reader positioned at the start of whatever remains
// of r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// NewReaderAt wraps r as a Reader whose Pos() reports startPos plus bytes
// consumed so far, rather than starting the count at 0. The 810 outer
// cipher's header-offset arithmetic (ciphers.go's streamCipher810) needs the
// absolute file offset of its current read position, not a count relative
// to wherever its Reader happened to be constructed, so the detector hands
// it a Reader built this way instead of a plain NewReader.
func NewReaderAt(r io.Reader, startPos int64) *Reader {
	return &Reader{r: r, pos: startPos}
}

// Pos reports the starting offset (0 for NewReader, startPos for
// NewReaderAt) plus how many bytes have been consumed from the underlying
// source so far. Used by the 810 cipher to compute its header-offset
// arithmetic.
func (s *Reader) Pos() int64 { return s.pos }

func (s *Reader) readFull(buf []byte) error {
	n, err := io.ReadFull(s.r, buf)
	s.pos += int64(n)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	return nil
}

// NextU8 reads one byte.
func (s *Reader) NextU8() (uint8, error) {
	var buf [1]byte
	if err := s.readFull(buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// NextU16 reads a little-endian uint16.
func (s *Reader) NextU16() (uint16, error) {
	var buf [2]byte
	if err := s.readFull(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

// NextU32 reads a little-endian uint32.
func (s *Reader) NextU32() (uint32, error) {
	var buf [4]byte
	if err := s.readFull(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// NextI32 reads a little-endian int32.
func (s *Reader) NextI32() (int32, error) {
	v, err := s.NextU32()
	return int32(v), err
}

// NextF64 reads a little-endian IEEE-754 double.
func (s *Reader) NextF64() (float64, error) {
	var buf [8]byte
	if err := s.readFull(buf[:]); err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(buf[:])), nil
}

// NextBool reads a u32 and reports whether it is non-zero. Generations in
// the wild are inconsistent about whether "true" means "> 0" or "!= 0" (see
// spec.md §9); this implementation standardizes on "!= 0",
// which is a strict superset of "> 0" for every field this format actually
// uses (none of them are ever negative booleans in practice).
func (s *Reader) NextBool() (bool, error) {
	v, err := s.NextU32()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// readN reads exactly n unframed bytes (no length prefix of its own).
func (s *Reader) readN(n uint32) ([]byte, error) {
	buf := make([]byte, n)
	if err := s.readFull(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// NextBlob reads a u32 length prefix followed by exactly that many bytes.
func (s *Reader) NextBlob() ([]byte, error) {
	length, err := s.NextU32()
	if err != nil {
		return nil, err
	}
	return s.readN(length)
}

// NextString reads a blob and decodes it as Windows-1252 (single-byte,
// lossless — every byte in [0,255] maps to exactly one code point, so this
// never fails and never loses information, including 0xFF).
func (s *Reader) NextString() (string, error) {
	raw, err := s.NextBlob()
	if err != nil {
		return "", err
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		// charmap's Windows-1252 decoder cannot fail (every byte maps to a
		// code point); this branch exists only to satisfy the API contract.
		return "", fmt.Errorf("gmx: windows-1252 decode: %w", err)
	}
	return string(decoded), nil
}

// decodeWindows1252 decodes an already-in-memory buffer as Windows-1252,
// for the rare case (Help's pre-800 content) where the bytes were produced
// by inflating a sub-stream rather than read directly off a Reader.
func decodeWindows1252(raw []byte) (string, error) {
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("gmx: windows-1252 decode: %w", err)
	}
	return string(decoded), nil
}

// Skip advances exactly n bytes without retaining them. It does not seek:
// the underlying source may be a genuinely forward-only pipe.
func (s *Reader) Skip(n uint32) error {
	written, err := io.CopyN(io.Discard, s.r, int64(n))
	s.pos += written
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	return nil
}

// SkipBlob reads a u32 length prefix and skips that many bytes.
func (s *Reader) SkipBlob() error {
	length, err := s.NextU32()
	if err != nil {
		return err
	}
	return s.Skip(length)
}

// NextCompressed reads a u32 length prefix, consumes exactly that many
// bytes regardless of the inflated size, and returns the fully-inflated
// buffer. Decompression uses klauspost/compress/zlib, a drop-in
// compress/zlib replacement already present in the wider retrieval pack
// (sneller, mebo), instead of the standard library's zlib.
func (s *Reader) NextCompressed() ([]byte, error) {
	payload, err := s.NextBlob()
	if err != nil {
		return nil, err
	}
	return inflate(payload)
}

func inflate(payload []byte) ([]byte, error) {
	zr, err := zlib.NewReader(byteReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompression, err)
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompression, err)
	}
	return out, nil
}

// byteReader adapts a []byte to io.Reader without pulling in bytes.Reader's
// Seek/ReadAt surface, which NextCompressed's forward-only contract never
// needs.
func byteReader(b []byte) io.Reader {
	return &sliceReader{b: b}
}

type sliceReader struct {
	b []byte
}

func (s *sliceReader) Read(p []byte) (int, error) {
	if len(s.b) == 0 {
		return 0, io.EOF
	}
	n := copy(p, s.b)
	s.b = s.b[n:]
	return n, nil
}
