// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package gmx

import (
	"errors"
	"os"

	mmap "github.com/edsrzf/mmap-go"
	"github.com/gmreader/gmx/log"
)

// Decoder holds whatever input source the caller gave us (a memory-mapped
// file or a plain in-memory buffer) plus the options governing how it is
// decoded. It is the gmx counterpart of saferwall-pe's File: open once,
// call Decode once, Close when done.
type Decoder struct {
	data   mmap.MMap
	bytes  []byte
	f      *os.File
	size   int64
	opts   *Options
	logger *log.Helper
}

// Options configures a Decoder. The zero value is a usable default.
type Options struct {
	// DisableAnomalyLogging suppresses logging each recorded anomaly at
	// Warn level as it is appended (they are always still collected in
	// Project.Anomalies regardless of this flag).
	DisableAnomalyLogging bool

	// A custom logger. Defaults to a stderr logger filtered to LevelError.
	Logger log.Logger
}

// New instantiates a Decoder over a memory-mapped file. Detection needs
// random access to the probe offsets in §4.3, some of which sit multiple
// megabytes into the file; mmap lets the kernel page those in lazily rather
// than requiring the caller to buffer the whole executable up front.
func New(name string, opts *Options) (*Decoder, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	d := &Decoder{f: f, data: data, size: int64(len(data))}
	d.opts = defaultOptions(opts)
	d.logger = newHelper(d.opts)
	return d, nil
}

// NewBytes instantiates a Decoder over an in-memory buffer.
func NewBytes(data []byte, opts *Options) (*Decoder, error) {
	d := &Decoder{bytes: data, size: int64(len(data))}
	d.opts = defaultOptions(opts)
	d.logger = newHelper(d.opts)
	return d, nil
}

func defaultOptions(opts *Options) *Options {
	if opts != nil {
		return opts
	}
	return &Options{}
}

func newHelper(opts *Options) *log.Helper {
	if opts.Logger != nil {
		return log.NewHelper(opts.Logger)
	}
	return log.NewHelper(log.NewFilter(log.NewStdLogger(os.Stderr), log.FilterLevel(log.LevelError)))
}

// Close releases the Decoder's file mapping, if it owns one.
func (d *Decoder) Close() error {
	if d.data != nil {
		_ = d.data.Unmap()
	}
	if d.f != nil {
		return d.f.Close()
	}
	return nil
}

// readerAt returns the random-access view the detector probes against.
func (d *Decoder) readerAt() sectionReaderAt {
	if d.data != nil {
		return bytesReaderAt(d.data)
	}
	return bytesReaderAt(d.bytes)
}

// sectionReaderAt is the io.ReaderAt subset detector.go needs; named here so
// both the mmap-backed and plain-bytes-backed cases satisfy it identically.
type sectionReaderAt interface {
	ReadAt(p []byte, off int64) (int, error)
}

type bytesReaderAt []byte

func (b bytesReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= int64(len(b)) {
		return 0, errors.New("gmx: read past end of buffer")
	}
	n := copy(p, b[off:])
	if n < len(p) {
		return n, errors.New("gmx: short read")
	}
	return n, nil
}

// Decode runs the full pipeline (§2): detect the generation, then drive
// that generation's parse plan to completion. A magic-mismatch is not an
// error: per spec.md §7, it yields a Project with Generation ==
// GenerationUnknown and empty collections, matching saferwall-pe's pattern
// of treating a parse sub-stage failure as a recorded condition rather than
// aborting the whole Decoder outright — except here the "unknown format"
// case is the one and only case that is non-fatal; every other failure
// bubbles up verbatim (§7).
func (d *Decoder) Decode() (*Project, error) {
	if d.size == 0 {
		return nil, ErrInvalidSize
	}

	gen, r, err := detect(d.readerAt(), d.size)
	if errors.Is(err, ErrUnrecognizedFile) {
		d.logger.Warnf("no known header matched: %v", err)
		return &Project{Generation: GenerationUnknown}, nil
	}
	if err != nil {
		return nil, err
	}

	p := &Project{Generation: gen}
	plan := planFor(gen)
	if plan == nil {
		return nil, ErrUnrecognizedFile
	}
	if err := plan(p, r, d.opts, d.logger); err != nil {
		return nil, err
	}
	return p, nil
}
