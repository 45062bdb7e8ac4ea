// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package gmx

import "io"

// detect implements the format detector (spec.md §4.3): it probes the
// executable image at a fixed set of candidate offsets, in priority order,
// and returns the generation tag plus a forward-only Reader positioned
// immediately after the matching header. Probing needs random access
// (ra.ReadAt at arbitrary offsets); once a match is found, everything past
// it is read strictly forward, same as saferwall-pe's ParseDataDirectories
// walking sections in file order after the directory table is located.
//
// Probes run 530, 600, 700, 800, 810 in that fixed order; the first match
// wins even if a later probe would also have matched (spec.md §8 scenario
// D: a file with both a valid 600 and a valid 800 header classifies as 600).
func detect(ra io.ReaderAt, size int64) (Generation, *Reader, error) {
	if r, ok := detect530(ra, size); ok {
		return Generation530, r, nil
	}
	if r, ok := detectGeneric(ra, size, probeOffsets600, uint32(Generation600)); ok {
		return Generation600, r, nil
	}
	if r, ok := detectGeneric(ra, size, []int64{probeOffset700}, uint32(Generation700)); ok {
		return Generation700, r, nil
	}
	if r, ok := detectGeneric(ra, size, []int64{probeOffset800}, uint32(Generation800)); ok {
		return Generation800, r, nil
	}
	if r, ok := detect810(ra, size); ok {
		return Generation810, r, nil
	}
	return GenerationUnknown, nil, ErrUnrecognizedFile
}

// readU32At reads a single little-endian u32 at offset, reporting ok=false
// (never an error) when offset falls outside the image: that is simply a
// probe miss, not a read failure — most inputs are far smaller than the
// higher probe offsets.
func readU32At(ra io.ReaderAt, offset int64) (uint32, bool) {
	if offset < 0 {
		return 0, false
	}
	var buf [4]byte
	if _, err := ra.ReadAt(buf[:], offset); err != nil {
		return 0, false
	}
	return uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24, true
}

// detect530 implements the 530 probe: a single u32 magic at a fixed offset.
// The returned Reader starts right after that magic; swap-530's own key u32
// is the first thing the caller reads from it.
func detect530(ra io.ReaderAt, size int64) (*Reader, bool) {
	v, ok := readU32At(ra, probeOffset530)
	if !ok || v != Magic530 {
		return nil, false
	}
	start := probeOffset530 + 4
	return NewReader(io.NewSectionReader(ra, start, size-start)), true
}

// detectGeneric implements the shared two-word "1,234,321 then <tag>" probe
// that 600/700/800 all share, differing only in candidate offsets and tag.
func detectGeneric(ra io.ReaderAt, size int64, offsets []int64, tag uint32) (*Reader, bool) {
	for _, off := range offsets {
		magic, ok := readU32At(ra, off)
		if !ok || magic != MagicGeneric {
			continue
		}
		version, ok := readU32At(ra, off+4)
		if !ok || version != tag {
			continue
		}
		start := off + 8
		return NewReader(io.NewSectionReader(ra, start, size-start)), true
	}
	return nil, false
}

// detect810 scans forward from probeOffset810 for up to maxProbe810Words
// iterations (spec.md §4.3), treating each word as a candidate x and,
// conditionally, the word right after it as its paired y. The scan is
// sequential, not a sliding window of every adjacent pair: original_source's
// detect_gm810 reads x and, only once x matches the high-word pattern, reads
// the next word as y. If y then fails the low-word pattern, that failed y is
// never retried as a future x — the word after it is. A word that does not
// match the high pattern consumes only itself: the next word becomes the new x.
func detect810(ra io.ReaderAt, size int64) (*Reader, bool) {
	pos := probeOffset810
	for i := 0; i < maxProbe810Words; i++ {
		x, ok := readU32At(ra, pos)
		if !ok {
			return nil, false
		}
		if x&signature810HighMask != signature810HighValue {
			pos += 4
			continue
		}
		y, ok := readU32At(ra, pos+4)
		if !ok {
			return nil, false
		}
		if y&signature810LowMask == signature810LowValue {
			start := pos + 8
			return NewReaderAt(io.NewSectionReader(ra, start, size-start), start), true
		}
		pos += 8
	}
	return nil, false
}
