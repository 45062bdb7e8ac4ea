// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package gmx

import "errors"

// ErrNoOverlay is returned by Project.OverlayReader when the generation's
// plan consumed every byte and left nothing trailing.
var ErrNoOverlay = errors.New("gmx: project has no trailing overlay data")

// readOverlay captures whatever bytes trail the last field a generation
// plan reads, per §4.5's "Remaining bytes are allowed (garbage) and
// ignored": non-fatal by construction, so a read failure here just means
// there was nothing left to capture. Mirrors saferwall-pe/overlay.go's
// role, just fed from the tail of a forward-only Reader instead of an
// io.ReaderAt range.
func (c *decodeCtx) readOverlay(r *Reader) {
	buf, err := readAllRemaining(r)
	if err != nil || len(buf) == 0 {
		return
	}
	c.p.Overlay = buf
}

// HasOverlay reports whether any trailing bytes were captured.
func (p *Project) HasOverlay() bool {
	return len(p.Overlay) > 0
}

// OverlayReader returns a reader over the project's captured trailing
// bytes, or ErrNoOverlay if none were captured.
func (p *Project) OverlayReader() (*Reader, error) {
	if len(p.Overlay) == 0 {
		return nil, ErrNoOverlay
	}
	return NewReader(byteReader(p.Overlay)), nil
}
