// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package gmx

import (
	"bytes"
	"fmt"

	"github.com/gmreader/gmx/log"
)

// decodeCtx threads the pieces every resource reader needs without having
// to pass them individually down each call: the Project being assembled,
// the options governing anomaly reporting, and a logger. It plays the same
// role saferwall-pe's File does for its section parsers, just scoped to a
// single Decode call instead of living as long as the Decoder.
type decodeCtx struct {
	p      *Project
	opts   *Options
	logger *log.Helper
}

// planFunc drives one generation's parse plan to completion against the
// payload slice the detector handed back.
type planFunc func(p *Project, r *Reader, opts *Options, logger *log.Helper) error

// planFor resolves the parse plan for a detected generation. gm800 and
// gm810 share a plan (the only difference between them is the outer cipher
// stage, handled inside parseGm8xx itself); gm700 and gm600 are their own
// plans because their header and inner-cipher shapes genuinely differ.
func planFor(gen Generation) planFunc {
	switch gen {
	case Generation800, Generation810:
		return parseGm8xx
	case Generation700:
		return parseGm700
	case Generation600:
		return parseGm600
	default:
		return nil
	}
}

// parseGm8xx implements the gm8xx plan (§4.5): generations 800 and 810
// share everything past the outer-cipher stage, which only 810 carries.
//
// spec.md's data-flow separates detection from "(optional outer cipher)":
// the detector (detector.go) leaves an 810 match positioned right after the
// raw 8-byte signature, undecrypted. This plan is therefore the one place
// that applies streamCipher810 for 810 inputs; streamCipher810 itself reads
// the outer-version seed and validates the decoded version tag against 810,
// so no separate post-cipher magic/version check is repeated here.
func parseGm8xx(p *Project, r *Reader, opts *Options, logger *log.Helper) error {
	c := &decodeCtx{p: p, opts: opts, logger: logger}

	if p.Generation == Generation810 {
		decrypted, shortCircuited, err := streamCipher810(r)
		if err != nil {
			return err
		}
		if shortCircuited {
			c.addAnomaly(AnoStream810Garbage)
		}
		r = NewReader(bytes.NewReader(decrypted))
	}

	var err error
	if p.Debug, err = r.NextBool(); err != nil {
		return err
	}

	if err := c.readSettings(r); err != nil {
		return err
	}

	// The d3dx8.dll name and content blobs are always present here but
	// never surfaced as an Include; gm8xx keeps it outside the regular
	// resource list entirely.
	if err := r.SkipBlob(); err != nil {
		return err
	}
	if err := r.SkipBlob(); err != nil {
		return err
	}

	decrypted, err := swap8xx(r)
	if err != nil {
		return err
	}
	inner := NewReader(bytes.NewReader(decrypted))

	junkWords, err := inner.NextU32()
	if err != nil {
		return err
	}
	if err := inner.Skip(4 * junkWords); err != nil {
		return err
	}

	if p.Pro, err = inner.NextBool(); err != nil {
		return err
	}
	if p.GameID, err = inner.NextU32(); err != nil {
		return err
	}
	for i := range p.GUID {
		if p.GUID[i], err = inner.NextU32(); err != nil {
			return err
		}
	}

	if err := c.readExtensions(inner); err != nil {
		return err
	}
	if err := c.readTriggers(inner); err != nil {
		return err
	}
	if err := c.readConstants(inner); err != nil {
		return err
	}
	if err := runResourceLists(c, inner); err != nil {
		return err
	}

	if p.LastInstanceID, err = inner.NextU32(); err != nil {
		return err
	}
	if p.LastTileID, err = inner.NextU32(); err != nil {
		return err
	}

	if err := c.readIncludes(inner); err != nil {
		return err
	}
	if err := c.readHelp(inner); err != nil {
		return err
	}
	if err := c.readLibraryInitScripts(inner); err != nil {
		return err
	}
	if err := c.readRoomOrder(inner); err != nil {
		return err
	}

	c.readOverlay(inner)
	return nil
}

// parseGm700 implements the gm700 plan (§4.5): settings and the dll-skip
// happen in plaintext, then obfuscate-7xx peels back a second stream
// carrying everything else.
func parseGm700(p *Project, r *Reader, opts *Options, logger *log.Helper) error {
	c := &decodeCtx{p: p, opts: opts, logger: logger}

	var err error
	if p.Debug, err = r.NextBool(); err != nil {
		return err
	}

	if err := c.readSettings(r); err != nil {
		return err
	}

	if err := r.SkipBlob(); err != nil {
		return err
	}
	if err := r.SkipBlob(); err != nil {
		return err
	}

	remaining, err := readAllRemaining(r)
	if err != nil {
		return err
	}
	decrypted, err := deobfuscate700(remaining)
	if err != nil {
		return err
	}
	inner := NewReader(bytes.NewReader(decrypted))

	if p.Pro, err = inner.NextBool(); err != nil {
		return err
	}
	if p.GameID, err = inner.NextU32(); err != nil {
		return err
	}
	for i := range p.GUID {
		if p.GUID[i], err = inner.NextU32(); err != nil {
			return err
		}
	}

	if err := c.readExtensions(inner); err != nil {
		return err
	}
	if err := runResourceLists(c, inner); err != nil {
		return err
	}

	if p.LastInstanceID, err = inner.NextU32(); err != nil {
		return err
	}
	if p.LastTileID, err = inner.NextU32(); err != nil {
		return err
	}

	if err := c.readIncludes(inner); err != nil {
		return err
	}
	if err := c.readHelp(inner); err != nil {
		return err
	}
	if err := c.readLibraryInitScripts(inner); err != nil {
		return err
	}
	if err := c.readRoomOrder(inner); err != nil {
		return err
	}

	c.readOverlay(inner)
	return nil
}

// parseGm600 implements the gm600 plan (§4.5): a plaintext include preamble
// terminated by the "READY" sentinel, then obfuscate-6xx, then a fixed
// header of mixed game/settings fields before the familiar resource order.
func parseGm600(p *Project, r *Reader, opts *Options, logger *log.Helper) error {
	c := &decodeCtx{p: p, opts: opts, logger: logger}

	if err := c.readIncludes600(r); err != nil {
		return err
	}

	remaining, err := readAllRemaining(r)
	if err != nil {
		return err
	}
	decrypted, err := deobfuscate600(remaining)
	if err != nil {
		return err
	}
	inner := NewReader(bytes.NewReader(decrypted))

	magic, err := inner.NextU32()
	if err != nil {
		return err
	}
	if magic != Magic600Inner {
		return fmt.Errorf("%w: gm600 inner header magic %d", ErrVersionMismatch, magic)
	}
	if _, err := inner.NextU32(); err != nil { // unknown1
		return err
	}
	if _, err := inner.NextU32(); err != nil { // unknown2
		return err
	}
	if p.Pro, err = inner.NextBool(); err != nil {
		return err
	}
	if _, err := inner.NextU32(); err != nil { // unknown4
		return err
	}

	genericMagic, err := inner.NextU32()
	if err != nil {
		return err
	}
	if genericMagic != MagicGeneric {
		return fmt.Errorf("%w: gm600 generic header magic %d", ErrVersionMismatch, genericMagic)
	}
	version, err := inner.NextU32()
	if err != nil {
		return err
	}
	if version != uint32(Generation600) {
		return fmt.Errorf("%w: gm600 generic header version %d", ErrVersionMismatch, version)
	}

	if p.Debug, err = inner.NextBool(); err != nil {
		return err
	}
	if p.GameID, err = inner.NextU32(); err != nil {
		return err
	}
	for i := range p.GUID {
		if p.GUID[i], err = inner.NextU32(); err != nil {
			return err
		}
	}

	if err := c.readSettings(inner); err != nil {
		return err
	}
	if err := runResourceLists(c, inner); err != nil {
		return err
	}

	if p.LastInstanceID, err = inner.NextU32(); err != nil {
		return err
	}
	if p.LastTileID, err = inner.NextU32(); err != nil {
		return err
	}

	if err := c.readHelp(inner); err != nil {
		return err
	}
	if err := c.readLibraryInitScripts(inner); err != nil {
		return err
	}
	if err := c.readRoomOrder(inner); err != nil {
		return err
	}

	c.readOverlay(inner)
	return nil
}

// runResourceLists reads the nine resource kinds every generation plan
// shares in the same fixed order (§4.5): sounds through rooms.
func runResourceLists(c *decodeCtx, r *Reader) error {
	if err := c.readSounds(r); err != nil {
		return err
	}
	if err := c.readSprites(r); err != nil {
		return err
	}
	if err := c.readBackgrounds(r); err != nil {
		return err
	}
	if err := c.readPaths(r); err != nil {
		return err
	}
	if err := c.readScripts(r); err != nil {
		return err
	}
	if err := c.readFonts(r); err != nil {
		return err
	}
	if err := c.readTimelines(r); err != nil {
		return err
	}
	if err := c.readObjects(r); err != nil {
		return err
	}
	return c.readRooms(r)
}

// readLibraryInitScripts implements the library-init script list (§4.4): a
// flat, unversioned-beyond-its-own-tag list of script bodies run before any
// object code.
func (c *decodeCtx) readLibraryInitScripts(r *Reader) error {
	version, err := r.NextU32()
	if err != nil {
		return err
	}
	if version != 500 {
		return fmt.Errorf("%w: library init scripts version %d", ErrVersionMismatch, version)
	}
	count, err := r.NextU32()
	if err != nil {
		return err
	}
	c.p.LibraryInitScripts = make([]string, count)
	for i := range c.p.LibraryInitScripts {
		if c.p.LibraryInitScripts[i], err = r.NextString(); err != nil {
			return err
		}
	}
	return nil
}

// readRoomOrder implements the room-order list (§4.4): the ids of every
// room, in the order they should be played. The 540/700 version split in
// the original decoder has no documented semantic difference; both are
// accepted as the same grammar.
func (c *decodeCtx) readRoomOrder(r *Reader) error {
	version, err := r.NextU32()
	if err != nil {
		return err
	}
	if version != 540 && version != 700 {
		return fmt.Errorf("%w: room order version %d", ErrVersionMismatch, version)
	}
	count, err := r.NextU32()
	if err != nil {
		return err
	}
	c.p.RoomOrder = make([]uint32, count)
	for i := range c.p.RoomOrder {
		if c.p.RoomOrder[i], err = r.NextU32(); err != nil {
			return err
		}
	}
	return nil
}
