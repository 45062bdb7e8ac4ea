// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package gmx

import "fmt"

// readFonts implements the Font list (§4.4). The charset/aa_level repack
// is unconditional (§9's "font packing quirk"): pre-800 range_start values
// never populate the high bytes, so the repack is harmless there, and doing
// it unconditionally avoids a second, redundant version branch.
func (c *decodeCtx) readFonts(r *Reader) error {
	_, err := readRecordList(r, true, func(rr *recordReader, id uint32) error {
		f := Font{ID: id}
		var err error
		if f.Name, err = rr.NextString(); err != nil {
			return err
		}
		innerVersion, err := rr.NextU32()
		if err != nil {
			return err
		}
		if innerVersion < 540 {
			return fmt.Errorf("%w: font inner version %d", ErrVersionMismatch, innerVersion)
		}

		if f.FontName, err = rr.NextString(); err != nil {
			return err
		}
		if f.Size, err = rr.NextU32(); err != nil {
			return err
		}
		if f.Bold, err = rr.NextBool(); err != nil {
			return err
		}
		if f.Italic, err = rr.NextBool(); err != nil {
			return err
		}
		if f.RangeStart, err = rr.NextU32(); err != nil {
			return err
		}
		if f.RangeEnd, err = rr.NextU32(); err != nil {
			return err
		}

		f.Charset = (f.RangeStart & 0xFF000000) >> 24
		f.AALevel = (f.RangeStart & 0x00FF0000) >> 16
		f.RangeStart = f.RangeStart & 0x0000FFFF

		for i := range f.Atlas.Glyphs {
			g := &f.Atlas.Glyphs[i]
			if g.X, err = rr.NextU32(); err != nil {
				return err
			}
			if g.Y, err = rr.NextU32(); err != nil {
				return err
			}
			if g.Width, err = rr.NextU32(); err != nil {
				return err
			}
			if g.Height, err = rr.NextU32(); err != nil {
				return err
			}
			if g.HorizontalAdvance, err = rr.NextI32(); err != nil {
				return err
			}
			if g.Kerning, err = rr.NextI32(); err != nil {
				return err
			}
		}

		if f.Atlas.Width, err = rr.NextU32(); err != nil {
			return err
		}
		if f.Atlas.Height, err = rr.NextU32(); err != nil {
			return err
		}

		var pixels []byte
		if innerVersion == 540 {
			pixels, err = rr.NextCompressed()
		} else {
			pixels, err = rr.NextBlob()
		}
		if err != nil {
			return err
		}
		f.Atlas.Image = newGrayImage(f.Atlas.Width, f.Atlas.Height, pixels)

		c.p.Fonts = append(c.p.Fonts, f)
		return nil
	})
	return err
}
