// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package gmx

import "fmt"

// readBackgrounds implements the Background list (§4.4).
func (c *decodeCtx) readBackgrounds(r *Reader) error {
	_, err := readRecordList(r, true, func(rr *recordReader, id uint32) error {
		b := Background{ID: id}
		var err error
		if b.Name, err = rr.NextString(); err != nil {
			return err
		}
		innerVersion, err := rr.NextU32()
		if err != nil {
			return err
		}
		switch innerVersion {
		case 543:
			if err := readBackground543(rr, &b); err != nil {
				return err
			}
		case 710:
			if err := readBackground710(rr, &b); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: background inner version %d", ErrVersionMismatch, innerVersion)
		}
		c.p.Backgrounds = append(c.p.Backgrounds, b)
		return nil
	})
	return err
}

func readBackground543(rr *recordReader, b *Background) error {
	if _, err := rr.NextU32(); err != nil { // width, unused (image carries its own)
		return err
	}
	if _, err := rr.NextU32(); err != nil { // height, unused
		return err
	}
	if _, err := rr.NextBool(); err != nil { // transparent, unused
		return err
	}
	if _, err := rr.NextBool(); err != nil { // smooth_edges, unused
		return err
	}
	if _, err := rr.NextBool(); err != nil { // preload_texture, unused
		return err
	}
	hasImage, err := rr.NextBool()
	if err != nil {
		return err
	}
	if !hasImage {
		return nil
	}
	if _, err := rr.NextU32(); err != nil { // image version, unused
		return err
	}
	if _, err := rr.NextU32(); err != nil { // present, unused
		return err
	}
	width, err := rr.NextU32()
	if err != nil {
		return err
	}
	height, err := rr.NextU32()
	if err != nil {
		return err
	}
	data, err := rr.NextCompressed()
	if err != nil {
		return err
	}
	b.Image = newRGBAImage(width, height, data)
	return nil
}

func readBackground710(rr *recordReader, b *Background) error {
	if _, err := rr.NextU32(); err != nil { // sub-version, unused
		return err
	}
	width, err := rr.NextU32()
	if err != nil {
		return err
	}
	height, err := rr.NextU32()
	if err != nil {
		return err
	}
	var data []byte
	if width > 0 && height > 0 {
		if data, err = rr.NextBlob(); err != nil {
			return err
		}
	}
	b.Image = newBGRAImage(width, height, data)
	return nil
}
