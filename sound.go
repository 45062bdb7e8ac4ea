// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package gmx

import "fmt"

// readSounds implements the Sound list (§4.4). Both known inner versions
// (600 and 800) share an identical field grammar.
func (c *decodeCtx) readSounds(r *Reader) error {
	_, err := readRecordList(r, true, func(rr *recordReader, id uint32) error {
		s := Sound{ID: id}
		var err error
		if s.Name, err = rr.NextString(); err != nil {
			return err
		}
		innerVersion, err := rr.NextU32()
		if err != nil {
			return err
		}
		if innerVersion != 600 && innerVersion != 800 {
			return fmt.Errorf("%w: sound inner version %d", ErrVersionMismatch, innerVersion)
		}

		if s.Kind, err = rr.NextU32(); err != nil {
			return err
		}
		if s.Filetype, err = rr.NextString(); err != nil {
			return err
		}
		if s.Filename, err = rr.NextString(); err != nil {
			return err
		}
		hasData, err := rr.NextBool()
		if err != nil {
			return err
		}
		if hasData {
			if s.Data, err = rr.NextBlob(); err != nil {
				return err
			}
		}
		if s.Effects, err = rr.NextU32(); err != nil {
			return err
		}
		if s.Volume, err = rr.NextF64(); err != nil {
			return err
		}
		if s.Pan, err = rr.NextF64(); err != nil {
			return err
		}
		if s.Preload, err = rr.NextBool(); err != nil {
			return err
		}

		c.p.Sounds = append(c.p.Sounds, s)
		return nil
	})
	return err
}
