// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package gmx

// readTriggers implements the Trigger list (§4.4, gm8xx only). Unlike every
// other list reader, each record is unconditionally wrapped in its own
// next_compressed sub-stream regardless of outerVersion — there happens to
// be no generation in which triggers are ever framed uncompressed.
func (c *decodeCtx) readTriggers(r *Reader) error {
	if _, err := r.NextU32(); err != nil { // outer version, unused
		return err
	}
	count, err := r.NextU32()
	if err != nil {
		return err
	}
	c.p.Triggers = make([]Trigger, 0, count)
	for id := uint32(0); id < count; id++ {
		rr, err := newRecordReader(r, true)
		if err != nil {
			return err
		}
		present, err := rr.NextBool()
		if err != nil {
			return err
		}
		if !present {
			if err := rr.finish(); err != nil {
				return err
			}
			continue
		}

		if _, err := rr.NextU32(); err != nil { // inner version, unused
			return err
		}
		t := Trigger{ID: id}
		if t.Name, err = rr.NextString(); err != nil {
			return err
		}
		if t.Condition, err = rr.NextString(); err != nil {
			return err
		}
		if t.CheckMoment, err = rr.NextU32(); err != nil {
			return err
		}
		if t.ConstantName, err = rr.NextString(); err != nil {
			return err
		}
		c.p.Triggers = append(c.p.Triggers, t)

		if err := rr.finish(); err != nil {
			return err
		}
	}
	return nil
}

// readConstants implements the top-level Constant list (§4.4, gm8xx only):
// a flat, unversioned-per-record list with no present gate and no
// compression, distinct from the inline constants list Settings carries for
// pre-800 generations (see settings.go).
func (c *decodeCtx) readConstants(r *Reader) error {
	if _, err := r.NextU32(); err != nil { // outer version, unused
		return err
	}
	count, err := r.NextU32()
	if err != nil {
		return err
	}
	c.p.Constants = make([]Constant, count)
	for i := range c.p.Constants {
		if c.p.Constants[i].Name, err = r.NextString(); err != nil {
			return err
		}
		if c.p.Constants[i].Value, err = r.NextString(); err != nil {
			return err
		}
	}
	return nil
}
