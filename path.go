// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package gmx

import "fmt"

// readPaths implements the Path list (§4.4).
func (c *decodeCtx) readPaths(r *Reader) error {
	_, err := readRecordList(r, true, func(rr *recordReader, id uint32) error {
		p := Path{ID: id}
		var err error
		if p.Name, err = rr.NextString(); err != nil {
			return err
		}
		innerVersion, err := rr.NextU32()
		if err != nil {
			return err
		}
		if innerVersion != 530 {
			return fmt.Errorf("%w: path inner version %d", ErrVersionMismatch, innerVersion)
		}

		if p.ConnectionType, err = rr.NextU32(); err != nil {
			return err
		}
		if p.Closed, err = rr.NextBool(); err != nil {
			return err
		}
		if p.Precision, err = rr.NextU32(); err != nil {
			return err
		}
		numPoints, err := rr.NextU32()
		if err != nil {
			return err
		}
		p.Points = make([]PathPoint, numPoints)
		for i := range p.Points {
			if p.Points[i].X, err = rr.NextF64(); err != nil {
				return err
			}
			if p.Points[i].Y, err = rr.NextF64(); err != nil {
				return err
			}
			if p.Points[i].Speed, err = rr.NextF64(); err != nil {
				return err
			}
		}

		c.p.Paths = append(c.p.Paths, p)
		return nil
	})
	return err
}
