// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package gmx

import "fmt"

// readTimelines implements the Timeline list (§4.4): an ordered set of
// (position, actions) moments, sharing the Action grammar with Object
// events (resourcelist.go's readActions).
func (c *decodeCtx) readTimelines(r *Reader) error {
	_, err := readRecordList(r, true, func(rr *recordReader, id uint32) error {
		t := Timeline{ID: id}
		var err error
		if t.Name, err = rr.NextString(); err != nil {
			return err
		}
		innerVersion, err := rr.NextU32()
		if err != nil {
			return err
		}
		if innerVersion != 500 {
			return fmt.Errorf("%w: timeline inner version %d", ErrVersionMismatch, innerVersion)
		}

		numMoments, err := rr.NextU32()
		if err != nil {
			return err
		}
		t.Moments = make([]TimelineMoment, numMoments)
		for i := range t.Moments {
			if t.Moments[i].Position, err = rr.NextU32(); err != nil {
				return err
			}
			if t.Moments[i].Actions, err = readActions(rr.Reader); err != nil {
				return err
			}
		}

		c.p.Timelines = append(c.p.Timelines, t)
		return nil
	})
	return err
}
