// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package gmx

import "fmt"

// knownObjectEventTypes is GameMaker's fixed set of documented event type
// codes (create, destroy, alarm, step, collision, keyboard, mouse, other,
// draw, key press, key release, trigger, and gesture).
const knownObjectEventTypes = 13

// readObjects implements the Object list (§4.4). Each of num_events+1
// event-type slots loops reading action lists until it hits the sentinel
// event_number == -1 (spec.md §8 invariant 5): the stored list never
// contains that sentinel value itself.
func (c *decodeCtx) readObjects(r *Reader) error {
	_, err := readRecordList(r, true, func(rr *recordReader, id uint32) error {
		o := Object{ID: id}
		var err error
		if o.Name, err = rr.NextString(); err != nil {
			return err
		}
		innerVersion, err := rr.NextU32()
		if err != nil {
			return err
		}
		if innerVersion != 430 {
			return fmt.Errorf("%w: object inner version %d", ErrVersionMismatch, innerVersion)
		}

		if o.Sprite, err = rr.NextI32(); err != nil {
			return err
		}
		if o.Solid, err = rr.NextBool(); err != nil {
			return err
		}
		if o.Visible, err = rr.NextBool(); err != nil {
			return err
		}
		if o.Depth, err = rr.NextI32(); err != nil {
			return err
		}
		if o.Persistent, err = rr.NextBool(); err != nil {
			return err
		}
		if o.Parent, err = rr.NextI32(); err != nil {
			return err
		}
		if o.Mask, err = rr.NextI32(); err != nil {
			return err
		}

		numEventTypesMinusOne, err := rr.NextU32()
		if err != nil {
			return err
		}
		for eventType := uint32(0); eventType <= numEventTypesMinusOne; eventType++ {
			if eventType >= knownObjectEventTypes {
				c.addAnomaly(AnoUnknownEventType)
			}
			for {
				eventNumber, err := rr.NextI32()
				if err != nil {
					return err
				}
				if eventNumber == -1 {
					break
				}
				actions, err := readActions(rr.Reader)
				if err != nil {
					return err
				}
				o.Events = append(o.Events, ObjectEvent{
					EventType:   eventType,
					EventNumber: eventNumber,
					Actions:     actions,
				})
			}
		}

		c.p.Objects = append(c.p.Objects, o)
		return nil
	})
	return err
}
