// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package gmx

import "fmt"

// readRooms implements the Room list (§4.4): a record carrying four nested
// count-prefixed sub-lists (backgrounds, views, instances, tiles) in a
// fixed field order.
func (c *decodeCtx) readRooms(r *Reader) error {
	_, err := readRecordList(r, true, func(rr *recordReader, id uint32) error {
		room := Room{ID: id}
		var err error
		if room.Name, err = rr.NextString(); err != nil {
			return err
		}
		innerVersion, err := rr.NextU32()
		if err != nil {
			return err
		}
		if innerVersion != 541 {
			return fmt.Errorf("%w: room inner version %d", ErrVersionMismatch, innerVersion)
		}

		if room.Caption, err = rr.NextString(); err != nil {
			return err
		}
		if room.Width, err = rr.NextU32(); err != nil {
			return err
		}
		if room.Height, err = rr.NextU32(); err != nil {
			return err
		}
		if room.Speed, err = rr.NextU32(); err != nil {
			return err
		}
		if room.Persistent, err = rr.NextBool(); err != nil {
			return err
		}
		if room.ClearColor, err = rr.NextU32(); err != nil {
			return err
		}
		if room.Clear, err = rr.NextBool(); err != nil {
			return err
		}
		if room.CreationCode, err = rr.NextString(); err != nil {
			return err
		}

		numBackgrounds, err := rr.NextU32()
		if err != nil {
			return err
		}
		room.Backgrounds = make([]RoomBackground, numBackgrounds)
		for i := range room.Backgrounds {
			b := &room.Backgrounds[i]
			if b.Visible, err = rr.NextBool(); err != nil {
				return err
			}
			if b.Foreground, err = rr.NextBool(); err != nil {
				return err
			}
			if b.Background, err = rr.NextI32(); err != nil {
				return err
			}
			if b.X, err = rr.NextI32(); err != nil {
				return err
			}
			if b.Y, err = rr.NextI32(); err != nil {
				return err
			}
			if b.TileH, err = rr.NextBool(); err != nil {
				return err
			}
			if b.TileV, err = rr.NextBool(); err != nil {
				return err
			}
			if b.HSpeed, err = rr.NextI32(); err != nil {
				return err
			}
			if b.VSpeed, err = rr.NextI32(); err != nil {
				return err
			}
			if b.Stretch, err = rr.NextBool(); err != nil {
				return err
			}
		}

		if room.EnableViews, err = rr.NextBool(); err != nil {
			return err
		}
		numViews, err := rr.NextU32()
		if err != nil {
			return err
		}
		room.Views = make([]RoomView, numViews)
		for i := range room.Views {
			v := &room.Views[i]
			if v.Visible, err = rr.NextBool(); err != nil {
				return err
			}
			if v.ViewX, err = rr.NextU32(); err != nil {
				return err
			}
			if v.ViewY, err = rr.NextU32(); err != nil {
				return err
			}
			if v.ViewWidth, err = rr.NextU32(); err != nil {
				return err
			}
			if v.ViewHeight, err = rr.NextU32(); err != nil {
				return err
			}
			if v.PortX, err = rr.NextU32(); err != nil {
				return err
			}
			if v.PortY, err = rr.NextU32(); err != nil {
				return err
			}
			if v.PortWidth, err = rr.NextU32(); err != nil {
				return err
			}
			if v.PortHeight, err = rr.NextU32(); err != nil {
				return err
			}
			if v.HBorder, err = rr.NextU32(); err != nil {
				return err
			}
			if v.VBorder, err = rr.NextU32(); err != nil {
				return err
			}
			if v.HSpeed, err = rr.NextI32(); err != nil {
				return err
			}
			if v.VSpeed, err = rr.NextI32(); err != nil {
				return err
			}
			if v.TargetObject, err = rr.NextI32(); err != nil {
				return err
			}
		}

		numInstances, err := rr.NextU32()
		if err != nil {
			return err
		}
		room.Instances = make([]RoomInstance, numInstances)
		for i := range room.Instances {
			in := &room.Instances[i]
			if in.X, err = rr.NextI32(); err != nil {
				return err
			}
			if in.Y, err = rr.NextI32(); err != nil {
				return err
			}
			if in.Object, err = rr.NextI32(); err != nil {
				return err
			}
			if in.ID, err = rr.NextI32(); err != nil {
				return err
			}
			if in.CreationCode, err = rr.NextString(); err != nil {
				return err
			}
		}

		numTiles, err := rr.NextU32()
		if err != nil {
			return err
		}
		room.Tiles = make([]RoomTile, numTiles)
		for i := range room.Tiles {
			t := &room.Tiles[i]
			if t.X, err = rr.NextI32(); err != nil {
				return err
			}
			if t.Y, err = rr.NextI32(); err != nil {
				return err
			}
			if t.Background, err = rr.NextI32(); err != nil {
				return err
			}
			if t.TileX, err = rr.NextI32(); err != nil {
				return err
			}
			if t.TileY, err = rr.NextI32(); err != nil {
				return err
			}
			if t.Width, err = rr.NextU32(); err != nil {
				return err
			}
			if t.Height, err = rr.NextU32(); err != nil {
				return err
			}
			if t.Depth, err = rr.NextI32(); err != nil {
				return err
			}
			if t.ID, err = rr.NextI32(); err != nil {
				return err
			}
		}

		c.p.Rooms = append(c.p.Rooms, room)
		return nil
	})
	return err
}
