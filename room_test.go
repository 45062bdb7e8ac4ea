// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package gmx

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadRoomsFullRecord(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(u32le(700)) // outer version, uncompressed
	buf.Write(u32le(1))   // count
	buf.Write(u32le(1))   // present
	buf.Write(blob([]byte("room_start")))
	buf.Write(u32le(541)) // inner version
	buf.Write(blob([]byte("Start Room")))
	buf.Write(u32le(640)) // Width
	buf.Write(u32le(480)) // Height
	buf.Write(u32le(30))  // Speed
	buf.Write(u32le(1))   // Persistent
	buf.Write(u32le(0x000000FF)) // ClearColor
	buf.Write(u32le(1))          // Clear
	buf.Write(blob([]byte("// room creation code")))

	buf.Write(u32le(1)) // numBackgrounds
	buf.Write(u32le(1)) // Visible
	buf.Write(u32le(0)) // Foreground
	buf.Write(u32le(uint32(int32(-1)))) // Background
	buf.Write(u32le(0))                 // X
	buf.Write(u32le(0))                 // Y
	buf.Write(u32le(0))                 // TileH
	buf.Write(u32le(0))                 // TileV
	buf.Write(u32le(0))                 // HSpeed
	buf.Write(u32le(0))                 // VSpeed
	buf.Write(u32le(0))                 // Stretch

	buf.Write(u32le(1)) // EnableViews
	buf.Write(u32le(1)) // numViews
	buf.Write(u32le(1)) // Visible
	buf.Write(u32le(0)) // ViewX
	buf.Write(u32le(0)) // ViewY
	buf.Write(u32le(640))
	buf.Write(u32le(480))
	buf.Write(u32le(0)) // PortX
	buf.Write(u32le(0)) // PortY
	buf.Write(u32le(640))
	buf.Write(u32le(480))
	buf.Write(u32le(32)) // HBorder
	buf.Write(u32le(32)) // VBorder
	buf.Write(u32le(0))  // HSpeed
	buf.Write(u32le(0))  // VSpeed
	buf.Write(u32le(uint32(int32(-1)))) // TargetObject

	buf.Write(u32le(1))                // numInstances
	buf.Write(u32le(100))              // X
	buf.Write(u32le(200))              // Y
	buf.Write(u32le(5))                // Object
	buf.Write(u32le(1000000))          // ID
	buf.Write(blob([]byte("")))        // CreationCode

	buf.Write(u32le(1))    // numTiles
	buf.Write(u32le(0))    // X
	buf.Write(u32le(0))    // Y
	buf.Write(u32le(uint32(int32(-1)))) // Background
	buf.Write(u32le(0))    // TileX
	buf.Write(u32le(0))    // TileY
	buf.Write(u32le(16))   // Width
	buf.Write(u32le(16))   // Height
	buf.Write(u32le(0))    // Depth
	buf.Write(u32le(2000000)) // ID

	c := newTestDecodeCtx()
	r := NewReader(&buf)
	err := c.readRooms(r)
	require.NoError(t, err)

	require.Len(t, c.p.Rooms, 1)
	room := c.p.Rooms[0]
	require.Equal(t, "room_start", room.Name)
	require.Equal(t, "Start Room", room.Caption)
	require.EqualValues(t, 640, room.Width)
	require.True(t, room.Persistent)

	require.Len(t, room.Backgrounds, 1)
	require.True(t, room.Backgrounds[0].Visible)
	require.EqualValues(t, -1, room.Backgrounds[0].Background)

	require.True(t, room.EnableViews)
	require.Len(t, room.Views, 1)
	require.EqualValues(t, 32, room.Views[0].HBorder)

	require.Len(t, room.Instances, 1)
	require.EqualValues(t, 5, room.Instances[0].Object)
	require.EqualValues(t, 1000000, room.Instances[0].ID)

	require.Len(t, room.Tiles, 1)
	require.EqualValues(t, 16, room.Tiles[0].Width)
	require.EqualValues(t, 2000000, room.Tiles[0].ID)
}
