// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package gmx

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadSprites542OneFrameSharedMask(t *testing.T) {
	rgba := []byte{10, 20, 30, 255, 40, 50, 60, 0} // 2x1 px, second fully transparent

	var buf bytes.Buffer
	buf.Write(u32le(700)) // outer list version, < 800: uncompressed records
	buf.Write(u32le(1))   // count

	buf.Write(u32le(1)) // present
	buf.Write(blob([]byte("spr_test")))
	buf.Write(u32le(542)) // inner version

	buf.Write(u32le(2)) // mask Width
	buf.Write(u32le(1)) // mask Height
	buf.Write(u32le(0)) // Left
	buf.Write(u32le(1)) // Right
	buf.Write(u32le(0)) // Bottom
	buf.Write(u32le(0)) // Top
	buf.Write(u32le(0)) // transparent (unused)
	buf.Write(u32le(0)) // smooth_edges (unused)
	buf.Write(u32le(0)) // preload (unused)
	buf.Write(u32le(0)) // bb_type (unused)
	buf.Write(u32le(0)) // precise_collisions: false, shared bbox mask
	buf.Write(u32le(0)) // origin x
	buf.Write(u32le(0)) // origin y

	buf.Write(u32le(1)) // numFrames
	buf.Write(u32le(0)) // frame version (unused)
	buf.Write(u32le(0)) // present (unused)
	buf.Write(u32le(2)) // width
	buf.Write(u32le(1)) // height
	buf.Write(zlibBlob(t, rgba))

	c := newTestDecodeCtx()
	r := NewReader(&buf)
	err := c.readSprites(r)
	require.NoError(t, err)

	require.Len(t, c.p.Sprites, 1)
	sp := c.p.Sprites[0]
	require.Equal(t, "spr_test", sp.Name)
	require.Len(t, sp.Frames, 1)
	require.Equal(t, rgba, sp.Frames[0].Data) // 542 frames are already RGBA, unchanged
	require.Len(t, sp.Masks, 1)               // shared bbox mask, not per-frame
}

func TestReadSprites800SwapsChannelsAndFlagsEmptyFrame(t *testing.T) {
	bgra := []byte{0x10, 0x20, 0x30, 0x40} // 1x1 px BGRA

	var buf bytes.Buffer
	buf.Write(u32le(800)) // outer list version, >= 800: compressed records
	buf.Write(u32le(1))   // count

	record := bytes.Buffer{}
	record.Write(u32le(1)) // present
	record.Write(blob([]byte("spr_800")))
	record.Write(u32le(800)) // inner version
	record.Write(u32le(0))   // origin x
	record.Write(u32le(0))   // origin y
	record.Write(u32le(2))   // numFrames

	record.Write(u32le(0)) // frame 0 version (unused)
	record.Write(u32le(1)) // width
	record.Write(u32le(1)) // height
	record.Write(blob(bgra))

	record.Write(u32le(0))          // frame 1 version (unused)
	record.Write(u32le(1))          // width
	record.Write(u32le(1))          // height
	record.Write(blob([]byte{})) // zero-length: triggers AnoEmptySpriteFrame

	record.Write(u32le(0)) // hasSeparateMasks: false, one shared mask

	record.Write(u32le(0)) // mask version (unused)
	record.Write(u32le(1)) // mask width
	record.Write(u32le(1)) // mask height
	record.Write(u32le(0)) // Left
	record.Write(u32le(0)) // Right
	record.Write(u32le(0)) // Bottom
	record.Write(u32le(0)) // Top
	record.Write(u32le(1)) // one collision bit

	buf.Write(zlibBlob(t, record.Bytes()))

	c := newTestDecodeCtx()
	r := NewReader(&buf)
	err := c.readSprites(r)
	require.NoError(t, err)

	require.Len(t, c.p.Sprites, 1)
	sp := c.p.Sprites[0]
	require.Len(t, sp.Frames, 2)
	require.Equal(t, []byte{0x30, 0x20, 0x10, 0x40}, sp.Frames[0].Data) // BGRA swapped to RGBA
	require.Empty(t, sp.Frames[1].Data)
	require.Len(t, sp.Masks, 1)

	require.Contains(t, c.p.Anomalies, AnoEmptySpriteFrame)
}
