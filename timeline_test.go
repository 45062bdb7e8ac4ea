// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package gmx

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadTimelinesMomentWithNoActions(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(u32le(700)) // outer version, uncompressed
	buf.Write(u32le(1))   // count
	buf.Write(u32le(1))   // present
	buf.Write(blob([]byte("tl_intro")))
	buf.Write(u32le(500)) // inner version
	buf.Write(u32le(1))   // numMoments
	buf.Write(u32le(30))  // Position
	buf.Write(u32le(400)) // action wrapper version
	buf.Write(u32le(0))   // zero actions

	c := newTestDecodeCtx()
	r := NewReader(&buf)
	err := c.readTimelines(r)
	require.NoError(t, err)

	require.Len(t, c.p.Timelines, 1)
	tl := c.p.Timelines[0]
	require.Equal(t, "tl_intro", tl.Name)
	require.Len(t, tl.Moments, 1)
	require.EqualValues(t, 30, tl.Moments[0].Position)
	require.Empty(t, tl.Moments[0].Actions)
}
