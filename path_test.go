// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package gmx

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadPathsWithPoints(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(u32le(700)) // outer version, uncompressed
	buf.Write(u32le(1))   // count
	buf.Write(u32le(1))   // present
	buf.Write(blob([]byte("path_loop")))
	buf.Write(u32le(530)) // inner version
	buf.Write(u32le(1))   // ConnectionType
	buf.Write(u32le(1))   // Closed
	buf.Write(u32le(4))   // Precision
	buf.Write(u32le(2))   // numPoints

	buf.Write(f64le(0))
	buf.Write(f64le(0))
	buf.Write(f64le(1))

	buf.Write(f64le(10.5))
	buf.Write(f64le(-3.25))
	buf.Write(f64le(0.5))

	c := newTestDecodeCtx()
	r := NewReader(&buf)
	err := c.readPaths(r)
	require.NoError(t, err)

	require.Len(t, c.p.Paths, 1)
	p := c.p.Paths[0]
	require.Equal(t, "path_loop", p.Name)
	require.True(t, p.Closed)
	require.EqualValues(t, 4, p.Precision)
	require.Len(t, p.Points, 2)
	require.Equal(t, PathPoint{X: 10.5, Y: -3.25, Speed: 0.5}, p.Points[1])
}
