// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package gmx

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadTriggersPresentAndAbsentSlots(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(u32le(800)) // outer version, unused
	buf.Write(u32le(2))   // count

	present := bytes.Buffer{}
	present.Write(u32le(1)) // present
	present.Write(u32le(800))
	present.Write(blob([]byte("trg_health_low")))
	present.Write(blob([]byte("health < 10")))
	present.Write(u32le(2)) // CheckMoment
	present.Write(blob([]byte("HEALTH_LOW")))
	buf.Write(zlibBlob(t, present.Bytes()))

	absent := bytes.Buffer{}
	absent.Write(u32le(0)) // present: false
	buf.Write(zlibBlob(t, absent.Bytes()))

	c := newTestDecodeCtx()
	r := NewReader(&buf)
	err := c.readTriggers(r)
	require.NoError(t, err)

	require.Len(t, c.p.Triggers, 1)
	tr := c.p.Triggers[0]
	require.Equal(t, "trg_health_low", tr.Name)
	require.Equal(t, "health < 10", tr.Condition)
	require.EqualValues(t, 2, tr.CheckMoment)
	require.Equal(t, "HEALTH_LOW", tr.ConstantName)
}

func TestReadConstantsFlatList(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(u32le(800)) // outer version, unused
	buf.Write(u32le(2))   // count
	buf.Write(blob([]byte("PI")))
	buf.Write(blob([]byte("3.14")))
	buf.Write(blob([]byte("MAX_HEALTH")))
	buf.Write(blob([]byte("100")))

	c := newTestDecodeCtx()
	r := NewReader(&buf)
	err := c.readConstants(r)
	require.NoError(t, err)

	require.Len(t, c.p.Constants, 2)
	require.Equal(t, Constant{Name: "PI", Value: "3.14"}, c.p.Constants[0])
	require.Equal(t, Constant{Name: "MAX_HEALTH", Value: "100"}, c.p.Constants[1])
}
