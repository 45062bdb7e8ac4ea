// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package gmx

import (
	"bytes"
	"testing"

	"github.com/gmreader/gmx/log"
	"github.com/stretchr/testify/require"
)

func newTestDecodeCtx() *decodeCtx {
	return &decodeCtx{p: &Project{}, opts: &Options{}, logger: log.NewHelper(nil)}
}

func TestReadOverlayCapturesTrailingBytes(t *testing.T) {
	c := newTestDecodeCtx()
	r := NewReader(bytes.NewReader([]byte{1, 2, 3, 4, 5}))

	c.readOverlay(r)

	require.True(t, c.p.HasOverlay())
	require.Equal(t, []byte{1, 2, 3, 4, 5}, c.p.Overlay)
}

func TestReadOverlayEmptyLeavesNoOverlay(t *testing.T) {
	c := newTestDecodeCtx()
	r := NewReader(bytes.NewReader(nil))

	c.readOverlay(r)

	require.False(t, c.p.HasOverlay())
}

func TestOverlayReaderErrorWhenAbsent(t *testing.T) {
	p := &Project{}
	_, err := p.OverlayReader()
	require.ErrorIs(t, err, ErrNoOverlay)
}

func TestOverlayReaderReturnsCapturedBytes(t *testing.T) {
	p := &Project{Overlay: []byte{9, 9, 9}}
	r, err := p.OverlayReader()
	require.NoError(t, err)

	got, err := r.NextU8()
	require.NoError(t, err)
	require.EqualValues(t, 9, got)
}
