// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package gmx

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"testing"

	"github.com/gmreader/gmx/log"
	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/require"
)

// obfuscate700Encode builds the forward (encode) direction of deobfuscate700:
// the inverse of deobfuscate's swap-offset substitution, wrapped in the same
// zero-garbage-skip header deobfuscate700 expects (initialUnencrypted=0,
// hasGarbage=true, useOffset=true). seed and verbatim are arbitrary; only
// plain is meaningful.
func obfuscate700Encode(seed uint32, verbatim byte, plain []byte) []byte {
	var header bytes.Buffer
	header.Write(u32le(0))    // s1: no leading garbage words
	header.Write(u32le(seed)) // seed
	header.Write(u32le(0))    // s2: no trailing garbage words
	header.Write([]byte{verbatim})

	swapOffset := header.Len() // deobfuscate's swapOffset: r.Pos() right after the header+verbatim
	encode := encodeTableFromInverse(makeSwapTable(seed))
	cipher := make([]byte, len(plain))
	for i, v := range plain {
		a := (uint32(v) + uint32(swapOffset+i)) % 256
		cipher[i] = encode[a]
	}

	header.Write(cipher)
	return header.Bytes()
}

func zlibCompress(t *testing.T, raw []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, err := zw.Write(raw)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// buildGm700Payload constructs a minimal gm700 stream: the plaintext Debug
// flag, Settings, and two d3dx8 placeholder blobs in the clear, followed by
// a deobfuscate700-compatible, zlib-compressed inner stream carrying an
// otherwise-empty project (no extensions, no resources, no includes).
func buildGm700Payload(t *testing.T) []byte {
	t.Helper()

	var rest bytes.Buffer
	rest.Write(u32le(1))     // Pro
	rest.Write(u32le(12345)) // GameID
	rest.Write(u32le(0xAABBCCDD))
	rest.Write(u32le(0x11223344))
	rest.Write(u32le(0x55667788))
	rest.Write(u32le(0x99AABBCC)) // GUID[0..3]

	// Extensions: wrapper version 700, zero extensions, still a valid
	// (empty) deobfuscateExtensionBlob payload: seed + one verbatim byte,
	// no file data to decrypt.
	rest.Write(u32le(700))
	rest.Write(u32le(0))
	rest.Write(blob(append(u32le(0), 0x00)))

	// The nine resource lists runResourceLists reads in order, each empty.
	for i := 0; i < 9; i++ {
		rest.Write(u32le(700))
		rest.Write(u32le(0))
	}

	rest.Write(u32le(100000)) // LastInstanceID
	rest.Write(u32le(100001)) // LastTileID

	rest.Write(u32le(700)) // Includes: outer version, not present-gated
	rest.Write(u32le(0))   // count

	// Help: version 600 takes the NextCompressed+windows-1252 Content path.
	rest.Write(u32le(600))
	rest.Write(u32le(0))           // BackgroundColor
	rest.Write(u32le(0))           // SeparateWindow
	rest.Write(blob([]byte("Help"))) // Caption
	rest.Write(u32le(0))           // Left
	rest.Write(u32le(0))           // Top
	rest.Write(u32le(320))         // Width
	rest.Write(u32le(240))         // Height
	rest.Write(u32le(1))           // ShowBorder
	rest.Write(u32le(0))           // AllowResize
	rest.Write(u32le(0))           // AlwaysOnTop
	rest.Write(u32le(0))           // FreezeGame
	rest.Write(zlibBlob(t, []byte("help text")))

	rest.Write(u32le(500)) // library init scripts version
	rest.Write(u32le(0))   // count

	rest.Write(u32le(700)) // room order version
	rest.Write(u32le(0))   // count

	// No overlay: the inner stream ends exactly here.

	obfuscated := obfuscate700Encode(0xDEADBEEF, 0x00, rest.Bytes())
	compressed := zlibCompress(t, obfuscated)

	var buf bytes.Buffer
	buf.Write(u32le(1)) // Debug
	buf.Write(buildSettings530(t))
	buf.Write(blob([]byte("D3DX8.dll")))
	buf.Write(blob(nil))
	buf.Write(compressed)
	return buf.Bytes()
}

func TestParseGm700EndToEnd(t *testing.T) {
	p := &Project{Generation: Generation700}
	opts := &Options{}
	logger := log.NewHelper(nil)

	r := NewReader(bytes.NewReader(buildGm700Payload(t)))
	err := parseGm700(p, r, opts, logger)
	require.NoError(t, err)

	require.True(t, p.Debug)
	require.True(t, p.Pro)
	require.EqualValues(t, 12345, p.GameID)
	require.Equal(t, [4]uint32{0xAABBCCDD, 0x11223344, 0x55667788, 0x99AABBCC}, p.GUID)

	require.True(t, p.Settings.Fullscreen)
	require.EqualValues(t, 7, p.Settings.Priority)

	require.Empty(t, p.Extensions)
	require.Empty(t, p.Sounds)
	require.Empty(t, p.Sprites)
	require.Empty(t, p.Objects)
	require.Empty(t, p.Rooms)
	require.Empty(t, p.Includes)

	require.EqualValues(t, 100000, p.LastInstanceID)
	require.EqualValues(t, 100001, p.LastTileID)

	require.Equal(t, "Help", p.Help.Caption)
	require.Equal(t, "help text", p.Help.Content)
	require.EqualValues(t, 320, p.Help.Width)

	require.Empty(t, p.LibraryInitScripts)
	require.Empty(t, p.RoomOrder)

	require.False(t, p.HasOverlay())
	require.Empty(t, p.Anomalies)
}

// buildSwap8xxCipherBlob encodes plain into a full swap8xx-ready blob (d1,
// d2, the forward table, length, and the ciphertext), using a self-inverse
// permutation (forward[i] = 255-i, so reverse == forward) to keep the
// encode math symmetric — the same technique TestSwap8xxRoundTrip uses.
func buildSwap8xxCipherBlob(plain []byte) []byte {
	var forward [256]byte
	for i := range forward {
		forward[i] = byte(255 - i)
	}

	n := len(plain)
	m := make([]byte, n)
	copy(m, plain)
	for i := 0; i < n; i++ {
		b := i - int(forward[i&0xFF])
		if b < 0 {
			b = 0
		}
		m[i], m[b] = m[b], m[i]
	}

	cipher := make([]byte, n)
	if n > 0 {
		cipher[0] = m[0]
	}
	for i := 1; i < n; i++ {
		a := (uint32(m[i]) + uint32(cipher[i-1]) + uint32(i)) % 256
		cipher[i] = forward[a]
	}

	var out bytes.Buffer
	out.Write(u32le(0)) // d1: no leading junk words
	out.Write(u32le(0)) // d2: no trailing junk words
	out.Write(forward[:])
	out.Write(u32le(uint32(n)))
	out.Write(cipher)
	return out.Bytes()
}

// streamCipher810EncodeXOR replicates streamCipher810's keystream transform
// exactly (same key schedule from s, same rolling seed1/seed2 state, same
// starting offset). XOR is its own inverse, so running this once over a
// plaintext buffer produces the ciphertext that streamCipher810 decodes
// back to that same plaintext.
func streamCipher810EncodeXOR(s, seed1 uint32, buf []byte) {
	key := fmt.Sprintf("_MJD%d#RWK", s)
	keyBuf := make([]byte, 0, len(key)*2)
	for i := 0; i < len(key); i++ {
		keyBuf = append(keyBuf, key[i], 0)
	}
	seed2 := crc32.ChecksumIEEE(keyBuf) ^ 0xFFFFFFFF

	offset := int((seed2 & 0xFF) + 6)
	for offset+4 <= len(buf) {
		x := binary.LittleEndian.Uint32(buf[offset : offset+4])
		seed1 = (seed1&0xFFFF)*0x9069 + (seed1 >> 16)
		seed2 = (seed2&0xFFFF)*0x4650 + (seed2 >> 16)
		mask := (seed1 << 16) + (seed2 & 0xFFFF)
		binary.LittleEndian.PutUint32(buf[offset:offset+4], x^mask)
		offset += 4
	}
}

// buildGm810Payload constructs a full generation-810 stream: the s/seed1/
// encodedVersion header the caller (parseGm8xx) expects to already be
// consumed up to, followed by the XOR-keystream-encrypted body. The body
// itself starts with the two zero magic/version words streamCipher810 now
// validates and strips, then the plaintext gm8xx stream (Debug, Settings,
// d3dx8 placeholders, the swap8xx-encoded inner record).
func buildGm810Payload(t *testing.T) (prefix []byte, r *Reader) {
	t.Helper()

	var inner bytes.Buffer
	inner.Write(u32le(1))     // Pro
	inner.Write(u32le(54321)) // GameID
	inner.Write(u32le(0x01020304))
	inner.Write(u32le(0x05060708))
	inner.Write(u32le(0x090A0B0C))
	inner.Write(u32le(0x0D0E0F10))

	inner.Write(u32le(700)) // extensions version
	inner.Write(u32le(0))   // extension count
	inner.Write(blob(append(u32le(0), 0x00)))

	inner.Write(u32le(0)) // triggers outer version, unused
	inner.Write(u32le(0)) // trigger count
	inner.Write(u32le(0)) // constants outer version, unused
	inner.Write(u32le(0)) // constant count

	for i := 0; i < 9; i++ {
		inner.Write(u32le(800))
		inner.Write(u32le(0))
	}

	inner.Write(u32le(200000)) // LastInstanceID
	inner.Write(u32le(200001)) // LastTileID

	inner.Write(u32le(800)) // includes outer version
	inner.Write(u32le(0))   // include count

	inner.Write(u32le(600)) // help version
	inner.Write(u32le(0))   // BackgroundColor
	inner.Write(u32le(0))   // SeparateWindow
	inner.Write(blob([]byte("Help810")))
	inner.Write(u32le(0))   // Left
	inner.Write(u32le(0))   // Top
	inner.Write(u32le(320)) // Width
	inner.Write(u32le(240)) // Height
	inner.Write(u32le(1))   // ShowBorder
	inner.Write(u32le(0))   // AllowResize
	inner.Write(u32le(0))   // AlwaysOnTop
	inner.Write(u32le(0))   // FreezeGame
	inner.Write(zlibBlob(t, []byte("help text 810")))

	inner.Write(u32le(500)) // library init scripts version
	inner.Write(u32le(0))   // count
	inner.Write(u32le(700)) // room order version
	inner.Write(u32le(0))   // count

	// junkWords prefix belongs ahead of everything above, inside the
	// swap8xx blob's own cipher region.
	junked := append(u32le(0), inner.Bytes()...)
	cipherBlob := buildSwap8xxCipherBlob(junked)

	var outer bytes.Buffer
	outer.Write(u32le(1)) // Debug
	outer.Write(buildSettings530(t))
	outer.Write(blob([]byte("D3DX8.dll")))
	outer.Write(blob(nil))
	outer.Write(cipherBlob)

	plainWithZeroHeader := append([]byte{0, 0, 0, 0, 0, 0, 0, 0}, outer.Bytes()...)

	const s = uint32(7)
	const seed1 = uint32(1)
	const pos = 8
	posMasked := uint32(int32(pos) >> 2)
	encodedVersion := uint32(810) ^ posMasked
	startPos := int64(pos) + 0x0039FBC4 + 0x11 + 4 - 12

	streamCipher810EncodeXOR(s, seed1, plainWithZeroHeader)

	var buf bytes.Buffer
	buf.Write(u32le(s))
	buf.Write(u32le(seed1))
	buf.Write(u32le(encodedVersion))
	buf.Write(plainWithZeroHeader)

	return buf.Bytes(), NewReaderAt(bytes.NewReader(buf.Bytes()), startPos)
}

func TestParseGm8xxGeneration810EndToEnd(t *testing.T) {
	_, r := buildGm810Payload(t)

	p := &Project{Generation: Generation810}
	opts := &Options{}
	logger := log.NewHelper(nil)

	err := parseGm8xx(p, r, opts, logger)
	require.NoError(t, err)

	require.True(t, p.Debug)
	require.True(t, p.Pro)
	require.EqualValues(t, 54321, p.GameID)
	require.Equal(t, [4]uint32{0x01020304, 0x05060708, 0x090A0B0C, 0x0D0E0F10}, p.GUID)
	require.EqualValues(t, 200000, p.LastInstanceID)
	require.EqualValues(t, 200001, p.LastTileID)
	require.Equal(t, "Help810", p.Help.Caption)
	require.Equal(t, "help text 810", p.Help.Content)
	require.Empty(t, p.Anomalies)
}
