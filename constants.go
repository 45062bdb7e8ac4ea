// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package gmx

// Generation identifies one of the five supported product generations,
// distinguishable by the format detector (§4.3).
type Generation uint32

// Supported generations. The numeric value is also the version tag the
// detector expects to read immediately after the 1,234,321 header magic
// (except 530, which carries its own magic, see detect530).
const (
	GenerationUnknown Generation = 0
	Generation530     Generation = 530
	Generation600     Generation = 600
	Generation700     Generation = 700
	Generation800     Generation = 800
	Generation810     Generation = 810
)

func (g Generation) String() string {
	switch g {
	case Generation530:
		return "530"
	case Generation600:
		return "600"
	case Generation700:
		return "700"
	case Generation800:
		return "800"
	case Generation810:
		return "810"
	default:
		return "unknown"
	}
}

// Wire magic numbers (§6 "Wire constants", bit-exact).
const (
	// MagicGeneric marks a generic project header: u32 1,234,321 followed
	// by a u32 generation tag (600/700/800).
	MagicGeneric uint32 = 1234321

	// Magic530 tags a 530 container, probed at offset 1,500,000.
	Magic530 uint32 = 1230500

	// Magic600Inner tags the 600 plaintext header, found after the
	// obfuscate-6xx cipher has been applied.
	Magic600Inner uint32 = 1230600

	// signature810HighMask / signature810HighValue and
	// signature810LowMask / signature810LowValue describe the 8-byte 810
	// signature pair: the first u32 x must satisfy
	// x & signature810HighMask == signature810HighValue, and the
	// immediately following u32 y must satisfy
	// y & signature810LowMask == signature810LowValue.
	signature810HighMask  uint32 = 0xFF00FF00
	signature810HighValue uint32 = 0xF7000000
	signature810LowMask   uint32 = 0x00FF00FF
	signature810LowValue  uint32 = 0x00140067
)

// Detector probe offsets (§4.3).
const (
	probeOffset530 int64 = 1500000
	probeOffset700 int64 = 1980000
	probeOffset800 int64 = 2000000
	probeOffset810 int64 = 0x0039FBC4

	// maxProbe810Words bounds the 810 scan: within this many iterations of
	// detect810's loop (one or two u32 reads each, depending on whether the
	// high word matched), the decoder must find the signature pair or give
	// up. Matches original_source's detect_gm810 "for _ in 0..1024".
	maxProbe810Words = 1024
)

// probeOffsets600 lists every candidate offset for the 600 header, tried in
// order; the first match wins.
var probeOffsets600 = []int64{0, 700000, 800000, 1420000, 1600000}

// d3dx8DllName is the literal filename skipped (case-sensitively) when it
// appears in generation 600's plaintext include list, per spec.md §4.4.
const d3dx8DllName = "D3DX8.dll"

// readySentinel terminates generation 600's plaintext include list,
// case-sensitively, per spec.md §4.4 and §9.
const readySentinel = "READY"
