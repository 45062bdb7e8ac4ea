// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package gmx

import "errors"

// Error kinds, one sentinel per spec.md §7 category. Call sites wrap these
// with fmt.Errorf("%w: ...", Err...) so errors.Is keeps working while the
// message carries position/context, the same convention
// saferwall-pe/helper.go's ErrInvalidPESize/ErrDOSMagicNotFound/etc. block
// uses for its own Err* sentinels.
var (
	// ErrUnrecognizedFile is returned when none of the format detector's
	// probes matched. This is not fatal on its own: the orchestrator
	// returns a Project with GenerationUnknown and empty collections.
	// Decode also returns it, as an error, for a detected generation that
	// has no parse plan (530).
	ErrUnrecognizedFile = errors.New("gmx: unrecognized file, no generation signature matched")

	// ErrTruncated is returned when a length-prefixed field or a fixed-size
	// read runs past the end of the available bytes.
	ErrTruncated = errors.New("gmx: unexpected end of stream inside a length-prefixed field")

	// ErrVersionMismatch is returned when an inner record version is not
	// one of the enumerated grammars for its resource kind.
	ErrVersionMismatch = errors.New("gmx: unrecognized inner record version")

	// ErrSubStreamNotExhausted is returned when a compressed per-record
	// sub-stream (generations >= 800) has unread trailing bytes after its
	// reader believes the record is fully decoded.
	ErrSubStreamNotExhausted = errors.New("gmx: compressed sub-stream has unconsumed trailing bytes")

	// ErrStream810VersionMismatch is returned when the stream-810 cipher's
	// decoded version tag is not 810.
	ErrStream810VersionMismatch = errors.New("gmx: stream-810 decoded version tag did not equal 810")

	// ErrStream810Offset is returned when the 810 signature was found at a
	// stream position that makes the documented offset arithmetic
	// underflow. spec.md §9 says this case "MUST be handled explicitly
	// (reject)" rather than guessing a fallback.
	ErrStream810Offset = errors.New("gmx: stream-810 header position arithmetic underflowed")

	// ErrStream810HeaderNotZero is returned when the first two u32 words of
	// the XOR-decrypted 810 payload are not both zero, or the payload is
	// shorter than those two words.
	ErrStream810HeaderNotZero = errors.New("gmx: stream-810 post-decrypt header words were not both zero")

	// ErrDecompression wraps any zlib inflate failure.
	ErrDecompression = errors.New("gmx: zlib decompression failed")

	// ErrInvalidSize is returned by Decode when the input is empty (zero
	// bytes).
	ErrInvalidSize = errors.New("gmx: input too small to contain any recognized generation signature")
)
