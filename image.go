// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package gmx

// bgraToRGBA swaps the red and blue channels of a packed 4-byte-per-pixel
// buffer in place, the same channel shuffle saferwall-pe/icon.go's
// convertToRGBA performs on BIP icon data. Generation 800's raw sprite frame
// blobs and version-710 background blobs are stored BGRA on disk (§3);
// everything downstream of this package expects RGBA.
func bgraToRGBA(data []byte) []byte {
	for i := 0; i+3 < len(data); i += 4 {
		data[i], data[i+2] = data[i+2], data[i]
	}
	return data
}

// newRGBAImage wraps an already-RGBA-ordered pixel buffer (zlib sub-stream
// output, pre-800).
func newRGBAImage(width, height uint32, data []byte) Image {
	return Image{Width: width, Height: height, Data: data, ColorType: ColorRGBA}
}

// newGrayImage wraps a single-channel pixel buffer (a Font's glyph atlas).
func newGrayImage(width, height uint32, data []byte) Image {
	return Image{Width: width, Height: height, Data: data, ColorType: ColorGray}
}

// newBGRAImage wraps a raw BGRA pixel buffer (generation 800's uncompressed
// sprite frames, version-710 backgrounds), normalizing it to RGBA in place
// before returning.
func newBGRAImage(width, height uint32, data []byte) Image {
	return Image{Width: width, Height: height, Data: bgraToRGBA(data), ColorType: ColorRGBA}
}
