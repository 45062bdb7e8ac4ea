// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package gmx

import "fmt"

// readSprites implements the Sprite list (§4.4): two structurally unrelated
// inner grammars share the same outer framing, the same way
// saferwall-pe/debug.go dispatches a shared outer directory entry to
// completely different per-type record layouts.
func (c *decodeCtx) readSprites(r *Reader) error {
	_, err := readRecordList(r, true, func(rr *recordReader, id uint32) error {
		sp := Sprite{ID: id}
		var err error
		if sp.Name, err = rr.NextString(); err != nil {
			return err
		}
		innerVersion, err := rr.NextU32()
		if err != nil {
			return err
		}
		switch innerVersion {
		case 542:
			if err := readSprite542(rr, &sp); err != nil {
				return err
			}
		case 800:
			if err := readSprite800(c, rr, &sp); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: sprite inner version %d", ErrVersionMismatch, innerVersion)
		}
		c.p.Sprites = append(c.p.Sprites, sp)
		return nil
	})
	return err
}

// readSprite542 implements the pre-800 branch: a single shared bounding-box
// mask synthesized from fixed fields, then per-frame zlib RGBA images; if
// precise_collisions is set, each frame gets its own alpha-derived mask
// instead of the shared one.
func readSprite542(rr *recordReader, sp *Sprite) error {
	var base SpriteMask
	var err error
	if base.Width, err = rr.NextU32(); err != nil {
		return err
	}
	if base.Height, err = rr.NextU32(); err != nil {
		return err
	}
	if base.Left, err = rr.NextI32(); err != nil {
		return err
	}
	if base.Right, err = rr.NextI32(); err != nil {
		return err
	}
	if base.Bottom, err = rr.NextI32(); err != nil {
		return err
	}
	if base.Top, err = rr.NextI32(); err != nil {
		return err
	}
	if _, err = rr.NextBool(); err != nil { // transparent, unused
		return err
	}
	if _, err = rr.NextBool(); err != nil { // smooth_edges, unused
		return err
	}
	if _, err = rr.NextBool(); err != nil { // preload, unused
		return err
	}
	if _, err = rr.NextU32(); err != nil { // bb_type, unused
		return err
	}
	preciseCollisions, err := rr.NextBool()
	if err != nil {
		return err
	}
	if sp.Origin[0], err = rr.NextI32(); err != nil {
		return err
	}
	if sp.Origin[1], err = rr.NextI32(); err != nil {
		return err
	}

	numFrames, err := rr.NextU32()
	if err != nil {
		return err
	}
	sp.Frames = make([]Image, 0, numFrames)
	for i := uint32(0); i < numFrames; i++ {
		if _, err := rr.NextU32(); err != nil { // frame version, unused
			return err
		}
		if _, err := rr.NextU32(); err != nil { // present, unused (frames are unconditional here)
			return err
		}
		width, err := rr.NextU32()
		if err != nil {
			return err
		}
		height, err := rr.NextU32()
		if err != nil {
			return err
		}
		data, err := rr.NextCompressed()
		if err != nil {
			return err
		}
		sp.Frames = append(sp.Frames, newRGBAImage(width, height, data))
	}

	if preciseCollisions {
		sp.Masks = make([]SpriteMask, 0, len(sp.Frames))
		for _, frame := range sp.Frames {
			mask := base
			mask.Width, mask.Height = frame.Width, frame.Height
			mask.Bits = make([]bool, mask.Width*mask.Height)
			for y := uint32(0); y < mask.Height; y++ {
				for x := uint32(0); x < mask.Width; x++ {
					idx := (y*mask.Width + x) * 4
					mask.Bits[y*mask.Width+x] = frame.Data[idx+3] == 255
				}
			}
			sp.Masks = append(sp.Masks, mask)
		}
	} else {
		mask := base
		mask.Bits = make([]bool, mask.Width*mask.Height)
		for y := uint32(0); y < mask.Height; y++ {
			for x := uint32(0); x < mask.Width; x++ {
				xi, yi := int32(x), int32(y)
				mask.Bits[y*mask.Width+x] = xi >= mask.Left && xi <= mask.Right && yi >= mask.Top && yi <= mask.Bottom
			}
		}
		sp.Masks = []SpriteMask{mask}
	}
	return nil
}

// readSprite800 implements the generation-800 branch: explicit per-frame
// raw BGRA blobs, followed by a has_separate_masks flag selecting whether
// one mask is shared or each frame carries its own.
func readSprite800(c *decodeCtx, rr *recordReader, sp *Sprite) error {
	var err error
	if sp.Origin[0], err = rr.NextI32(); err != nil {
		return err
	}
	if sp.Origin[1], err = rr.NextI32(); err != nil {
		return err
	}

	numFrames, err := rr.NextU32()
	if err != nil {
		return err
	}
	if numFrames == 0 {
		// Weird, because if it has no frames it doesn't matter, but the
		// flag is still on the wire and must be consumed.
		_, err := rr.NextBool()
		return err
	}

	sp.Frames = make([]Image, 0, numFrames)
	for i := uint32(0); i < numFrames; i++ {
		if _, err := rr.NextU32(); err != nil { // frame version, unused
			return err
		}
		width, err := rr.NextU32()
		if err != nil {
			return err
		}
		height, err := rr.NextU32()
		if err != nil {
			return err
		}
		data, err := rr.NextBlob()
		if err != nil {
			return err
		}
		if len(data) == 0 {
			c.addAnomaly(AnoEmptySpriteFrame)
		}
		sp.Frames = append(sp.Frames, newBGRAImage(width, height, data))
	}

	hasSeparateMasks, err := rr.NextBool()
	if err != nil {
		return err
	}
	numMasks := uint32(1)
	if hasSeparateMasks {
		numMasks = numFrames
	}
	sp.Masks = make([]SpriteMask, 0, numMasks)
	for i := uint32(0); i < numMasks; i++ {
		var mask SpriteMask
		if _, err := rr.NextU32(); err != nil { // mask version, unused
			return err
		}
		if mask.Width, err = rr.NextU32(); err != nil {
			return err
		}
		if mask.Height, err = rr.NextU32(); err != nil {
			return err
		}
		if mask.Left, err = rr.NextI32(); err != nil {
			return err
		}
		if mask.Right, err = rr.NextI32(); err != nil {
			return err
		}
		if mask.Bottom, err = rr.NextI32(); err != nil {
			return err
		}
		if mask.Top, err = rr.NextI32(); err != nil {
			return err
		}
		mask.Bits = make([]bool, mask.Width*mask.Height)
		for j := range mask.Bits {
			if mask.Bits[j], err = rr.NextBool(); err != nil {
				return err
			}
		}
		sp.Masks = append(sp.Masks, mask)
	}
	return nil
}
