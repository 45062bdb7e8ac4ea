// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package gmx

import "fmt"

// readIncludes implements the Include list for generations >= 700 (§4.4).
// Unlike every other resource list, records here are NOT present-gated:
// every slot carries a body.
func (c *decodeCtx) readIncludes(r *Reader) error {
	outerVersion, err := r.NextU32()
	if err != nil {
		return err
	}
	count, err := r.NextU32()
	if err != nil {
		return err
	}
	compressed := outerVersion >= uint32(Generation800)
	c.p.Includes = make([]Include, 0, count)

	for id := uint32(0); id < count; id++ {
		rr, err := newRecordReader(r, compressed)
		if err != nil {
			return err
		}
		if err := c.readOneInclude700(rr); err != nil {
			return err
		}
		if err := rr.finish(); err != nil {
			return err
		}
	}
	return nil
}

func (c *decodeCtx) readOneInclude700(rr *recordReader) error {
	innerVersion, err := rr.NextU32()
	if err != nil {
		return err
	}
	if innerVersion != 620 && innerVersion != 800 {
		return fmt.Errorf("%w: include inner version %d", ErrVersionMismatch, innerVersion)
	}

	var inc Include
	if inc.Name, err = rr.NextString(); err != nil {
		return err
	}
	if inc.OriginalPath, err = rr.NextString(); err != nil {
		return err
	}
	if inc.OriginalChosen, err = rr.NextBool(); err != nil {
		return err
	}
	if inc.OriginalSize, err = rr.NextU32(); err != nil {
		return err
	}
	if inc.StoreInEditable, err = rr.NextBool(); err != nil {
		return err
	}
	if inc.OriginalChosen && inc.StoreInEditable {
		if innerVersion == 620 {
			if inc.Data, err = rr.NextCompressed(); err != nil {
				return err
			}
		} else {
			if inc.Data, err = rr.NextBlob(); err != nil {
				return err
			}
		}
	}
	if inc.Export, err = rr.NextU32(); err != nil {
		return err
	}
	if inc.ExportFolder, err = rr.NextString(); err != nil {
		return err
	}
	if inc.Overwrite, err = rr.NextBool(); err != nil {
		return err
	}
	if inc.FreeMemory, err = rr.NextBool(); err != nil {
		return err
	}
	if inc.RemoveAtEnd, err = rr.NextBool(); err != nil {
		return err
	}

	c.p.Includes = append(c.p.Includes, inc)
	return nil
}

// readIncludes600 implements generation 600's plaintext include preamble
// (§4.5's gm600 note): a "READY"-terminated name loop whose fields all come
// from three values read once, before the loop, rather than per entry. A
// literal D3DX8.dll entry is skipped (its blob consumed but not stored).
func (c *decodeCtx) readIncludes600(r *Reader) error {
	exportLocation, err := r.NextU32()
	if err != nil {
		return err
	}
	overwrite, err := r.NextBool()
	if err != nil {
		return err
	}
	removeAtEnd, err := r.NextBool()
	if err != nil {
		return err
	}

	for {
		name, err := r.NextString()
		if err != nil {
			return err
		}
		if name == readySentinel {
			return nil
		}
		if name == d3dx8DllName {
			if err := r.SkipBlob(); err != nil {
				return err
			}
			continue
		}

		data, err := r.NextBlob()
		if err != nil {
			return err
		}
		c.p.Includes = append(c.p.Includes, Include{
			Name:        name,
			Data:        data,
			Export:      exportLocation,
			Overwrite:   overwrite,
			FreeMemory:  true,
			RemoveAtEnd: removeAtEnd,
		})
	}
}
