// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package gmx

import "fmt"

// readScripts implements the Script list (§4.4). Pre-800 bodies go through
// the script-level micro-cipher (§4.2.4) before their length-prefixed
// string can be read back out; generation 800 stores the string directly.
func (c *decodeCtx) readScripts(r *Reader) error {
	_, err := readRecordList(r, true, func(rr *recordReader, id uint32) error {
		s := Script{ID: id}
		var err error
		if s.Name, err = rr.NextString(); err != nil {
			return err
		}
		innerVersion, err := rr.NextU32()
		if err != nil {
			return err
		}
		switch innerVersion {
		case 400:
			blob, err := rr.NextBlob()
			if err != nil {
				return err
			}
			decoded, err := deobfuscateScript(blob)
			if err != nil {
				return err
			}
			nested := NewReader(byteReader(decoded))
			if s.Source, err = nested.NextString(); err != nil {
				return err
			}
		case 800:
			if s.Source, err = rr.NextString(); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: script inner version %d", ErrVersionMismatch, innerVersion)
		}

		c.p.Scripts = append(c.p.Scripts, s)
		return nil
	})
	return err
}
