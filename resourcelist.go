// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package gmx

import "fmt"

// This file holds the shared list-framing and action-list helpers every
// per-kind resource reader (sound.go, sprite.go, ...) builds on, factoring
// out spec.md §3's "outer version + count, then count records, each
// optionally wrapped in a zlib sub-stream gated by a present flag" pattern
// instead of repeating it in each of the nine list readers that use it.

// readRecordList consumes the shared `u32 outerVersion, u32 count` framing,
// then invokes decode once per id in [0,count). compressed selects whether
// each record is wrapped in its own next_compressed sub-stream (generations
// >= 800); presentGated selects whether the first thing read from that
// scope is a boolean present flag that can skip the record entirely
// (everything except Include, per §4.4, is present-gated). It also returns
// the outer version it read; Settings and Help do not go through this
// helper and read their own version directly.
func readRecordList(r *Reader, presentGated bool, decode func(rr *recordReader, id uint32) error) (outerVersion uint32, err error) {
	outerVersion, err = r.NextU32()
	if err != nil {
		return 0, err
	}
	count, err := r.NextU32()
	if err != nil {
		return 0, err
	}
	compressed := outerVersion >= uint32(Generation800)
	for id := uint32(0); id < count; id++ {
		rr, err := newRecordReader(r, compressed)
		if err != nil {
			return outerVersion, err
		}
		if presentGated {
			present, err := rr.NextBool()
			if err != nil {
				return outerVersion, err
			}
			if !present {
				if err := rr.finish(); err != nil {
					return outerVersion, err
				}
				continue
			}
		}
		if err := decode(rr, id); err != nil {
			return outerVersion, err
		}
		if err := rr.finish(); err != nil {
			return outerVersion, err
		}
	}
	return outerVersion, nil
}

// readActions implements the shared Action sub-record grammar (§4.4's
// "Action" row): an outer wrapper version of 400 guarding a count-prefixed
// list of inner records, each itself versioned (440 is the only known
// grammar; anything else is a version-mismatch error per §7).
func readActions(r *Reader) ([]Action, error) {
	wrapperVersion, err := r.NextU32()
	if err != nil {
		return nil, err
	}
	if wrapperVersion != 400 {
		return nil, fmt.Errorf("%w: action wrapper version %d", ErrVersionMismatch, wrapperVersion)
	}

	count, err := r.NextU32()
	if err != nil {
		return nil, err
	}
	actions := make([]Action, 0, count)
	for i := uint32(0); i < count; i++ {
		version, err := r.NextU32()
		if err != nil {
			return nil, err
		}
		if version != 440 {
			return nil, fmt.Errorf("%w: action record version %d", ErrVersionMismatch, version)
		}

		var a Action
		if a.LibraryID, err = r.NextU32(); err != nil {
			return nil, err
		}
		if a.ActionID, err = r.NextU32(); err != nil {
			return nil, err
		}
		if a.ActionKind, err = r.NextU32(); err != nil {
			return nil, err
		}
		if a.HasRelative, err = r.NextBool(); err != nil {
			return nil, err
		}
		if a.IsQuestion, err = r.NextBool(); err != nil {
			return nil, err
		}
		if a.HasTarget, err = r.NextBool(); err != nil {
			return nil, err
		}
		if a.ActionType, err = r.NextU32(); err != nil {
			return nil, err
		}
		if a.Name, err = r.NextString(); err != nil {
			return nil, err
		}
		if a.Code, err = r.NextString(); err != nil {
			return nil, err
		}
		if a.ParametersUsed, err = r.NextU32(); err != nil {
			return nil, err
		}

		paramCount, err := r.NextU32()
		if err != nil {
			return nil, err
		}
		a.Parameters = make([]uint32, paramCount)
		for j := range a.Parameters {
			if a.Parameters[j], err = r.NextU32(); err != nil {
				return nil, err
			}
		}

		if a.Target, err = r.NextI32(); err != nil {
			return nil, err
		}
		if a.Relative, err = r.NextBool(); err != nil {
			return nil, err
		}

		argCount, err := r.NextU32()
		if err != nil {
			return nil, err
		}
		a.Arguments = make([]string, argCount)
		for j := range a.Arguments {
			if a.Arguments[j], err = r.NextString(); err != nil {
				return nil, err
			}
		}

		if a.Negate, err = r.NextBool(); err != nil {
			return nil, err
		}

		actions = append(actions, a)
	}
	return actions, nil
}
