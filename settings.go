// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package gmx

import "fmt"

// readSettings implements the Settings record grammar (§4.4), the most
// heavily version-gated single record in the format — its field set grows
// monotonically across outerVersion thresholds 542/600/702/800, the same
// way saferwall-pe/loadconfig.go gates whole field blocks behind Windows
// version checks. Unlike every list reader, Settings is a single record:
// the outer version IS the record version, and there is no count or
// present gate.
func (c *decodeCtx) readSettings(r *Reader) (err error) {
	version, err := r.NextU32()
	if err != nil {
		return err
	}
	rr, err := newRecordReader(r, version >= uint32(Generation800))
	if err != nil {
		return err
	}
	defer func() {
		if ferr := rr.finish(); err == nil {
			err = ferr
		}
	}()

	s := &c.p.Settings
	if s.Fullscreen, err = rr.NextBool(); err != nil {
		return err
	}
	if version >= 600 {
		if s.Interpolation, err = rr.NextBool(); err != nil {
			return err
		}
	}
	if s.HideBorder, err = rr.NextBool(); err != nil {
		return err
	}
	if s.ShowCursor, err = rr.NextBool(); err != nil {
		return err
	}
	if version >= 542 {
		if s.Scaling, err = rr.NextI32(); err != nil {
			return err
		}
		if s.Resizable, err = rr.NextBool(); err != nil {
			return err
		}
		if s.AlwaysOnTop, err = rr.NextBool(); err != nil {
			return err
		}
		if s.BackgroundColor, err = rr.NextU32(); err != nil {
			return err
		}
	}

	if s.SetResolution, err = rr.NextBool(); err != nil {
		return err
	}
	if version >= 542 {
		if s.ColorDepth, err = rr.NextU32(); err != nil {
			return err
		}
		if s.Resolution, err = rr.NextU32(); err != nil {
			return err
		}
		if s.Frequency, err = rr.NextU32(); err != nil {
			return err
		}
	}
	if s.HideButtons, err = rr.NextBool(); err != nil {
		return err
	}
	if version >= 542 {
		if s.Vsync, err = rr.NextBool(); err != nil {
			return err
		}
	}
	if version >= 800 {
		if s.DisableScreensaver, err = rr.NextBool(); err != nil {
			return err
		}
	}

	if s.DefaultF4, err = rr.NextBool(); err != nil {
		return err
	}
	if s.DefaultF1, err = rr.NextBool(); err != nil {
		return err
	}
	if s.DefaultEsc, err = rr.NextBool(); err != nil {
		return err
	}
	if s.DefaultF5, err = rr.NextBool(); err != nil {
		return err
	}
	if version >= 702 {
		if s.DefaultF9, err = rr.NextBool(); err != nil {
			return err
		}
		if s.CloseAsEsc, err = rr.NextBool(); err != nil {
			return err
		}
	}
	if s.Priority, err = rr.NextU32(); err != nil {
		return err
	}
	if s.Freeze, err = rr.NextBool(); err != nil {
		return err
	}

	if s.LoadingBar, err = rr.NextU32(); err != nil {
		return err
	}
	if s.LoadingBar > 0 {
		hasBack, err := rr.NextBool()
		if err != nil {
			return err
		}
		if hasBack {
			if s.LoadingBarBack, err = readOptionalImageBlob(rr.Reader, version); err != nil {
				return err
			}
		}
		hasFront, err := rr.NextBool()
		if err != nil {
			return err
		}
		if hasFront {
			if s.LoadingBarFront, err = readOptionalImageBlob(rr.Reader, version); err != nil {
				return err
			}
		}
	}

	hasBackground, err := rr.NextBool()
	if err != nil {
		return err
	}
	if hasBackground {
		if s.LoadingBackground, err = readOptionalImageBlob(rr.Reader, version); err != nil {
			return err
		}
	}

	if s.LoadTransparent, err = rr.NextBool(); err != nil {
		return err
	}
	if s.LoadAlpha, err = rr.NextU32(); err != nil {
		return err
	}
	if s.LoadScale, err = rr.NextBool(); err != nil {
		return err
	}

	if s.ErrorDisplay, err = rr.NextBool(); err != nil {
		return err
	}
	if s.ErrorLog, err = rr.NextBool(); err != nil {
		return err
	}
	if s.ErrorAbort, err = rr.NextBool(); err != nil {
		return err
	}

	if version >= 800 {
		data, err := rr.NextU32()
		if err != nil {
			return err
		}
		s.UninitializedZero = data&0x1 != 0
		s.UninitializedArgumentsError = data&0x2 != 0
		return nil
	}

	if s.UninitializedZero, err = rr.NextBool(); err != nil {
		return err
	}
	numConstants, err := rr.NextU32()
	if err != nil {
		return err
	}
	c.p.Constants = make([]Constant, numConstants)
	for i := range c.p.Constants {
		if c.p.Constants[i].Name, err = rr.NextString(); err != nil {
			return err
		}
		if c.p.Constants[i].Value, err = rr.NextString(); err != nil {
			return err
		}
	}
	return nil
}

// readOptionalImageBlob reads one of Settings' bool-gated loading images:
// a raw blob at outerVersion >= 800, or a zlib sub-stream otherwise.
func readOptionalImageBlob(r *Reader, version uint32) ([]byte, error) {
	if version >= uint32(Generation800) {
		return r.NextBlob()
	}
	return r.NextCompressed()
}

// readHelp implements the Help record grammar (§4.4). Like Settings it is a
// single record keyed directly by its own outer version.
func (c *decodeCtx) readHelp(r *Reader) (err error) {
	version, err := r.NextU32()
	if err != nil {
		return err
	}
	rr, err := newRecordReader(r, version >= uint32(Generation800))
	if err != nil {
		return err
	}
	defer func() {
		if ferr := rr.finish(); err == nil {
			err = ferr
		}
	}()

	if version < 600 {
		return fmt.Errorf("%w: help version %d", ErrVersionMismatch, version)
	}

	h := &c.p.Help
	if h.BackgroundColor, err = rr.NextU32(); err != nil {
		return err
	}
	if h.SeparateWindow, err = rr.NextBool(); err != nil {
		return err
	}
	if h.Caption, err = rr.NextString(); err != nil {
		return err
	}
	if h.Left, err = rr.NextI32(); err != nil {
		return err
	}
	if h.Top, err = rr.NextI32(); err != nil {
		return err
	}
	if h.Width, err = rr.NextI32(); err != nil {
		return err
	}
	if h.Height, err = rr.NextI32(); err != nil {
		return err
	}
	if h.ShowBorder, err = rr.NextBool(); err != nil {
		return err
	}
	if h.AllowResize, err = rr.NextBool(); err != nil {
		return err
	}
	if h.AlwaysOnTop, err = rr.NextBool(); err != nil {
		return err
	}
	if h.FreezeGame, err = rr.NextBool(); err != nil {
		return err
	}

	if version == 800 {
		h.Content, err = rr.NextString()
		return err
	}
	blob, err := rr.NextCompressed()
	if err != nil {
		return err
	}
	decoded, err := decodeWindows1252(blob)
	if err != nil {
		return err
	}
	h.Content = decoded
	return nil
}
