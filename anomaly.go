// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package gmx

import "fmt"

// Anomalies recorded while decoding. Unlike saferwall-pe's GetAnomalies,
// which runs a fixed battery of checks once the whole header is parsed,
// gmx's anomalies are raised inline by whichever reader notices the
// condition, since a malformed record can otherwise make every later field
// in the stream unrecoverable — there is no "parse everything, then audit"
// phase to run afterward.
var (
	// AnoStream810Garbage is reported when stream-810's buffer is shorter
	// than its own decode window and passes through unchanged.
	AnoStream810Garbage = "stream-810 payload shorter than the decode window, left unchanged"

	// AnoEmptySpriteFrame is reported when a generation-800 sprite record
	// declares frames but one of them carries a zero-length pixel blob.
	AnoEmptySpriteFrame = "sprite frame has zero-length pixel data"

	// AnoUnknownEventType is reported when an object event's type code is
	// not one of GameMaker's documented thirteen.
	AnoUnknownEventType = "object event uses an undocumented event type"
)

// addAnomaly records a non-fatal condition observed while decoding. Per
// spec.md §7, anomalies never alter control flow; they only accumulate.
// Duplicates are kept (unlike saferwall-pe/anomaly.go's addAnomaly, which
// dedupes): here each occurrence carries its own record-specific detail, so
// collapsing them would throw away which record triggered it.
func (c *decodeCtx) addAnomaly(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	c.p.Anomalies = append(c.p.Anomalies, msg)
	if c.opts == nil || !c.opts.DisableAnomalyLogging {
		c.logger.Warnf("gmx: anomaly: %s", msg)
	}
}
