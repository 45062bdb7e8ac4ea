// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package gmx

// Fuzz is the go-fuzz entry point (mirrors saferwall-pe/fuzz.go): feed data
// through the full decode pipeline and report whether it produced a usable
// Project. Unrecognized input is a valid, non-crashing outcome (§7), so it
// still counts as "interesting" rather than a failure.
func Fuzz(data []byte) int {
	d, err := NewBytes(data, &Options{})
	if err != nil {
		return 0
	}
	defer d.Close()

	if _, err := d.Decode(); err != nil {
		return 0
	}
	return 1
}
