// seehuhn.de/go/fontcache - font resource caching for PDF generation
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package fingerprint computes the content keys used to address cached
// font data.
//
// A fingerprint is the sum of the first [PrefixLength] bytes of a font
// file.  This is fast, but weak: two files which agree on their first
// [PrefixLength] bytes always get the same fingerprint, even if they differ
// later on.  For font files the header and table directory make such
// collisions unlikely in practice, but fingerprints must not be used where
// a cryptographic identity is required.
package fingerprint

import (
	"errors"
	"strconv"
)

// PrefixLength is the number of leading bytes which enter the fingerprint.
const PrefixLength = 2048

// ErrInputTooShort is returned by [Of] if the data has fewer than
// [PrefixLength] bytes.
var ErrInputTooShort = errors.New("fingerprint: input too short")

// Fingerprint is a weak 64-bit content key for font data.
type Fingerprint uint64

// Of computes the fingerprint of a font file.
func Of(data []byte) (Fingerprint, error) {
	if len(data) < PrefixLength {
		return 0, ErrInputTooShort
	}

	var sum uint64
	for _, b := range data[:PrefixLength] {
		sum += uint64(b)
	}
	return Fingerprint(sum), nil
}

// String returns the fingerprint as 16 hexadecimal digits.
func (fp Fingerprint) String() string {
	s := strconv.FormatUint(uint64(fp), 16)
	if len(s) < 16 {
		s = "0000000000000000"[len(s):] + s
	}
	return s
}
