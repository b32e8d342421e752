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

package fontcache

import (
	"errors"
	"fmt"

	"seehuhn.de/go/fontcache/fingerprint"
)

var (
	// ErrUnknownFingerprint is returned when a typeface or a compressed
	// font is requested for a fingerprint for which no font source has
	// been loaded.
	ErrUnknownFingerprint = errors.New("unknown font fingerprint")

	// ErrNotInitialized is returned by the package-level functions before
	// [Init] has been called.
	ErrNotInitialized = errors.New("font cache not initialized")

	errNoResolver = errors.New("no font resolver or loader configured")
)

// LoadError indicates that a font file could not be loaded.
type LoadError struct {
	Key FaceKey
	Err error
}

func (err *LoadError) Error() string {
	return fmt.Sprintf("cannot load font %q: %v", string(err.Key), err.Err)
}

func (err *LoadError) Unwrap() error {
	return err.Err
}

// MalformedFontError indicates that a font file could not be parsed.
type MalformedFontError struct {
	Fingerprint fingerprint.Fingerprint
	Err         error
}

func (err *MalformedFontError) Error() string {
	middle := ""
	if err.Err != nil {
		middle = ": " + err.Err.Error()
	}
	return "malformed font " + err.Fingerprint.String() + middle
}

func (err *MalformedFontError) Unwrap() error {
	return err.Err
}

func unknownFingerprint(fp fingerprint.Fingerprint) error {
	return fmt.Errorf("%w %s", ErrUnknownFingerprint, fp)
}
