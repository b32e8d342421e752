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
)

// StaticFont is a font file for a [StaticSet].
type StaticFont struct {
	// Name is the family name followed by the style, exactly as
	// produced by [StyleName], for example "Calibri Bold Italic".
	Name string
	Data []byte
}

// StaticEntry is a preloaded font in a [StaticSet].
type StaticEntry struct {
	Name       string
	Typeface   *GlyphTypeface
	Compressed *CompressedBlob
}

// StaticSet is a small, fixed set of fonts which are parsed and compressed
// once, when the set is created.  This is useful for programs which only
// ever use a handful of known fonts.
type StaticSet struct {
	entries []*StaticEntry
	byName  map[string]*StaticEntry
}

// NewStaticSet parses and compresses the given fonts.  The first font
// is the fallback font of the set, see [StaticSet.Lookup].
// If parser is nil, [SfntParser] is used.
func NewStaticSet(parser TableParser, fonts ...StaticFont) (*StaticSet, error) {
	if len(fonts) == 0 {
		return nil, errors.New("static font set: no fonts")
	}

	c := New(nil, nil, WithParser(parser))
	s := &StaticSet{
		byName: make(map[string]*StaticEntry, len(fonts)),
	}
	for _, f := range fonts {
		if _, dup := s.byName[f.Name]; dup {
			return nil, fmt.Errorf("static font set: duplicate font %q", f.Name)
		}

		src, err := c.Source(f.Data)
		if err != nil {
			return nil, fmt.Errorf("static font set: %q: %w", f.Name, err)
		}
		face, err := c.Typeface(src.Fingerprint)
		if err != nil {
			return nil, fmt.Errorf("static font set: %q: %w", f.Name, err)
		}
		blob, err := c.Compressed(src.Fingerprint)
		if err != nil {
			return nil, fmt.Errorf("static font set: %q: %w", f.Name, err)
		}

		e := &StaticEntry{Name: f.Name, Typeface: face, Compressed: blob}
		s.entries = append(s.entries, e)
		s.byName[f.Name] = e
	}
	return s, nil
}

// Lookup returns the font for the given family and style.
//
// The request matches an entry only if [StyleName] of the arguments equals
// the entry name exactly, including case.  Every other request silently
// returns the first font of the set.  Callers who need to detect missing
// fonts must use [StaticSet.Get] instead.
func (s *StaticSet) Lookup(family string, bold, italic bool) *StaticEntry {
	if e, ok := s.byName[StyleName(family, bold, italic)]; ok {
		return e
	}
	return s.entries[0]
}

// Get returns the entry with the given name, without falling back to the
// first font.
func (s *StaticSet) Get(name string) (*StaticEntry, bool) {
	e, ok := s.byName[name]
	return e, ok
}

// Names returns the names of all fonts in the set, in the order they were
// given to [NewStaticSet].
func (s *StaticSet) Names() []string {
	res := make([]string, len(s.entries))
	for i, e := range s.entries {
		res[i] = e.Name
	}
	return res
}

// StyleName combines a family name and style flags into a font name like
// "Calibri Bold Italic".
func StyleName(family string, bold, italic bool) string {
	switch {
	case bold && italic:
		return family + " Bold Italic"
	case bold:
		return family + " Bold"
	case italic:
		return family + " Italic"
	default:
		return family
	}
}
