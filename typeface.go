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
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/os2"

	"seehuhn.de/go/fontcache/fingerprint"
)

// FontSource is a font file together with its parsed tables.
// FontSources are shared between all users of a cache and must be treated
// as read-only.
type FontSource struct {
	Data        []byte
	Fingerprint fingerprint.Fingerprint
	Font        *sfnt.Font
}

// GlyphTypeface holds the information about a font which is needed to
// lay out text and to write the font descriptor of an embedded font.
//
// All lengths are given in PDF glyph space units, i.e. 1000 units to the
// em.
type GlyphTypeface struct {
	Source *FontSource

	PostScriptName string
	FamilyName     string
	Weight         os2.Weight

	IsFixedPitch bool
	IsSerif      bool
	IsScript     bool
	IsItalic     bool

	ItalicAngle float64
	FontBBox    rect.Rect
	Ascent      float64
	Descent     float64 // negative
	Leading     float64
	CapHeight   float64
	XHeight     float64

	widths []float64 // indexed by GID
	cmap   cmap.Subtable
}

// CompressedBlob is a font file in compressed form, ready to be written
// to a PDF stream with filter FlateDecode.
type CompressedBlob struct {
	Fingerprint fingerprint.Fingerprint
	Data        []byte
}

func newGlyphTypeface(src *FontSource) (*GlyphTypeface, error) {
	info := src.Font
	if info.UnitsPerEm == 0 {
		return nil, &MalformedFontError{
			Fingerprint: src.Fingerprint,
			Err:         errors.New("invalid unitsPerEm"),
		}
	}

	qv := 1000 * info.FontMatrix[3]
	if qv == 0 {
		qv = 1000 / float64(info.UnitsPerEm)
	}

	numGlyphs := info.NumGlyphs()
	widths := make([]float64, numGlyphs)
	for gid := range widths {
		widths[gid] = info.GlyphWidthPDF(glyph.ID(gid))
	}

	// Fonts without a usable cmap can still be embedded and used via
	// glyph IDs.
	subtable, err := info.CMapTable.GetBest()
	if err != nil {
		subtable = nil
	}

	res := &GlyphTypeface{
		Source: src,

		PostScriptName: info.PostScriptName(),
		FamilyName:     info.FamilyName,
		Weight:         info.Weight,

		IsFixedPitch: info.IsFixedPitch(),
		IsSerif:      info.IsSerif,
		IsScript:     info.IsScript,
		IsItalic:     info.IsItalic,

		ItalicAngle: info.ItalicAngle,
		FontBBox:    info.FontBBoxPDF(),
		Ascent:      math.Round(float64(info.Ascent) * qv),
		Descent:     math.Round(float64(info.Descent) * qv),
		Leading:     math.Round(float64(info.Ascent-info.Descent+info.LineGap) * qv),
		CapHeight:   math.Round(float64(info.CapHeight) * qv),
		XHeight:     math.Round(float64(info.XHeight) * qv),

		widths: widths,
		cmap:   subtable,
	}
	return res, nil
}

// IsBold reports whether the font has a weight of semi-bold or more.
func (f *GlyphTypeface) IsBold() bool {
	return f.Weight >= 600
}

// NumGlyphs returns the number of glyphs in the font.
func (f *GlyphTypeface) NumGlyphs() int {
	return len(f.widths)
}

// GlyphID returns the glyph used to show r.  If the font has no glyph for
// r, or has no character map, the .notdef glyph 0 is returned.
func (f *GlyphTypeface) GlyphID(r rune) glyph.ID {
	if f.cmap == nil {
		return 0
	}
	return f.cmap.Lookup(r)
}

// GlyphWidth returns the advance width of a glyph in PDF glyph space
// units.
func (f *GlyphTypeface) GlyphWidth(gid glyph.ID) float64 {
	if int(gid) >= len(f.widths) {
		return 0
	}
	return f.widths[gid]
}

// TextWidth returns the width of s, set in the given font size, in PDF
// text space units.  Kerning and other glyph positioning adjustments are
// not applied.
func (f *GlyphTypeface) TextWidth(s string, fontSize float64) float64 {
	var total float64
	for _, r := range s {
		total += f.GlyphWidth(f.GlyphID(r))
	}
	return total * fontSize / 1000
}
