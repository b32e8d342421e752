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
	"bytes"
	"strconv"
	"strings"

	"seehuhn.de/go/sfnt"
)

// FaceDescriptor is a request for a font, before it is resolved to a font
// file.
type FaceDescriptor struct {
	Family string
	Size   float64 // in PDF points
	Bold   bool
	Italic bool
}

func (d FaceDescriptor) String() string {
	var b strings.Builder
	b.WriteString(strconv.Quote(d.Family))
	b.WriteByte(' ')
	b.WriteString(strconv.FormatFloat(d.Size, 'g', -1, 64))
	b.WriteString("pt")
	if d.Bold {
		b.WriteString(" bold")
	}
	if d.Italic {
		b.WriteString(" italic")
	}
	return b.String()
}

// FaceKey identifies a concrete font file.  The meaning of the string is
// private to the [Resolver] and [Loader] in use.
type FaceKey string

func (k FaceKey) String() string {
	return string(k)
}

// A Resolver maps font requests to font files.
//
// Resolve must return the same key whenever it is called with the same
// descriptor.  Different descriptors may map to the same key.
type Resolver interface {
	Resolve(desc FaceDescriptor) (FaceKey, error)
}

// A Loader reads the font file identified by a key.
// The returned slice must not be modified afterwards.
type Loader interface {
	Load(key FaceKey) ([]byte, error)
}

// A TableParser decodes the tables of an OpenType or TrueType font file.
type TableParser interface {
	Parse(data []byte) (*sfnt.Font, error)
}

// ResolverFunc adapts an ordinary function to the [Resolver] interface.
type ResolverFunc func(desc FaceDescriptor) (FaceKey, error)

// Resolve calls f(desc).
func (f ResolverFunc) Resolve(desc FaceDescriptor) (FaceKey, error) {
	return f(desc)
}

// LoaderFunc adapts an ordinary function to the [Loader] interface.
type LoaderFunc func(key FaceKey) ([]byte, error)

// Load calls f(key).
func (f LoaderFunc) Load(key FaceKey) ([]byte, error) {
	return f(key)
}

// ParserFunc adapts an ordinary function to the [TableParser] interface.
type ParserFunc func(data []byte) (*sfnt.Font, error)

// Parse calls f(data).
func (f ParserFunc) Parse(data []byte) (*sfnt.Font, error) {
	return f(data)
}

// SfntParser is the default [TableParser].  It uses [sfnt.Read].
var SfntParser TableParser = ParserFunc(func(data []byte) (*sfnt.Font, error) {
	return sfnt.Read(bytes.NewReader(data))
})
