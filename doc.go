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

// Package fontcache keeps font data in memory, so that many concurrent
// PDF writers can use the same fonts without reading, parsing and
// compressing the font files again and again.
//
// A [Cache] has four tiers:
//
//   - raw font files, keyed by the [FaceKey] a [Resolver] assigns to a
//     [FaceDescriptor],
//   - parsed font sources, keyed by the [fingerprint.Fingerprint] of the
//     font file,
//   - glyph typefaces derived from the font sources, and
//   - FlateDecode-compressed copies of the font files, ready to be embedded
//     into a PDF file.
//
// All tiers only grow.  Once a value has been stored for a key, every later
// lookup returns this same value.  Failed attempts to load, parse or
// compress a font are not remembered.
//
// Typical use:
//
//	c := fontcache.New(resolver, loader)
//	face, err := c.Font(fontcache.FaceDescriptor{Family: "Go", Size: 10})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	blob, err := c.Compressed(face.Source.Fingerprint)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	... write blob.Data as a /FontFile2 stream with /Filter /FlateDecode ...
//
// Programs which only need one cache can use [Init] and the package-level
// functions instead.
package fontcache
