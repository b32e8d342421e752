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

// Package gofont provides a font resolver and loader for the Go font
// family.  The fonts are compiled into the binary, so that no font files
// need to be installed.
package gofont

import (
	"fmt"
	"io/fs"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/gofont/gosmallcapsitalic"
	"golang.org/x/text/cases"

	"seehuhn.de/go/fontcache"
)

// Font identifies individual fonts in the Go font family.
type Font int

// Constants for the available fonts in the Go font family.
const (
	Regular         Font = iota // Go Regular
	Bold                        // Go Semi Bold
	BoldItalic                  // Go Semi Bold Italic
	Italic                      // Go Italic
	Medium                      // Go Medium Regular
	MediumItalic                // Go Medium Italic
	Smallcaps                   // Go Smallcaps Regular
	SmallcapsItalic             // Go Smallcaps Italic
	Mono                        // Go Mono Regular
	MonoBold                    // Go Mono Semi Bold
	MonoBoldItalic              // Go Mono Semi Bold Italic
	MonoItalic                  // Go Mono Italic
)

// All contains all the Go font family fonts available in this package.
var All = []Font{
	Regular,
	Bold,
	BoldItalic,
	Italic,
	Medium,
	MediumItalic,
	Smallcaps,
	SmallcapsItalic,
	Mono,
	MonoBold,
	MonoBoldItalic,
	MonoItalic,
}

var names = map[Font]string{
	Regular:         "go-regular",
	Bold:            "go-bold",
	BoldItalic:      "go-bolditalic",
	Italic:          "go-italic",
	Medium:          "go-medium",
	MediumItalic:    "go-mediumitalic",
	Smallcaps:       "go-smallcaps",
	SmallcapsItalic: "go-smallcapsitalic",
	Mono:            "go-mono",
	MonoBold:        "go-monobold",
	MonoBoldItalic:  "go-monobolditalic",
	MonoItalic:      "go-monoitalic",
}

var ttf = map[Font][]byte{
	Regular:         goregular.TTF,
	Bold:            gobold.TTF,
	BoldItalic:      gobolditalic.TTF,
	Italic:          goitalic.TTF,
	Medium:          gomedium.TTF,
	MediumItalic:    gomediumitalic.TTF,
	Smallcaps:       gosmallcaps.TTF,
	SmallcapsItalic: gosmallcapsitalic.TTF,
	Mono:            gomono.TTF,
	MonoBold:        gomonobold.TTF,
	MonoBoldItalic:  gomonobolditalic.TTF,
	MonoItalic:      gomonoitalic.TTF,
}

// faces lists the fonts of each family, indexed by bold + 2*italic.
// Families without a bold face use the regular weight instead.
var faces = map[string][4]Font{
	"go":           {Regular, Bold, Italic, BoldItalic},
	"go medium":    {Medium, Medium, MediumItalic, MediumItalic},
	"go mono":      {Mono, MonoBold, MonoItalic, MonoBoldItalic},
	"go smallcaps": {Smallcaps, Smallcaps, SmallcapsItalic, SmallcapsItalic},
}

// Key returns the face key used for f.
func (f Font) Key() fontcache.FaceKey {
	return fontcache.FaceKey(names[f])
}

// TTF returns the font file for f.
func (f Font) TTF() []byte {
	return ttf[f]
}

func (f Font) String() string {
	if name, ok := names[f]; ok {
		return name
	}
	return fmt.Sprintf("gofont.Font(%d)", int(f))
}

// Resolver maps the family names "Go", "Go Medium", "Go Mono" and
// "Go Smallcaps" to the corresponding fonts.  Family names are compared
// without regard to case.  The font size is ignored.
var Resolver fontcache.Resolver = fontcache.ResolverFunc(resolve)

func resolve(desc fontcache.FaceDescriptor) (fontcache.FaceKey, error) {
	family := cases.Fold().String(strings.TrimSpace(desc.Family))
	ff, ok := faces[family]
	if !ok {
		return "", fmt.Errorf("gofont: family %q: %w", desc.Family, fs.ErrNotExist)
	}
	idx := 0
	if desc.Bold {
		idx |= 1
	}
	if desc.Italic {
		idx |= 2
	}
	return ff[idx].Key(), nil
}

// Loader returns the font files for the keys produced by [Resolver].
var Loader fontcache.Loader = fontcache.LoaderFunc(load)

func load(key fontcache.FaceKey) ([]byte, error) {
	for f, name := range names {
		if name == string(key) {
			return ttf[f], nil
		}
	}
	return nil, fmt.Errorf("gofont: %q: %w", string(key), fs.ErrNotExist)
}
