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

// Package fontmap resolves font requests using a font map, a text file
// which lists the font files available for each font family.
package fontmap

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"seehuhn.de/go/fontcache"
)

// Style is the style of a font within its family.
type Style int

// Supported font styles.
const (
	Regular Style = iota
	Bold
	Italic
	BoldItalic
)

func styleOf(bold, italic bool) Style {
	s := Regular
	if bold {
		s |= Bold
	}
	if italic {
		s |= Italic
	}
	return s
}

func (s Style) String() string {
	switch s {
	case Regular:
		return "regular"
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case BoldItalic:
		return "bolditalic"
	default:
		return fmt.Sprintf("Style(%d)", int(s))
	}
}

// ParseStyle converts a style name, as used in font maps, to a Style.
func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(name) {
	case "regular":
		return Regular, nil
	case "bold":
		return Bold, nil
	case "italic":
		return Italic, nil
	case "bolditalic":
		return BoldItalic, nil
	default:
		return 0, fmt.Errorf("invalid font style %q", name)
	}
}

// A Map maps font families and styles to font files.
// Map implements the [fontcache.Resolver] interface.
//
// It is safe to use a Map concurrently from multiple goroutines.  Resolve
// only gives consistent answers if the map is not changed while it is in
// use by a [fontcache.Cache].
type Map struct {
	sync.RWMutex
	lookup map[key]string
}

type key struct {
	family string // case-folded
	style  Style
}

var _ fontcache.Resolver = (*Map)(nil)

// New creates a new, empty font map.
func New() *Map {
	return &Map{
		lookup: make(map[key]string),
	}
}

func fold(family string) string {
	return cases.Fold().String(strings.TrimSpace(family))
}

// Read reads a font map from r and adds the entries to m.  A font map
// consists of lines of the form
//
//	<family> | <style> | <path>
//
// where <family> is the font family name, <style> is one of "regular",
// "bold", "italic" or "bolditalic", and <path> is the location of the font
// file.  Space around the fields is ignored.  Empty lines and lines
// starting with '#' or '%' are ignored.
//
// Any previous mapping for (<family>, <style>) is overwritten.
func (m *Map) Read(r io.Reader) error {
	lines := bufio.NewScanner(r)
	lineNo := 0
	for lines.Scan() {
		lineNo++
		line := strings.TrimSpace(lines.Text())
		if len(line) == 0 || line[0] == '#' || line[0] == '%' {
			continue
		}

		parts := strings.SplitN(line, "|", 3)
		if len(parts) != 3 {
			return fmt.Errorf("font map line %d: invalid line %q", lineNo, line)
		}
		family := strings.TrimSpace(parts[0])
		path := strings.TrimSpace(parts[2])
		if family == "" || path == "" {
			return fmt.Errorf("font map line %d: invalid line %q", lineNo, line)
		}
		style, err := ParseStyle(strings.TrimSpace(parts[1]))
		if err != nil {
			return fmt.Errorf("font map line %d: %w", lineNo, err)
		}

		m.Add(family, style, path)
	}
	return lines.Err()
}

// Add adds a font file to the map.  Any previous mapping for the same
// family and style is overwritten.
func (m *Map) Add(family string, style Style, path string) {
	k := key{fold(family), style}
	m.Lock()
	m.lookup[k] = path
	m.Unlock()
}

// Resolve returns the path of the font file for desc.  If the family has
// no font for the requested style, the regular font of the family is used.
// The font size is ignored.  If the family is unknown, the returned error
// wraps [fs.ErrNotExist].
//
// This implements the [fontcache.Resolver] interface.
func (m *Map) Resolve(desc fontcache.FaceDescriptor) (fontcache.FaceKey, error) {
	family := fold(desc.Family)
	style := styleOf(desc.Bold, desc.Italic)

	m.RLock()
	path, ok := m.lookup[key{family, style}]
	if !ok {
		path, ok = m.lookup[key{family, Regular}]
	}
	m.RUnlock()

	if !ok {
		return "", fmt.Errorf("font %s: %w", desc, fs.ErrNotExist)
	}
	return fontcache.FaceKey(path), nil
}

// FileLoader reads font files from the file system.  Relative paths are
// interpreted relative to Dir.
// FileLoader implements the [fontcache.Loader] interface.
type FileLoader struct {
	Dir string
}

// Load reads the font file named by key.
func (l FileLoader) Load(key fontcache.FaceKey) ([]byte, error) {
	path := string(key)
	if !filepath.IsAbs(path) && l.Dir != "" {
		path = filepath.Join(l.Dir, path)
	}
	return os.ReadFile(path)
}

// FSLoader reads font files from a [fs.FS].  Keys must be valid paths
// in the sense of [fs.ValidPath].
// FSLoader implements the [fontcache.Loader] interface.
type FSLoader struct {
	FS fs.FS
}

// Load reads the font file named by key.
func (l FSLoader) Load(key fontcache.FaceKey) ([]byte, error) {
	return fs.ReadFile(l.FS, string(key))
}
