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
	"sync/atomic"

	"seehuhn.de/go/fontcache/fingerprint"
)

// defaultCache is the process-wide cache used by the package-level
// functions.  It lives until the process exits.
var defaultCache atomic.Pointer[Cache]

// Init installs a new, empty process-wide cache.  Calling Init again
// replaces the cache; values obtained from the old cache remain valid.
func Init(resolver Resolver, loader Loader, opts ...Option) {
	defaultCache.Store(New(resolver, loader, opts...))
}

// Default returns the process-wide cache, or nil if [Init] has not been
// called.
func Default() *Cache {
	return defaultCache.Load()
}

// Load calls [Cache.Load] on the process-wide cache.
func Load(desc FaceDescriptor) ([]byte, error) {
	c := Default()
	if c == nil {
		return nil, ErrNotInitialized
	}
	return c.Load(desc)
}

// Source calls [Cache.Source] on the process-wide cache.
func Source(data []byte) (*FontSource, error) {
	c := Default()
	if c == nil {
		return nil, ErrNotInitialized
	}
	return c.Source(data)
}

// Typeface calls [Cache.Typeface] on the process-wide cache.
func Typeface(fp fingerprint.Fingerprint) (*GlyphTypeface, error) {
	c := Default()
	if c == nil {
		return nil, ErrNotInitialized
	}
	return c.Typeface(fp)
}

// Compressed calls [Cache.Compressed] on the process-wide cache.
func Compressed(fp fingerprint.Fingerprint) (*CompressedBlob, error) {
	c := Default()
	if c == nil {
		return nil, ErrNotInitialized
	}
	return c.Compressed(fp)
}

// Font calls [Cache.Font] on the process-wide cache.
func Font(desc FaceDescriptor) (*GlyphTypeface, error) {
	c := Default()
	if c == nil {
		return nil, ErrNotInitialized
	}
	return c.Font(desc)
}
