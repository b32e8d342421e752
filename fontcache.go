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
	"fmt"
	"log/slog"

	"seehuhn.de/go/fontcache/fingerprint"
	"seehuhn.de/go/fontcache/flate"
)

// Cache holds loaded, parsed and compressed fonts.
//
// It is safe to use a Cache concurrently from multiple goroutines.
// A Cache must not be copied after first use.
type Cache struct {
	resolver Resolver
	loader   Loader
	parser   TableParser
	mode     flate.Mode
	logger   *slog.Logger

	raw        store[FaceKey, []byte]
	sources    store[fingerprint.Fingerprint, *FontSource]
	typefaces  store[fingerprint.Fingerprint, *GlyphTypeface]
	compressed store[fingerprint.Fingerprint, *CompressedBlob]
}

// Option configures a Cache.
type Option func(*Cache)

// WithParser sets the parser used to decode font files.
// The default is [SfntParser].
func WithParser(p TableParser) Option {
	return func(c *Cache) {
		c.parser = p
	}
}

// WithCompression sets the compression mode used by [Cache.Compressed].
// The default is [flate.BestCompression].
func WithCompression(mode flate.Mode) Option {
	return func(c *Cache) {
		c.mode = mode
	}
}

// WithLogger sets a logger for the cache.
// If nil, a discard logger is used (default behavior).
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		c.logger = logger
	}
}

// New creates an empty cache.
//
// The resolver and loader are only needed by [Cache.Load] and [Cache.Font].
// They may be nil if the caller supplies font data via [Cache.Source].
func New(resolver Resolver, loader Loader, opts ...Option) *Cache {
	c := &Cache{
		resolver: resolver,
		loader:   loader,
		parser:   SfntParser,
		mode:     flate.BestCompression,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.parser == nil {
		c.parser = SfntParser
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return c
}

// Load returns the font file for a font request.
//
// The request is first resolved to a [FaceKey].  The font file for each key
// is loaded at most once; concurrent requests for the same key wait for the
// first load to finish.  Loader failures are returned as [*LoadError].
func (c *Cache) Load(desc FaceDescriptor) ([]byte, error) {
	if c.resolver == nil || c.loader == nil {
		return nil, errNoResolver
	}

	key, err := c.resolver.Resolve(desc)
	if err != nil {
		c.logger.Warn("cannot resolve font", "face", desc.String(), "error", err)
		return nil, fmt.Errorf("resolve font %s: %w", desc, err)
	}

	return c.raw.GetOrBuild(key, func() ([]byte, error) {
		data, err := c.loader.Load(key)
		if err != nil {
			c.logger.Warn("cannot load font", "key", string(key), "error", err)
			return nil, &LoadError{Key: key, Err: err}
		}
		c.logger.Debug("font loaded", "key", string(key), "bytes", len(data))
		return data, nil
	})
}

// Source returns the parsed font for a font file.
//
// Font files are identified by their fingerprint.  If a source with the
// same fingerprint is already present, it is returned without looking at
// the rest of data.  Otherwise the file is parsed and the result is stored.
// Parser failures are returned as [*MalformedFontError].
func (c *Cache) Source(data []byte) (*FontSource, error) {
	fp, err := fingerprint.Of(data)
	if err != nil {
		return nil, err
	}

	return c.sources.GetOrBuild(fp, func() (*FontSource, error) {
		info, err := c.parser.Parse(data)
		if err != nil {
			c.logger.Warn("cannot parse font", "fingerprint", fp.String(), "error", err)
			return nil, &MalformedFontError{Fingerprint: fp, Err: err}
		}
		c.logger.Debug("font parsed", "fingerprint", fp.String(), "name", info.PostScriptName())
		return &FontSource{
			Data:        data,
			Fingerprint: fp,
			Font:        info,
		}, nil
	})
}

// Typeface returns the glyph typeface for a font source.
// The source must have been loaded using [Cache.Source] before, otherwise
// [ErrUnknownFingerprint] is returned.
func (c *Cache) Typeface(fp fingerprint.Fingerprint) (*GlyphTypeface, error) {
	src, ok := c.sources.Get(fp)
	if !ok {
		return nil, unknownFingerprint(fp)
	}

	return c.typefaces.GetOrBuild(fp, func() (*GlyphTypeface, error) {
		return newGlyphTypeface(src)
	})
}

// Compressed returns the compressed form of a font file, for embedding
// into a PDF file.
// The source must have been loaded using [Cache.Source] before, otherwise
// [ErrUnknownFingerprint] is returned.
func (c *Cache) Compressed(fp fingerprint.Fingerprint) (*CompressedBlob, error) {
	src, ok := c.sources.Get(fp)
	if !ok {
		return nil, unknownFingerprint(fp)
	}

	return c.compressed.GetOrBuild(fp, func() (*CompressedBlob, error) {
		data, err := flate.Encode(src.Data, c.mode)
		if err != nil {
			return nil, err
		}
		c.logger.Debug("font compressed",
			"fingerprint", fp.String(),
			"bytes", len(src.Data),
			"compressed", len(data))
		return &CompressedBlob{Fingerprint: fp, Data: data}, nil
	})
}

// Font loads, parses and prepares the font for a font request.
func (c *Cache) Font(desc FaceDescriptor) (*GlyphTypeface, error) {
	data, err := c.Load(desc)
	if err != nil {
		return nil, err
	}
	src, err := c.Source(data)
	if err != nil {
		return nil, err
	}
	return c.Typeface(src.Fingerprint)
}

// Stats returns the lookup counters of all cache tiers.
func (c *Cache) Stats() Stats {
	return Stats{
		Raw:        c.raw.stats(),
		Sources:    c.sources.stats(),
		Typefaces:  c.typefaces.stats(),
		Compressed: c.compressed.stats(),
	}
}
