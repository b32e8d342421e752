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

package fontcache_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"seehuhn.de/go/sfnt"

	"seehuhn.de/go/fontcache"
	"seehuhn.de/go/fontcache/fingerprint"
	"seehuhn.de/go/fontcache/flate"
	"seehuhn.de/go/fontcache/gofont"
)

// countingLoader is a test double which serves the Go fonts and counts
// the number of calls.
type countingLoader struct {
	calls atomic.Int32
	fail  atomic.Bool
}

var errLoaderDown = errors.New("loader down")

func (l *countingLoader) Load(key fontcache.FaceKey) ([]byte, error) {
	l.calls.Add(1)
	if l.fail.Load() {
		return nil, errLoaderDown
	}
	return gofont.Loader.Load(key)
}

// calibriResolver maps every request to one of two Go fonts.
var calibriResolver = fontcache.ResolverFunc(func(desc fontcache.FaceDescriptor) (fontcache.FaceKey, error) {
	if desc.Bold {
		return gofont.Bold.Key(), nil
	}
	return gofont.Regular.Key(), nil
})

type countingParser struct {
	calls atomic.Int32
}

func (p *countingParser) Parse(data []byte) (*sfnt.Font, error) {
	p.calls.Add(1)
	return fontcache.SfntParser.Parse(data)
}

func TestLoadCalibriTwice(t *testing.T) {
	loader := &countingLoader{}
	c := fontcache.New(calibriResolver, loader)
	desc := fontcache.FaceDescriptor{Family: "Calibri", Size: 9}

	first, err := c.Load(desc)
	require.NoError(t, err)
	require.Equal(t, int32(1), loader.calls.Load())

	second, err := c.Load(desc)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, int32(1), loader.calls.Load(), "second call used the loader")
}

func TestLoadConcurrent(t *testing.T) {
	loader := &countingLoader{}
	c := fontcache.New(calibriResolver, loader)
	desc := fontcache.FaceDescriptor{Family: "Calibri", Size: 9}

	const n = 100
	start := make(chan struct{})
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			data, err := c.Load(desc)
			if err != nil {
				t.Error(err)
				return
			}
			if !bytes.Equal(data, goregular.TTF) {
				t.Error("wrong font data")
			}
		}()
	}
	close(start)
	wg.Wait()

	require.Equal(t, int32(1), loader.calls.Load())
	st := c.Stats()
	require.Equal(t, uint64(n), st.Raw.Hits+st.Raw.Misses)
	want := fontcache.Stats{Raw: fontcache.TierStats{Hits: st.Raw.Hits, Misses: st.Raw.Misses, Builds: 1}}
	if d := cmp.Diff(want, st); d != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", d)
	}
}

func TestLoadErrorNotCached(t *testing.T) {
	loader := &countingLoader{}
	loader.fail.Store(true)
	c := fontcache.New(calibriResolver, loader)
	desc := fontcache.FaceDescriptor{Family: "Calibri", Size: 9, Bold: true}

	_, err := c.Load(desc)
	var loadErr *fontcache.LoadError
	require.ErrorAs(t, err, &loadErr)
	require.Equal(t, gofont.Bold.Key(), loadErr.Key)
	require.ErrorIs(t, err, errLoaderDown)

	loader.fail.Store(false)
	data, err := c.Load(desc)
	require.NoError(t, err)
	require.Equal(t, gobold.TTF, data)
	require.Equal(t, int32(2), loader.calls.Load())
}

func TestLoadResolverError(t *testing.T) {
	c := fontcache.New(gofont.Resolver, gofont.Loader)
	_, err := c.Load(fontcache.FaceDescriptor{Family: "Calibri", Size: 9})
	require.Error(t, err)

	c = fontcache.New(nil, nil)
	_, err = c.Load(fontcache.FaceDescriptor{Family: "Go", Size: 9})
	require.Error(t, err)
}

func TestSourceConcurrent(t *testing.T) {
	parser := &countingParser{}
	c := fontcache.New(nil, nil, fontcache.WithParser(parser))

	// The copies differ after the fingerprinted prefix, so they must all
	// map to the same source.
	inputs := make([][]byte, 32)
	for i := range inputs {
		inputs[i] = append(bytes.Clone(goregular.TTF), bytes.Repeat([]byte{0}, i)...)
	}

	results := make([]*fontcache.FontSource, len(inputs))
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i, data := range inputs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			src, err := c.Source(data)
			if err != nil {
				t.Error(err)
				return
			}
			results[i] = src
		}()
	}
	close(start)
	wg.Wait()

	require.Equal(t, int32(1), parser.calls.Load())
	for _, src := range results[1:] {
		require.Same(t, results[0], src)
	}
}

func TestSourceErrors(t *testing.T) {
	c := fontcache.New(nil, nil)

	_, err := c.Source([]byte("too short"))
	require.ErrorIs(t, err, fingerprint.ErrInputTooShort)

	garbage := bytes.Repeat([]byte("not a font "), 500)
	_, err = c.Source(garbage)
	var malformed *fontcache.MalformedFontError
	require.ErrorAs(t, err, &malformed)
	fp, _ := fingerprint.Of(garbage)
	require.Equal(t, fp, malformed.Fingerprint)

	// the failure is not cached
	_, err = c.Typeface(fp)
	require.ErrorIs(t, err, fontcache.ErrUnknownFingerprint)
}

func TestParserRetry(t *testing.T) {
	var calls atomic.Int32
	errFlaky := errors.New("flaky parser")
	parser := fontcache.ParserFunc(func(data []byte) (*sfnt.Font, error) {
		if calls.Add(1) == 1 {
			return nil, errFlaky
		}
		return fontcache.SfntParser.Parse(data)
	})
	c := fontcache.New(nil, nil, fontcache.WithParser(parser))

	_, err := c.Source(goregular.TTF)
	require.ErrorIs(t, err, errFlaky)

	src, err := c.Source(goregular.TTF)
	require.NoError(t, err)
	require.NotNil(t, src.Font)
	require.Equal(t, int32(2), calls.Load())
}

func TestUnknownFingerprint(t *testing.T) {
	c := fontcache.New(nil, nil)
	_, err := c.Typeface(12345)
	require.ErrorIs(t, err, fontcache.ErrUnknownFingerprint)
	_, err = c.Compressed(12345)
	require.ErrorIs(t, err, fontcache.ErrUnknownFingerprint)
}

func TestTypeface(t *testing.T) {
	c := fontcache.New(gofont.Resolver, gofont.Loader)

	face, err := c.Font(fontcache.FaceDescriptor{Family: "Go", Size: 10})
	require.NoError(t, err)
	require.NotEmpty(t, face.PostScriptName)
	require.Greater(t, face.NumGlyphs(), 1)
	require.Greater(t, face.Ascent, 0.0)
	require.Less(t, face.Descent, 0.0)
	require.False(t, face.IsFixedPitch)

	gid := face.GlyphID('A')
	require.NotZero(t, gid)
	require.Greater(t, face.GlyphWidth(gid), 0.0)
	require.Zero(t, face.GlyphWidth(65535))

	w := face.TextWidth("AA", 10)
	require.InDelta(t, 2*face.GlyphWidth(gid)*10/1000, w, 1e-9)

	again, err := c.Typeface(face.Source.Fingerprint)
	require.NoError(t, err)
	require.Same(t, face, again)

	c = fontcache.New(gofont.Resolver, gofont.Loader)
	mono, err := c.Font(fontcache.FaceDescriptor{Family: "Go Mono", Size: 10, Bold: true})
	require.NoError(t, err)
	require.True(t, mono.IsFixedPitch)
	require.True(t, mono.IsBold())
}

func TestCompressed(t *testing.T) {
	c := fontcache.New(nil, nil)
	src, err := c.Source(goregular.TTF)
	require.NoError(t, err)

	const n = 16
	blobs := make([]*fontcache.CompressedBlob, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			blob, err := c.Compressed(src.Fingerprint)
			if err != nil {
				t.Error(err)
				return
			}
			blobs[i] = blob
		}()
	}
	wg.Wait()

	for _, b := range blobs[1:] {
		require.Same(t, blobs[0], b)
	}
	blob := blobs[0]
	require.Equal(t, src.Fingerprint, blob.Fingerprint)
	require.Equal(t, []byte{0x78, 0xDA}, blob.Data[:2])
	require.Less(t, len(blob.Data), len(goregular.TTF))

	out, err := flate.Decode(blob.Data)
	require.NoError(t, err)
	if !bytes.Equal(out, goregular.TTF) {
		t.Error("compressed font does not decode to the font file")
	}
	st := c.Stats().Compressed
	want := fontcache.TierStats{Hits: st.Hits, Misses: st.Misses, Builds: 1}
	require.Equal(t, uint64(n), st.Hits+st.Misses)
	if d := cmp.Diff(want, st); d != "" {
		t.Errorf("compressed tier stats (-want +got):\n%s", d)
	}
}

func TestLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c := fontcache.New(gofont.Resolver, gofont.Loader,
		fontcache.WithLogger(logger),
		fontcache.WithCompression(flate.BestSpeed))

	face, err := c.Font(fontcache.FaceDescriptor{Family: "Go", Size: 10})
	require.NoError(t, err)
	_, err = c.Compressed(face.Source.Fingerprint)
	require.NoError(t, err)

	out := buf.String()
	for _, msg := range []string{"font loaded", "font parsed", "font compressed"} {
		require.True(t, strings.Contains(out, msg), "missing log message %q", msg)
	}
}
