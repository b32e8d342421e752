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

package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"seehuhn.de/go/fontcache"
	"seehuhn.de/go/fontcache/flate"
	"seehuhn.de/go/fontcache/fontmap"
	"seehuhn.de/go/fontcache/gofont"
	"seehuhn.de/go/fontcache/tools/internal/buildinfo"
	"seehuhn.de/go/fontcache/tools/internal/profile"
)

var (
	mapArg     = flag.String("map", "", "resolve family names using the font map in `file`")
	sizeArg    = flag.Float64("size", 10, "font size in points")
	boldArg    = flag.Bool("bold", false, "request the bold face")
	italicArg  = flag.Bool("italic", false, "request the italic face")
	modeArg    = flag.String("mode", "best", "compression mode: best, default or speed")
	outArg     = flag.String("o", "", "write the compressed font of the last argument to `file` (\"-\" for stdout)")
	verboseArg = flag.Bool("v", false, "log cache activity to stderr")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
	memprofile = flag.String("memprofile", "", "write memory profile to `file`")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "font-cache-inspect \u2014 show how fonts are resolved, parsed and compressed\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("font-cache-inspect"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  font-cache-inspect [options] <font>...\n\n")
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  font   a font file, or a family name to resolve\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  font-cache-inspect \"Go Mono\"\n")
		fmt.Fprintf(os.Stderr, "  font-cache-inspect -bold -o go-bold.z Go\n")
		fmt.Fprintf(os.Stderr, "  font-cache-inspect -map fonts.map -italic Calibri\n")
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() (err error) {
	stop, err := profile.Start(*cpuprofile, *memprofile)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, stop())
	}()

	mode, err := parseMode(*modeArg)
	if err != nil {
		return err
	}

	var resolver fontcache.Resolver = gofont.Resolver
	var loader fontcache.Loader = gofont.Loader
	if *mapArg != "" {
		resolver, err = readMap(*mapArg)
		if err != nil {
			return err
		}
		loader = fontmap.FileLoader{Dir: filepath.Dir(*mapArg)}
	}

	opts := []fontcache.Option{fontcache.WithCompression(mode)}
	if *verboseArg {
		h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		opts = append(opts, fontcache.WithLogger(slog.New(h)))
	}
	c := fontcache.New(resolver, loader, opts...)

	var last *fontcache.CompressedBlob
	for _, arg := range flag.Args() {
		last, err = inspect(c, arg)
		if err != nil {
			return err
		}
	}

	st := c.Stats()
	fmt.Printf("cache: %d files loaded, %d parsed, %d typefaces, %d compressed\n",
		st.Raw.Builds, st.Sources.Builds, st.Typefaces.Builds, st.Compressed.Builds)

	if *outArg != "" {
		return writeBlob(*outArg, last)
	}
	return nil
}

func inspect(c *fontcache.Cache, arg string) (*fontcache.CompressedBlob, error) {
	var data []byte
	if _, err := os.Stat(arg); err == nil {
		data, err = os.ReadFile(arg)
		if err != nil {
			return nil, err
		}
		fmt.Printf("%s:\n", arg)
	} else {
		desc := fontcache.FaceDescriptor{
			Family: arg,
			Size:   *sizeArg,
			Bold:   *boldArg,
			Italic: *italicArg,
		}
		data, err = c.Load(desc)
		if err != nil {
			return nil, err
		}
		fmt.Printf("%s:\n", desc)
	}

	src, err := c.Source(data)
	if err != nil {
		return nil, err
	}
	face, err := c.Typeface(src.Fingerprint)
	if err != nil {
		return nil, err
	}
	blob, err := c.Compressed(src.Fingerprint)
	if err != nil {
		return nil, err
	}

	fmt.Printf("  fingerprint  %s\n", src.Fingerprint)
	fmt.Printf("  name         %s (%s)\n", face.PostScriptName, face.FamilyName)
	fmt.Printf("  glyphs       %d\n", face.NumGlyphs())
	fmt.Printf("  ascent       %g\n", face.Ascent)
	fmt.Printf("  descent      %g\n", face.Descent)
	fmt.Printf("  bbox         %v\n", face.FontBBox)
	fmt.Printf("  fixed pitch  %t\n", face.IsFixedPitch)
	fmt.Printf("  size         %d bytes, %d compressed (%.1f%%)\n",
		len(src.Data), len(blob.Data), 100*float64(len(blob.Data))/float64(len(src.Data)))
	return blob, nil
}

func parseMode(s string) (flate.Mode, error) {
	switch strings.ToLower(s) {
	case "best":
		return flate.BestCompression, nil
	case "default":
		return flate.Default, nil
	case "speed":
		return flate.BestSpeed, nil
	default:
		return 0, fmt.Errorf("invalid compression mode %q", s)
	}
}

func readMap(fname string) (*fontmap.Map, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	m := fontmap.New()
	err = m.Read(fd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return m, nil
}

func writeBlob(fname string, blob *fontcache.CompressedBlob) error {
	if fname == "-" {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return &fs.PathError{Op: "write", Path: "stdout", Err: errors.New("refusing to write binary data to a terminal")}
		}
		_, err := os.Stdout.Write(blob.Data)
		return err
	}

	fd, err := os.Create(fname)
	if err != nil {
		return err
	}
	_, err = fd.Write(blob.Data)
	return errors.Join(err, fd.Close())
}
