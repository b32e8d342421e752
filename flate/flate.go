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

// Package flate implements the zlib container used for FlateDecode streams
// in PDF files.
//
// An encoded stream consists of the two header bytes 0x78 0xDA, the raw
// DEFLATE payload, and the Adler-32 checksum of the uncompressed data in
// big-endian byte order.  The DEFLATE compressor itself is provided by
// github.com/klauspost/compress/flate; this package only handles the
// framing.
//
// See section 7.4.4 of ISO 32000-2:2020 and RFC 1950.
package flate

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
)

// Mode selects the trade-off between compression speed and size.
type Mode int

// These are the supported compression modes.
const (
	Default Mode = iota
	BestCompression
	BestSpeed
)

func (m Mode) String() string {
	switch m {
	case Default:
		return "default"
	case BestCompression:
		return "best-compression"
	case BestSpeed:
		return "best-speed"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

func (m Mode) level() (int, error) {
	switch m {
	case Default:
		return flate.DefaultCompression, nil
	case BestCompression:
		return flate.BestCompression, nil
	case BestSpeed:
		return flate.BestSpeed, nil
	default:
		return 0, fmt.Errorf("flate: invalid mode %d", int(m))
	}
}

// Encode compresses data and returns the framed zlib stream.
func Encode(data []byte, mode Mode) ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.Grow(len(data)/2 + 16)

	w, err := NewWriter(buf, mode)
	if err != nil {
		return nil, err
	}
	_, err = w.Write(data)
	if err != nil {
		return nil, err
	}
	err = w.Close()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode decompresses a zlib stream produced by [Encode] or by any other
// conforming encoder.  The checksum trailer is verified.
func Decode(data []byte) ([]byte, error) {
	r, err := NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return out, nil
}
