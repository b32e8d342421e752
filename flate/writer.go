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

package flate

import (
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
)

// header is the zlib header written by all encoders.  The FLEVEL bits
// announce "best compression" independently of the [Mode] actually used;
// decoders do not depend on this field.
var header = [2]byte{0x78, 0xDA}

var errClosed = errors.New("flate: write to closed writer")

// Writer compresses data into a zlib stream.
type Writer struct {
	w      io.Writer
	fw     *flate.Writer
	adler  *Adler
	closed bool
}

// NewWriter returns a Writer which writes the compressed form of the data to
// w.  The header is written immediately.  The caller must call Close to
// flush the DEFLATE payload and to write the checksum trailer; Close does not
// close w.
func NewWriter(w io.Writer, mode Mode) (*Writer, error) {
	level, err := mode.level()
	if err != nil {
		return nil, err
	}
	fw, err := flate.NewWriter(w, level)
	if err != nil {
		return nil, fmt.Errorf("flate: %w", err)
	}

	_, err = w.Write(header[:])
	if err != nil {
		return nil, err
	}

	return &Writer{
		w:     w,
		fw:    fw,
		adler: NewAdler(),
	}, nil
}

// Write implements the [io.Writer] interface.
func (w *Writer) Write(p []byte) (int, error) {
	if w.closed {
		return 0, errClosed
	}
	n, err := w.fw.Write(p)
	w.adler.Write(p[:n])
	return n, err
}

// Close flushes the compressed data and appends the checksum of all
// uncompressed data written so far, in big-endian byte order.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	err := w.fw.Close()
	if err != nil {
		return err
	}
	_, err = w.w.Write(w.adler.Sum(nil))
	return err
}
