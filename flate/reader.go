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
	"bufio"
	"encoding/binary"
	"errors"
	"io"

	"github.com/klauspost/compress/flate"
)

var (
	// ErrHeader is returned when reading data with an invalid zlib header.
	ErrHeader = errors.New("flate: invalid header")

	// ErrChecksumMismatch is returned when the trailer of a stream does not
	// match the checksum of the decompressed data.
	ErrChecksumMismatch = errors.New("flate: checksum mismatch")
)

// byteReader lets the inflater read the payload byte by byte, so that it
// stops exactly at the end of the compressed data.
type byteReader interface {
	io.Reader
	io.ByteReader
}

type reader struct {
	r     byteReader
	zr    io.ReadCloser
	adler *Adler
	err   error
}

// NewReader returns a ReadCloser which decompresses a zlib stream read from
// r.  The checksum trailer is verified once the end of the compressed data
// has been reached; a mismatch is reported as [ErrChecksumMismatch] in place
// of [io.EOF].
//
// If r implements [io.ByteReader], no data after the trailer is consumed
// from r.  Otherwise r is wrapped in a [bufio.Reader], which may read
// ahead past the end of the stream.
func NewReader(r io.Reader) (io.ReadCloser, error) {
	br, ok := r.(byteReader)
	if !ok {
		br = bufio.NewReader(r)
	}

	var hdr [2]byte
	_, err := io.ReadFull(br, hdr[:])
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	if err != nil {
		return nil, err
	}
	if !validHeader(hdr) {
		return nil, ErrHeader
	}

	return &reader{
		r:     br,
		zr:    flate.NewReader(br),
		adler: NewAdler(),
	}, nil
}

// validHeader checks the compression method, the window size and the
// header check bits.  Streams which require a preset dictionary are
// rejected.
func validHeader(hdr [2]byte) bool {
	cmf, flg := hdr[0], hdr[1]
	switch {
	case cmf&0x0F != 8:
		return false
	case cmf>>4 > 7:
		return false
	case flg&0x20 != 0:
		return false
	}
	return (uint16(cmf)<<8|uint16(flg))%31 == 0
}

// Read implements the [io.Reader] interface.
func (r *reader) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}

	n, err := r.zr.Read(p)
	r.adler.Write(p[:n])
	if err == io.EOF {
		err = r.checkTrailer()
	}
	r.err = err
	return n, err
}

func (r *reader) checkTrailer() error {
	var buf [4]byte
	_, err := io.ReadFull(r.r, buf[:])
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	if err != nil {
		return err
	}
	if binary.BigEndian.Uint32(buf[:]) != r.adler.Sum32() {
		return ErrChecksumMismatch
	}
	return io.EOF
}

// Close releases the resources held by the inflater.  It does not close
// the underlying reader.
func (r *reader) Close() error {
	return r.zr.Close()
}
