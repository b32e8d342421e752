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

import "hash"

const adlerModulus = 65521

// Adler is the running checksum stored in the trailer of a zlib stream.
// The zero value is not ready for use; call [NewAdler].
//
// Adler implements [hash.Hash32].
type Adler struct {
	a, b uint32
}

var _ hash.Hash32 = (*Adler)(nil)

// NewAdler returns a new checksum in its initial state.
func NewAdler() *Adler {
	return &Adler{a: 1}
}

// Checksum returns the Adler-32 checksum of data.
func Checksum(data []byte) uint32 {
	h := NewAdler()
	h.Write(data)
	return h.Sum32()
}

// Write adds p to the running checksum.  It never returns an error.
func (h *Adler) Write(p []byte) (int, error) {
	a, b := h.a, h.b
	for _, c := range p {
		a = (a + uint32(c)) % adlerModulus
		b = (b + a) % adlerModulus
	}
	h.a, h.b = a, b
	return len(p), nil
}

// Sum32 returns the current checksum value, b*65536 + a.
func (h *Adler) Sum32() uint32 {
	return h.b<<16 | h.a
}

// Sum appends the big-endian checksum to in.
func (h *Adler) Sum(in []byte) []byte {
	s := h.Sum32()
	return append(in, byte(s>>24), byte(s>>16), byte(s>>8), byte(s))
}

// Reset restores the initial state a=1, b=0.
func (h *Adler) Reset() {
	h.a, h.b = 1, 0
}

// Size returns the number of bytes Sum will append.
func (h *Adler) Size() int { return 4 }

// BlockSize returns the block size of the checksum.
func (h *Adler) BlockSize() int { return 1 }
