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

package fingerprint

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestOfSum(t *testing.T) {
	data := bytes.Repeat([]byte{1}, PrefixLength)
	fp, err := Of(data)
	if err != nil {
		t.Fatal(err)
	}
	if fp != PrefixLength {
		t.Errorf("got %d, want %d", fp, PrefixLength)
	}

	data = bytes.Repeat([]byte{0xFF}, 3*PrefixLength)
	fp, err = Of(data)
	if err != nil {
		t.Fatal(err)
	}
	if want := Fingerprint(0xFF * PrefixLength); fp != want {
		t.Errorf("got %d, want %d", fp, want)
	}
}

func TestOfTooShort(t *testing.T) {
	for _, n := range []int{0, 1, PrefixLength - 1} {
		_, err := Of(make([]byte, n))
		if !errors.Is(err, ErrInputTooShort) {
			t.Errorf("length %d: got error %v, want %v", n, err, ErrInputTooShort)
		}
	}
}

// Data which only differs after the prefix must collide.
func TestOfPrefixCollision(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	a := make([]byte, 5000)
	rng.Read(a)
	b := bytes.Clone(a)
	for i := PrefixLength; i < len(b); i++ {
		b[i] ^= 0x5A
	}
	b = append(b, 1, 2, 3)

	fa, err := Of(a)
	if err != nil {
		t.Fatal(err)
	}
	fb, err := Of(b)
	if err != nil {
		t.Fatal(err)
	}
	if fa != fb {
		t.Errorf("fingerprints differ: %s != %s", fa, fb)
	}

	b[PrefixLength-1]++
	fc, err := Of(b)
	if err != nil {
		t.Fatal(err)
	}
	if fc == fa {
		t.Error("change inside the prefix not detected")
	}
}

func TestOfGoFont(t *testing.T) {
	fp1, err := Of(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	fp2, err := Of(bytes.Clone(goregular.TTF))
	if err != nil {
		t.Fatal(err)
	}
	if fp1 != fp2 {
		t.Errorf("fingerprint not deterministic: %s != %s", fp1, fp2)
	}
}

func TestString(t *testing.T) {
	cases := []struct {
		fp   Fingerprint
		want string
	}{
		{0, "0000000000000000"},
		{0x1234, "0000000000001234"},
		{0xFFFFFFFFFFFFFFFF, "ffffffffffffffff"},
	}
	for _, c := range cases {
		if got := c.fp.String(); got != c.want {
			t.Errorf("%d: got %q, want %q", uint64(c.fp), got, c.want)
		}
	}
}

func BenchmarkOf(b *testing.B) {
	for b.Loop() {
		_, _ = Of(goregular.TTF)
	}
}
