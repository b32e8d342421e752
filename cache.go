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
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

type cacheKey interface {
	comparable
	String() string
}

// store is an append-only map with get-or-build semantics.
// Entries are never replaced or removed.  A failed build leaves no trace,
// so that the next caller tries again.
type store[K cacheKey, V any] struct {
	entries sync.Map // K -> V
	group   singleflight.Group

	hits, misses, builds atomic.Uint64
}

// Get returns the value stored for key, without building it.
func (s *store[K, V]) Get(key K) (V, bool) {
	v, ok := s.entries.Load(key)
	if !ok {
		var zero V
		return zero, false
	}
	return v.(V), true
}

// GetOrBuild returns the value stored for key.  If there is none, build is
// called to create it.  Concurrent callers for the same key share a single
// call to build, and all of them receive the same value.
func (s *store[K, V]) GetOrBuild(key K, build func() (V, error)) (V, error) {
	if v, ok := s.Get(key); ok {
		s.hits.Add(1)
		return v, nil
	}
	s.misses.Add(1)

	res, err, _ := s.group.Do(key.String(), func() (any, error) {
		// A previous flight may have stored the value after our first
		// lookup but before we joined the group.
		if v, ok := s.Get(key); ok {
			return v, nil
		}

		v, err := build()
		if err != nil {
			return nil, err
		}
		actual, loaded := s.entries.LoadOrStore(key, v)
		if !loaded {
			s.builds.Add(1)
		}
		return actual, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return res.(V), nil
}

func (s *store[K, V]) stats() TierStats {
	return TierStats{
		Hits:   s.hits.Load(),
		Misses: s.misses.Load(),
		Builds: s.builds.Load(),
	}
}

// TierStats counts the lookups of one cache tier.
type TierStats struct {
	Hits   uint64 // lookups answered from the cache
	Misses uint64 // lookups which had to wait for a build
	Builds uint64 // values created and stored
}

// Stats summarizes the activity of all tiers of a [Cache].
type Stats struct {
	Raw        TierStats
	Sources    TierStats
	Typefaces  TierStats
	Compressed TierStats
}
