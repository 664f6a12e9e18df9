// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package keyboard detects key sequences (e.g., "g g") and chords (e.g.,
// Control+Shift) from keydown and keyup events.
package keyboard

import (
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Values of KeyboardEvent.key for commonly bound keys.
const (
	Alt     = "Alt"
	Control = "Control"
	Enter   = "Enter"
	Escape  = "Escape"
	Meta    = "Meta"
	Shift   = "Shift"
	Space   = " "
	Tab     = "Tab"
)

// SpaceName is how the space key is written in bindings. KeyboardEvent.key
// reports it as Space.
const SpaceName = "Space"

// Normalize returns the KeyboardEvent.key value for a key as written in a
// binding.
func Normalize(key string) string {
	if strings.EqualFold(key, SpaceName) {
		return Space
	}
	return key
}

func normalize(keys []string) []string {
	return lo.Map(keys, func(k string, _ int) string { return Normalize(k) })
}

const (
	// SequenceGap is the longest pause allowed between the keys of a
	// sequence.
	SequenceGap = 400 * time.Millisecond
)

// Binding is a user-configurable key binding. It is persisted in storage, so
// field names must remain stable.
type Binding struct {
	// Sequence lists keys that must be pressed one after another.
	Sequence []string `js:"sequence"`
	// Chord lists keys that must be held down together.
	Chord []string `js:"chord"`
}

// Sequence detects an ordered list of keys pressed one after another, each
// within SequenceGap of the previous keydown.
type Sequence struct {
	keys []string
	pos  int
	last time.Duration
	seen bool
}

// NewSequence returns a detector for the supplied keys.
func NewSequence(keys ...string) *Sequence {
	return &Sequence{keys: normalize(keys)}
}

// Feed records a keydown of key at time at, and reports whether the sequence
// was completed by it. The detector resets after each completion.
//
// The position advances only when key is the expected key at the current
// position. Any other key resets the detector without starting a new
// attempt.
func (s *Sequence) Feed(key string, at time.Duration) bool {
	if len(s.keys) == 0 {
		return false
	}
	if s.seen && at-s.last > SequenceGap {
		s.pos = 0
	}
	s.last, s.seen = at, true

	if key != s.keys[s.pos] {
		s.Reset()
		return false
	}

	s.pos++
	if s.pos == len(s.keys) {
		s.Reset()
		return true
	}
	return false
}

// Expected returns the key expected next.
func (s *Sequence) Expected() string {
	if len(s.keys) == 0 {
		return ""
	}
	return s.keys[s.pos]
}

// Qualifies reports whether key, pressed at time at, would advance the
// sequence.
func (s *Sequence) Qualifies(key string, at time.Duration) bool {
	if len(s.keys) == 0 {
		return false
	}
	pos := s.pos
	if s.seen && at-s.last > SequenceGap {
		pos = 0
	}
	return key == s.keys[pos]
}

// Reset returns the detector to its initial state.
func (s *Sequence) Reset() {
	s.pos = 0
	s.seen = false
}

// Chord detects a set of keys held down together.
type Chord struct {
	keys  []string
	down  map[string]bool
	fired bool
}

// NewChord returns a detector for the supplied keys.
func NewChord(keys ...string) *Chord {
	return &Chord{
		keys: lo.Uniq(normalize(keys)),
		down: map[string]bool{},
	}
}

func (c *Chord) complete() bool {
	return len(c.keys) > 0 && lo.EveryBy(c.keys, func(k string) bool {
		return c.down[k]
	})
}

// KeyDown records a keydown of key, and reports whether the chord was
// completed by it. The chord fires once per press; auto-repeated keydowns
// do not fire it again until a required key is released.
func (c *Chord) KeyDown(key string) bool {
	c.down[key] = true
	if c.fired || !c.complete() {
		return false
	}
	c.fired = true
	return true
}

// KeyUp records a keyup of key.
func (c *Chord) KeyUp(key string) {
	delete(c.down, key)
	if lo.Contains(c.keys, key) {
		c.fired = false
	}
}

// Held returns the keys currently held down, in sorted order.
func (c *Chord) Held() []string {
	keys := lo.Keys(c.down)
	sort.Strings(keys)
	return keys
}
