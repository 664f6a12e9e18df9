//go:build js

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

package keyboard

import (
	"syscall/js"

	"github.com/google/chrome-webext/go/dom"
	"github.com/google/chrome-webext/go/jsutil"
)

// ListenSequence invokes onComplete each time keys are pressed in order on
// target (typically the document). Listening happens in the capture phase,
// and keydowns that advance the sequence are not propagated further.
//
// onComplete runs on the goroutine servicing Javascript callbacks and must
// not block.
func ListenSequence(target js.Value, keys []string, onComplete func()) jsutil.CleanupFunc {
	s := NewSequence(keys...)
	return dom.AddEventListener(target, "keydown", true, func(evt dom.Event) {
		key, now := evt.Key(), jsutil.Now()
		if s.Qualifies(key, now) {
			evt.StopPropagation()
		}
		if s.Feed(key, now) {
			onComplete()
		}
	})
}

// ListenChord invokes onAllDown when keys are held down together on target
// (typically the window). Listening happens in the capture phase. The
// keydown completing the chord is neither propagated further nor handled by
// the browser; for example, Shift+Enter does not insert a line break.
//
// onAllDown runs on the goroutine servicing Javascript callbacks and must not
// block.
func ListenChord(target js.Value, keys []string, onAllDown func()) jsutil.CleanupFunc {
	c := NewChord(keys...)
	var cleanup jsutil.CleanupFuncs
	cleanup.Add(dom.AddEventListener(target, "keydown", true, func(evt dom.Event) {
		if c.KeyDown(evt.Key()) {
			evt.PreventDefault()
			evt.StopPropagation()
			onAllDown()
		}
	}))
	cleanup.Add(dom.AddEventListener(target, "keyup", true, func(evt dom.Event) {
		c.KeyUp(evt.Key())
	}))
	return cleanup.Do
}

// Listen binds b on target, invoking f when either its sequence or its chord
// is completed. Empty parts of the binding are ignored.
func Listen(target js.Value, b Binding, f func()) jsutil.CleanupFunc {
	var cleanup jsutil.CleanupFuncs
	if len(b.Sequence) > 0 {
		cleanup.Add(ListenSequence(target, b.Sequence, f))
	}
	if len(b.Chord) > 0 {
		cleanup.Add(ListenChord(target, b.Chord, f))
	}
	return cleanup.Do
}
