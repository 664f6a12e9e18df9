//go:build js

// Copyright 2018 Google LLC
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

// Package optionsui defines the behavior underlying the user interface
// for the extension's options.
package optionsui

import (
	"fmt"
	"strings"
	"syscall/js"
	"time"

	"github.com/google/chrome-webext/go/dom"
	"github.com/google/chrome-webext/go/jsutil"
	"github.com/google/chrome-webext/go/keyboard"
	"github.com/google/chrome-webext/go/storage"
	"github.com/google/go-cmp/cmp"
	"github.com/samber/lo"
)

// BindingStore reads and writes the keyboard binding.
//
// It is implemented by storage.Value.
type BindingStore interface {
	Get(ctx jsutil.AsyncContext) (keyboard.Binding, error)
	Set(ctx jsutil.AsyncContext, b keyboard.Binding) error
}

var _ BindingStore = (*storage.Value[keyboard.Binding])(nil)

// UI implements the behavior underlying the user interface for the extension's
// options.
type UI struct {
	binding   BindingStore
	dom       *dom.Doc
	sequence  js.Value
	chord     js.Value
	save      js.Value
	current   js.Value
	errorText js.Value
	displayed keyboard.Binding
	cleanup   *jsutil.CleanupFuncs
}

// New returns a new UI instance that edits the binding in the supplied store.
// domObj is the DOM instance corresponding to the document in which the Options
// UI is displayed.
func New(binding BindingStore, domObj *dom.Doc) *UI {
	result := &UI{
		binding:   binding,
		dom:       domObj,
		sequence:  domObj.GetElement("sequence"),
		chord:     domObj.GetElement("chord"),
		save:      domObj.GetElement("save"),
		current:   domObj.GetElement("current"),
		errorText: domObj.GetElement("errorMessage"),
		cleanup:   &jsutil.CleanupFuncs{},
	}

	// Add event handlers.
	cf := result.cleanup
	// Populate binding on initial display
	cf.Add(result.dom.OnDOMContentLoaded(result.updateBinding))
	// Store binding on click
	cf.Add(dom.OnClick(result.save, result.store))
	// Suppress form submission synchronously; OnClick handlers run too late.
	cf.Add(dom.AddEventListener(result.save, "click", false, func(evt dom.Event) {
		evt.PreventDefault()
	}))
	return result
}

// Release cleans up any resources when UI is no longer used.
func (u *UI) Release() {
	u.cleanup.Do()
}

// ParseKeys parses a space-separated list of keys, as entered by the user.
// The space key itself is written as "Space".
func ParseKeys(s string) []string {
	return lo.Map(strings.Fields(s), func(k string, _ int) string {
		return keyboard.Normalize(k)
	})
}

// FormatKeys formats keys for display; see ParseKeys.
func FormatKeys(keys []string) string {
	return strings.Join(lo.Map(keys, func(k string, _ int) string {
		if k == keyboard.Space {
			return keyboard.SpaceName
		}
		return k
	}), " ")
}

// setError updates the UI to display the supplied error. If the supplied error
// is nil, then any displayed error is cleared.
func (u *UI) setError(err error) {
	// Clear any existing error
	dom.RemoveChildren(u.errorText)

	if err != nil {
		jsutil.LogError("UI.setError(): %v", err)
		dom.AppendChild(u.errorText, u.dom.NewText(err.Error()), nil)
	}
}

// store saves the binding entered by the user.
func (u *UI) store(ctx jsutil.AsyncContext, evt dom.Event) {
	b := keyboard.Binding{
		Sequence: ParseKeys(dom.Value(u.sequence)),
		Chord:    ParseKeys(dom.Value(u.chord)),
	}
	if len(b.Sequence) == 0 && len(b.Chord) == 0 {
		u.setError(fmt.Errorf("failed to save binding: a sequence or chord is required"))
		return
	}
	if err := u.binding.Set(ctx, b); err != nil {
		u.setError(fmt.Errorf("failed to save binding: %w", err))
		return
	}

	u.setError(nil)
	u.updateBinding(ctx)
}

// setBinding displays the supplied binding.
func (u *UI) setBinding(b keyboard.Binding) {
	u.displayed = b
	dom.RemoveChildren(u.current)
	dom.AppendChild(u.current, u.dom.NewElement("div"), func(seq js.Value) {
		seq.Set("id", "currentSequence")
		dom.AppendChild(seq, u.dom.NewText(FormatKeys(b.Sequence)), nil)
	})
	dom.AppendChild(u.current, u.dom.NewElement("div"), func(chord js.Value) {
		chord.Set("id", "currentChord")
		dom.AppendChild(chord, u.dom.NewText(FormatKeys(b.Chord)), nil)
	})
	dom.SetValue(u.sequence, FormatKeys(b.Sequence))
	dom.SetValue(u.chord, FormatKeys(b.Chord))
}

// updateBinding refreshes the displayed binding from storage.
func (u *UI) updateBinding(ctx jsutil.AsyncContext) {
	b, err := u.binding.Get(ctx)
	if err != nil {
		u.setError(fmt.Errorf("failed to read binding: %w", err))
		return
	}
	u.setBinding(b)
}

// Displayed returns the binding currently displayed.
func (u *UI) Displayed() keyboard.Binding {
	return u.displayed
}

const (
	pollInterval = 100 * time.Millisecond
	pollTimeout  = 5 * time.Second
)

func poll(done func() bool) {
	timeout := time.Now().Add(pollTimeout)
	for time.Now().Before(timeout) {
		if done() {
			return
		}
		time.Sleep(pollInterval)
	}
}

// EndToEndTest edits the binding via the UI, and verifies that it is stored
// and displayed. Failures are returned as a list of errors.
//
// No attempt is made to restore the previous binding should the test fail.
func (u *UI) EndToEndTest(ctx jsutil.AsyncContext) []error {
	var errs []error

	prev, err := u.binding.Get(ctx)
	if err != nil {
		return append(errs, fmt.Errorf("failed to read initial binding: %w", err))
	}

	want := keyboard.Binding{
		Sequence: []string{"g", keyboard.Space},
		Chord:    []string{keyboard.Control, keyboard.Shift},
	}

	jsutil.Log("Configure a new binding")
	dom.SetValue(u.sequence, "g Space")
	dom.SetValue(u.chord, "Control Shift")
	dom.DoClick(u.save)

	jsutil.Log("Validate displayed binding")
	poll(func() bool {
		return cmp.Equal(u.Displayed(), want)
	})
	if diff := cmp.Diff(u.Displayed(), want); diff != "" {
		errs = append(errs, fmt.Errorf("after save: incorrect displayed binding: %s", diff))
	}

	jsutil.Log("Validate stored binding")
	got, err := u.binding.Get(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("after save: failed to read binding: %w", err))
	} else if diff := cmp.Diff(got, want); diff != "" {
		errs = append(errs, fmt.Errorf("after save: incorrect stored binding: %s", diff))
	}

	jsutil.Log("Restore previous binding")
	if err := u.binding.Set(ctx, prev); err != nil {
		errs = append(errs, fmt.Errorf("failed to restore binding: %w", err))
	}
	u.updateBinding(ctx)

	return errs
}
