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

// Package demo is a small extension assembled from the messaging facade.
// It has a module for each kind of page: the background page answers echo
// requests and reacts to the toolbar button, content scripts answer pings
// and listen for the user's keyboard binding, the devtools page adds a panel
// that pings the inspected tab, and the options page edits the binding.
package demo

import (
	"github.com/google/chrome-webext/go/app"
	"github.com/google/chrome-webext/go/jsutil"
	"github.com/google/chrome-webext/go/keyboard"
	"github.com/google/chrome-webext/go/optionsui"
	"github.com/google/chrome-webext/go/storage"
)

// Topics served by the demo's modules.
const (
	// TopicEcho is answered by the background page with the message
	// content.
	TopicEcho = "demo.echo"
	// TopicPing is answered by content scripts with a PingReply.
	TopicPing = "demo.ping"
	// TopicToggle toggles the highlight in a content script. The reply is
	// the new state.
	TopicToggle = "demo.toggle"
)

const (
	// BindingKey is the storage key of the user's keyboard binding.
	BindingKey = "demo.binding"

	// CommandToggle toggles the highlight in the active tab.
	CommandToggle = "toggle-highlight"
	// CommandOpenOptions opens the options page in a popup window.
	CommandOpenOptions = "open-options"

	// OptionsPath, PanelPath and PageScriptPath locate the demo's files
	// within the extension.
	OptionsPath    = "html/options.html?page=options"
	PanelPath      = "html/panel.html?page=devtools-panel"
	PageScriptPath = "js/page.js"
)

// DefaultBinding is used until the user saves a binding.
var DefaultBinding = keyboard.Binding{
	Sequence: []string{"g", "g"},
	Chord:    []string{keyboard.Control, keyboard.Shift},
}

// PingReply is a content script's answer to TopicPing.
type PingReply struct {
	URL         string `js:"url"`
	Title       string `js:"title"`
	Highlighted bool   `js:"highlighted"`
}

// bindingArea returns the area the binding is persisted in. Sync storage is
// preferred so the binding follows the user across browsers.
func bindingArea(env *app.Env) storage.Area {
	switch {
	case env.Sync != nil:
		return env.Sync
	case env.Local != nil:
		return env.Local
	default:
		return storage.NewMem()
	}
}

// NewBinding returns the stored keyboard binding for the environment.
func NewBinding(env *app.Env) *storage.Value[keyboard.Binding] {
	return storage.NewValue[keyboard.Binding](bindingArea(env), BindingKey)
}

// LoadBinding reads the binding from store, falling back to DefaultBinding
// if the user has not saved one.
func LoadBinding(ctx jsutil.AsyncContext, store optionsui.BindingStore) (keyboard.Binding, error) {
	b, err := store.Get(ctx)
	if err != nil {
		return keyboard.Binding{}, err
	}
	if len(b.Sequence) == 0 && len(b.Chord) == 0 {
		return DefaultBinding, nil
	}
	return b, nil
}
