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

package chrome

import (
	"syscall/js"

	"github.com/google/chrome-webext/go/jsutil"
)

// EventSource identifies the frame in which a navigation event occurred.
type EventSource struct {
	TabID     int
	URL       string
	ProcessID int
	FrameID   int
	TimeStamp float64
}

// ActionEvent is supplied when the user clicks the extension's toolbar
// button.
type ActionEvent struct {
	Tab Tab
	// Action is the browserAction (or action) API object.
	Action js.Value
}

// runAsync runs f with an AsyncContext, logging any error it returns.
func runAsync(what string, f func(ctx jsutil.AsyncContext) error) {
	jsutil.Async(func(ctx jsutil.AsyncContext) (js.Value, error) {
		if err := f(ctx); err != nil {
			jsutil.LogError("%s failed: %v", what, err)
		}
		return js.Undefined(), nil
	})
}

// OnBrowserAction invokes f when the toolbar button is clicked. Manifest V3
// renames browserAction to action; both are supported.
func (b *Browser) OnBrowserAction(f func(ctx jsutil.AsyncContext, evt ActionEvent) error) (jsutil.CleanupFunc, error) {
	action, err := b.api("browserAction")
	if err != nil {
		if action, err = b.api("action"); err != nil {
			return nil, err
		}
	}
	return addListener(action.Value().Get("onClicked"), func(args []js.Value) {
		evt := ActionEvent{Tab: TabFromValue(jsutil.SingleArg(args)), Action: action.Value()}
		runAsync("browser action", func(ctx jsutil.AsyncContext) error {
			return f(ctx, evt)
		})
	}), nil
}

// OnCommand invokes f when a keyboard command declared in the manifest is
// triggered.
func (b *Browser) OnCommand(f func(ctx jsutil.AsyncContext, command string) error) (jsutil.CleanupFunc, error) {
	commands, err := b.api("commands")
	if err != nil {
		return nil, err
	}
	return addListener(commands.Value().Get("onCommand"), func(args []js.Value) {
		command := jsutil.SingleArg(args).String()
		runAsync("command "+command, func(ctx jsutil.AsyncContext) error {
			return f(ctx, command)
		})
	}), nil
}

// OnDOMContentLoaded invokes f when the DOMContentLoaded event fires in any
// frame the extension has host permissions for.
func (b *Browser) OnDOMContentLoaded(f func(ctx jsutil.AsyncContext, src EventSource) error) (jsutil.CleanupFunc, error) {
	nav, err := b.api("webNavigation")
	if err != nil {
		return nil, err
	}
	return addListener(nav.Value().Get("onDOMContentLoaded"), func(args []js.Value) {
		d := jsutil.SingleArg(args)
		src := EventSource{
			TabID:     num(d, "tabId"),
			URL:       str(d, "url"),
			ProcessID: num(d, "processId"),
			FrameID:   num(d, "frameId"),
			TimeStamp: float(d, "timeStamp"),
		}
		runAsync("DOMContentLoaded", func(ctx jsutil.AsyncContext) error {
			return f(ctx, src)
		})
	}), nil
}
