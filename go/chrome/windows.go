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
	"fmt"
	"syscall/js"

	"github.com/google/chrome-webext/go/jsutil"
	"github.com/norunners/vert"
)

const (
	// defaultWindowType is the type of window created when none is
	// specified.
	defaultWindowType = "popup"
)

// WindowCreate describes a window to be created. Zero-valued fields are left
// to the browser's defaults, except Type which defaults to a popup.
type WindowCreate struct {
	URL          []string `js:"url"`
	TabID        int      `js:"tabId"`
	Left         int      `js:"left"`
	Top          int      `js:"top"`
	Width        int      `js:"width"`
	Height       int      `js:"height"`
	Focused      bool     `js:"focused"`
	Incognito    bool     `js:"incognito"`
	TitlePreface string   `js:"titlePreface"`
	Type         string   `js:"type"`
	State        string   `js:"state"`
}

// JSValue returns the properties object for windows.create().
func (c WindowCreate) JSValue() js.Value {
	if c.Type == "" {
		c.Type = defaultWindowType
	}
	o := compact(vert.ValueOf(c).JSValue())
	if len(c.URL) == 0 {
		o.Delete("url")
	}
	return o
}

// Window describes a browser window.
type Window struct {
	ID   int
	Tabs []Tab

	raw js.Value
}

// WindowFromValue reads a Window from its Javascript representation.
func WindowFromValue(v js.Value) Window {
	w := Window{ID: num(v, "id"), raw: v}
	if tabs := v.Get("tabs"); jsutil.IsObject(tabs) {
		for _, t := range jsutil.ArrayValues(tabs) {
			w.Tabs = append(w.Tabs, TabFromValue(t))
		}
	}
	return w
}

// JSValue returns the Javascript representation of the window.
func (w Window) JSValue() js.Value {
	if jsutil.IsObject(w.raw) {
		return w.raw
	}
	o := jsutil.NewObject()
	o.Set("id", w.ID)
	var tabs []js.Value
	for _, t := range w.Tabs {
		tabs = append(tabs, t.JSValue())
	}
	o.Set("tabs", jsutil.NewArray(tabs))
	return o
}

// Windows wraps the windows API.
type Windows struct {
	api API
}

// Create opens a new window.
func (w *Windows) Create(ctx jsutil.AsyncContext, c WindowCreate) (Window, error) {
	if !w.api.Available() {
		return Window{}, fmt.Errorf("windows: %w", ErrUnavailable)
	}
	val, err := w.api.Call(ctx, "create", c.JSValue())
	if err != nil {
		return Window{}, fmt.Errorf("failed to create window: %w", err)
	}
	return WindowFromValue(val), nil
}
