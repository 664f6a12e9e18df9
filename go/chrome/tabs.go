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
	"github.com/google/chrome-webext/go/pagetype"
	"github.com/norunners/vert"
)

// Tab describes a browser tab.  See:
//
//	https://developer.mozilla.org/en-US/docs/Mozilla/Add-ons/WebExtensions/API/tabs/Tab
type Tab struct {
	ID          int
	Index       int
	WindowID    int
	Active      bool
	Pinned      bool
	Highlighted bool
	Incognito   bool
	URL         string
	Title       string
	Status      string

	// raw is the object supplied by the browser, if any.
	raw js.Value
}

// TabFromValue reads a Tab from its Javascript representation. Properties
// that are absent (e.g., url without the tabs permission) are left empty.
func TabFromValue(v js.Value) Tab {
	if !jsutil.IsObject(v) {
		return Tab{raw: js.Undefined()}
	}
	return Tab{
		ID:          num(v, "id"),
		Index:       num(v, "index"),
		WindowID:    num(v, "windowId"),
		Active:      boolean(v, "active"),
		Pinned:      boolean(v, "pinned"),
		Highlighted: boolean(v, "highlighted"),
		Incognito:   boolean(v, "incognito"),
		URL:         str(v, "url"),
		Title:       str(v, "title"),
		Status:      str(v, "status"),
		raw:         v,
	}
}

// JSValue returns the Javascript representation of the tab. The browser's own
// object is returned when available.
func (t Tab) JSValue() js.Value {
	if jsutil.IsObject(t.raw) {
		return t.raw
	}
	o := jsutil.NewObject()
	o.Set("id", t.ID)
	o.Set("index", t.Index)
	o.Set("windowId", t.WindowID)
	o.Set("active", t.Active)
	o.Set("pinned", t.Pinned)
	o.Set("highlighted", t.Highlighted)
	o.Set("incognito", t.Incognito)
	if t.URL != "" {
		o.Set("url", t.URL)
	}
	if t.Title != "" {
		o.Set("title", t.Title)
	}
	if t.Status != "" {
		o.Set("status", t.Status)
	}
	return o
}

// TabInfo is a short description of a tab, suitable for logs.
type TabInfo struct {
	Title string `js:"title"`
	URL   string `js:"url"`
}

// Info returns the tab's title and a brief form of its URL.
func (t Tab) Info() TabInfo {
	info := TabInfo{Title: t.Title}
	if t.URL != "" {
		info.URL = pagetype.BriefURL(t.URL, 2)
	}
	return info
}

// TabQuery filters tabs. It is passed to tabs.query() as-is; only fields that
// are set are included in the query.
type TabQuery struct {
	Active            *bool
	Audible           *bool
	CookieStoreID     *string
	CurrentWindow     *bool
	Discarded         *bool
	Highlighted       *bool
	Index             *int
	Muted             *bool
	LastFocusedWindow *bool
	Pinned            *bool
	Status            *string
	Title             *string
	URL               []string
	WindowID          *int
	WindowType        *string
}

// JSValue returns the query object for tabs.query().
func (q TabQuery) JSValue() js.Value {
	o := jsutil.NewObject()
	setBool := func(key string, b *bool) {
		if b != nil {
			o.Set(key, *b)
		}
	}
	setStr := func(key string, s *string) {
		if s != nil {
			o.Set(key, *s)
		}
	}
	setInt := func(key string, i *int) {
		if i != nil {
			o.Set(key, *i)
		}
	}
	setBool("active", q.Active)
	setBool("audible", q.Audible)
	setStr("cookieStoreId", q.CookieStoreID)
	setBool("currentWindow", q.CurrentWindow)
	setBool("discarded", q.Discarded)
	setBool("highlighted", q.Highlighted)
	setInt("index", q.Index)
	setBool("muted", q.Muted)
	setBool("lastFocusedWindow", q.LastFocusedWindow)
	setBool("pinned", q.Pinned)
	setStr("status", q.Status)
	setStr("title", q.Title)
	switch len(q.URL) {
	case 0:
	case 1:
		o.Set("url", q.URL[0])
	default:
		o.Set("url", vert.ValueOf(q.URL).JSValue())
	}
	setInt("windowId", q.WindowID)
	setStr("windowType", q.WindowType)
	return o
}

// TabCreate describes a tab to be created.  Zero-valued fields are left to
// the browser's defaults.
type TabCreate struct {
	Active        bool   `js:"active"`
	CookieStoreID string `js:"cookieStoreId"`
	Index         int    `js:"index"`
	OpenerTabID   int    `js:"openerTabId"`
	Pinned        bool   `js:"pinned"`
	URL           string `js:"url"`
	WindowID      int    `js:"windowId"`
}

// JSValue returns the properties object for tabs.create().
func (c TabCreate) JSValue() js.Value {
	return compact(vert.ValueOf(c).JSValue())
}

// TabChange lists the properties of a tab that changed. See
// tabs.onUpdated.
type TabChange struct {
	Status string
	URL    string
	Title  string
}

// Tabs wraps the tabs API.
type Tabs struct {
	api API
}

func (t *Tabs) available() error {
	if !t.api.Available() {
		return fmt.Errorf("tabs: %w", ErrUnavailable)
	}
	return nil
}

// Query returns the tabs that match the query, in the order enumerated by
// the browser.
func (t *Tabs) Query(ctx jsutil.AsyncContext, q TabQuery) ([]Tab, error) {
	if err := t.available(); err != nil {
		return nil, err
	}
	val, err := t.api.Call(ctx, "query", q.JSValue())
	if err != nil {
		return nil, fmt.Errorf("failed to query tabs: %w", err)
	}
	var tabs []Tab
	for _, v := range jsutil.ArrayValues(val) {
		tabs = append(tabs, TabFromValue(v))
	}
	return tabs, nil
}

// SendMessage sends a message to the content scripts in the specified tab.
func (t *Tabs) SendMessage(ctx jsutil.AsyncContext, tabID int, msg js.Value) (js.Value, error) {
	if err := t.available(); err != nil {
		return js.Undefined(), err
	}
	rsp, err := t.api.Call(ctx, "sendMessage", tabID, msg)
	if err == nil {
		err = replyError(rsp)
	}
	if err != nil {
		return js.Undefined(), fmt.Errorf("failed to send message to tab %d: %w", tabID, err)
	}
	return rsp, nil
}

// Create opens a new tab.
func (t *Tabs) Create(ctx jsutil.AsyncContext, c TabCreate) (Tab, error) {
	if err := t.available(); err != nil {
		return Tab{}, err
	}
	val, err := t.api.Call(ctx, "create", c.JSValue())
	if err != nil {
		return Tab{}, fmt.Errorf("failed to create tab: %w", err)
	}
	return TabFromValue(val), nil
}

// Get returns the tab with the specified ID.
func (t *Tabs) Get(ctx jsutil.AsyncContext, tabID int) (Tab, error) {
	if err := t.available(); err != nil {
		return Tab{}, err
	}
	val, err := t.api.Call(ctx, "get", tabID)
	if err != nil {
		return Tab{}, fmt.Errorf("failed to get tab %d: %w", tabID, err)
	}
	return TabFromValue(val), nil
}

// OnUpdated registers a listener for tabs.onUpdated. The listener runs on
// the goroutine servicing Javascript callbacks and must not block. The
// returned function removes the listener.
func (t *Tabs) OnUpdated(listener func(tabID int, change TabChange, tab Tab)) jsutil.CleanupFunc {
	if t.available() != nil {
		return func() {}
	}
	return addListener(t.api.Value().Get("onUpdated"), func(args []js.Value) {
		var tabID, change, tab js.Value
		jsutil.ExpandArgs(args, &tabID, &change, &tab)
		listener(
			tabID.Int(),
			TabChange{
				Status: str(change, "status"),
				URL:    str(change, "url"),
				Title:  str(change, "title"),
			},
			TabFromValue(tab))
	})
}

// addListener adds a listener to a WebExtension event object. The returned
// function removes the listener.
func addListener(event js.Value, f func(args []js.Value)) jsutil.CleanupFunc {
	listener := jsutil.RepeatableFuncOf(func(this js.Value, args []js.Value) interface{} {
		f(args)
		return nil
	})
	event.Call("addListener", listener.AsJSFunc())
	return func() {
		event.Call("removeListener", listener.AsJSFunc())
		listener.Release()
	}
}

// compact removes properties holding zero values (false, 0, "") so that the
// browser applies its own defaults.
func compact(o js.Value) js.Value {
	keys, err := jsutil.ObjectKeys(o)
	if err != nil {
		return o
	}
	for _, k := range keys {
		v := o.Get(k)
		switch v.Type() {
		case js.TypeBoolean:
			if !v.Bool() {
				o.Delete(k)
			}
		case js.TypeNumber:
			if v.Float() == 0 {
				o.Delete(k)
			}
		case js.TypeString:
			if v.String() == "" {
				o.Delete(k)
			}
		case js.TypeUndefined, js.TypeNull:
			o.Delete(k)
		}
	}
	return o
}
