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

package fakes

import (
	"fmt"
	"sync"
	"syscall/js"

	"github.com/google/chrome-webext/go/chrome"
	"github.com/google/chrome-webext/go/jsutil"
)

type fakeTab struct {
	tab      chrome.Tab
	receiver chrome.Receiver
	err      error
	sent     []js.Value
}

// Tabs is a fake implementation of the tabs API. Tabs are enumerated in the
// order they were added.
type Tabs struct {
	// Receiver listens in tabs opened by Create. If nil, no content
	// script listens in created tabs.
	Receiver chrome.Receiver
	// Load indicates if tabs opened by Create complete loading
	// immediately. Otherwise, they remain loading until Complete is
	// called.
	Load bool

	mu        sync.Mutex
	tabs      []*fakeTab
	queryErr  error
	nextID    int
	listeners map[int]func(tabID int, change chrome.TabChange, tab chrome.Tab)
}

// NewTabs returns a fake implementation of the tabs API.
func NewTabs() *Tabs {
	return &Tabs{
		nextID:    1000,
		listeners: map[int]func(int, chrome.TabChange, chrome.Tab){},
	}
}

// Add adds a tab whose content scripts are represented by the supplied
// receiver. The receiver may be nil, in which case no content script
// listens in the tab.
func (t *Tabs) Add(tab chrome.Tab, r chrome.Receiver) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tabs = append(t.tabs, &fakeTab{tab: tab, receiver: r})
}

// SetError forces messages sent to the specified tab to fail.
func (t *Tabs) SetError(tabID int, err error) {
	if ft := t.find(tabID); ft != nil {
		ft.err = err
	}
}

// SetQueryError forces queries to fail.
func (t *Tabs) SetQueryError(err error) {
	t.queryErr = err
}

// Sent returns the messages sent to the specified tab.
func (t *Tabs) Sent(tabID int) []js.Value {
	if ft := t.find(tabID); ft != nil {
		return ft.sent
	}
	return nil
}

func (t *Tabs) find(tabID int) *fakeTab {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, ft := range t.tabs {
		if ft.tab.ID == tabID {
			return ft
		}
	}
	return nil
}

func matches(tab chrome.Tab, q chrome.TabQuery) bool {
	if q.Active != nil && tab.Active != *q.Active {
		return false
	}
	if q.Pinned != nil && tab.Pinned != *q.Pinned {
		return false
	}
	if q.WindowID != nil && tab.WindowID != *q.WindowID {
		return false
	}
	if q.Title != nil && tab.Title != *q.Title {
		return false
	}
	if len(q.URL) > 0 {
		found := false
		for _, u := range q.URL {
			found = found || u == tab.URL
		}
		if !found {
			return false
		}
	}
	return true
}

// Query implements tabs.query(). Only a subset of the filters is honored:
// active, pinned, windowId, title and url (exact match).
func (t *Tabs) Query(ctx jsutil.AsyncContext, q chrome.TabQuery) ([]chrome.Tab, error) {
	if t.queryErr != nil {
		return nil, t.queryErr
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	var res []chrome.Tab
	for _, ft := range t.tabs {
		if matches(ft.tab, q) {
			res = append(res, ft.tab)
		}
	}
	return res, nil
}

// SendMessage implements tabs.sendMessage().
func (t *Tabs) SendMessage(ctx jsutil.AsyncContext, tabID int, msg js.Value) (js.Value, error) {
	ft := t.find(tabID)
	if ft == nil {
		return js.Undefined(), fmt.Errorf("Invalid tab ID: %d", tabID)
	}
	ft.sent = append(ft.sent, msg)
	if ft.err != nil {
		return js.Undefined(), ft.err
	}
	if ft.receiver == nil || !ft.receiver.Handles(msg) {
		return js.Undefined(), ErrNoReceiver
	}
	rsp, err := ft.receiver.OnMessage(ctx, msg, js.Null())
	if err != nil {
		return js.Undefined(), jsutil.NewError(err)
	}
	return rsp, nil
}

// Create implements tabs.create(). The new tab is opened in the last
// position, with the status "loading" unless Load is set.
func (t *Tabs) Create(ctx jsutil.AsyncContext, c chrome.TabCreate) (chrome.Tab, error) {
	t.mu.Lock()
	t.nextID++
	tab := chrome.Tab{
		ID:       t.nextID,
		Index:    len(t.tabs),
		WindowID: c.WindowID,
		Active:   c.Active,
		Pinned:   c.Pinned,
		URL:      c.URL,
		Status:   "loading",
	}
	t.tabs = append(t.tabs, &fakeTab{tab: tab, receiver: t.Receiver})
	t.mu.Unlock()

	if t.Load {
		t.Complete(tab.ID)
	}
	return tab, nil
}

// OnUpdated implements tabs.onUpdated.addListener(). Listeners are only
// notified by Complete.
func (t *Tabs) OnUpdated(listener func(tabID int, change chrome.TabChange, tab chrome.Tab)) jsutil.CleanupFunc {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextID++
	id := t.nextID
	t.listeners[id] = listener
	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		delete(t.listeners, id)
	}
}

// Complete marks the tab as having completed loading, and notifies
// listeners.
func (t *Tabs) Complete(tabID int) {
	ft := t.find(tabID)
	if ft == nil {
		return
	}
	t.mu.Lock()
	ft.tab.Status = "complete"
	tab := ft.tab
	listeners := make([]func(int, chrome.TabChange, chrome.Tab), 0, len(t.listeners))
	for _, l := range t.listeners {
		listeners = append(listeners, l)
	}
	t.mu.Unlock()

	for _, l := range listeners {
		l(tabID, chrome.TabChange{Status: "complete"}, tab)
	}
}

// Listeners returns the number of registered tabs.onUpdated listeners.
func (t *Tabs) Listeners() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.listeners)
}

// Windows is a fake implementation of the windows API. Each window is opened
// with a single tab, created through the associated Tabs.
type Windows struct {
	tabs    *Tabs
	created []chrome.WindowCreate
	nextID  int
}

// NewWindows returns a fake implementation of the windows API, which opens
// tabs in t.
func NewWindows(t *Tabs) *Windows {
	return &Windows{tabs: t, nextID: 1}
}

// Create implements windows.create().
func (w *Windows) Create(ctx jsutil.AsyncContext, c chrome.WindowCreate) (chrome.Window, error) {
	w.created = append(w.created, c)
	w.nextID++
	tc := chrome.TabCreate{WindowID: w.nextID, Active: true}
	if len(c.URL) > 0 {
		tc.URL = c.URL[0]
	}
	tab, err := w.tabs.Create(ctx, tc)
	if err != nil {
		return chrome.Window{}, err
	}
	return chrome.Window{ID: w.nextID, Tabs: []chrome.Tab{tab}}, nil
}

// Created returns the windows that were requested.
func (w *Windows) Created() []chrome.WindowCreate {
	return w.created
}

// Devtools is a fake implementation of devtools.inspectedWindow.
type Devtools struct {
	// TabID is the ID of the inspected tab.
	TabID int
	// Inspecting indicates if a tab is being inspected.
	Inspecting bool
}

// InspectedTabID implements chrome.Devtools.InspectedTabID().
func (d *Devtools) InspectedTabID() (int, bool) {
	return d.TabID, d.Inspecting
}
