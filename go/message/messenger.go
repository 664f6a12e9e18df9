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

package message

import (
	"errors"
	"fmt"
	"syscall/js"

	"github.com/google/chrome-webext/go/chrome"
	"github.com/google/chrome-webext/go/jsutil"
	"github.com/google/chrome-webext/go/pagetype"
	"github.com/samber/lo"
)

var (
	// ErrNoInspectedTab is returned by devtools pages when no tab is being
	// inspected.
	ErrNoInspectedTab = errors.New("no tabId for inspected window")
	// ErrNoActiveTab is returned when no active tab could be found.
	ErrNoActiveTab = errors.New("no active tab")
)

// Runtime sends messages to the extension's own pages.
//
// It is implemented by chrome.Runtime, and by fakes.Hub for testing.
type Runtime interface {
	Send(ctx jsutil.AsyncContext, msg js.Value) (js.Value, error)
}

// Tabs enumerates tabs and sends messages to the content scripts within them.
//
// It is implemented by chrome.Tabs, and by fakes.Tabs for testing.
type Tabs interface {
	Query(ctx jsutil.AsyncContext, q chrome.TabQuery) ([]chrome.Tab, error)
	SendMessage(ctx jsutil.AsyncContext, tabID int, msg js.Value) (js.Value, error)
}

// Inspector reports the tab being inspected by a devtools page.
//
// It is implemented by chrome.Devtools, and by fakes.Devtools for testing.
type Inspector interface {
	InspectedTabID() (int, bool)
}

// Logger records diagnostics. It is implemented by logger.Logger.
type Logger interface {
	Log(messages ...interface{})
}

type nopLogger struct{}

func (nopLogger) Log(...interface{}) {}

// Messenger sends messages from the current context to other contexts.
type Messenger struct {
	page      pagetype.Type
	runtime   Runtime
	tabs      Tabs
	inspector Inspector
	log       Logger
}

// NewMessenger returns a Messenger for a context of the given page type.
func NewMessenger(page pagetype.Type, runtime Runtime, tabs Tabs, inspector Inspector) *Messenger {
	return &Messenger{
		page:      page,
		runtime:   runtime,
		tabs:      tabs,
		inspector: inspector,
		log:       nopLogger{},
	}
}

// SetLogger sets the logger that records messages sent to tabs. Nothing is
// logged until a logger is set.
func (m *Messenger) SetLogger(l Logger) {
	if l == nil {
		l = nopLogger{}
	}
	m.log = l
}

// Page returns the type of the context the Messenger sends from.
func (m *Messenger) Page() pagetype.Type {
	return m.page
}

// Publish sends a message to the extension's pages. The result is whatever
// the handler subscribed to the message's topic returned. An error is
// returned if the message could not be delivered, e.g. because there is no
// handler, or if the handler failed.
//
// There is no timeout; callers that require one must arrange it themselves.
func (m *Messenger) Publish(ctx jsutil.AsyncContext, msg *Message) (js.Value, error) {
	return m.runtime.Send(ctx, msg.JSValue())
}

// SendToTab sends a message to the content scripts in a tab.
func (m *Messenger) SendToTab(ctx jsutil.AsyncContext, tabID int, msg *Message) (js.Value, error) {
	return m.tabs.SendMessage(ctx, tabID, msg.JSValue())
}

// activeTab returns the active tab in a normal browser window.
func (m *Messenger) activeTab(ctx jsutil.AsyncContext) (chrome.Tab, error) {
	tabs, err := m.tabs.Query(ctx, chrome.TabQuery{
		Active:     lo.ToPtr(true),
		WindowType: lo.ToPtr("normal"),
	})
	if err != nil {
		return chrome.Tab{}, err
	}
	if len(tabs) == 0 {
		return chrome.Tab{}, ErrNoActiveTab
	}
	return tabs[0], nil
}

// SendToActiveTab sends a message to the active tab.
//
// Devtools pages have no access to the tabs API. They send to the inspected
// tab instead, relaying the message through the background page's proxy
// (see ServeProxy).
func (m *Messenger) SendToActiveTab(ctx jsutil.AsyncContext, msg *Message) (js.Value, error) {
	m.log.Log("SendToActiveTab sending", msg.JSValue())

	if m.page.IsDevtools() {
		tabID, ok := m.inspector.InspectedTabID()
		if !ok {
			return js.Undefined(), ErrNoInspectedTab
		}
		req := jsutil.NewObject()
		req.Set("tabId", tabID)
		req.Set("message", msg.JSValue())
		return m.Publish(ctx, New(TopicProxyActiveTab, req))
	}

	tab, err := m.activeTab(ctx)
	if err != nil {
		return js.Undefined(), fmt.Errorf("failed to find active tab: %w", err)
	}
	return m.SendToTab(ctx, tab.ID, msg)
}

// SendToParentTab sends a message to the tab that hosts the current page.
// The active tab in a normal window is assumed to be the parent.
func (m *Messenger) SendToParentTab(ctx jsutil.AsyncContext, msg *Message) (js.Value, error) {
	tab, err := m.activeTab(ctx)
	if err != nil {
		return js.Undefined(), fmt.Errorf("failed to find parent tab: %w", err)
	}
	return m.SendToTab(ctx, tab.ID, msg)
}

// SendToTabs sends a message to each tab matching the query. Tabs are sent to
// one at a time, in the order the browser enumerated them, and a response is
// returned for each. A failure to deliver to one tab does not prevent
// delivery to the others; it is reported in that tab's response instead.
//
// An error is returned only if the tabs could not be enumerated.
func (m *Messenger) SendToTabs(ctx jsutil.AsyncContext, q chrome.TabQuery, msg *Message) ([]Response, error) {
	tabs, err := m.tabs.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query tabs: %w", err)
	}

	rsps := make([]Response, 0, len(tabs))
	for _, tab := range tabs {
		rsp := Response{Tab: tab}
		content, err := m.SendToTab(ctx, tab.ID, msg)
		if err != nil {
			jsutil.LogDebug("SendToTabs: tab %d failed: %v", tab.ID, err)
			rsp.IsError = true
			rsp.Content = jsutil.NewError(err).AsJSValue()
		} else {
			rsp.Content = content
		}
		rsps = append(rsps, rsp)
	}
	return rsps, nil
}

// ServeProxy subscribes the proxy used by devtools pages to reach the
// inspected tab. It should be served by the background page.
func (m *Messenger) ServeProxy(r *Router) error {
	return r.Subscribe(TopicProxyActiveTab, func(ctx jsutil.AsyncContext, msg *Message, _ *Sender) (interface{}, error) {
		if !jsutil.IsObject(msg.Content) {
			return nil, fmt.Errorf("%w: proxy request requires content", ErrInvalidMessage)
		}
		tabID := msg.Content.Get("tabId")
		if tabID.Type() != js.TypeNumber {
			return nil, fmt.Errorf("%w: proxy request requires tabId", ErrInvalidMessage)
		}
		return m.tabs.SendMessage(ctx, tabID.Int(), msg.Content.Get("message"))
	})
}
