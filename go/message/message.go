//go:build js

// Copyright 2017 Google LLC
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

// Package message implements publish/subscribe messaging between the
// contexts of an extension (background page, content scripts, devtools
// panels and other extension pages).
//
// Messages use a small envelope:
//
//	{event: string, content?: any, origin?: string}
//
// where event is the topic used for dispatch.
package message

import (
	"errors"
	"fmt"
	"syscall/js"

	"github.com/google/chrome-webext/go/chrome"
	"github.com/google/chrome-webext/go/jsutil"
)

// Topics used by the built-in services.
const (
	TopicLogger         = "webextension.logger"
	TopicStoreSetValue  = "webextension.store.setValue"
	TopicStoreGetValue  = "webextension.store.getValue"
	TopicProxyActiveTab = "webextension.proxy.sendMessageActiveTab"
	TopicTabCreate      = "webextension.tab.create"
)

var (
	// ErrInvalidMessage indicates a value that does not follow the message
	// envelope.
	ErrInvalidMessage = errors.New("invalid message")
)

// Message is the envelope exchanged between contexts.
type Message struct {
	// Event is the topic used for dispatch.
	Event string
	// Content is the payload. It is undefined if absent.
	Content js.Value
	// Origin optionally describes the sender, e.g. for log messages.
	Origin string
}

// New returns a message for the given topic. Content is converted to a
// Javascript value; nil content is omitted from the envelope.
func New(event string, content interface{}) *Message {
	return &Message{
		Event:   event,
		Content: jsutil.ValueOf(content),
	}
}

// Parse reads a message from its Javascript representation.
func Parse(v js.Value) (*Message, error) {
	if !jsutil.IsObject(v) {
		return nil, fmt.Errorf("%w: expected object, got %s", ErrInvalidMessage, v.Type())
	}
	event := v.Get("event")
	if event.Type() != js.TypeString {
		return nil, fmt.Errorf("%w: event must be a string", ErrInvalidMessage)
	}
	m := &Message{
		Event:   event.String(),
		Content: v.Get("content"),
	}
	if origin := v.Get("origin"); origin.Type() == js.TypeString {
		m.Origin = origin.String()
	}
	return m, nil
}

// JSValue returns the Javascript representation of the message.
func (m *Message) JSValue() js.Value {
	o := jsutil.NewObject()
	o.Set("event", m.Event)
	if !m.Content.IsUndefined() {
		o.Set("content", m.Content)
	}
	if m.Origin != "" {
		o.Set("origin", m.Origin)
	}
	return o
}

// Decode converts the message content into the Go value pointed to by
// target.
func (m *Message) Decode(target interface{}) error {
	if err := jsutil.AssignTo(m.Content, target); err != nil {
		return fmt.Errorf("failed to decode content of %s: %w", m.Event, err)
	}
	return nil
}

// Response is the result of relaying a message to a single tab.
type Response struct {
	// Tab is the tab the message was sent to.
	Tab chrome.Tab
	// Content is the tab's reply, or the error if IsError is set.
	Content js.Value
	// IsError indicates that sending to the tab failed.
	IsError bool
}

// JSValue returns the Javascript representation of the response:
//
//	{tab, content, isError}
func (r Response) JSValue() js.Value {
	o := jsutil.NewObject()
	o.Set("tab", r.Tab.JSValue())
	o.Set("content", r.Content)
	o.Set("isError", r.IsError)
	return o
}

// Sender describes the context that sent a message. See
// runtime.MessageSender.
type Sender struct {
	// Tab is the tab that sent the message, if sent from a content
	// script. HasTab indicates if it is set.
	Tab    chrome.Tab
	HasTab bool
	// FrameID is the frame that sent the message.
	FrameID int
	// ID is the ID of the sending extension.
	ID string
	// URL is the URL of the sending page or frame.
	URL string
}

// SenderFromValue reads a Sender from its Javascript representation. Null or
// undefined values yield an empty Sender.
func SenderFromValue(v js.Value) *Sender {
	s := &Sender{}
	if !jsutil.IsObject(v) {
		return s
	}
	if tab := v.Get("tab"); jsutil.IsObject(tab) {
		s.Tab = chrome.TabFromValue(tab)
		s.HasTab = true
	}
	if id := v.Get("frameId"); id.Type() == js.TypeNumber {
		s.FrameID = id.Int()
	}
	if id := v.Get("id"); id.Type() == js.TypeString {
		s.ID = id.String()
	}
	if u := v.Get("url"); u.Type() == js.TypeString {
		s.URL = u.String()
	}
	return s
}
