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

package demo

import (
	"sync"
	"syscall/js"

	"github.com/google/chrome-webext/go/app"
	"github.com/google/chrome-webext/go/dom"
	"github.com/google/chrome-webext/go/jsutil"
	"github.com/google/chrome-webext/go/keyboard"
	"github.com/google/chrome-webext/go/logger"
	"github.com/google/chrome-webext/go/message"
	"github.com/google/chrome-webext/go/pagetype"
)

const (
	// highlightClass is added to the document element while the highlight
	// is on.
	highlightClass = "webext-demo-highlight"
)

// Content is the module run by content scripts.
type Content struct {
	doc *dom.Doc
	win js.Value
	log logger.Logger

	pageScript string

	mu          sync.Mutex
	highlighted bool
	url         string
}

// NewContent returns the content script module. doc may be nil, in which
// case the keyboard binding is not installed. Page scripts in win may
// request echoes; pass undefined to disable this.
func NewContent(doc *dom.Doc, win js.Value) *Content {
	return &Content{
		doc: doc,
		win: win,
		log: logger.Discard,
	}
}

// WithPageScript injects the script at src into the page once the content
// script is initialized. The script must be web accessible.
func (c *Content) WithPageScript(src string) *Content {
	c.pageScript = src
	return c
}

func (c *Content) Name() string        { return "Content" }
func (c *Content) Page() pagetype.Type { return pagetype.Content }

func (c *Content) Init(ctx jsutil.AsyncContext, env *app.Env, cleanup *jsutil.CleanupFuncs) error {
	c.log = env.Log
	c.url = env.Host.Location

	handlers := map[string]message.HandlerFunc{
		TopicPing:              c.onPing,
		TopicToggle:            c.onToggle,
		message.TopicTabCreate: c.onTabCreate,
	}
	for topic, h := range handlers {
		if err := env.Router.Subscribe(topic, h); err != nil {
			return err
		}
		topic := topic
		cleanup.Add(func() { env.Router.Unsubscribe(topic) })
	}

	if c.doc != nil {
		binding, err := LoadBinding(ctx, NewBinding(env))
		if err != nil {
			env.Log.Log("failed to load binding; using default:", err)
			binding = DefaultBinding
		}
		cleanup.Add(keyboard.Listen(c.doc.Document(), binding, func() {
			env.Log.Log("binding triggered; highlight:", c.toggle())
		}))
	}

	if !c.win.IsUndefined() {
		cleanup.Add(message.SubscribePageMessages(c.win, TopicEcho, func(content js.Value) {
			c.relayEcho(env, content)
		}))
	}
	if c.pageScript != "" && c.doc != nil {
		c.doc.ExecuteFile(c.pageScript)
	}
	return nil
}

// toggle flips the highlight, returning the new state.
func (c *Content) toggle() bool {
	c.mu.Lock()
	c.highlighted = !c.highlighted
	on := c.highlighted
	c.mu.Unlock()

	if c.doc != nil {
		classes := c.doc.Document().Get("documentElement").Get("classList")
		classes.Call("toggle", highlightClass, on)
	}
	if !c.win.IsUndefined() {
		message.SendToPage(c.win, TopicToggle, on)
	}
	return on
}

// Highlighted indicates if the highlight is on.
func (c *Content) Highlighted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.highlighted
}

func (c *Content) onPing(ctx jsutil.AsyncContext, _ *message.Message, _ *message.Sender) (interface{}, error) {
	reply := PingReply{URL: c.url, Highlighted: c.Highlighted()}
	if c.doc != nil {
		reply.Title = c.doc.Document().Get("title").String()
	}
	return reply, nil
}

func (c *Content) onToggle(ctx jsutil.AsyncContext, _ *message.Message, _ *message.Sender) (interface{}, error) {
	return c.toggle(), nil
}

func (c *Content) onTabCreate(ctx jsutil.AsyncContext, msg *message.Message, _ *message.Sender) (interface{}, error) {
	var created struct {
		TabID int `js:"tabId"`
	}
	if err := msg.Decode(&created); err != nil {
		return nil, err
	}
	c.log.Log("opened by the extension as tab", created.TabID)
	return nil, nil
}

// relayEcho forwards a page script's echo request to the background page,
// and posts the reply back to the page.
func (c *Content) relayEcho(env *app.Env, content js.Value) {
	jsutil.Async(func(ctx jsutil.AsyncContext) (js.Value, error) {
		reply, err := env.Messenger.Publish(ctx, message.New(TopicEcho, content))
		if err != nil {
			c.log.Log("echo failed:", err)
			return js.Undefined(), nil
		}
		message.SendToPage(c.win, TopicEcho, reply)
		return js.Undefined(), nil
	})
}
