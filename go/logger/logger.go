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

// Package logger provides named loggers whose output is gathered in the
// background page's console, whichever context they are used from.
package logger

import (
	"syscall/js"

	"github.com/google/chrome-webext/go/jsutil"
	"github.com/google/chrome-webext/go/message"
	"github.com/google/chrome-webext/go/pagetype"
	"github.com/samber/lo"
)

// Logger writes log messages.
type Logger interface {
	// Log writes the supplied messages. It never blocks, and delivery
	// failures are not reported to the caller.
	Log(messages ...interface{})
}

// Console prints values to a console. jsutil.ConsoleLog is the console of
// the current context.
type Console func(vals ...js.Value)

// Publisher sends messages to the background page.
//
// It is implemented by message.Messenger.
type Publisher interface {
	Publish(ctx jsutil.AsyncContext, msg *message.Message) (js.Value, error)
}

// New returns a logger for a context of the given page type. Loggers in the
// background page print to its console; elsewhere, messages are published to
// the background page, which prints them if it serves the logger topic.
//
// origin describes the context in published messages; see
// pagetype.BriefURL.
func New(id string, page pagetype.Type, origin string, pub Publisher) Logger {
	if page == pagetype.Background {
		return NewConsole(id, jsutil.ConsoleLog)
	}
	return &remote{id: id, origin: origin, pub: pub}
}

// consoleLogger prints to a console.
type consoleLogger struct {
	id      string
	console Console
}

// NewConsole returns a logger that prints to the supplied console. Each
// line is prefixed with {id}.
func NewConsole(id string, console Console) Logger {
	return &consoleLogger{id: id, console: console}
}

func values(messages []interface{}) []js.Value {
	return lo.Map(messages, func(m interface{}, _ int) js.Value {
		return jsutil.ValueOf(m)
	})
}

func (c *consoleLogger) Log(messages ...interface{}) {
	prefix := jsutil.NewObject()
	prefix.Set("id", c.id)
	c.console(append([]js.Value{prefix}, values(messages)...)...)
}

// remote publishes to the background page.
type remote struct {
	id     string
	origin string
	pub    Publisher
}

func (r *remote) Log(messages ...interface{}) {
	content := jsutil.NewObject()
	content.Set("loggerId", r.id)
	content.Set("messages", jsutil.NewArray(values(messages)))
	msg := message.New(message.TopicLogger, content)
	msg.Origin = r.origin

	jsutil.Async(func(ctx jsutil.AsyncContext) (js.Value, error) {
		if _, err := r.pub.Publish(ctx, msg); err != nil {
			jsutil.LogError("Logger %s: failed to publish: %v", r.id, err)
		}
		return js.Undefined(), nil
	})
}

// Serve subscribes the receiver for messages published by loggers in other
// contexts. Received messages are printed to console, prefixed with
// {id, origin}. It should be called in the background page.
func Serve(r *message.Router, console Console) error {
	return r.Subscribe(message.TopicLogger, func(ctx jsutil.AsyncContext, msg *message.Message, _ *message.Sender) (interface{}, error) {
		if !jsutil.IsObject(msg.Content) {
			return nil, message.ErrInvalidMessage
		}
		prefix := jsutil.NewObject()
		prefix.Set("id", msg.Content.Get("loggerId"))
		prefix.Set("origin", msg.Origin)

		vals := []js.Value{prefix}
		if msgs := msg.Content.Get("messages"); jsutil.IsArray(msgs) {
			vals = append(vals, jsutil.ArrayValues(msgs)...)
		}
		console(vals...)
		return nil, nil
	})
}

// Discard is a logger that drops all messages.
var Discard Logger = discard{}

type discard struct{}

func (discard) Log(...interface{}) {}
