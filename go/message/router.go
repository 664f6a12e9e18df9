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
	"sort"
	"sync"
	"syscall/js"

	"github.com/google/chrome-webext/go/jsutil"
	"github.com/samber/lo"
)

var (
	// ErrDuplicateTopic is returned when subscribing to a topic that
	// already has a handler.
	ErrDuplicateTopic = errors.New("topic already has a handler")
	// ErrEmptyTopic is returned when subscribing to the empty topic.
	ErrEmptyTopic = errors.New("topic must not be empty")
)

// HandlerFunc handles a message received on a topic. The returned value is
// converted with jsutil.ValueOf and delivered to the sender; a returned
// error rejects the sender's request.
//
// Handlers are run with an AsyncContext, and the reply is always delivered
// asynchronously, whether or not the handler blocks: the runtime listener
// keeps the channel open until the handler returns.
type HandlerFunc func(ctx jsutil.AsyncContext, msg *Message, sender *Sender) (interface{}, error)

// Router dispatches messages to the handler registered for their topic. Each
// topic has at most one handler.
//
// Router implements the chrome.Receiver interface.
type Router struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
}

// NewRouter returns a Router with no subscriptions.
func NewRouter() *Router {
	return &Router{
		handlers: map[string]HandlerFunc{},
	}
}

// Subscribe registers a handler for a topic. Registering a second handler
// for the same topic is an error.
func (r *Router) Subscribe(topic string, h HandlerFunc) error {
	if topic == "" {
		return ErrEmptyTopic
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, present := r.handlers[topic]; present {
		return fmt.Errorf("%w: %s", ErrDuplicateTopic, topic)
	}
	r.handlers[topic] = h
	return nil
}

// Unsubscribe removes the handler for a topic, if any.
func (r *Router) Unsubscribe(topic string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, topic)
}

// Topics returns the subscribed topics in sorted order.
func (r *Router) Topics() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	topics := lo.Keys(r.handlers)
	sort.Strings(topics)
	return topics
}

func (r *Router) lookup(msg js.Value) (*Message, HandlerFunc, bool) {
	m, err := Parse(msg)
	if err != nil {
		return nil, nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[m.Event]
	return m, h, ok
}

// Handles implements chrome.Receiver.Handles(). Only messages for subscribed
// topics are handled; everything else is left for other listeners.
func (r *Router) Handles(msg js.Value) bool {
	_, _, ok := r.lookup(msg)
	return ok
}

// OnMessage implements chrome.Receiver.OnMessage().
func (r *Router) OnMessage(ctx jsutil.AsyncContext, msg js.Value, sender js.Value) (js.Value, error) {
	m, h, ok := r.lookup(msg)
	if !ok {
		return js.Undefined(), fmt.Errorf("%w: no handler", ErrInvalidMessage)
	}

	rsp, err := h(ctx, m, SenderFromValue(sender))
	if err != nil {
		jsutil.LogDebug("Router: handler for %s failed: %v", m.Event, err)
		return js.Undefined(), err
	}
	return jsutil.ValueOf(rsp), nil
}
