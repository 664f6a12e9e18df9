//go:build js

// Copyright 2018 Google LLC
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

// Package fakes implements fake implementations of the WebExtension APIs to
// ease unit testing.
package fakes

import (
	"errors"
	"syscall/js"

	"github.com/google/chrome-webext/go/chrome"
	"github.com/google/chrome-webext/go/jsutil"
)

var (
	// ErrNoReceiver mirrors the error reported by browsers when a message
	// is sent, but no listener responds to it.
	ErrNoReceiver = errors.New("Could not establish connection. Receiving end does not exist.")
)

// Hub is a fake implementation of the runtime messaging APIs.
type Hub struct {
	receivers []chrome.Receiver
	sent      []js.Value
}

// NewHub returns a fake implementation of the runtime messaging APIs.
func NewHub() *Hub {
	return &Hub{}
}

// AddReceiver adds a receiver to which messages should be delivered.
func (h *Hub) AddReceiver(r chrome.Receiver) jsutil.CleanupFunc {
	h.receivers = append(h.receivers, r)
	return func() {
		for i, o := range h.receivers {
			if o == r {
				h.receivers = append(h.receivers[:i], h.receivers[i+1:]...)
				return
			}
		}
	}
}

// Send delivers the message to the first receiver that handles it. As with
// browsers, it is an error if no receiver handles the message. Receivers are
// called directly; the runtime.onMessage listener is not involved.
func (h *Hub) Send(ctx jsutil.AsyncContext, msg js.Value) (js.Value, error) {
	h.sent = append(h.sent, msg)
	for _, r := range h.receivers {
		if !r.Handles(msg) {
			continue
		}
		rsp, err := r.OnMessage(ctx, msg, js.Null())
		if err != nil {
			return js.Undefined(), jsutil.NewError(err)
		}
		return rsp, nil
	}
	return js.Undefined(), ErrNoReceiver
}

// Sent returns all messages sent through the hub, in order.
func (h *Hub) Sent() []js.Value {
	return h.sent
}
