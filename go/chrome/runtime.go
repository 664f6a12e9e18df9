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
)

// Receiver defines methods sufficient to receive messages and send
// responses over the runtime messaging channel.
type Receiver interface {
	// Handles indicates if the receiver will respond to the message.
	// Messages that are not handled are left for other listeners.
	Handles(msg js.Value) bool

	// OnMessage handles the message, returning the response that is sent
	// back to the sender.
	OnMessage(ctx jsutil.AsyncContext, msg js.Value, sender js.Value) (js.Value, error)
}

// Runtime wraps the runtime API.
type Runtime struct {
	api API
}

// ID returns the extension's ID.
func (r *Runtime) ID() string {
	return str(r.api.Value(), "id")
}

// GetURL converts a path relative to the extension's install directory to a
// fully-qualified URL.
func (r *Runtime) GetURL(path string) string {
	return r.api.Value().Call("getURL", path).String()
}

// Send sends a message to the extension's own pages. The response is
// whatever the handling receiver returned.  See:
//
//	https://developer.chrome.com/docs/extensions/reference/runtime/#method-sendMessage
func (r *Runtime) Send(ctx jsutil.AsyncContext, msg js.Value) (js.Value, error) {
	rsp, err := r.api.Call(ctx, "sendMessage", msg)
	if err == nil {
		err = replyError(rsp)
	}
	if err != nil {
		return js.Undefined(), fmt.Errorf("failed to send message: %w", err)
	}
	return rsp, nil
}

// FetchExtensionFile returns the text of a file packaged with the extension.
// The path is relative to the extension's install directory.
func (r *Runtime) FetchExtensionFile(ctx jsutil.AsyncContext, path string) (string, error) {
	url := r.GetURL(path)
	rsp, err := jsutil.AsPromise(js.Global().Call("fetch", url)).Await(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	if !rsp.Get("ok").Truthy() {
		return "", fmt.Errorf("failed to fetch %s: status %d", url, num(rsp, "status"))
	}
	text, err := jsutil.AsPromise(rsp.Call("text")).Await(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", url, err)
	}
	return text.String(), nil
}

// AddReceiver registers a receiver with runtime.onMessage. The listener
// returns true for handled messages, which keeps the channel open until the
// reply is passed to sendResponse. A receiver's error is sent as a rejection
// reply, which Send returns as an error. Messages the receiver does not
// handle are left for other listeners. The returned function removes the
// listener.
func (r *Runtime) AddReceiver(rcv Receiver) jsutil.CleanupFunc {
	if !r.api.Available() {
		return func() {}
	}
	listener := jsutil.RepeatableFuncOf(func(this js.Value, args []js.Value) interface{} {
		var msg, sender, sendResponse js.Value
		jsutil.ExpandArgs(args, &msg, &sender, &sendResponse)
		if !rcv.Handles(msg) {
			return nil
		}
		jsutil.Async(func(ctx jsutil.AsyncContext) (js.Value, error) {
			return rcv.OnMessage(ctx, msg, sender)
		}).Then(
			func(value js.Value) { sendResponse.Invoke(value) },
			func(reason js.Value) { sendResponse.Invoke(rejection(reason)) },
		)
		return true
	})

	onMessage := r.api.Value().Get("onMessage")
	onMessage.Call("addListener", listener.AsJSFunc())
	return func() {
		onMessage.Call("removeListener", listener.AsJSFunc())
		listener.Release()
	}
}
