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
	"syscall/js"

	"github.com/google/chrome-webext/go/jsutil"
)

// Directions of messages exchanged with page scripts through
// window.postMessage().
const (
	FromContentScript = "from-content-script"
	FromPageScript    = "from-page-script"
)

// targetOrigin returns the origin of the window, restricting delivery of
// posted messages to the same origin.
func targetOrigin(win js.Value) string {
	loc := win.Get("location")
	return loc.Get("protocol").String() + "//" + loc.Get("host").String()
}

func postPageMessage(win js.Value, direction, event string, content interface{}) {
	o := jsutil.NewObject()
	o.Set("event", event)
	if c := jsutil.ValueOf(content); !c.IsUndefined() {
		o.Set("content", c)
	}
	o.Set("direction", direction)
	win.Call("postMessage", o, targetOrigin(win))
}

// SendToPage posts a message from a content script to the scripts of the page
// it is injected into.
func SendToPage(win js.Value, event string, content interface{}) {
	postPageMessage(win, FromContentScript, event, content)
}

// SendToContentScript posts a message from a page script to the extension's
// content scripts.
func SendToContentScript(win js.Value, event string, content interface{}) {
	postPageMessage(win, FromPageScript, event, content)
}

// acceptPageMessage checks a posted message's data against the expected event
// and direction, returning its content if accepted.
func acceptPageMessage(data js.Value, event, direction string) (js.Value, bool) {
	if !jsutil.IsObject(data) {
		return js.Undefined(), false
	}
	d, e := data.Get("direction"), data.Get("event")
	if d.Type() != js.TypeString || d.String() != direction {
		return js.Undefined(), false
	}
	if e.Type() != js.TypeString || e.String() != event {
		return js.Undefined(), false
	}
	return data.Get("content"), true
}

func subscribePage(win js.Value, event, direction string, handler func(content js.Value)) jsutil.CleanupFunc {
	listener := jsutil.RepeatableFuncOf(func(this js.Value, args []js.Value) interface{} {
		evt := jsutil.SingleArg(args)
		if !evt.Get("source").Equal(win) {
			return nil // Only handle messages posted by this window.
		}
		if content, ok := acceptPageMessage(evt.Get("data"), event, direction); ok {
			handler(content)
		}
		return nil
	})
	win.Call("addEventListener", "message", listener.AsJSFunc())
	return func() {
		win.Call("removeEventListener", "message", listener.AsJSFunc())
		listener.Release()
	}
}

// SubscribePageMessages is used by content scripts to receive messages posted
// by page scripts for the given event. The handler runs on the goroutine
// servicing Javascript callbacks and must not block.
func SubscribePageMessages(win js.Value, event string, handler func(content js.Value)) jsutil.CleanupFunc {
	return subscribePage(win, event, FromPageScript, handler)
}

// SubscribeExtensionMessages is used by page scripts to receive messages
// posted by content scripts for the given event. The handler runs on the
// goroutine servicing Javascript callbacks and must not block.
func SubscribeExtensionMessages(win js.Value, event string, handler func(content js.Value)) jsutil.CleanupFunc {
	return subscribePage(win, event, FromContentScript, handler)
}
