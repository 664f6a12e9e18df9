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

// Package testing provides utilities for using the DOM in unit tests.
package testing

import (
	"syscall/js"
)

// funcs holds the Javascript helpers backing this package. Documents are
// built with jsdom, which the node.js wasm test runner must have installed.
var funcs = js.Global().Call("eval", `({
	newDoc: function(html) {
		const jsdom = require("jsdom");
		const virtualConsole = new jsdom.VirtualConsole();
		virtualConsole.sendTo(console);
		return new jsdom.JSDOM(html, { virtualConsole }).window.document;
	},
	dispatchKey: function(target, type, key) {
		const view = target.ownerDocument.defaultView;
		const evt = new view.KeyboardEvent(type, { key, bubbles: true, cancelable: true });
		return !target.dispatchEvent(evt);
	},
})`)

// NewDocForTesting returns a Document object that can be used for testing.
// The DOM in the Document object is instantiated using the supplied HTML.
func NewDocForTesting(html string) js.Value {
	return funcs.Call("newDoc", html)
}

// KeyEvent dispatches a bubbling, cancelable keyboard event of the given
// type ("keydown" or "keyup") on target. It reports whether a listener
// prevented the event's default handling.
func KeyEvent(target js.Value, typ, key string) bool {
	return funcs.Call("dispatchKey", target, typ, key).Bool()
}

// KeyDown dispatches a keydown event for each key, in order.
func KeyDown(target js.Value, keys ...string) {
	for _, k := range keys {
		KeyEvent(target, "keydown", k)
	}
}
