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

// Package dom provides helpers for manipulating the DOM of extension pages
// and of the web pages content scripts are injected into.
package dom

import (
	"sync"
	"syscall/js"

	"github.com/google/chrome-webext/go/jsutil"
)

var (
	// Document is the document of the current context. It is undefined in
	// contexts without a DOM, such as service workers.
	Document = js.Global().Get("document")
)

// Event is a DOM event.
type Event struct {
	js.Value
}

// Key returns KeyboardEvent.key.
func (e Event) Key() string {
	k := e.Get("key")
	if k.Type() != js.TypeString {
		return ""
	}
	return k.String()
}

// PreventDefault suppresses the browser's default handling of the event.
func (e Event) PreventDefault() {
	e.Call("preventDefault")
}

// StopPropagation stops the event from reaching further listeners.
func (e Event) StopPropagation() {
	e.Call("stopPropagation")
}

// Doc wraps a Document object.
type Doc struct {
	doc js.Value

	mu           sync.Mutex
	interceptors []func(html js.Value)
}

// New returns a Doc for the supplied Document object.
func New(doc js.Value) *Doc {
	return &Doc{doc: doc}
}

// Document returns the underlying Document object.
func (d *Doc) Document() js.Value {
	return d.doc
}

// RemoveChildren removes all children of p.
func RemoveChildren(p js.Value) {
	for p.Call("hasChildNodes").Bool() {
		p.Call("removeChild", p.Get("firstChild"))
	}
}

// NewElement returns a new element of the specified kind.
func (d *Doc) NewElement(kind string) js.Value {
	return d.doc.Call("createElement", kind)
}

// NewText returns a new text node.
func (d *Doc) NewText(text string) js.Value {
	return d.doc.Call("createTextNode", text)
}

// DoClick clicks the element.
func DoClick(o js.Value) {
	o.Call("click")
}

// AddEventListener invokes callback for each event of the specified type on
// target. If capture is set, the listener runs in the capture phase. The
// callback runs on the goroutine servicing Javascript callbacks, so that it
// may suppress the event; it must not block.
func AddEventListener(target js.Value, event string, capture bool, callback func(evt Event)) jsutil.CleanupFunc {
	f := jsutil.RepeatableFuncOf(func(this js.Value, args []js.Value) interface{} {
		callback(Event{jsutil.SingleArg(args)})
		return nil
	})
	opts := jsutil.NewObject()
	opts.Set("capture", capture)
	target.Call("addEventListener", event, f.AsJSFunc(), opts)
	return func() {
		target.Call("removeEventListener", event, f.AsJSFunc(), opts)
		f.Release()
	}
}

// OnClick invokes callback when the element is clicked. The callback runs
// asynchronously and may block.
func OnClick(o js.Value, callback func(ctx jsutil.AsyncContext, evt Event)) jsutil.CleanupFunc {
	return AddEventListener(o, "click", false, func(evt Event) {
		jsutil.Async(func(ctx jsutil.AsyncContext) (js.Value, error) {
			callback(ctx, evt)
			return js.Undefined(), nil
		})
	})
}

func (d *Doc) loaded() bool {
	state := d.doc.Get("readyState")
	return state.Type() == js.TypeString && state.String() != "loading"
}

// OnDOMContentLoaded invokes callback once the document has been loaded. If
// it has already been loaded, callback is invoked immediately. The callback
// runs asynchronously and may block.
func (d *Doc) OnDOMContentLoaded(callback func(ctx jsutil.AsyncContext)) jsutil.CleanupFunc {
	run := func() {
		jsutil.Async(func(ctx jsutil.AsyncContext) (js.Value, error) {
			callback(ctx)
			return js.Undefined(), nil
		})
	}
	if d.loaded() {
		run()
		return func() {}
	}
	return AddEventListener(d.doc, "DOMContentLoaded", false, func(Event) { run() })
}

// DoDOMContentLoaded dispatches the DOMContentLoaded event.
func (d *Doc) DoDOMContentLoaded() {
	event := d.doc.Call("createEvent", "Event")
	event.Call("initEvent", "DOMContentLoaded", true, true)
	d.doc.Call("dispatchEvent", event)
}

// Value returns the value of an input element.
func Value(o js.Value) string {
	return o.Get("value").String()
}

// SetValue sets the value of an input element.
func SetValue(o js.Value, value string) {
	o.Set("value", value)
}

// TextContent returns the text content of the node and its descendants.
func TextContent(o js.Value) string {
	return o.Get("textContent").String()
}

// AppendChild appends child to parent. populate, if non-nil, is invoked
// on the child before it is appended.
func AppendChild(parent, child js.Value, populate func(child js.Value)) {
	if populate != nil {
		populate(child)
	}
	parent.Call("appendChild", child)
}

// GetElement returns the element with the specified ID.
func (d *Doc) GetElement(id string) js.Value {
	return d.doc.Call("getElementById", id)
}

// GetElementsByTag returns the elements with the specified tag.
func (d *Doc) GetElementsByTag(tag string) []js.Value {
	return jsutil.ArrayValues(js.Global().Get("Array").Call("from", d.doc.Call("getElementsByTagName", tag)))
}
