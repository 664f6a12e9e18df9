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

package dom

import (
	"syscall/js"

	"github.com/google/chrome-webext/go/jsutil"
)

// MutationConfig is the MutationObserverInit dictionary.
type MutationConfig struct {
	Attributes            bool
	AttributeOldValue     bool
	CharacterData         bool
	CharacterDataOldValue bool
	ChildList             bool
	Subtree               bool
}

// AllMutations observes every kind of change to a subtree.
var AllMutations = MutationConfig{
	Attributes:            true,
	AttributeOldValue:     true,
	CharacterData:         true,
	CharacterDataOldValue: true,
	ChildList:             true,
	Subtree:               true,
}

func (c MutationConfig) jsValue() js.Value {
	o := jsutil.NewObject()
	o.Set("attributes", c.Attributes)
	o.Set("attributeOldValue", c.AttributeOldValue)
	o.Set("characterData", c.CharacterData)
	o.Set("characterDataOldValue", c.CharacterDataOldValue)
	o.Set("childList", c.ChildList)
	o.Set("subtree", c.Subtree)
	return o
}

// Observe invokes listener for each mutation of target, until listener
// returns true. The returned function stops observing early.
func Observe(target js.Value, config MutationConfig, listener func(mutation js.Value) bool) jsutil.CleanupFunc {
	var observer js.Value
	var once bool
	var f jsutil.RepeatableFunc
	stop := func() {
		if once {
			return
		}
		once = true
		observer.Call("disconnect")
		f.Release()
	}
	f = jsutil.RepeatableFuncOf(func(this js.Value, args []js.Value) interface{} {
		for _, m := range jsutil.ArrayValues(jsutil.SingleArg(args)) {
			if listener(m) {
				stop()
				break
			}
		}
		return nil
	})
	observer = js.Global().Get("MutationObserver").New(f.AsJSFunc())
	observer.Call("observe", target, config.jsValue())
	return stop
}

const (
	// showText is NodeFilter.SHOW_TEXT.
	showText = 0x4
)

// TextNodesTransform replaces the content of each text node in the document
// with the result of transform.
func (d *Doc) TextNodesTransform(transform func(content string) string) {
	walk := d.doc.Call("createTreeWalker", d.doc.Get("documentElement"), showText)
	for node := walk.Call("nextNode"); !node.IsNull(); node = walk.Call("nextNode") {
		node.Set("textContent", transform(TextContent(node)))
	}
}

// InterceptDocumentLoad detaches the document's root element while the page
// loads, and invokes onLoad with it once DOMContentLoaded fires, before
// restoring it. This allows content scripts injected at document_start to
// modify the page before any of it is processed. Interceptors registered
// before DOMContentLoaded are invoked in order.
func (d *Doc) InterceptDocumentLoad(onLoad func(html js.Value)) {
	d.mu.Lock()
	d.interceptors = append(d.interceptors, onLoad)
	first := len(d.interceptors) == 1
	d.mu.Unlock()
	if !first {
		return // The document has already been detached.
	}

	original := d.doc.Call("replaceChild", d.NewElement("html"), d.doc.Get("children").Index(0))
	var cleanup jsutil.CleanupFunc
	cleanup = AddEventListener(d.doc, "DOMContentLoaded", false, func(Event) {
		d.mu.Lock()
		interceptors := d.interceptors
		d.interceptors = nil
		d.mu.Unlock()

		for _, i := range interceptors {
			i(original)
		}
		d.doc.Call("replaceChild", original, d.doc.Get("children").Index(0))
		cleanup()
	})
}

func (d *Doc) injectScript(script js.Value) {
	if head := d.doc.Get("head"); jsutil.IsObject(head) {
		head.Call("appendChild", script)
		return
	}
	d.InterceptDocumentLoad(func(html js.Value) {
		html.Call("querySelector", "head").Call("insertAdjacentElement", "afterbegin", script)
	})
}

// ExecuteFile injects a classic script loaded from src into the page. src is
// typically an extension URL; see chrome.Runtime.GetURL.
func (d *Doc) ExecuteFile(src string) {
	script := d.NewElement("script")
	script.Set("src", src)
	script.Set("type", "text/javascript")
	d.injectScript(script)
}

// ExecuteModule injects a module script loaded from src into the page.
func (d *Doc) ExecuteModule(src string) {
	script := d.NewElement("script")
	script.Set("src", src)
	script.Set("type", "module")
	d.injectScript(script)
}

// ExecuteScript injects an inline script into the page.
func (d *Doc) ExecuteScript(content string) {
	script := d.NewElement("script")
	script.Set("type", "text/javascript")
	script.Set("textContent", content)
	d.injectScript(script)
}
