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

// Package chrome provides bindings for the WebExtension APIs used by the
// extension.
package chrome

import (
	"errors"
	"fmt"
	"syscall/js"
)

var (
	// ErrUnavailable indicates that an API namespace is not available in
	// the current context. For example, content scripts have no access to
	// the tabs API, and only devtools pages have access to devtools.
	ErrUnavailable = errors.New("API not available in this context")
)

// Namespace returns the root object for the WebExtension APIs. The
// callback-based 'chrome' namespace is used; it is the only one available in
// Chrome for Manifest V2 extensions, and Firefox provides it as well.
func Namespace() js.Value {
	return js.Global().Get("chrome")
}

// Browser provides access to the individual WebExtension APIs.
type Browser struct {
	o js.Value
}

// New returns a Browser rooted at the supplied namespace object. If the
// namespace is null or undefined, the default namespace is used.
func New(ns js.Value) *Browser {
	if ns.IsUndefined() || ns.IsNull() {
		ns = Namespace()
	}
	return &Browser{o: ns}
}

// api returns the named API, or an error if it is not available.
func (b *Browser) api(path ...string) (API, error) {
	a := NewAPI(b.o, b.o.Get("runtime"))
	for _, p := range path {
		a = a.Get(p)
	}
	if !a.Available() {
		return a, fmt.Errorf("%v: %w", path, ErrUnavailable)
	}
	return a, nil
}

// Runtime returns the runtime API.
func (b *Browser) Runtime() *Runtime {
	a, _ := b.api("runtime")
	return &Runtime{api: a}
}

// Tabs returns the tabs API.
func (b *Browser) Tabs() *Tabs {
	a, _ := b.api("tabs")
	return &Tabs{api: a}
}

// Windows returns the windows API.
func (b *Browser) Windows() *Windows {
	a, _ := b.api("windows")
	return &Windows{api: a}
}

// Devtools returns the devtools API. It is only meaningful inside devtools
// pages.
func (b *Browser) Devtools() *Devtools {
	a, _ := b.api("devtools")
	return &Devtools{api: a}
}

// LocalStorage returns the storage.local StorageArea.
func (b *Browser) LocalStorage() (API, error) {
	return b.api("storage", "local")
}

// SyncStorage returns the storage.sync StorageArea.
func (b *Browser) SyncStorage() (API, error) {
	return b.api("storage", "sync")
}

// str reads a string property, returning the empty string if absent.
func str(o js.Value, key string) string {
	v := o.Get(key)
	if v.Type() != js.TypeString {
		return ""
	}
	return v.String()
}

// num reads an integer property, returning zero if absent.
func num(o js.Value, key string) int {
	v := o.Get(key)
	if v.Type() != js.TypeNumber {
		return 0
	}
	return v.Int()
}

// boolean reads a boolean property, returning false if absent.
func boolean(o js.Value, key string) bool {
	v := o.Get(key)
	if v.Type() != js.TypeBoolean {
		return false
	}
	return v.Bool()
}

// float reads a numeric property, returning zero if absent.
func float(o js.Value, key string) float64 {
	v := o.Get(key)
	if v.Type() != js.TypeNumber {
		return 0
	}
	return v.Float()
}
