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

const (
	// rejectMarker flags a reply that carries a receiver's error rather
	// than its result. It is the marker used by webextension-polyfill, so
	// senders using the polyfill see the rejection too.
	rejectMarker = "__mozWebExtensionPolyfillReject__"
)

// API is a WebExtension API object. Its asynchronous methods take a trailing
// completion callback and report failures through runtime.lastError, which is
// only set while the callback runs.
type API struct {
	o       js.Value
	runtime js.Value
}

// NewAPI returns an API for the object o. Failures are read from the
// lastError property of runtime.
func NewAPI(o, runtime js.Value) API {
	return API{o: o, runtime: runtime}
}

// Value returns the underlying Javascript object.
func (a API) Value() js.Value {
	return a.o
}

// Available indicates if the API is present in the current context.
func (a API) Available() bool {
	return !a.o.IsUndefined() && !a.o.IsNull()
}

// Get returns the named child API, e.g. "panels" within devtools.
func (a API) Get(name string) API {
	if !a.Available() {
		return API{o: js.Undefined(), runtime: a.runtime}
	}
	return API{o: a.o.Get(name), runtime: a.runtime}
}

// LastError returns the error reported by runtime.lastError, or nil if there
// is none.
func LastError(runtime js.Value) error {
	if !jsutil.IsObject(runtime) {
		return nil
	}
	e := runtime.Get("lastError")
	if e.IsUndefined() || e.IsNull() {
		return nil
	}
	return jsutil.NewErrorFromVal(e)
}

type callResult struct {
	val js.Value
	err error
}

// Call invokes the named method with args followed by a completion callback,
// and blocks until the callback runs. The callback's first argument is
// returned.
func (a API) Call(ctx jsutil.AsyncContext, method string, args ...interface{}) (js.Value, error) {
	if !a.Available() {
		return js.Undefined(), fmt.Errorf("%s: %w", method, ErrUnavailable)
	}

	ch := make(chan callResult, 1)
	cb := jsutil.OneTimeFuncOf(func(this js.Value, cbArgs []js.Value) interface{} {
		if err := LastError(a.runtime); err != nil {
			ch <- callResult{val: js.Undefined(), err: err}
			return nil
		}
		ch <- callResult{val: jsutil.SingleArg(cbArgs)}
		return nil
	})
	if err := invoke(a.o, method, append(args, cb)); err != nil {
		cb.Release()
		return js.Undefined(), err
	}
	r := <-ch
	return r.val, r.err
}

// invoke calls the method, converting an exception thrown while validating
// the arguments into an error.
func invoke(o js.Value, method string, args []interface{}) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: %v", method, r)
		}
	}()
	o.Call(method, args...)
	return nil
}

// rejection returns the reply sent in place of a result when the receiver
// fails.
func rejection(reason js.Value) js.Value {
	o := jsutil.NewObject()
	o.Set(rejectMarker, true)
	o.Set("message", jsutil.NewErrorFromVal(reason).Message())
	return o
}

// replyError returns the error carried by a rejection reply, or nil if the
// reply is a result.
func replyError(rsp js.Value) error {
	if !jsutil.IsObject(rsp) || !rsp.Get(rejectMarker).Truthy() {
		return nil
	}
	return jsutil.NewErrorFromVal(rsp)
}
