//go:build js && wasm

// Copyright 2022 Google LLC
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

package jsutil

import (
	"syscall/js"
	"time"
)

// OneTimeFuncOf returns a js.Func that can be invoked once. It is automatically
// released when invoked.
func OneTimeFuncOf(f func(this js.Value, args []js.Value) interface{}) js.Func {
	var cb js.Func
	cb = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		defer cb.Release()
		return f(this, args)
	})
	return cb
}

// RepeatableFunc is a special type of function that is expected to be
// repeatedly invoked.  Thus, invoking Release() is the caller's responsibility.
type RepeatableFunc js.Func

// RepeatableFuncOf returns a RepeatableFunc that can be invoked multiple times.
// The caller is responsible for invoking Release() on the resulting func when
// it is no longer needed.
func RepeatableFuncOf(f func(this js.Value, args []js.Value) interface{}) RepeatableFunc {
	return RepeatableFunc(js.FuncOf(f))
}

// AsJSFunc returns the corresponding js.Func object.
func (r RepeatableFunc) AsJSFunc() js.Func {
	return js.Func(r)
}

// Release frees up resources allocated for the function.
func (r RepeatableFunc) Release() {
	js.Func(r).Release()
}

// DefineFunc defines a function with the given name on the supplied object.
// The returned cleanup function removes the definition and releases the
// function.
func DefineFunc(o js.Value, name string, f func(this js.Value, args []js.Value) interface{}) CleanupFunc {
	fn := RepeatableFuncOf(f)
	o.Set(name, fn.AsJSFunc())
	return func() {
		o.Delete(name)
		fn.Release()
	}
}

// DefineAsyncFunc defines a function with the given name on the supplied
// object. The function returns a Promise to its callers, and f is run with an
// AsyncContext so it may block.
func DefineAsyncFunc(o js.Value, name string, f func(ctx AsyncContext, this js.Value, args []js.Value) (js.Value, error)) CleanupFunc {
	return DefineFunc(o, name, func(this js.Value, args []js.Value) interface{} {
		return Async(func(ctx AsyncContext) (js.Value, error) {
			return f(ctx, this, args)
		}).JSValue()
	})
}

// SetTimeout invokes f after the specified duration has elapsed.
func SetTimeout(d time.Duration, f func()) {
	js.Global().Call(
		"setTimeout",
		OneTimeFuncOf(func(this js.Value, args []js.Value) interface{} {
			f()
			return nil
		}),
		d.Milliseconds())
}

// ExpandArgs unpacks args into the supplied targets. Targets beyond the
// number of args are set to undefined.
func ExpandArgs(args []js.Value, targets ...*js.Value) {
	for i, t := range targets {
		if i < len(args) {
			*t = args[i]
			continue
		}
		*t = js.Undefined()
	}
}

// SingleArg returns the first argument, or undefined if there are none.
func SingleArg(args []js.Value) js.Value {
	var v js.Value
	ExpandArgs(args, &v)
	return v
}
