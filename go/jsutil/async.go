//go:build js

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
	"fmt"
	"syscall/js"
)

// AsyncContext is supplied to functions that run outside of the goroutine
// servicing Javascript callbacks. Only functions holding an AsyncContext may
// block, for example by awaiting a Promise.
type AsyncContext interface {
	isAsync()
}

type asyncContext struct{}

func (*asyncContext) isAsync() {}

// Async runs f in the background and returns a Promise for its result. The
// Promise is rejected if f returns an error or panics.
func Async(f func(ctx AsyncContext) (js.Value, error)) *Promise {
	return NewPromise(func(resolve func(js.Value), reject func(js.Value)) {
		val, err := func() (val js.Value, err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("panic: %v", r)
				}
			}()
			return f(&asyncContext{})
		}()
		if err != nil {
			reject(NewError(err).AsJSValue())
			return
		}
		resolve(val)
	})
}
