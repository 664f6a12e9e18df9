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

// Package testing provides utilities for exercising asynchronous code in unit
// tests.
package testing

import (
	"syscall/js"

	"github.com/google/chrome-webext/go/jsutil"
)

// DoSync runs f with an AsyncContext and waits for it to return.
func DoSync(f func(ctx jsutil.AsyncContext)) {
	done := make(chan struct{})
	jsutil.Async(func(ctx jsutil.AsyncContext) (js.Value, error) {
		defer close(done)
		f(ctx)
		return js.Undefined(), nil
	})
	<-done
}
