//go:build js && wasm

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

package main

import (
	"github.com/google/chrome-webext/go/app"
	"github.com/google/chrome-webext/go/demo"
	"github.com/google/chrome-webext/go/dom"
	"github.com/google/chrome-webext/go/jsutil"
)

func main() {
	jsutil.Log("Starting Options UI")
	defer jsutil.Log("Exiting Options UI")

	d := dom.New(dom.Document)
	qs := dom.NewURLSearchParams(dom.DefaultQueryString())

	a := app.New(demo.NewOptions(d, qs.Has("test")), app.BrowserHost())
	defer a.Release()
	a.Run()
}
