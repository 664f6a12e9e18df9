//go:build js && wasm

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

// Binary devtools is loaded by both the devtools page and the panel it adds.
package main

import (
	"github.com/google/chrome-webext/go/app"
	"github.com/google/chrome-webext/go/demo"
	"github.com/google/chrome-webext/go/dom"
	"github.com/google/chrome-webext/go/jsutil"
	"github.com/google/chrome-webext/go/pagetype"
)

func main() {
	jsutil.Log("Starting devtools")
	defer jsutil.Log("Exiting devtools")

	host := app.BrowserHost()
	var m app.Module = &demo.Devtools{Panels: host.Browser.Devtools()}
	if pagetype.Current() == pagetype.DevtoolsPanel {
		m = demo.NewPanel(dom.New(dom.Document))
	}

	a := app.New(m, host)
	defer a.Release()
	a.Run()
}
