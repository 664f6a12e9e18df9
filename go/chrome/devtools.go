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

// Devtools wraps the devtools API, which is only available to devtools pages.
type Devtools struct {
	api API
}

// Available indicates if the devtools API is present in this context.
func (d *Devtools) Available() bool {
	return d.api.Available()
}

// InspectedTabID returns the ID of the tab being inspected. The second
// return value is false if no tab is being inspected.
func (d *Devtools) InspectedTabID() (int, bool) {
	if !d.Available() {
		return 0, false
	}
	id := d.api.Value().Get("inspectedWindow").Get("tabId")
	if id.Type() != js.TypeNumber {
		return 0, false
	}
	return id.Int(), true
}

// CreatePanel adds a panel to the browser's developer tools. Paths are
// relative to the extension's install directory.
func (d *Devtools) CreatePanel(ctx jsutil.AsyncContext, title, iconPath, pagePath string) (js.Value, error) {
	if !d.Available() {
		return js.Undefined(), fmt.Errorf("devtools: %w", ErrUnavailable)
	}
	panel, err := d.api.Get("panels").Call(ctx, "create", title, iconPath, pagePath)
	if err != nil {
		return js.Undefined(), fmt.Errorf("failed to create panel %s: %w", title, err)
	}
	return panel, nil
}
