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

package pagetype

import (
	"syscall/js"
)

// Location returns the location of the current context. Service workers have
// no window, so the global scope's location is used in that case.
func Location() string {
	if w := js.Global().Get("window"); !w.IsUndefined() {
		return w.Get("location").Get("href").String()
	}
	if l := js.Global().Get("location"); !l.IsUndefined() {
		return l.Get("href").String()
	}
	return ""
}

// Current classifies the current context. The result is not cached; a
// context's location does not change for its lifetime.
func Current() Type {
	return Classify(Location())
}
