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

// CleanupFunc releases some resource acquired earlier, typically a listener
// registered with a Javascript API.
type CleanupFunc func()

// CleanupFuncs collects cleanup functions to be run together.
type CleanupFuncs struct {
	funcs []CleanupFunc
}

// Add registers a function to be run by Do.
func (c *CleanupFuncs) Add(f CleanupFunc) {
	c.funcs = append(c.funcs, f)
}

// Do runs all registered cleanup functions in reverse order of registration.
// Functions are forgotten once run.
func (c *CleanupFuncs) Do() {
	for i := len(c.funcs) - 1; i >= 0; i-- {
		c.funcs[i]()
	}
	c.funcs = nil
}
