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

// Package testing provides in-memory StorageAreas for exercising code that
// talks to the browser's storage API.
package testing

import (
	"syscall/js"

	"github.com/google/chrome-webext/go/chrome"
)

// newArea returns a StorageArea object and the runtime object through which
// it reports errors. Callbacks run asynchronously with runtime.lastError set
// for the duration of the callback, as in the browser. Values are serialized
// to JSON on the way in. If failure is non-empty, every operation fails with
// that message.
var newArea = js.Global().Call("eval", `(function(failure) {
	const runtime = {};
	const data = {};
	const done = (callback, value) => setTimeout(() => {
		if (failure) {
			runtime.lastError = {message: failure};
			value = undefined;
		}
		try {
			callback(value);
		} finally {
			delete runtime.lastError;
		}
	}, 0);
	const selected = (keys) => {
		if (keys === null || keys === undefined) {
			return Object.keys(data);
		}
		return typeof keys === 'string' ? [keys] : keys;
	};
	const area = {
		set: (items, callback) => {
			if (!failure) {
				for (const k of Object.keys(items)) {
					data[k] = JSON.stringify(items[k]);
				}
			}
			done(callback);
		},
		get: (keys, callback) => {
			const res = {};
			for (const k of selected(keys)) {
				if (k in data) {
					res[k] = JSON.parse(data[k]);
				}
			}
			done(callback, res);
		},
		remove: (keys, callback) => {
			if (!failure) {
				for (const k of selected(keys)) {
					delete data[k];
				}
			}
			done(callback);
		},
	};
	return {area: area, runtime: runtime};
})`)

func area(failure string) chrome.API {
	a := newArea.Invoke(failure)
	return chrome.NewAPI(a.Get("area"), a.Get("runtime"))
}

// NewMemArea returns an in-memory StorageArea.
func NewMemArea() chrome.API {
	return area("")
}

// NewFailingArea returns a StorageArea whose operations all fail, reporting
// message through runtime.lastError.
func NewFailingArea(message string) chrome.API {
	return area(message)
}
