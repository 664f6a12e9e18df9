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

var (
	// json refers to Javascript's JSON class.
	json = js.Global().Get("JSON")
)

// ToJSON converts the supplied value to a JSON string. Undefined, which JSON
// cannot represent, is rendered as "undefined".
func ToJSON(val js.Value) string {
	s := json.Call("stringify", val)
	if s.IsUndefined() {
		return "undefined"
	}
	return s.String()
}

// ParseJSON converts the supplied JSON string to a Javascript value. The
// SyntaxError thrown by the parser is returned as a JSError.
func ParseJSON(s string) (val js.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			val = js.Undefined()
			if jerr, ok := r.(js.Error); ok {
				err = NewErrorFromVal(jerr.Value)
				return
			}
			err = NewErrorFromVal(js.ValueOf(fmt.Sprint(r)))
		}
	}()
	return json.Call("parse", s), nil
}

// FromJSON converts the supplied JSON string to a Javascript value. Invalid
// JSON is logged and yields undefined; use ParseJSON to handle the error.
func FromJSON(s string) js.Value {
	val, err := ParseJSON(s)
	if err != nil {
		LogError("Failed to parse JSON string; returning undefined. Error: %v", err)
	}
	return val
}
