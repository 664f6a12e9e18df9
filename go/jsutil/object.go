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
	// object refers to Javascript's Object class.
	object = js.Global().Get("Object")
	// array refers to Javascript's Array class.
	array = js.Global().Get("Array")
)

// NewObject returns a new, empty Javascript object.
func NewObject() js.Value {
	return object.New()
}

// IsObject indicates if the value is a non-null object.
func IsObject(val js.Value) bool {
	return val.Type() == js.TypeObject
}

// IsArray indicates if the value is a Javascript array.
func IsArray(val js.Value) bool {
	return array.Call("isArray", val).Bool()
}

// ObjectKeys returns the keys for a given object.
func ObjectKeys(val js.Value) ([]string, error) {
	if !IsObject(val) {
		return nil, fmt.Errorf("Object required; got type %s", val.Type())
	}

	var res []string
	keys := object.Call("keys", val)
	for i := 0; i < keys.Length(); i++ {
		res = append(res, keys.Index(i).String())
	}
	return res, nil
}

// ArrayValues returns the elements of a Javascript array.
func ArrayValues(val js.Value) []js.Value {
	var res []js.Value
	for i := 0; i < val.Length(); i++ {
		res = append(res, val.Index(i))
	}
	return res
}

// NewArray returns a Javascript array holding the supplied values.
func NewArray(vals []js.Value) js.Value {
	res := array.New()
	for _, v := range vals {
		res.Call("push", v)
	}
	return res
}
