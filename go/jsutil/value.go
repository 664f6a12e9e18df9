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

package jsutil

import (
	"syscall/js"

	"github.com/norunners/vert"
)

// valuer is implemented by types that know their Javascript representation.
type valuer interface {
	JSValue() js.Value
}

// ValueOf converts a Go value to a Javascript value. Javascript values (and
// types with a JSValue method) pass through unchanged, nil becomes undefined, and errors are converted to their
// message so they survive structured cloning. Everything else is converted
// by vert.
func ValueOf(v interface{}) js.Value {
	switch tv := v.(type) {
	case nil:
		return js.Undefined()
	case js.Value:
		return tv
	case valuer:
		return tv.JSValue()
	case error:
		return js.ValueOf(tv.Error())
	default:
		return vert.ValueOf(v).JSValue()
	}
}

// ValuesOf converts each of the supplied values with ValueOf and returns them
// as a Javascript array.
func ValuesOf(vs ...interface{}) js.Value {
	var res []js.Value
	for _, v := range vs {
		res = append(res, ValueOf(v))
	}
	return NewArray(res)
}

// AssignTo decodes a Javascript value into the Go value pointed to by
// target.
func AssignTo(val js.Value, target interface{}) error {
	return vert.ValueOf(val).AssignTo(target)
}
