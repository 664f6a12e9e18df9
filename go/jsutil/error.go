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
	"errors"
	"syscall/js"
)

var (
	jsError  = js.Global().Get("Error")
	jsString = js.Global().Get("String")
)

// JSError represents javascript's Error type.
type JSError struct {
	js.Value
}

// AsJSValue returns the error as a Javascript Value.
func (e JSError) AsJSValue() js.Value {
	return e.Value
}

// Name returns the Error's name.
func (e JSError) Name() string {
	return e.Value.Get("name").String()
}

// Message returns the Error's message. Values without a message are
// described by their string form.
func (e JSError) Message() string {
	if m := e.Value.Get("message"); m.Type() == js.TypeString {
		return m.String()
	}
	return e.Error()
}

// Error implements Go's error interface.
func (e JSError) Error() string {
	return e.Value.Call("toString").String()
}

const (
	goErrorName = "GoError"
)

// NewError returns a Javascript error corresponding to a Go error.
func NewError(err error) JSError {
	if err == nil {
		panic("Cannot construct nil JSError")
	}

	var je JSError
	if errors.As(err, &je) {
		return je
	}

	e := jsError.New(err.Error())
	e.Set("name", goErrorName)
	return JSError{Value: e}
}

// errorMessage returns the message of an error-like object, such as
// runtime.lastError or a rejection reply, which carry a message but are not
// instances of Error.
func errorMessage(val js.Value) (string, bool) {
	if !IsObject(val) {
		return "", false
	}
	m := val.Get("message")
	if m.Type() != js.TypeString {
		return "", false
	}
	return m.String(), true
}

// NewErrorFromVal returns a Javascript error corresponding to an arbitrary
// value. Errors are preserved, error-like objects keep their message, and
// anything else is described by its JSON form (or its string form, for
// primitives).
func NewErrorFromVal(val js.Value) JSError {
	switch {
	case val.IsUndefined():
		panic("Cannot construct JSError from undefined")
	case val.IsNull():
		panic("Cannot construct JSError from null")
	case val.InstanceOf(jsError):
		return JSError{Value: val}
	}
	if m, ok := errorMessage(val); ok {
		return JSError{Value: jsError.New(m)}
	}
	if IsObject(val) {
		return JSError{Value: jsError.New(ToJSON(val))}
	}
	return JSError{Value: jsError.New(jsString.Invoke(val).String())}
}
