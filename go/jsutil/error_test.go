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
	"fmt"
	"syscall/js"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewError(t *testing.T) {
	jsErr := NewErrorFromVal(js.Global().Get("Error").New("Receiving end does not exist."))

	testcases := []struct {
		description string
		err         error
		want        string
	}{
		{
			description: "Go error",
			err:         errors.New("no active tab"),
			want:        "GoError: no active tab",
		},
		{
			description: "wrapped Go error",
			err:         fmt.Errorf("failed to find active tab: %w", errors.New("no active tab")),
			want:        "GoError: failed to find active tab: no active tab",
		},
		{
			description: "preserve JSError",
			err:         jsErr,
			want:        "Error: Receiving end does not exist.",
		},
		{
			description: "preserve wrapped JSError",
			err:         fmt.Errorf("failed to send message to tab 3: %w", jsErr),
			want:        "Error: Receiving end does not exist.",
		},
	}

	for _, tc := range testcases {
		t.Run(tc.description, func(t *testing.T) {
			got := NewError(tc.err)
			if diff := cmp.Diff(got.Error(), tc.want); diff != "" {
				t.Errorf("incorrect result; -got +want: %s", diff)
			}
		})
	}
}

func TestNewErrorFromVal(t *testing.T) {
	testcases := []struct {
		description string
		val         js.Value
		want        string
		wantMessage string
	}{
		{
			description: "string rejection",
			val:         js.ValueOf("no tabId"),
			want:        "Error: no tabId",
			wantMessage: "no tabId",
		},
		{
			description: "number rejection",
			val:         js.ValueOf(404),
			want:        "Error: 404",
			wantMessage: "404",
		},
		{
			description: "preserve Error value",
			val:         js.Global().Get("Error").New("generic error"),
			want:        "Error: generic error",
			wantMessage: "generic error",
		},
		{
			description: "preserve value derived from Error",
			val:         js.Global().Get("RangeError").New("my range error"),
			want:        "RangeError: my range error",
			wantMessage: "my range error",
		},
		{
			description: "runtime.lastError",
			val:         FromJSON(`{"message":"The message port closed before a response was received."}`),
			want:        "Error: The message port closed before a response was received.",
			wantMessage: "The message port closed before a response was received.",
		},
		{
			description: "rejection reply",
			val:         FromJSON(`{"__mozWebExtensionPolyfillReject__":true,"message":"handler failed"}`),
			want:        "Error: handler failed",
			wantMessage: "handler failed",
		},
		{
			description: "object without message",
			val:         FromJSON(`{"tabId":3}`),
			want:        `Error: {"tabId":3}`,
			wantMessage: `{"tabId":3}`,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.description, func(t *testing.T) {
			got := NewErrorFromVal(tc.val)
			if diff := cmp.Diff(got.Error(), tc.want); diff != "" {
				t.Errorf("incorrect result; -got +want: %s", diff)
			}
			if diff := cmp.Diff(got.Message(), tc.wantMessage); diff != "" {
				t.Errorf("incorrect message; -got +want: %s", diff)
			}
		})
	}
}

func TestErrorProperties(t *testing.T) {
	e := NewError(errors.New("no tabId for inspected window"))
	if diff := cmp.Diff(e.Name(), "GoError"); diff != "" {
		t.Errorf("incorrect name: -got +want: %s", diff)
	}
	if diff := cmp.Diff(e.Message(), "no tabId for inspected window"); diff != "" {
		t.Errorf("incorrect message: -got +want: %s", diff)
	}

	var je JSError
	if !errors.As(fmt.Errorf("proxy: %w", e), &je) || !je.AsJSValue().Equal(e.AsJSValue()) {
		t.Errorf("wrapped JSError not recovered by errors.As")
	}
}
