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
	"sort"
	"syscall/js"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewObject(t *testing.T) {
	o := NewObject()
	if typ := o.Type(); typ != js.TypeObject {
		t.Errorf("expecting TypeObject; got %s", typ)
	}
}

func TestObjectKeys(t *testing.T) {
	testcases := []struct {
		description string
		val         js.Value
		want        []string
		wantErr     bool
	}{
		{
			description: "message envelope",
			val:         FromJSON(`{"event":"whoami","content":"me","origin":"content"}`),
			want:        []string{"content", "event", "origin"},
		},
		{
			description: "empty storage area",
			val:         FromJSON(`{}`),
		},
		{
			description: "string is not an object",
			val:         js.ValueOf("whoami"),
			wantErr:     true,
		},
		{
			description: "undefined is not an object",
			val:         js.Undefined(),
			wantErr:     true,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.description, func(t *testing.T) {
			got, err := ObjectKeys(tc.val)
			if gotErr := err != nil; gotErr != tc.wantErr {
				t.Fatalf("ObjectKeys error: got %v, want error %t", err, tc.wantErr)
			}
			sort.Strings(got)
			if diff := cmp.Diff(got, tc.want); diff != "" {
				t.Errorf("incorrect result; -got +want: %s", diff)
			}
		})
	}
}

func TestArrayHelpers(t *testing.T) {
	tabs := FromJSON(`[{"id":3,"url":"https://example.com/"},{"id":4}]`)
	if !IsArray(tabs) {
		t.Fatalf("tab list not reported as array")
	}
	if IsArray(FromJSON(`{"id":3}`)) {
		t.Errorf("single tab reported as array")
	}

	var ids []int
	for _, tab := range ArrayValues(tabs) {
		ids = append(ids, tab.Get("id").Int())
	}
	if diff := cmp.Diff(ids, []int{3, 4}); diff != "" {
		t.Errorf("incorrect tab ids; -got +want: %s", diff)
	}

	rebuilt := NewArray(ArrayValues(tabs))
	if diff := cmp.Diff(ToJSON(rebuilt), ToJSON(tabs)); diff != "" {
		t.Errorf("incorrect rebuilt array; -got +want: %s", diff)
	}
	if diff := cmp.Diff(ToJSON(NewArray(nil)), "[]"); diff != "" {
		t.Errorf("incorrect empty array; -got +want: %s", diff)
	}
}
