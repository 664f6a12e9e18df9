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
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestOneTimeFuncOf(t *testing.T) {
	got := make(chan struct{}, 1)
	f := OneTimeFuncOf(func(this js.Value, args []js.Value) interface{} {
		got <- struct{}{}
		return nil
	})

	f.Invoke()
	select {
	case <-got: // nothing to do.
	case <-time.After(5 * time.Second):
		t.Errorf("function not invoked")
	}
}

func TestRepeatableFuncOf(t *testing.T) {
	var calls int
	f := RepeatableFuncOf(func(this js.Value, args []js.Value) interface{} {
		calls++
		return calls
	})
	defer f.Release()

	for i := 0; i < 3; i++ {
		f.AsJSFunc().Invoke()
	}
	if diff := cmp.Diff(calls, 3); diff != "" {
		t.Errorf("incorrect number of calls; -got +want: %s", diff)
	}
}

func TestDefineFunc(t *testing.T) {
	const funcName = "onClicked"

	o := NewObject()

	got := make(chan struct{}, 1)
	cleanup := DefineFunc(o, funcName, func(this js.Value, args []js.Value) interface{} {
		got <- struct{}{}
		return nil
	})

	if typ := o.Get(funcName).Type(); typ != js.TypeFunction {
		t.Errorf("defined value is not a function; got %s", typ)
	}

	func() {
		defer cleanup()

		o.Call(funcName)
		select {
		case <-got: // nothing to do.
		case <-time.After(5 * time.Second):
			t.Errorf("function not invoked")
		}
	}()

	if !o.Get(funcName).IsUndefined() {
		t.Errorf("function still defined after cleanup")
	}
}

func TestDefineAsyncFunc(t *testing.T) {
	testcases := []struct {
		description string
		f           func(ctx AsyncContext, this js.Value, args []js.Value) (js.Value, error)
		wantVal     string
		wantErr     string
	}{
		{
			description: "resolves with result",
			f: func(ctx AsyncContext, this js.Value, args []js.Value) (js.Value, error) {
				return js.ValueOf("ready: " + SingleArg(args).String()), nil
			},
			wantVal: `"ready: background"`,
		},
		{
			description: "awaits before resolving",
			f: func(ctx AsyncContext, this js.Value, args []js.Value) (js.Value, error) {
				return Resolved(js.ValueOf(true)).Await(ctx)
			},
			wantVal: "true",
		},
		{
			description: "rejects with Go error",
			f: func(ctx AsyncContext, this js.Value, args []js.Value) (js.Value, error) {
				return js.Undefined(), errors.New("module not initialized")
			},
			wantErr: "GoError: module not initialized",
		},
	}

	for _, tc := range testcases {
		t.Run(tc.description, func(t *testing.T) {
			const funcName = "initWait"
			o := NewObject()
			cleanup := DefineAsyncFunc(o, funcName, tc.f)
			defer cleanup()

			var gotVal, gotErr string
			doSync(func(ctx AsyncContext) {
				val, err := AsPromise(o.Call(funcName, "background")).Await(ctx)
				if err != nil {
					gotErr = err.Error()
					return
				}
				gotVal = ToJSON(val)
			})
			if diff := cmp.Diff(gotVal, tc.wantVal); diff != "" {
				t.Errorf("incorrect value; -got +want: %s", diff)
			}
			if diff := cmp.Diff(gotErr, tc.wantErr); diff != "" {
				t.Errorf("incorrect error; -got +want: %s", diff)
			}
		})
	}
}

func TestSetTimeout(t *testing.T) {
	got := make(chan struct{}, 1)
	SetTimeout(1*time.Millisecond, func() {
		got <- struct{}{}
	})

	select {
	case <-got: // nothing to do.
	case <-time.After(5 * time.Second):
		t.Errorf("function not invoked")
	}
}

func TestExpandArgs(t *testing.T) {
	msg := FromJSON(`{"event":"whoami","content":"me"}`)
	sender := FromJSON(`{"id":"extension-id","tab":{"id":3}}`)

	testcases := []struct {
		description string
		args        []js.Value
		want        []string
	}{
		{
			description: "listener receives all args",
			args:        []js.Value{msg, sender, js.ValueOf("reply")},
			want: []string{
				`{"event":"whoami","content":"me"}`,
				`{"id":"extension-id","tab":{"id":3}}`,
				`"reply"`,
			},
		},
		{
			description: "listener without sendResponse",
			args:        []js.Value{msg, sender},
			want: []string{
				`{"event":"whoami","content":"me"}`,
				`{"id":"extension-id","tab":{"id":3}}`,
				"undefined",
			},
		},
		{
			description: "listener without args",
			want:        []string{"undefined", "undefined", "undefined"},
		},
	}

	for _, tc := range testcases {
		t.Run(tc.description, func(t *testing.T) {
			var m, s, r js.Value
			ExpandArgs(tc.args, &m, &s, &r)
			got := []string{ToJSON(m), ToJSON(s), ToJSON(r)}
			if diff := cmp.Diff(got, tc.want); diff != "" {
				t.Errorf("incorrect result; -got +want: %s", diff)
			}
		})
	}
}

func TestSingleArg(t *testing.T) {
	testcases := []struct {
		description string
		args        []js.Value
		want        string
	}{
		{
			description: "no args",
			want:        "undefined",
		},
		{
			description: "tab id",
			args:        []js.Value{js.ValueOf(3)},
			want:        "3",
		},
		{
			description: "first of several",
			args:        []js.Value{js.ValueOf(3), FromJSON(`{"status":"complete"}`)},
			want:        "3",
		},
	}

	for _, tc := range testcases {
		t.Run(tc.description, func(t *testing.T) {
			got := SingleArg(tc.args)
			if diff := cmp.Diff(ToJSON(got), tc.want); diff != "" {
				t.Errorf("incorrect result; -got +want: %s", diff)
			}
		})
	}
}
