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

package storage

import (
	"errors"
	"syscall/js"

	"github.com/google/chrome-webext/go/jsutil"
	"github.com/norunners/vert"
)

var (
	errParse = errors.New("parse failed")
)

// Value reads and writes a singular value stored under a fixed key.
type Value[V any] struct {
	store Area
	key   string
}

// NewValue returns a new Value stored under key in the underlying store.
func NewValue[V any](store Area, key string) *Value[V] {
	return &Value[V]{
		store: store,
		key:   key,
	}
}

// Get reads the current value from storage.  If it doesn't exist, the zero
// value is returned.
func (v *Value[V]) Get(ctx jsutil.AsyncContext) (V, error) {
	var zero V

	data, err := v.store.Get(ctx, []string{v.key})
	if err != nil {
		return zero, err
	}

	val, present := data[v.key]
	if !present || val.IsUndefined() || val.IsNull() {
		return zero, nil
	}

	var tv V
	if err := vert.ValueOf(val).AssignTo(&tv); err != nil {
		return zero, errParse
	}

	return tv, nil
}

// Set writes a new value to storage.
func (v *Value[V]) Set(ctx jsutil.AsyncContext, val V) error {
	data := map[string]js.Value{
		v.key: vert.ValueOf(val).JSValue(),
	}
	return v.store.Set(ctx, data)
}

// Clear removes the value from storage.
func (v *Value[V]) Clear(ctx jsutil.AsyncContext) error {
	return v.store.Delete(ctx, []string{v.key})
}
