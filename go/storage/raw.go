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
	"fmt"
	"syscall/js"

	"github.com/google/chrome-webext/go/chrome"
	"github.com/google/chrome-webext/go/jsutil"
	"github.com/norunners/vert"
)

// Raw supports storing and retrieving data using the browser's Storage API.
//
// Raw implements the Area interface.
type Raw struct {
	area chrome.API
}

// NewRaw returns a Raw for storing and retrieving data.  The specified area
// must point to an object implementing the StorageArea API.
func NewRaw(area chrome.API) *Raw {
	return &Raw{
		area: area,
	}
}

// Local returns the browser's storage.local area.
func Local(b *chrome.Browser) (*Raw, error) {
	area, err := b.LocalStorage()
	if err != nil {
		return nil, err
	}
	return NewRaw(area), nil
}

// Sync returns the browser's storage.sync area.
func Sync(b *chrome.Browser) (*Raw, error) {
	area, err := b.SyncStorage()
	if err != nil {
		return nil, err
	}
	return NewRaw(area), nil
}

func dataToValue(data map[string]js.Value) js.Value {
	res := jsutil.NewObject()
	for k, v := range data {
		res.Set(k, v)
	}
	return res
}

func valueToData(val js.Value) (map[string]js.Value, error) {
	keys, err := jsutil.ObjectKeys(val)
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}

	data := map[string]js.Value{}
	for _, k := range keys {
		data[k] = val.Get(k)
	}
	return data, nil
}

// Set implements Area.Set().
func (r *Raw) Set(ctx jsutil.AsyncContext, data map[string]js.Value) error {
	jsutil.LogDebug("RawStorage.Set: setting %d values", len(data))
	defer jsutil.LogDebug("RawStorage.Set: finished")

	_, err := r.area.Call(ctx, "set", dataToValue(data))
	if err != nil {
		return fmt.Errorf("failed to set data: %w", err)
	}
	return nil
}

func (r *Raw) get(ctx jsutil.AsyncContext, keys js.Value) (map[string]js.Value, error) {
	val, err := r.area.Call(ctx, "get", keys)
	if err != nil {
		return nil, fmt.Errorf("failed to get data: %w", err)
	}

	data, err := valueToData(val)
	if err != nil {
		return nil, fmt.Errorf("failed to parse data: %w", err)
	}
	return data, nil
}

// Get implements Area.Get().
func (r *Raw) Get(ctx jsutil.AsyncContext, keys []string) (map[string]js.Value, error) {
	jsutil.LogDebug("RawStorage.Get: reading %d values", len(keys))
	defer jsutil.LogDebug("RawStorage.Get: finished")

	if len(keys) == 0 {
		return map[string]js.Value{}, nil
	}
	return r.get(ctx, vert.ValueOf(keys).JSValue())
}

// GetAll implements Area.GetAll().
func (r *Raw) GetAll(ctx jsutil.AsyncContext) (map[string]js.Value, error) {
	jsutil.LogDebug("RawStorage.GetAll: reading all values")
	defer jsutil.LogDebug("RawStorage.GetAll: finished")

	return r.get(ctx, js.Null())
}

// Delete implements Area.Delete().
func (r *Raw) Delete(ctx jsutil.AsyncContext, keys []string) error {
	jsutil.LogDebug("RawStorage.Delete: deleting %d values", len(keys))
	defer jsutil.LogDebug("RawStorage.Delete: finished")

	if len(keys) <= 0 {
		return nil // Nothing to do.
	}

	_, err := r.area.Call(ctx, "remove", vert.ValueOf(keys).JSValue())
	if err != nil {
		return fmt.Errorf("failed to delete data: %w", err)
	}
	return nil
}
