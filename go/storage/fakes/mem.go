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
// Package fakes implements fake implementations of the browser's storage API
// to ease unit testing.
package fakes

import (
	"sync"
	"syscall/js"

	"github.com/google/chrome-webext/go/jsutil"
)

// Errs contains errors that should be returned by the fake implementation.
type Errs struct {
	// Get is the error returned by Get() and GetAll().
	Get error
	// Set is the error returned by Set().
	Set error
	// Delete is the error returned by Delete().
	Delete error
}

// Mem is an in-memory storage.Area. Like the browser's storage areas, it
// keeps a serialized copy of each value, so mutating a value after Set does
// not change what is stored, and undefined values are not stored.
type Mem struct {
	mu     sync.Mutex
	data   map[string]string
	err    Errs
	writes int
}

// NewMem returns an empty fake area.
func NewMem() *Mem {
	return &Mem{
		data: map[string]string{},
	}
}

// SetError specifies the errors returned by subsequent operations. Pass
// Errs{} to clear them.
func (m *Mem) SetError(err Errs) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Writes returns the number of Set and Delete calls that succeeded.
func (m *Mem) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Snapshot returns the JSON form of every stored item.
func (m *Mem) Snapshot() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make(map[string]string, len(m.data))
	for k, v := range m.data {
		res[k] = v
	}
	return res
}

// Set implements storage.Area.Set().
func (m *Mem) Set(ctx jsutil.AsyncContext, data map[string]js.Value) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err.Set != nil {
		return m.err.Set
	}

	for k, v := range data {
		if v.IsUndefined() {
			continue
		}
		m.data[k] = jsutil.ToJSON(v)
	}
	m.writes++
	return nil
}

func (m *Mem) read(keys []string) map[string]js.Value {
	res := make(map[string]js.Value, len(keys))
	for _, k := range keys {
		if v, ok := m.data[k]; ok {
			res[k] = jsutil.FromJSON(v)
		}
	}
	return res
}

// Get implements storage.Area.Get().
func (m *Mem) Get(ctx jsutil.AsyncContext, keys []string) (map[string]js.Value, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err.Get != nil {
		return nil, m.err.Get
	}
	return m.read(keys), nil
}

// GetAll implements storage.Area.GetAll().
func (m *Mem) GetAll(ctx jsutil.AsyncContext) (map[string]js.Value, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err.Get != nil {
		return nil, m.err.Get
	}
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	return m.read(keys), nil
}

// Delete implements storage.Area.Delete().
func (m *Mem) Delete(ctx jsutil.AsyncContext, keys []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err.Delete != nil {
		return m.err.Delete
	}

	for _, k := range keys {
		delete(m.data, k)
	}
	m.writes++
	return nil
}
