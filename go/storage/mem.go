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
	"sync"
	"syscall/js"

	"github.com/google/chrome-webext/go/jsutil"
)

// Mem is an Area that keeps data in the memory of the current context. Data
// is lost when the context is unloaded.
//
// Mem implements the Area interface.
type Mem struct {
	mu   sync.Mutex
	data map[string]js.Value
}

// NewMem returns an empty in-memory area.
func NewMem() *Mem {
	return &Mem{
		data: map[string]js.Value{},
	}
}

// Set implements Area.Set().
func (m *Mem) Set(ctx jsutil.AsyncContext, data map[string]js.Value) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range data {
		m.data[k] = v
	}
	return nil
}

// Get implements Area.Get().
func (m *Mem) Get(ctx jsutil.AsyncContext, keys []string) (map[string]js.Value, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make(map[string]js.Value, len(keys))
	for _, k := range keys {
		if v, ok := m.data[k]; ok {
			res[k] = v
		}
	}
	return res, nil
}

// GetAll implements Area.GetAll().
func (m *Mem) GetAll(ctx jsutil.AsyncContext) (map[string]js.Value, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make(map[string]js.Value, len(m.data))
	for k, v := range m.data {
		res[k] = v
	}
	return res, nil
}

// Delete implements Area.Delete().
func (m *Mem) Delete(ctx jsutil.AsyncContext, keys []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}
