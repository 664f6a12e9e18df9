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

// Package memstore implements a key-value store shared by all contexts of the
// extension. Values are held in the memory of the background page, and are
// lost when it is unloaded. Other contexts reach the store by messaging the
// background page.
package memstore

import (
	"fmt"
	"syscall/js"

	"github.com/google/chrome-webext/go/jsutil"
	"github.com/google/chrome-webext/go/message"
	"github.com/google/chrome-webext/go/pagetype"
	"github.com/google/chrome-webext/go/storage"
	"github.com/samber/lo"
)

// Publisher sends messages to the background page.
//
// It is implemented by message.Messenger.
type Publisher interface {
	Publish(ctx jsutil.AsyncContext, msg *message.Message) (js.Value, error)
}

// Store reads and writes shared values. In the background page, it accesses
// the backing area directly; elsewhere, requests are sent to the background
// page, which must call Serve.
type Store struct {
	page pagetype.Type
	area storage.Area
	pub  Publisher
}

// New returns a Store for a context of the given page type. area holds the
// values and is only used in the background page.
func New(page pagetype.Type, area storage.Area, pub Publisher) *Store {
	return &Store{
		page: page,
		area: area,
		pub:  pub,
	}
}

func (s *Store) local() bool {
	return s.page == pagetype.Background
}

func toData(pairs map[string]interface{}) map[string]js.Value {
	return lo.MapValues(pairs, func(v interface{}, _ string) js.Value {
		return jsutil.ValueOf(v)
	})
}

// Set stores the supplied key-value pairs, replacing any previous values.
func (s *Store) Set(ctx jsutil.AsyncContext, pairs map[string]interface{}) error {
	if s.local() {
		return s.area.Set(ctx, toData(pairs))
	}
	if _, err := s.pub.Publish(ctx, message.New(message.TopicStoreSetValue, pairs)); err != nil {
		return fmt.Errorf("failed to set values: %w", err)
	}
	return nil
}

// Get returns the value stored under key. Absent keys yield undefined, or
// null when read from a context other than the background page.
func (s *Store) Get(ctx jsutil.AsyncContext, key string) (js.Value, error) {
	if s.local() {
		return s.getLocal(ctx, key)
	}
	val, err := s.pub.Publish(ctx, message.New(message.TopicStoreGetValue, key))
	if err != nil {
		return js.Undefined(), fmt.Errorf("failed to get value %s: %w", key, err)
	}
	return val, nil
}

// GetKeys returns the values stored under keys, in the same order. Absent
// keys yield undefined, or null when read from a context other than the
// background page.
func (s *Store) GetKeys(ctx jsutil.AsyncContext, keys []string) ([]js.Value, error) {
	if s.local() {
		return s.getKeysLocal(ctx, keys)
	}
	val, err := s.pub.Publish(ctx, message.New(message.TopicStoreGetValue, keys))
	if err != nil {
		return nil, fmt.Errorf("failed to get values: %w", err)
	}
	if !jsutil.IsArray(val) {
		return nil, fmt.Errorf("failed to get values: expected array, got %s", val.Type())
	}
	return jsutil.ArrayValues(val), nil
}

func (s *Store) getLocal(ctx jsutil.AsyncContext, key string) (js.Value, error) {
	data, err := s.area.Get(ctx, []string{key})
	if err != nil {
		return js.Undefined(), err
	}
	if v, ok := data[key]; ok {
		return v, nil
	}
	return js.Undefined(), nil
}

func (s *Store) getKeysLocal(ctx jsutil.AsyncContext, keys []string) ([]js.Value, error) {
	data, err := s.area.Get(ctx, keys)
	if err != nil {
		return nil, err
	}
	return lo.Map(keys, func(k string, _ int) js.Value {
		if v, ok := data[k]; ok {
			return v
		}
		return js.Undefined()
	}), nil
}

// Serve subscribes the handlers that service requests from other contexts.
// It must be called in the background page.
func (s *Store) Serve(r *message.Router) error {
	if err := r.Subscribe(message.TopicStoreSetValue, s.onSetValue); err != nil {
		return err
	}
	return r.Subscribe(message.TopicStoreGetValue, s.onGetValue)
}

func (s *Store) onSetValue(ctx jsutil.AsyncContext, msg *message.Message, _ *message.Sender) (interface{}, error) {
	keys, err := jsutil.ObjectKeys(msg.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s requires an object", message.ErrInvalidMessage, msg.Event)
	}
	data := make(map[string]js.Value, len(keys))
	for _, k := range keys {
		data[k] = msg.Content.Get(k)
	}
	return nil, s.area.Set(ctx, data)
}

func (s *Store) onGetValue(ctx jsutil.AsyncContext, msg *message.Message, _ *message.Sender) (interface{}, error) {
	switch {
	case msg.Content.Type() == js.TypeString:
		return s.getLocal(ctx, msg.Content.String())
	case jsutil.IsArray(msg.Content):
		keys := lo.Map(jsutil.ArrayValues(msg.Content), func(k js.Value, _ int) string {
			return k.String()
		})
		vals, err := s.getKeysLocal(ctx, keys)
		if err != nil {
			return nil, err
		}
		return jsutil.NewArray(vals), nil
	default:
		return nil, fmt.Errorf("%w: %s requires a key or array of keys", message.ErrInvalidMessage, msg.Event)
	}
}
