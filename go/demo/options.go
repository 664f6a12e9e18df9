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

package demo

import (
	"errors"
	"fmt"
	"syscall/js"

	"github.com/google/chrome-webext/go/app"
	"github.com/google/chrome-webext/go/chrome"
	"github.com/google/chrome-webext/go/dom"
	"github.com/google/chrome-webext/go/jsutil"
	"github.com/google/chrome-webext/go/message"
	"github.com/google/chrome-webext/go/optionsui"
	"github.com/google/chrome-webext/go/pagetype"
	"github.com/google/chrome-webext/go/testing"
	"github.com/google/uuid"
)

const (
	// selfTestPrefix prefixes the keys written by the self-test.
	selfTestPrefix = "selftest."
)

// Options is the module run by the options page.
type Options struct {
	doc      *dom.Doc
	selfTest bool
}

// NewOptions returns the options page module. If selfTest is set, the
// self-test runs once the page is initialized, and its results are written
// to the page.
func NewOptions(doc *dom.Doc, selfTest bool) *Options {
	return &Options{doc: doc, selfTest: selfTest}
}

func (o *Options) Name() string        { return "Options" }
func (o *Options) Page() pagetype.Type { return pagetype.Options }

func (o *Options) Init(ctx jsutil.AsyncContext, env *app.Env, cleanup *jsutil.CleanupFuncs) error {
	ui := optionsui.New(NewBinding(env), o.doc)
	cleanup.Add(ui.Release)

	if o.selfTest {
		results := SelfTest(ctx, env, ui)
		testing.WriteResults(o.doc, results)
		env.Log.Log(fmt.Sprintf("self-test: %d tests run", len(results)))
	}
	return nil
}

// SelfTest exercises the extension from the options page against a live
// background page. ui may be nil, in which case the options UI is not
// tested.
func SelfTest(ctx jsutil.AsyncContext, env *app.Env, ui *optionsui.UI) []testing.Result {
	results := []testing.Result{
		testing.Run("store round trip", func() error {
			key, want := selfTestPrefix+uuid.NewString(), uuid.NewString()
			if err := env.Store.Set(ctx, map[string]interface{}{key: want}); err != nil {
				return err
			}
			got, err := env.Store.Get(ctx, key)
			if err != nil {
				return err
			}
			if got.Type() != js.TypeString || got.String() != want {
				return fmt.Errorf("got %s, want %q", jsutil.ToJSON(got), want)
			}
			return nil
		}),
		testing.Run("store missing key", func() error {
			got, err := env.Store.Get(ctx, selfTestPrefix+uuid.NewString())
			if err != nil {
				return err
			}
			if !got.IsUndefined() && !got.IsNull() {
				return fmt.Errorf("got %s for missing key", jsutil.ToJSON(got))
			}
			return nil
		}),
		testing.Run("echo", func() error {
			want := uuid.NewString()
			got, err := env.Messenger.Publish(ctx, message.New(TopicEcho, want))
			if err != nil {
				return err
			}
			if got.Type() != js.TypeString || got.String() != want {
				return fmt.Errorf("got %s, want %q", jsutil.ToJSON(got), want)
			}
			return nil
		}),
		testing.Run("query tabs", func() error {
			_, err := env.Messenger.SendToTabs(ctx, chrome.TabQuery{}, message.New(TopicPing, nil))
			return err
		}),
	}
	if ui != nil {
		results = append(results, testing.Run("options ui", func() error {
			return errors.Join(ui.EndToEndTest(ctx)...)
		}))
	}
	return results
}
