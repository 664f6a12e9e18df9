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
	"fmt"

	"github.com/google/chrome-webext/go/app"
	"github.com/google/chrome-webext/go/chrome"
	"github.com/google/chrome-webext/go/jsutil"
	"github.com/google/chrome-webext/go/message"
	"github.com/google/chrome-webext/go/pagetype"
	"github.com/samber/lo"
)

// Background is the module run by the background page.
type Background struct{}

func (b *Background) Name() string        { return "Background" }
func (b *Background) Page() pagetype.Type { return pagetype.Background }

func (b *Background) Init(ctx jsutil.AsyncContext, env *app.Env, cleanup *jsutil.CleanupFuncs) error {
	if err := env.Router.Subscribe(TopicEcho, echo); err != nil {
		return err
	}
	cleanup.Add(func() { env.Router.Unsubscribe(TopicEcho) })

	br := env.Host.Browser
	if br == nil {
		return nil
	}
	// Each API may be missing from the manifest; the rest still work.
	if c, err := br.OnCommand(func(ctx jsutil.AsyncContext, command string) error {
		return OnCommand(ctx, env, command)
	}); err != nil {
		env.Log.Log("keyboard commands unavailable:", err)
	} else {
		cleanup.Add(c)
	}
	if c, err := br.OnBrowserAction(func(ctx jsutil.AsyncContext, _ chrome.ActionEvent) error {
		return PingAll(ctx, env)
	}); err != nil {
		env.Log.Log("toolbar button unavailable:", err)
	} else {
		cleanup.Add(c)
	}
	if c, err := br.OnDOMContentLoaded(func(ctx jsutil.AsyncContext, src chrome.EventSource) error {
		if src.FrameID == 0 {
			env.Log.Log("page loaded:", src.URL)
		}
		return nil
	}); err != nil {
		env.Log.Log("navigation events unavailable:", err)
	} else {
		cleanup.Add(c)
	}
	return nil
}

func echo(ctx jsutil.AsyncContext, msg *message.Message, _ *message.Sender) (interface{}, error) {
	return msg.Content, nil
}

// OnCommand handles a keyboard command declared in the manifest.
func OnCommand(ctx jsutil.AsyncContext, env *app.Env, command string) error {
	switch command {
	case CommandToggle:
		state, err := env.Messenger.SendToActiveTab(ctx, message.New(TopicToggle, nil))
		if err != nil {
			return fmt.Errorf("failed to toggle highlight: %w", err)
		}
		env.Log.Log("highlight:", state)
		return nil
	case CommandOpenOptions:
		if _, err := env.CreateWindow(ctx, chrome.WindowCreate{URL: []string{optionsURL(env)}}); err != nil {
			return fmt.Errorf("failed to open options: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func optionsURL(env *app.Env) string {
	if env.Host.Browser != nil {
		return env.Host.Browser.Runtime().GetURL(OptionsPath)
	}
	return OptionsPath
}

// PingAll pings every tab and logs how many answered.
func PingAll(ctx jsutil.AsyncContext, env *app.Env) error {
	resps, err := env.Messenger.SendToTabs(ctx, chrome.TabQuery{}, message.New(TopicPing, nil))
	if err != nil {
		return fmt.Errorf("failed to ping tabs: %w", err)
	}
	answered := lo.CountBy(resps, func(r message.Response) bool { return !r.IsError })
	env.Log.Log(fmt.Sprintf("%d of %d tabs answered", answered, len(resps)))
	return nil
}
