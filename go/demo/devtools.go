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
	"syscall/js"

	"github.com/google/chrome-webext/go/app"
	"github.com/google/chrome-webext/go/dom"
	"github.com/google/chrome-webext/go/jsutil"
	"github.com/google/chrome-webext/go/message"
	"github.com/google/chrome-webext/go/pagetype"
)

// PanelCreator adds panels to the developer tools.
//
// It is implemented by chrome.Devtools.
type PanelCreator interface {
	CreatePanel(ctx jsutil.AsyncContext, title, iconPath, pagePath string) (js.Value, error)
}

// Devtools is the module run by the devtools page. It adds the demo's panel.
type Devtools struct {
	Panels PanelCreator
}

func (d *Devtools) Name() string        { return "Devtools" }
func (d *Devtools) Page() pagetype.Type { return pagetype.Devtools }

func (d *Devtools) Init(ctx jsutil.AsyncContext, env *app.Env, cleanup *jsutil.CleanupFuncs) error {
	if d.Panels == nil {
		return fmt.Errorf("devtools panels unavailable")
	}
	if _, err := d.Panels.CreatePanel(ctx, "WebExt Demo", "", PanelPath); err != nil {
		return err
	}
	return nil
}

// Panel is the module run by the demo's devtools panel. Clicking its button
// pings the inspected tab.
type Panel struct {
	doc *dom.Doc
}

// NewPanel returns the panel module for the panel's document.
func NewPanel(doc *dom.Doc) *Panel {
	return &Panel{doc: doc}
}

func (p *Panel) Name() string        { return "Panel" }
func (p *Panel) Page() pagetype.Type { return pagetype.DevtoolsPanel }

func (p *Panel) Init(ctx jsutil.AsyncContext, env *app.Env, cleanup *jsutil.CleanupFuncs) error {
	button := p.doc.GetElement("ping")
	result := p.doc.GetElement("result")
	if button.IsNull() || result.IsNull() {
		return fmt.Errorf("panel page is missing its controls")
	}
	cleanup.Add(dom.OnClick(button, func(ctx jsutil.AsyncContext, evt dom.Event) {
		var text string
		if reply, err := Ping(ctx, env); err != nil {
			text = err.Error()
		} else {
			text = fmt.Sprintf("%s (%s) highlighted=%t", reply.Title, reply.URL, reply.Highlighted)
		}
		dom.RemoveChildren(result)
		dom.AppendChild(result, p.doc.NewText(text), nil)
	}))
	return nil
}

// Ping pings the active tab; from devtools pages, this is the inspected tab.
func Ping(ctx jsutil.AsyncContext, env *app.Env) (PingReply, error) {
	v, err := env.Messenger.SendToActiveTab(ctx, message.New(TopicPing, nil))
	if err != nil {
		return PingReply{}, err
	}
	var reply PingReply
	if err := jsutil.AssignTo(v, &reply); err != nil {
		return PingReply{}, fmt.Errorf("invalid ping reply: %w", err)
	}
	return reply, nil
}
