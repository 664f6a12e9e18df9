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
	"sync"
	"syscall/js"
	"testing"

	"github.com/google/chrome-webext/go/app"
	"github.com/google/chrome-webext/go/chrome"
	"github.com/google/chrome-webext/go/chrome/fakes"
	"github.com/google/chrome-webext/go/dom"
	dt "github.com/google/chrome-webext/go/dom/testing"
	"github.com/google/chrome-webext/go/jsutil"
	jut "github.com/google/chrome-webext/go/jsutil/testing"
	"github.com/google/chrome-webext/go/keyboard"
	"github.com/google/chrome-webext/go/message"
	"github.com/google/chrome-webext/go/storage"
	sfakes "github.com/google/chrome-webext/go/storage/fakes"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const (
	backgroundURL  = "chrome-extension://abcdef/_generated_background_page.html"
	optionsPageURL = "chrome-extension://abcdef/html/options.html?page=options"
	panelURL       = "chrome-extension://abcdef/html/panel.html?page=devtools-panel"
	contentURL     = "https://example.com/index.html"
)

// recorder is a logger that remembers what it logged.
type recorder struct {
	mu    sync.Mutex
	lines []string
}

func (r *recorder) Log(messages ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, fmt.Sprint(messages...))
}

func (r *recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

// testExt is an extension with a background page, and a content script in
// tab 1.
type testExt struct {
	hub       *fakes.Hub
	tabs      *fakes.Tabs
	windows   *fakes.Windows
	sync      *sfakes.Mem
	bg        *app.Env
	bgLog     *recorder
	content   *Content
	contentEn *app.Env
	cleanup   jsutil.CleanupFuncs
}

func (e *testExt) host(location string) *app.Host {
	return &app.Host{
		Location:  location,
		Runtime:   e.hub,
		Tabs:      e.tabs,
		Windows:   e.windows,
		Inspector: &fakes.Devtools{TabID: 1, Inspecting: true},
		Sync:      e.sync,
	}
}

// env returns the environment of a context at location.
func (e *testExt) env(location string) *app.Env {
	return app.NewEnv(e.host(location), &e.cleanup)
}

func newTestExt(t *testing.T) *testExt {
	t.Helper()

	e := &testExt{
		hub:   fakes.NewHub(),
		tabs:  fakes.NewTabs(),
		sync:  sfakes.NewMem(),
		bgLog: &recorder{},
	}
	e.windows = fakes.NewWindows(e.tabs)

	e.bg = e.env(backgroundURL)
	e.bg.Log = e.bgLog
	if err := e.bg.Serve(); err != nil {
		t.Fatalf("Serve failed: %v", err)
	}

	e.content = NewContent(nil, js.Undefined())
	e.contentEn = e.env(contentURL)
	e.tabs.Add(chrome.Tab{ID: 1, Active: true, URL: contentURL}, e.contentEn.Router)
	e.tabs.Receiver = e.contentEn.Router
	e.tabs.Load = true

	var initErr error
	jut.DoSync(func(ctx jsutil.AsyncContext) {
		if initErr = (&Background{}).Init(ctx, e.bg, &e.cleanup); initErr != nil {
			return
		}
		initErr = e.content.Init(ctx, e.contentEn, &e.cleanup)
	})
	if initErr != nil {
		t.Fatalf("Init failed: %v", initErr)
	}
	return e
}

func (e *testExt) Release() {
	e.cleanup.Do()
}

func TestEcho(t *testing.T) {
	e := newTestExt(t)
	defer e.Release()
	options := e.env(optionsPageURL)

	jut.DoSync(func(ctx jsutil.AsyncContext) {
		got, err := options.Messenger.Publish(ctx, message.New(TopicEcho, "hello"))
		if err != nil {
			t.Errorf("Publish failed: %v", err)
			return
		}
		if diff := cmp.Diff(jsutil.ToJSON(got), `"hello"`); diff != "" {
			t.Errorf("incorrect echo; -got +want: %s", diff)
		}
	})
}

func TestPingAndToggle(t *testing.T) {
	e := newTestExt(t)
	defer e.Release()
	options := e.env(optionsPageURL)
	panel := e.env(panelURL)

	jut.DoSync(func(ctx jsutil.AsyncContext) {
		state, err := options.Messenger.SendToTab(ctx, 1, message.New(TopicToggle, nil))
		if err != nil {
			t.Errorf("toggle failed: %v", err)
			return
		}
		if !state.Bool() {
			t.Errorf("toggle returned %s; want true", jsutil.ToJSON(state))
		}

		got, err := Ping(ctx, panel)
		if err != nil {
			t.Errorf("Ping failed: %v", err)
			return
		}
		want := PingReply{URL: contentURL, Highlighted: true}
		if diff := cmp.Diff(got, want); diff != "" {
			t.Errorf("incorrect ping reply; -got +want: %s", diff)
		}
	})
}

func TestPingNoContentScript(t *testing.T) {
	e := newTestExt(t)
	defer e.Release()
	e.tabs.SetError(1, fakes.ErrNoReceiver)
	panel := e.env(panelURL)

	jut.DoSync(func(ctx jsutil.AsyncContext) {
		if _, err := Ping(ctx, panel); err == nil {
			t.Errorf("Ping succeeded for tab without content script")
		}
	})
}

func TestContentBinding(t *testing.T) {
	e := newTestExt(t)
	defer e.Release()
	doc := dt.NewDocForTesting(`<html><head><title>Bound</title></head><body></body></html>`)
	content := NewContent(dom.New(doc), js.Undefined())
	env := e.env(contentURL)

	jut.DoSync(func(ctx jsutil.AsyncContext) {
		if err := NewBinding(env).Set(ctx, keyboard.Binding{Sequence: []string{"x", "y"}}); err != nil {
			t.Errorf("failed to store binding: %v", err)
			return
		}
		if err := content.Init(ctx, env, &e.cleanup); err != nil {
			t.Errorf("Init failed: %v", err)
		}
	})

	body := doc.Get("body")
	dt.KeyDown(body, "x", "y")
	if !content.Highlighted() {
		t.Errorf("binding did not toggle the highlight")
	}
	classes := doc.Get("documentElement").Get("classList")
	if !classes.Call("contains", highlightClass).Bool() {
		t.Errorf("highlight class not applied to document")
	}

	jut.DoSync(func(ctx jsutil.AsyncContext) {
		reply, err := content.onPing(ctx, nil, nil)
		if err != nil {
			t.Errorf("onPing failed: %v", err)
			return
		}
		want := PingReply{URL: contentURL, Title: "Bound", Highlighted: true}
		if diff := cmp.Diff(reply, want); diff != "" {
			t.Errorf("incorrect ping reply; -got +want: %s", diff)
		}
	})
}

func TestOnCommand(t *testing.T) {
	testcases := []struct {
		description string
		command     string
		wantErr     bool
		highlighted bool
		windows     []chrome.WindowCreate
	}{
		{
			description: "toggle highlight",
			command:     CommandToggle,
			highlighted: true,
		},
		{
			description: "open options",
			command:     CommandOpenOptions,
			windows:     []chrome.WindowCreate{{URL: []string{OptionsPath}}},
		},
		{
			description: "unknown command",
			command:     "self-destruct",
			wantErr:     true,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.description, func(t *testing.T) {
			e := newTestExt(t)
			defer e.Release()

			jut.DoSync(func(ctx jsutil.AsyncContext) {
				err := OnCommand(ctx, e.bg, tc.command)
				if (err != nil) != tc.wantErr {
					t.Errorf("OnCommand(%q) returned error %v; want error %t", tc.command, err, tc.wantErr)
				}
			})
			if e.content.Highlighted() != tc.highlighted {
				t.Errorf("incorrect highlight: got %t, want %t", e.content.Highlighted(), tc.highlighted)
			}
			if diff := cmp.Diff(e.windows.Created(), tc.windows, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("incorrect windows; -got +want: %s", diff)
			}
		})
	}
}

func TestPingAll(t *testing.T) {
	e := newTestExt(t)
	defer e.Release()
	e.tabs.Add(chrome.Tab{ID: 2, URL: "chrome://settings"}, nil)

	jut.DoSync(func(ctx jsutil.AsyncContext) {
		if err := PingAll(ctx, e.bg); err != nil {
			t.Errorf("PingAll failed: %v", err)
		}
	})
	if diff := cmp.Diff(e.bgLog.Lines(), []string{"1 of 2 tabs answered"}); diff != "" {
		t.Errorf("incorrect log; -got +want: %s", diff)
	}
}

func TestPingAllQueryError(t *testing.T) {
	e := newTestExt(t)
	defer e.Release()
	e.tabs.SetQueryError(errors.New("tabs unavailable"))

	jut.DoSync(func(ctx jsutil.AsyncContext) {
		if err := PingAll(ctx, e.bg); err == nil {
			t.Errorf("PingAll succeeded despite query failure")
		}
	})
}

func TestLoadBinding(t *testing.T) {
	custom := keyboard.Binding{Sequence: []string{"x"}}

	testcases := []struct {
		description string
		stored      *keyboard.Binding
		errs        sfakes.Errs
		want        keyboard.Binding
		wantErr     bool
	}{
		{
			description: "nothing stored",
			want:        DefaultBinding,
		},
		{
			description: "empty binding stored",
			stored:      &keyboard.Binding{},
			want:        DefaultBinding,
		},
		{
			description: "custom binding",
			stored:      &custom,
			want:        custom,
		},
		{
			description: "storage fails",
			errs:        sfakes.Errs{Get: errors.New("storage failed")},
			wantErr:     true,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.description, func(t *testing.T) {
			mem := sfakes.NewMem()
			v := storage.NewValue[keyboard.Binding](mem, BindingKey)
			jut.DoSync(func(ctx jsutil.AsyncContext) {
				if tc.stored != nil {
					if err := v.Set(ctx, *tc.stored); err != nil {
						t.Errorf("Set failed: %v", err)
						return
					}
				}
				mem.SetError(tc.errs)

				got, err := LoadBinding(ctx, v)
				if (err != nil) != tc.wantErr {
					t.Errorf("LoadBinding returned error %v; want error %t", err, tc.wantErr)
				}
				if diff := cmp.Diff(got, tc.want, cmpopts.EquateEmpty()); diff != "" {
					t.Errorf("incorrect binding; -got +want: %s", diff)
				}
			})
		})
	}
}

func TestBindingArea(t *testing.T) {
	local, synced := sfakes.NewMem(), sfakes.NewMem()

	testcases := []struct {
		description string
		env         *app.Env
		want        storage.Area
	}{
		{
			description: "prefer sync",
			env:         &app.Env{Local: local, Sync: synced},
			want:        synced,
		},
		{
			description: "fall back to local",
			env:         &app.Env{Local: local},
			want:        local,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.description, func(t *testing.T) {
			if got := bindingArea(tc.env); got != tc.want {
				t.Errorf("incorrect area selected")
			}
		})
	}

	if _, ok := bindingArea(&app.Env{}).(*storage.Mem); !ok {
		t.Errorf("expected memory area when storage is unavailable")
	}
}

type fakePanels struct {
	paths []string
	err   error
}

func (f *fakePanels) CreatePanel(ctx jsutil.AsyncContext, title, iconPath, pagePath string) (js.Value, error) {
	f.paths = append(f.paths, pagePath)
	return js.Undefined(), f.err
}

func TestDevtoolsCreatesPanel(t *testing.T) {
	testcases := []struct {
		description string
		panels      *fakePanels
		wantErr     bool
		wantPaths   []string
	}{
		{
			description: "created",
			panels:      &fakePanels{},
			wantPaths:   []string{PanelPath},
		},
		{
			description: "creation fails",
			panels:      &fakePanels{err: errors.New("no panels")},
			wantErr:     true,
			wantPaths:   []string{PanelPath},
		},
	}

	for _, tc := range testcases {
		t.Run(tc.description, func(t *testing.T) {
			var cleanup jsutil.CleanupFuncs
			defer cleanup.Do()
			jut.DoSync(func(ctx jsutil.AsyncContext) {
				err := (&Devtools{Panels: tc.panels}).Init(ctx, &app.Env{}, &cleanup)
				if (err != nil) != tc.wantErr {
					t.Errorf("Init returned error %v; want error %t", err, tc.wantErr)
				}
			})
			if diff := cmp.Diff(tc.panels.paths, tc.wantPaths); diff != "" {
				t.Errorf("incorrect panels; -got +want: %s", diff)
			}
		})
	}
}

func TestSelfTest(t *testing.T) {
	e := newTestExt(t)
	defer e.Release()
	options := e.env(optionsPageURL)

	var names []string
	jut.DoSync(func(ctx jsutil.AsyncContext) {
		for _, r := range SelfTest(ctx, options, nil) {
			names = append(names, r.Name)
			if r.Err != nil {
				t.Errorf("%s failed: %v", r.Name, r.Err)
			}
		}
	})
	want := []string{"store round trip", "store missing key", "echo", "query tabs"}
	if diff := cmp.Diff(names, want); diff != "" {
		t.Errorf("incorrect tests run; -got +want: %s", diff)
	}
}

func TestSelfTestWithoutBackground(t *testing.T) {
	hub := fakes.NewHub()
	tabs := fakes.NewTabs()
	var cleanup jsutil.CleanupFuncs
	defer cleanup.Do()
	options := app.NewEnv(&app.Host{
		Location:  optionsPageURL,
		Runtime:   hub,
		Tabs:      tabs,
		Windows:   fakes.NewWindows(tabs),
		Inspector: &fakes.Devtools{},
	}, &cleanup)

	var failed int
	jut.DoSync(func(ctx jsutil.AsyncContext) {
		for _, r := range SelfTest(ctx, options, nil) {
			if r.Err != nil {
				failed++
			}
		}
	})
	// Only querying tabs works without a background page.
	if failed != 3 {
		t.Errorf("got %d failures; want 3", failed)
	}
}
