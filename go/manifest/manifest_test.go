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

package manifest

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/chrome-webext/go/pagetype"
	"github.com/google/go-cmp/cmp"
)

func TestLoadDefault(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	m, err := Render(c)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	wantPages := map[pagetype.Type]string{
		pagetype.Options:  "html/options.html?page=options",
		pagetype.Devtools: "html/devtools.html?page=devtools",
	}
	if diff := cmp.Diff(m.Pages(), wantPages); diff != "" {
		t.Errorf("incorrect pages; -got +want: %s", diff)
	}
	for typ, p := range m.Pages() {
		if got := pagetype.Classify("chrome-extension://abcdef/" + p); got != typ {
			t.Errorf("page %s classified as %s; want %s", p, got, typ)
		}
	}

	wantBackground := &background{
		Scripts:    []string{"js/wasm_exec.js", "js/background.js"},
		Persistent: true,
	}
	if diff := cmp.Diff(m.Background, wantBackground); diff != "" {
		t.Errorf("incorrect background; -got +want: %s", diff)
	}
	if m.BrowserAction == nil || m.BrowserAction.DefaultPopup != "" {
		t.Errorf("toolbar button should be declared without a popup; got %+v", m.BrowserAction)
	}
	if got := m.Commands["toggle-highlight"].SuggestedKey; got == nil || got.Default != "Ctrl+Shift+Y" {
		t.Errorf("incorrect suggested key for toggle-highlight: %+v", got)
	}
	if got := m.Commands["open-options"].SuggestedKey; got != nil {
		t.Errorf("unexpected suggested key for open-options: %+v", got)
	}
	if diff := cmp.Diff(m.ContentScripts[0].JS, []string{"js/wasm_exec.js", "js/content.js"}); diff != "" {
		t.Errorf("incorrect content scripts; -got +want: %s", diff)
	}
}

func TestPageURL(t *testing.T) {
	testcases := []struct {
		description string
		path        string
		page        pagetype.Type
		want        string
		wantErr     bool
	}{
		{
			description: "plain path",
			path:        "html/options.html",
			page:        pagetype.Options,
			want:        "html/options.html?page=options",
		},
		{
			description: "existing query",
			path:        "html/panel.html?theme=dark",
			page:        pagetype.DevtoolsPanel,
			want:        "html/panel.html?page=devtools-panel&theme=dark",
		},
		{
			description: "page already declared",
			path:        "html/popup.html?page=content",
			page:        pagetype.Action,
			want:        "html/popup.html?page=action",
		},
		{
			description: "absolute URL",
			path:        "https://example.com/options.html",
			page:        pagetype.Options,
			wantErr:     true,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.description, func(t *testing.T) {
			got, err := PageURL(tc.path, tc.page)
			if (err != nil) != tc.wantErr {
				t.Fatalf("PageURL returned error %v; want error %t", err, tc.wantErr)
			}
			if diff := cmp.Diff(got, tc.want); diff != "" {
				t.Errorf("incorrect URL; -got +want: %s", diff)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	testcases := []struct {
		description string
		config      string
		want        *Config
		wantErr     bool
	}{
		{
			description: "minimal",
			config: `
name = "x"
version = "1.2"
`,
			want: &Config{Name: "x", Version: "1.2"},
		},
		{
			description: "unknown key",
			config: `
name = "x"
version = "1.2"
permision = ["tabs"]
`,
			wantErr: true,
		},
		{
			description: "malformed",
			config:      `name = `,
			wantErr:     true,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.description, func(t *testing.T) {
			got, err := Decode(strings.NewReader(tc.config))
			if (err != nil) != tc.wantErr {
				t.Fatalf("Decode returned error %v; want error %t", err, tc.wantErr)
			}
			if diff := cmp.Diff(got, tc.want); diff != "" {
				t.Errorf("incorrect config; -got +want: %s", diff)
			}
		})
	}
}

func TestRenderInvalid(t *testing.T) {
	valid := func() *Config { return &Config{Name: "x", Version: "1.2.3.4"} }

	testcases := []struct {
		description string
		mutate      func(c *Config)
	}{
		{
			description: "missing name",
			mutate:      func(c *Config) { c.Name = "" },
		},
		{
			description: "bad version",
			mutate:      func(c *Config) { c.Version = "1.x" },
		},
		{
			description: "too many version parts",
			mutate:      func(c *Config) { c.Version = "1.2.3.4.5" },
		},
		{
			description: "content script without matches",
			mutate:      func(c *Config) { c.Content = []ContentScript{{Script: "js/content.js"}} },
		},
		{
			description: "duplicate commands",
			mutate:      func(c *Config) { c.Commands = []Command{{Name: "a"}, {Name: "a"}} },
		},
		{
			description: "unnamed command",
			mutate:      func(c *Config) { c.Commands = []Command{{Description: "nameless"}} },
		},
		{
			description: "options without path",
			mutate:      func(c *Config) { c.Options = &Page{} },
		},
		{
			description: "absolute page path",
			mutate:      func(c *Config) { c.Devtools = &Page{Path: "https://example.com/devtools.html"} },
		},
	}

	if _, err := Render(valid()); err != nil {
		t.Fatalf("Render failed for valid config: %v", err)
	}
	for _, tc := range testcases {
		t.Run(tc.description, func(t *testing.T) {
			c := valid()
			tc.mutate(c)
			if _, err := Render(c); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Render returned %v; want ErrInvalidConfig", err)
			}
		})
	}
}

func TestWrite(t *testing.T) {
	m, err := Render(&Config{
		Name:     "x",
		Version:  "1.2",
		Action:   &Page{Title: "Go"},
		Commands: []Command{{Name: "go", Key: "Alt+G"}},
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	var buf bytes.Buffer
	if err := m.Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	want := `{
  "manifest_version": 2,
  "name": "x",
  "version": "1.2",
  "browser_action": {
    "default_title": "Go"
  },
  "commands": {
    "go": {
      "suggested_key": {
        "default": "Alt+G"
      }
    }
  }
}
`
	if diff := cmp.Diff(buf.String(), want); diff != "" {
		t.Errorf("incorrect manifest; -got +want: %s", diff)
	}
}
