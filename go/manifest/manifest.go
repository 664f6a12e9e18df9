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

// Package manifest renders an extension's manifest.json from its
// extension.toml configuration, and packs the extension for installation.
//
// Every extension page declared in the manifest has the page query parameter
// appended, so contexts can classify themselves with pagetype.Classify.
package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"regexp"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/google/chrome-webext/go/pagetype"
	"github.com/samber/lo"
)

const (
	// FileName is the name of the manifest within the extension.
	FileName = "manifest.json"

	// manifestVersion is the manifest format that is rendered. Background
	// scripts run in a generated background page, which classifies as
	// pagetype.Background.
	manifestVersion = 2
)

var (
	// ErrInvalidConfig is returned when extension.toml cannot be rendered.
	ErrInvalidConfig = errors.New("invalid extension configuration")

	versionRE = regexp.MustCompile(`^\d+(\.\d+){0,3}$`)

	//go:embed extension.toml
	defaultConfig []byte
)

// Page is an extension page.
type Page struct {
	// Path is the page's path within the extension. It may include a
	// query string.
	Path string `toml:"path"`
	// Title is shown for the page where the browser displays one.
	Title string `toml:"title"`
}

// Background configures the background page.
type Background struct {
	// Script is loaded after the shared scripts.
	Script string `toml:"script"`
	// Persistent keeps the background page loaded.
	Persistent bool `toml:"persistent"`
}

// ContentScript configures a content script.
type ContentScript struct {
	Matches   []string `toml:"matches"`
	Script    string   `toml:"script"`
	RunAt     string   `toml:"run_at"`
	AllFrames bool     `toml:"all_frames"`
}

// Command is a keyboard shortcut delivered to the background page.
type Command struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Key         string `toml:"key"`
}

// Config is the contents of extension.toml.
type Config struct {
	Name                 string   `toml:"name"`
	Version              string   `toml:"version"`
	Description          string   `toml:"description"`
	Key                  string   `toml:"key"`
	MinimumChromeVersion string   `toml:"minimum_chrome_version"`
	Permissions          []string `toml:"permissions"`
	// Scripts are loaded before the script of each background page and
	// content script, e.g. the WebAssembly support code.
	Scripts []string `toml:"scripts"`
	// WebAccessible lists files web pages and content scripts may load.
	WebAccessible []string `toml:"web_accessible"`

	Background Background      `toml:"background"`
	Action     *Page           `toml:"action"`
	Options    *Page           `toml:"options"`
	Devtools   *Page           `toml:"devtools"`
	Content    []ContentScript `toml:"content"`
	Commands   []Command       `toml:"commands"`
}

// Decode reads extension.toml. Unknown keys are rejected, so typos are not
// silently ignored.
func Decode(r io.Reader) (*Config, error) {
	var c Config
	md, err := toml.NewDecoder(r).Decode(&c)
	if err != nil {
		return nil, fmt.Errorf("failed to parse extension configuration: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := lo.Map(undecoded, func(k toml.Key, _ int) string { return k.String() })
		return nil, fmt.Errorf("%w: unknown keys %v", ErrInvalidConfig, keys)
	}
	return &c, nil
}

// Load reads the configuration at path. If path is empty, the default
// configuration of the demo extension is returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return Decode(bytes.NewReader(defaultConfig))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open extension configuration: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// PageURL returns path with the page query parameter set to t.
func PageURL(path string, t pagetype.Type) (string, error) {
	u, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("%w: invalid page path %s: %v", ErrInvalidConfig, path, err)
	}
	if u.IsAbs() || u.Host != "" {
		return "", fmt.Errorf("%w: page path %s must be relative to the extension", ErrInvalidConfig, path)
	}
	q := u.Query()
	q.Set(pagetype.Param, t.String())
	u.RawQuery = q.Encode()
	return u.String(), nil
}

type background struct {
	Scripts    []string `json:"scripts"`
	Persistent bool     `json:"persistent"`
}

type action struct {
	DefaultPopup string `json:"default_popup,omitempty"`
	DefaultTitle string `json:"default_title,omitempty"`
}

type optionsUI struct {
	Page      string `json:"page"`
	OpenInTab bool   `json:"open_in_tab"`
}

type contentScript struct {
	Matches   []string `json:"matches"`
	JS        []string `json:"js"`
	RunAt     string   `json:"run_at,omitempty"`
	AllFrames bool     `json:"all_frames,omitempty"`
}

type suggestedKey struct {
	Default string `json:"default"`
}

type command struct {
	SuggestedKey *suggestedKey `json:"suggested_key,omitempty"`
	Description  string        `json:"description,omitempty"`
}

// Manifest is the rendered manifest.json.
type Manifest struct {
	ManifestVersion      int                `json:"manifest_version"`
	Name                 string             `json:"name"`
	Version              string             `json:"version"`
	Description          string             `json:"description,omitempty"`
	Key                  string             `json:"key,omitempty"`
	MinimumChromeVersion string             `json:"minimum_chrome_version,omitempty"`
	Permissions          []string           `json:"permissions,omitempty"`
	Background           *background        `json:"background,omitempty"`
	BrowserAction        *action            `json:"browser_action,omitempty"`
	OptionsUI            *optionsUI         `json:"options_ui,omitempty"`
	DevtoolsPage         string             `json:"devtools_page,omitempty"`
	ContentScripts       []contentScript    `json:"content_scripts,omitempty"`
	Commands             map[string]command `json:"commands,omitempty"`
	WebAccessible        []string           `json:"web_accessible_resources,omitempty"`
}

func (c *Config) validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidConfig)
	}
	if !versionRE.MatchString(c.Version) {
		return fmt.Errorf("%w: version %q must be one to four dot-separated integers", ErrInvalidConfig, c.Version)
	}
	for i, cs := range c.Content {
		if len(cs.Matches) == 0 || cs.Script == "" {
			return fmt.Errorf("%w: content script %d needs matches and a script", ErrInvalidConfig, i)
		}
	}
	names := lo.Map(c.Commands, func(cmd Command, _ int) string { return cmd.Name })
	if lo.Contains(names, "") {
		return fmt.Errorf("%w: commands must be named", ErrInvalidConfig)
	}
	if dups := lo.FindDuplicates(names); len(dups) > 0 {
		return fmt.Errorf("%w: duplicate commands %v", ErrInvalidConfig, dups)
	}
	return nil
}

func (c *Config) scripts(script string) []string {
	return append(append([]string{}, c.Scripts...), script)
}

// Render produces the manifest for the configuration.
func Render(c *Config) (*Manifest, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}

	m := &Manifest{
		ManifestVersion:      manifestVersion,
		Name:                 c.Name,
		Version:              c.Version,
		Description:          c.Description,
		Key:                  c.Key,
		MinimumChromeVersion: c.MinimumChromeVersion,
		Permissions:          c.Permissions,
		WebAccessible:        c.WebAccessible,
	}
	if c.Background.Script != "" {
		m.Background = &background{
			Scripts:    c.scripts(c.Background.Script),
			Persistent: c.Background.Persistent,
		}
	}

	pages := []struct {
		page *Page
		t    pagetype.Type
		set  func(u string, p *Page)
	}{
		{c.Action, pagetype.Action, func(u string, p *Page) {
			m.BrowserAction = &action{DefaultPopup: u, DefaultTitle: p.Title}
		}},
		{c.Options, pagetype.Options, func(u string, p *Page) {
			m.OptionsUI = &optionsUI{Page: u, OpenInTab: true}
		}},
		{c.Devtools, pagetype.Devtools, func(u string, p *Page) {
			m.DevtoolsPage = u
		}},
	}
	for _, p := range pages {
		if p.page == nil {
			continue
		}
		// The toolbar button may have no popup, in which case clicks are
		// delivered to the background page.
		var u string
		switch {
		case p.page.Path != "":
			var err error
			if u, err = PageURL(p.page.Path, p.t); err != nil {
				return nil, err
			}
		case p.t != pagetype.Action:
			return nil, fmt.Errorf("%w: %s page needs a path", ErrInvalidConfig, p.t)
		}
		p.set(u, p.page)
	}

	for _, cs := range c.Content {
		m.ContentScripts = append(m.ContentScripts, contentScript{
			Matches:   cs.Matches,
			JS:        c.scripts(cs.Script),
			RunAt:     cs.RunAt,
			AllFrames: cs.AllFrames,
		})
	}

	if len(c.Commands) > 0 {
		m.Commands = make(map[string]command, len(c.Commands))
		for _, cmd := range c.Commands {
			rendered := command{Description: cmd.Description}
			if cmd.Key != "" {
				rendered.SuggestedKey = &suggestedKey{Default: cmd.Key}
			}
			m.Commands[cmd.Name] = rendered
		}
	}
	return m, nil
}

// Pages returns the extension pages declared by the manifest, keyed by their
// type.
func (m *Manifest) Pages() map[pagetype.Type]string {
	pages := map[pagetype.Type]string{}
	if m.BrowserAction != nil && m.BrowserAction.DefaultPopup != "" {
		pages[pagetype.Action] = m.BrowserAction.DefaultPopup
	}
	if m.OptionsUI != nil {
		pages[pagetype.Options] = m.OptionsUI.Page
	}
	if m.DevtoolsPage != "" {
		pages[pagetype.Devtools] = m.DevtoolsPage
	}
	return pages
}

// SortedTypes returns the keys of pages in sorted order.
func SortedTypes(pages map[pagetype.Type]string) []pagetype.Type {
	types := lo.Keys(pages)
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Write writes the manifest as indented JSON.
func (m *Manifest) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
