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

// Package pagetype classifies the execution context an extension's code is
// running in, based on the location of the page.
package pagetype

import (
	"net/url"
	"strings"
)

// Type identifies the kind of page (execution context) the code is running in.
type Type string

const (
	// Action is the popup shown by the toolbar button.
	Action Type = "action"
	// Background is the extension's background page.
	Background Type = "background"
	// Devtools is the extension's devtools page.
	Devtools Type = "devtools"
	// DevtoolsPanel is a panel the extension added to the developer tools.
	DevtoolsPanel Type = "devtools-panel"
	// Options is the extension's options page.
	Options Type = "options"
	// Content is a content script running in a web page.
	Content Type = "content"
)

const (
	// Param is the query parameter extension pages use to declare their
	// type, e.g. "html/options.html?page=options".
	Param = "page"

	// generatedBackgroundPage is the page Firefox generates for background
	// scripts.
	generatedBackgroundPage = "_generated_background_page.html"
)

// All lists every page type.
var All = []Type{Action, Background, Devtools, DevtoolsPanel, Options, Content}

// Valid indicates if t is one of the known page types.
func (t Type) Valid() bool {
	for _, a := range All {
		if t == a {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (t Type) String() string {
	return string(t)
}

// IsDevtools indicates if the page belongs to the developer tools, where the
// tabs API is unavailable.
func (t Type) IsDevtools() bool {
	return t == Devtools || t == DevtoolsPanel
}

// IsExtensionURL indicates if the URL's scheme belongs to an extension, e.g.
// chrome-extension: or moz-extension:.
func IsExtensionURL(u *url.URL) bool {
	return strings.Contains(u.Scheme, "extension")
}

// Classify returns the type of page at the supplied location. Extension pages
// declare their type using the 'page' query parameter; the page Firefox
// generates for background scripts is recognised by its path. Anything that
// is not an extension page is assumed to host a content script.
func Classify(location string) Type {
	u, err := url.Parse(location)
	if err != nil || !IsExtensionURL(u) {
		return Content
	}

	page := Type(u.Query().Get(Param))
	switch {
	case page == Action:
		return Action
	case page == Background, strings.HasSuffix(u.Path, generatedBackgroundPage):
		return Background
	case page == Devtools:
		return Devtools
	case page == DevtoolsPanel:
		return DevtoolsPanel
	case page == Options:
		return Options
	}
	return Content
}

// BriefURL returns a trimmed version of the URL suitable for logs: the host
// (or scheme, for extension pages) followed by the last count segments of
// the URL.
func BriefURL(location string, count int) string {
	u, err := url.Parse(location)
	if err != nil {
		return location
	}
	if count < 1 {
		count = 1
	}

	segments := strings.Split(location, "/")
	if len(segments) > count {
		segments = segments[len(segments)-count:]
	}
	tail := strings.Join(segments, "/")

	if IsExtensionURL(u) {
		return u.Scheme + ":..." + tail
	}
	return u.Hostname() + "..." + tail
}
