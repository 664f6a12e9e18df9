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

package app

import (
	"github.com/google/chrome-webext/go/chrome"
	"github.com/google/chrome-webext/go/jsutil"
	"github.com/google/chrome-webext/go/logger"
	"github.com/google/chrome-webext/go/message"
	"github.com/google/chrome-webext/go/pagetype"
	"github.com/google/chrome-webext/go/storage"
)

// Runtime sends messages to the extension's pages, and receives messages
// sent to the current context.
//
// It is implemented by chrome.Runtime, and by fakes.Hub for testing.
type Runtime interface {
	message.Runtime
	AddReceiver(r chrome.Receiver) jsutil.CleanupFunc
}

// Tabs enumerates, creates and messages tabs.
//
// It is implemented by chrome.Tabs, and by fakes.Tabs for testing.
type Tabs interface {
	message.Tabs
	message.TabOpener
}

// Host is the browser as seen by a context.
type Host struct {
	// Location is the URL of the current context.
	Location string

	Runtime   Runtime
	Tabs      Tabs
	Windows   message.WindowOpener
	Inspector message.Inspector
	Local     storage.Area
	Sync      storage.Area

	// Console prints log messages received by the background page. If
	// nil, the console of the current context is used.
	Console logger.Console

	// Browser is the underlying extension API. It is nil when testing.
	Browser *chrome.Browser
}

func (h *Host) console() logger.Console {
	if h.Console != nil {
		return h.Console
	}
	return jsutil.ConsoleLog
}

// BrowserHost returns the Host for the current context. Storage areas that
// are unavailable in this context are left nil.
func BrowserHost() *Host {
	b := chrome.New(chrome.Namespace())
	h := &Host{
		Location:  pagetype.Location(),
		Runtime:   b.Runtime(),
		Tabs:      b.Tabs(),
		Windows:   b.Windows(),
		Inspector: b.Devtools(),
		Browser:   b,
	}
	if local, err := storage.Local(b); err == nil {
		h.Local = local
	} else {
		jsutil.LogDebug("BrowserHost: %v", err)
	}
	if sync, err := storage.Sync(b); err == nil {
		h.Sync = sync
	} else {
		jsutil.LogDebug("BrowserHost: %v", err)
	}
	return h
}
