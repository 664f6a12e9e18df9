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

package message

import (
	"fmt"
	"sync"
	"syscall/js"

	"github.com/google/chrome-webext/go/chrome"
	"github.com/google/chrome-webext/go/jsutil"
)

const (
	// statusComplete is the tab status reported once loading completes.
	statusComplete = "complete"
)

// TabOpener creates tabs and reports their progress.
//
// It is implemented by chrome.Tabs, and by fakes.Tabs for testing.
type TabOpener interface {
	Create(ctx jsutil.AsyncContext, c chrome.TabCreate) (chrome.Tab, error)
	OnUpdated(listener func(tabID int, change chrome.TabChange, tab chrome.Tab)) jsutil.CleanupFunc
	SendMessage(ctx jsutil.AsyncContext, tabID int, msg js.Value) (js.Value, error)
}

// WindowOpener creates windows.
//
// It is implemented by chrome.Windows, and by fakes.Windows for testing.
type WindowOpener interface {
	Create(ctx jsutil.AsyncContext, c chrome.WindowCreate) (chrome.Window, error)
}

// completions tracks which tabs have finished loading.  tabs.onUpdated is
// the only event that reliably reports the status of tabs we open.
type completions struct {
	mu     sync.Mutex
	done   map[int]bool
	notify chan struct{}
}

func watchCompletions(tabs TabOpener) (*completions, jsutil.CleanupFunc) {
	c := &completions{
		done:   map[int]bool{},
		notify: make(chan struct{}, 1),
	}
	cleanup := tabs.OnUpdated(func(tabID int, change chrome.TabChange, _ chrome.Tab) {
		if change.Status != statusComplete {
			return
		}
		c.mu.Lock()
		c.done[tabID] = true
		c.mu.Unlock()
		select {
		case c.notify <- struct{}{}:
		default:
		}
	})
	return c, cleanup
}

func (c *completions) isDone(tabID int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done[tabID]
}

// wait blocks until the tab has completed loading.
func (c *completions) wait(ctx jsutil.AsyncContext, tabID int) {
	for !c.isDone(tabID) {
		<-c.notify
	}
}

// notifyCreated waits for the tab to load, then tells its content scripts
// the tab was created by us.
func notifyCreated(ctx jsutil.AsyncContext, tabs TabOpener, c *completions, tab chrome.Tab) error {
	if tab.Status != statusComplete {
		c.wait(ctx, tab.ID)
	}
	content := jsutil.NewObject()
	content.Set("tabId", tab.ID)
	if _, err := tabs.SendMessage(ctx, tab.ID, New(TopicTabCreate, content).JSValue()); err != nil {
		return fmt.Errorf("failed to notify tab %d: %w", tab.ID, err)
	}
	return nil
}

// CreateTab opens a tab and waits for it to finish loading. Once loaded, a
// TopicTabCreate message with content {tabId} is sent to the tab.
func CreateTab(ctx jsutil.AsyncContext, tabs TabOpener, c chrome.TabCreate) (chrome.Tab, error) {
	comp, cleanup := watchCompletions(tabs)
	defer cleanup()

	tab, err := tabs.Create(ctx, c)
	if err != nil {
		return chrome.Tab{}, err
	}
	if err := notifyCreated(ctx, tabs, comp, tab); err != nil {
		return tab, err
	}
	return tab, nil
}

// CreateWindow opens a window (a popup, unless specified otherwise) and waits
// for its first tab to finish loading. Once loaded, a TopicTabCreate message
// with content {tabId} is sent to the tab.
func CreateWindow(ctx jsutil.AsyncContext, windows WindowOpener, tabs TabOpener, c chrome.WindowCreate) (chrome.Window, error) {
	comp, cleanup := watchCompletions(tabs)
	defer cleanup()

	w, err := windows.Create(ctx, c)
	if err != nil {
		return chrome.Window{}, err
	}
	if len(w.Tabs) == 0 {
		return w, fmt.Errorf("window %d has no tabs", w.ID)
	}
	if err := notifyCreated(ctx, tabs, comp, w.Tabs[0]); err != nil {
		return w, err
	}
	return w, nil
}
