//go:build js

// Copyright 2022 Google LLC
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

// Package app runs the modules that make up an extension. Each module targets
// one kind of page, and is initialized only in contexts of that kind.
package app

import (
	"fmt"
	"syscall/js"

	"github.com/google/chrome-webext/go/chrome"
	"github.com/google/chrome-webext/go/jsutil"
	"github.com/google/chrome-webext/go/logger"
	"github.com/google/chrome-webext/go/memstore"
	"github.com/google/chrome-webext/go/message"
	"github.com/google/chrome-webext/go/pagetype"
	"github.com/google/chrome-webext/go/storage"
)

const (
	initWaitFunc  = "appInitWaitImpl"
	terminateFunc = "appTerminateImpl"

	// originSegments is the number of path segments used to describe the
	// origin of log messages.
	originSegments = 2
)

// Module defines part of an extension that can be managed with the Run
// routine (see below).
type Module interface {
	// Name returns a descriptive name for the module, suitable for
	// display in logs.
	Name() string

	// Page returns the kind of page the module runs in.
	Page() pagetype.Type

	// Init performs any initialization work needed for the module.
	Init(ctx jsutil.AsyncContext, env *Env, cleanup *jsutil.CleanupFuncs) error
}

// Env is the state shared by the modules of a context.
type Env struct {
	// Page is the kind of page of the current context.
	Page pagetype.Type
	// Router dispatches messages received by the current context.
	Router *message.Router
	// Messenger sends messages to other contexts.
	Messenger *message.Messenger
	// Store is the store shared by all contexts.
	Store *memstore.Store
	// Log is the module's logger.
	Log logger.Logger
	// Local and Sync are the extension's persistent storage areas. They are
	// nil in contexts without access to storage.
	Local storage.Area
	Sync  storage.Area
	// Host provides access to the browser.
	Host *Host
}

// CreateTab opens a tab; see message.CreateTab.
func (e *Env) CreateTab(ctx jsutil.AsyncContext, c chrome.TabCreate) (chrome.Tab, error) {
	return message.CreateTab(ctx, e.Host.Tabs, c)
}

// CreateWindow opens a window; see message.CreateWindow.
func (e *Env) CreateWindow(ctx jsutil.AsyncContext, c chrome.WindowCreate) (chrome.Window, error) {
	return message.CreateWindow(ctx, e.Host.Windows, e.Host.Tabs, c)
}

// Context runs a module.
type Context struct {
	module  Module
	host    *Host
	cleanup jsutil.CleanupFuncs
}

// New returns a Context that runs the module against the supplied host.
func New(module Module, host *Host) *Context {
	return &Context{
		module: module,
		host:   host,
	}
}

// Release releases the functions exported to Javascript.
func (a *Context) Release() {
	a.cleanup.Do()
}

// NewEnv builds the shared state for the current context, and registers
// the context's router with the host to receive messages. The router is
// unregistered by cleanup.
func NewEnv(host *Host, cleanup *jsutil.CleanupFuncs) *Env {
	page := pagetype.Classify(host.Location)
	router := message.NewRouter()
	messenger := message.NewMessenger(page, host.Runtime, host.Tabs, host.Inspector)
	cleanup.Add(host.Runtime.AddReceiver(router))

	return &Env{
		Page:      page,
		Router:    router,
		Messenger: messenger,
		Store:     memstore.New(page, storage.NewMem(), messenger),
		Log:       logger.Discard,
		Local:     host.Local,
		Sync:      host.Sync,
		Host:      host,
	}
}

// Serve starts the services the background page provides to other
// contexts: the log receiver, the memory store and the message proxy used by
// devtools pages.
func (e *Env) Serve() error {
	if err := logger.Serve(e.Router, e.Host.console()); err != nil {
		return fmt.Errorf("failed to start log receiver: %w", err)
	}
	if err := e.Store.Serve(e.Router); err != nil {
		return fmt.Errorf("failed to start memory store: %w", err)
	}
	if err := e.Messenger.ServeProxy(e.Router); err != nil {
		return fmt.Errorf("failed to start message proxy: %w", err)
	}
	return nil
}

// initModule initializes the module. Errors (including panics) are logged
// rather than propagated.
func (a *Context) initModule(ctx jsutil.AsyncContext, env *Env, cleanup *jsutil.CleanupFuncs) (err error) {
	env.Log = logger.New(a.module.Name(), env.Page, pagetype.BriefURL(a.host.Location, originSegments), env.Messenger)
	env.Messenger.SetLogger(env.Log)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		if err != nil {
			jsutil.LogError("%s: initialization failed: %v", a.module.Name(), err)
			env.Log.Log(err.Error())
			return
		}
		env.Log.Log("module initialized")
	}()

	env.Log.Log("executing module")
	return a.module.Init(ctx, env, cleanup)
}

// Run runs the module.  Run is expected to be called directly from the main
// function of the program, and thus is permitted to block.
//
// The module is only initialized if the current context is of the kind of
// page it targets. A module targeting the background page also starts the
// services other contexts depend on: the log receiver, the memory store and
// the message proxy used by devtools pages.
//
// Run exports the following async functions to be available from Javascript:
//
//	initWaitFunc (see above): waits for module initialization to complete.
//	  If this function returns successfully, then the Module.Init()
//	  function is guaranteed to have completed without error (or to have
//	  been skipped for this context).
//
//	terminateFunc (see above): signals the module to terminate; Run() will
//	  terminate.
func (a *Context) Run() {
	jsutil.LogDebug("%s starting", a.module.Name())
	defer jsutil.LogDebug("%s finished", a.module.Name())

	init := newSignal()
	done := newSignal()

	var cleanup jsutil.CleanupFuncs
	defer cleanup.Do()

	a.cleanup.Add(jsutil.DefineAsyncFunc(js.Global(), initWaitFunc, func(ctx jsutil.AsyncContext, this js.Value, args []js.Value) (js.Value, error) {
		return js.Undefined(), init.Wait()
	}))
	a.cleanup.Add(jsutil.DefineAsyncFunc(js.Global(), terminateFunc, func(ctx jsutil.AsyncContext, this js.Value, args []js.Value) (js.Value, error) {
		done.Signal(nil)
		return js.Undefined(), nil
	}))

	env := NewEnv(a.host, &cleanup)
	target := a.module.Page()
	if env.Page == pagetype.Background && target == pagetype.Background {
		jsutil.LogDebug("%s: starting background services", a.module.Name())
		if err := env.Serve(); err != nil {
			jsutil.LogError("%s: %v", a.module.Name(), err)
		}
	}

	if env.Page != target {
		jsutil.LogDebug("%s: targets %s; skipping in %s", a.module.Name(), target, env.Page)
		init.Signal(nil)
	} else {
		jsutil.Async(func(ctx jsutil.AsyncContext) (js.Value, error) {
			jsutil.LogDebug("Run: Initialize")
			defer jsutil.LogDebug("Run: Finished Initialize")
			init.Signal(a.initModule(ctx, env, &cleanup))
			return js.Undefined(), nil
		})
	}

	done.Wait()
}
