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

package jsutil

import (
	"fmt"
	"syscall/js"
	"time"
)

var (
	// console is the default 'console' object for the browser.
	console = js.Global().Get("console")
	// performance provides the high resolution clock, when available.
	performance = js.Global().Get("performance")
)

func logf(level string, format string, objs ...interface{}) {
	console.Call(level, time.Now().Format(time.StampMilli), fmt.Sprintf(format, objs...))
}

// Log logs general information to the Javascript Console.
func Log(format string, objs ...interface{}) {
	logf("log", format, objs...)
}

// LogError logs an error to the Javascript Console.
func LogError(format string, objs ...interface{}) {
	logf("error", format, objs...)
}

// LogDebug logs a debug message to the Javascript Console.
func LogDebug(format string, objs ...interface{}) {
	logf("debug", format, objs...)
}

// ConsoleLog passes the supplied values to console.log() as-is, allowing the
// console to render objects interactively.
func ConsoleLog(vals ...js.Value) {
	args := make([]interface{}, 0, len(vals))
	for _, v := range vals {
		args = append(args, v)
	}
	console.Call("log", args...)
}

// Now returns the time elapsed since the time origin of the current context,
// as reported by performance.now(). It falls back to wall-clock time when the
// performance API is not available.
func Now() time.Duration {
	if performance.IsUndefined() {
		return time.Duration(time.Now().UnixNano())
	}
	ms := performance.Call("now").Float()
	return time.Duration(ms * float64(time.Millisecond))
}
