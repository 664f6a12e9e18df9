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

package app

import (
	"sync"
)

// signal records that a condition has become true, optionally with an error
// describing how it came about. Wait() may be invoked multiple times, and it
// will return immediately as long as Signal() has previously been invoked.
type signal struct {
	once sync.Once
	done chan struct{}
	err  error // Written once, before done is closed.
}

// newSignal returns a new signal.
func newSignal() *signal {
	return &signal{
		done: make(chan struct{}),
	}
}

// Signal asserts that a condition has become true, with the supplied
// outcome.  Any clients blocked on Wait will be woken up, and all future
// invocations of Wait will return immediately.
//
// Signal may be invoked multiple times; only the first outcome is kept.
func (s *signal) Signal(err error) {
	s.once.Do(func() {
		s.err = err
		close(s.done)
	})
}

// Wait blocks until Signal has been invoked, and returns the outcome.
func (s *signal) Wait() error {
	<-s.done
	return s.err
}

// Signalled indicates if Signal has been invoked.
func (s *signal) Signalled() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}
