/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package trigger provides the named wakeup events behind WaitTrigger
// headers. The monitoring core fires a trigger whenever the corresponding
// state changes; waiting queries re-check their wait condition on each
// firing.
package trigger

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// The fixed trigger names of the protocol. "all" additionally fires on
// every other trigger.
var triggerNames = []string{
	"all", "check", "state", "log", "downtime", "comment", "command", "program",
}

// Trigger is one named broadcast event. Waiters block until the next
// firing; a firing wakes all current waiters at once.
type Trigger struct {
	name string
	mu   sync.Mutex
	ch   chan struct{}
}

func newTrigger(name string) *Trigger {
	return &Trigger{name: name, ch: make(chan struct{})}
}

// Name returns the protocol name of the trigger.
func (t *Trigger) Name() string { return t.name }

// Fire wakes all current waiters.
func (t *Trigger) Fire() {
	t.mu.Lock()
	close(t.ch)
	t.ch = make(chan struct{})
	t.mu.Unlock()
}

func (t *Trigger) signal() <-chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ch
}

// WaitFor blocks until the trigger fires or timeout elapses. A timeout of
// zero or less blocks until the next firing. Returns false on timeout.
func (t *Trigger) WaitFor(timeout time.Duration) bool {
	ch := t.signal()
	if timeout <= 0 {
		<-ch
		return true
	}
	select {
	case <-ch:
		return true
	case <-time.After(timeout):
		return false
	}
}

// Registry holds the fixed set of triggers of one engine instance.
type Registry struct {
	triggers map[string]*Trigger
}

// NewRegistry creates a registry with all protocol triggers.
func NewRegistry() *Registry {
	r := &Registry{triggers: make(map[string]*Trigger, len(triggerNames))}
	for _, name := range triggerNames {
		r.triggers[name] = newTrigger(name)
	}
	return r
}

// Find resolves a trigger by its protocol name.
func (r *Registry) Find(name string) (*Trigger, error) {
	t, ok := r.triggers[name]
	if !ok {
		return nil, fmt.Errorf("unknown trigger '%s', allowed: %s",
			name, strings.Join(triggerNames, ", "))
	}
	return t, nil
}

// All returns the catch-all trigger, the default wait target when no
// WaitTrigger header was given.
func (r *Registry) All() *Trigger { return r.triggers["all"] }

// Notify fires the named trigger, and "all" along with it.
func (r *Registry) Notify(name string) error {
	t, err := r.Find(name)
	if err != nil {
		return err
	}
	t.Fire()
	if name != "all" {
		r.triggers["all"].Fire()
	}
	return nil
}
