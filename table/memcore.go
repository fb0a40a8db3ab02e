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

package table

import (
	"sync"

	"github.com/rulego/livestatus/model"
)

// MemCore is an in-memory monitoring core. Queries read entity lists
// under a reader lock; the single writer updates them between queries.
type MemCore struct {
	mu       sync.RWMutex
	groups   []*ServiceGroup
	byName   map[string]*ServiceGroup
	contacts map[string]map[string]bool
}

// NewMemCore creates an empty core.
func NewMemCore() *MemCore {
	return &MemCore{
		byName:   make(map[string]*ServiceGroup),
		contacts: make(map[string]map[string]bool),
	}
}

// AddServiceGroup registers a group; enumeration follows insertion order.
func (c *MemCore) AddServiceGroup(g *ServiceGroup) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.byName[g.Name]; !exists {
		c.groups = append(c.groups, g)
	}
	c.byName[g.Name] = g
}

// AddContact registers a contact with its authorized host/service pairs.
func (c *MemCore) AddContact(name string, services ...[2]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	authorized := c.contacts[name]
	if authorized == nil {
		authorized = make(map[string]bool)
		c.contacts[name] = authorized
	}
	for _, s := range services {
		authorized[model.ServiceKey(s[0], s[1])] = true
	}
}

// ForEachServiceGroup visits groups under the reader lock.
func (c *MemCore) ForEachServiceGroup(f func(*ServiceGroup) bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, g := range c.groups {
		if !f(g) {
			return
		}
	}
}

// FindServiceGroup resolves a group by name.
func (c *MemCore) FindServiceGroup(name string) *ServiceGroup {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.byName[name]
}

// FindUser resolves a contact into a principal. Unknown contacts see
// nothing.
func (c *MemCore) FindUser(name string) model.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	authorized, ok := c.contacts[name]
	if !ok {
		return model.UnknownUser{ContactName: name}
	}
	services := make(map[string]bool, len(authorized))
	for k, v := range authorized {
		services[k] = v
	}
	return &model.ContactUser{ContactName: name, Services: services}
}
