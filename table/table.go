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

// Package table defines the table abstraction the query core runs
// against: a named column registry plus entity enumeration, primary-key
// lookup, and per-row authorization, all backed by the monitoring core.
package table

import (
	"fmt"

	"github.com/rulego/livestatus/column"
	"github.com/rulego/livestatus/model"
)

// Table is one queryable entity collection.
type Table interface {
	Name() string
	// Column resolves a registered column by name.
	Column(name string) (column.Column, error)
	// Columns returns all columns in registration order.
	Columns() []column.Column
	// Get resolves a row by the table's primary key; the null row if the
	// key does not exist.
	Get(primaryKey string) model.Row
	// IsAuthorized reports whether the user may see the row.
	IsAuthorized(row model.Row, user model.User) bool
	// ForEach visits the table's rows in the monitoring core's
	// enumeration order until f returns false.
	ForEach(f func(model.Row) bool)
}

// BaseTable implements the column registry shared by all tables.
type BaseTable struct {
	name    string
	columns []column.Column
	byName  map[string]column.Column
}

// NewBaseTable creates an empty registry for the named table.
func NewBaseTable(name string) BaseTable {
	return BaseTable{name: name, byName: make(map[string]column.Column)}
}

// Name returns the table name.
func (t *BaseTable) Name() string { return t.name }

// AddColumn registers a column. A duplicate name overwrites the earlier
// registration.
func (t *BaseTable) AddColumn(c column.Column) {
	if _, exists := t.byName[c.Name()]; !exists {
		t.columns = append(t.columns, c)
	} else {
		for i, old := range t.columns {
			if old.Name() == c.Name() {
				t.columns[i] = c
				break
			}
		}
	}
	t.byName[c.Name()] = c
}

// AddDerivedColumn compiles expression into a numeric column over the
// given row environment and registers it.
func (t *BaseTable) AddDerivedColumn(name, description, expression string, env func(model.Row) map[string]any) error {
	c, err := column.NewExpr(name, description, expression, env)
	if err != nil {
		return err
	}
	t.AddColumn(c)
	return nil
}

// Column resolves a registered column by name.
func (t *BaseTable) Column(name string) (column.Column, error) {
	c, ok := t.byName[name]
	if !ok {
		return nil, fmt.Errorf("table '%s' has no column '%s'", t.name, name)
	}
	return c, nil
}

// Columns returns all columns in registration order.
func (t *BaseTable) Columns() []column.Column { return t.columns }
