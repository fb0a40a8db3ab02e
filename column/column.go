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

// Package column implements the typed column variants of a table: string,
// integer, membership list, expression-derived numeric, and the NullColumn
// sentinel for unknown names on Columns: lines. A column extracts a value
// from a row and builds the leaf filters of the predicate tree.
package column

import (
	"github.com/rulego/livestatus/filter"
	"github.com/rulego/livestatus/model"
)

// Column is a named, typed view over a row. Columns are owned by their
// table and outlive any single query.
type Column interface {
	Name() string
	Description() string
	// Value extracts the column's output value from a row.
	Value(row model.Row) any
	// GetDouble extracts the value as a float64 for aggregation. Columns
	// without a numeric interpretation return 0.
	GetDouble(row model.Row) float64
	// CreateFilter builds a leaf filter comparing the column against the
	// given rhs literal. The column parses the literal according to its
	// value type.
	CreateFilter(kind filter.Kind, op filter.RelationalOperator, value string) (filter.Filter, error)
}
