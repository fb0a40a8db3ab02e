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

package column

import (
	"fmt"
	"strings"
	"time"

	"github.com/rulego/livestatus/filter"
	"github.com/rulego/livestatus/model"
)

// ListColumn extracts a membership list from a row. Filtering follows the
// livestatus list semantics: equality against the empty string tests
// emptiness, >= tests membership, < its negation, <= and > the
// case-insensitive variants.
type ListColumn struct {
	name        string
	description string
	getValue    func(model.Row) []string
}

// NewList creates a list-valued column.
func NewList(name, description string, getValue func(model.Row) []string) *ListColumn {
	return &ListColumn{name: name, description: description, getValue: getValue}
}

func (c *ListColumn) Name() string { return c.name }
func (c *ListColumn) Description() string { return c.description }
func (c *ListColumn) Value(row model.Row) any { return c.getValue(row) }
func (c *ListColumn) GetDouble(model.Row) float64 { return 0 }

func (c *ListColumn) CreateFilter(kind filter.Kind, op filter.RelationalOperator, value string) (filter.Filter, error) {
	switch op {
	case filter.OpEqual, filter.OpNotEqual:
		if value != "" {
			return nil, fmt.Errorf("invalid value '%s': must be empty for operator '%s'", value, op)
		}
	case filter.OpGreaterOrEqual, filter.OpLess, filter.OpLessOrEqual, filter.OpGreater:
	default:
		return nil, fmt.Errorf("invalid relational operator '%s'", op)
	}
	return &listFilter{kind: kind, column: c, op: op, ref: value}, nil
}

type listFilter struct {
	kind   filter.Kind
	column *ListColumn
	op     filter.RelationalOperator
	ref    string
}

func (f *listFilter) FilterKind() filter.Kind { return f.kind }

func (f *listFilter) Accepts(row model.Row, _ model.User, _ time.Time) bool {
	elements := f.column.getValue(row)
	switch f.op {
	case filter.OpEqual:
		return len(elements) == 0
	case filter.OpNotEqual:
		return len(elements) != 0
	case filter.OpGreaterOrEqual:
		return contains(elements, f.ref, false)
	case filter.OpLess:
		return !contains(elements, f.ref, false)
	case filter.OpLessOrEqual:
		return contains(elements, f.ref, true)
	case filter.OpGreater:
		return !contains(elements, f.ref, true)
	default:
		return false
	}
}

func (f *listFilter) Negate() filter.Filter {
	negated := *f
	negated.op = f.op.Negation()
	return &negated
}

func contains(elements []string, ref string, foldCase bool) bool {
	for _, e := range elements {
		if e == ref || (foldCase && strings.EqualFold(e, ref)) {
			return true
		}
	}
	return false
}
