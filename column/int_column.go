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

	"github.com/spf13/cast"

	"github.com/rulego/livestatus/filter"
	"github.com/rulego/livestatus/model"
)

// IntColumn extracts an integer value from a row, possibly derived via a
// lambda over the row's entity.
type IntColumn struct {
	name        string
	description string
	getValue    func(model.Row) int64
}

// NewInt creates an integer-valued column.
func NewInt(name, description string, getValue func(model.Row) int64) *IntColumn {
	return &IntColumn{name: name, description: description, getValue: getValue}
}

func (c *IntColumn) Name() string { return c.name }
func (c *IntColumn) Description() string { return c.description }

func (c *IntColumn) Value(row model.Row) any { return c.getValue(row) }

func (c *IntColumn) GetDouble(row model.Row) float64 { return float64(c.getValue(row)) }

func (c *IntColumn) CreateFilter(kind filter.Kind, op filter.RelationalOperator, value string) (filter.Filter, error) {
	switch op {
	case filter.OpEqual, filter.OpNotEqual, filter.OpLess, filter.OpGreaterOrEqual,
		filter.OpGreater, filter.OpLessOrEqual:
	default:
		return nil, fmt.Errorf("invalid relational operator '%s'", op)
	}
	ref, err := cast.ToInt64E(strings.TrimSpace(value))
	if err != nil {
		return nil, fmt.Errorf("invalid integer value '%s'", value)
	}
	return &intFilter{kind: kind, column: c, op: op, ref: ref}, nil
}

type intFilter struct {
	kind   filter.Kind
	column *IntColumn
	op     filter.RelationalOperator
	ref    int64
}

func (f *intFilter) FilterKind() filter.Kind { return f.kind }

func (f *intFilter) Accepts(row model.Row, _ model.User, _ time.Time) bool {
	v := f.column.getValue(row)
	switch f.op {
	case filter.OpEqual:
		return v == f.ref
	case filter.OpNotEqual:
		return v != f.ref
	case filter.OpLess:
		return v < f.ref
	case filter.OpGreaterOrEqual:
		return v >= f.ref
	case filter.OpGreater:
		return v > f.ref
	case filter.OpLessOrEqual:
		return v <= f.ref
	default:
		return false
	}
}

func (f *intFilter) Negate() filter.Filter {
	negated := *f
	negated.op = f.op.Negation()
	return &negated
}
