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

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/spf13/cast"

	"github.com/rulego/livestatus/filter"
	"github.com/rulego/livestatus/model"
)

// ExprColumn derives a numeric value from an expression compiled over a
// row's attribute environment. Tables use it to register computed columns
// without writing a new extractor lambda.
type ExprColumn struct {
	name        string
	description string
	program     *vm.Program
	env         func(model.Row) map[string]any
}

// NewExpr compiles expression and creates a derived numeric column. The
// env callback maps a row to the variable environment the expression is
// evaluated in.
func NewExpr(name, description, expression string, env func(model.Row) map[string]any) (*ExprColumn, error) {
	program, err := expr.Compile(expression, expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("invalid column expression '%s': %w", expression, err)
	}
	return &ExprColumn{name: name, description: description, program: program, env: env}, nil
}

func (c *ExprColumn) Name() string { return c.name }
func (c *ExprColumn) Description() string { return c.description }

func (c *ExprColumn) Value(row model.Row) any { return c.GetDouble(row) }

func (c *ExprColumn) GetDouble(row model.Row) float64 {
	out, err := expr.Run(c.program, c.env(row))
	if err != nil {
		return 0
	}
	v, err := cast.ToFloat64E(out)
	if err != nil {
		return 0
	}
	return v
}

func (c *ExprColumn) CreateFilter(kind filter.Kind, op filter.RelationalOperator, value string) (filter.Filter, error) {
	switch op {
	case filter.OpEqual, filter.OpNotEqual, filter.OpLess, filter.OpGreaterOrEqual,
		filter.OpGreater, filter.OpLessOrEqual:
	default:
		return nil, fmt.Errorf("invalid relational operator '%s'", op)
	}
	ref, err := cast.ToFloat64E(strings.TrimSpace(value))
	if err != nil {
		return nil, fmt.Errorf("invalid numeric value '%s'", value)
	}
	return &doubleFilter{kind: kind, column: c, op: op, ref: ref}, nil
}

type doubleFilter struct {
	kind   filter.Kind
	column *ExprColumn
	op     filter.RelationalOperator
	ref    float64
}

func (f *doubleFilter) FilterKind() filter.Kind { return f.kind }

func (f *doubleFilter) Accepts(row model.Row, _ model.User, _ time.Time) bool {
	v := f.column.GetDouble(row)
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

func (f *doubleFilter) Negate() filter.Filter {
	negated := *f
	negated.op = f.op.Negation()
	return &negated
}
