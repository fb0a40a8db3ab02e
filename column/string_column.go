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
	"regexp"
	"strings"
	"time"

	"github.com/rulego/livestatus/filter"
	"github.com/rulego/livestatus/model"
)

// StringColumn extracts a string value from a row via a lambda.
type StringColumn struct {
	name        string
	description string
	getValue    func(model.Row) string
}

// NewString creates a string-valued column.
func NewString(name, description string, getValue func(model.Row) string) *StringColumn {
	return &StringColumn{name: name, description: description, getValue: getValue}
}

func (c *StringColumn) Name() string { return c.name }
func (c *StringColumn) Description() string { return c.description }
func (c *StringColumn) Value(row model.Row) any { return c.getValue(row) }
func (c *StringColumn) GetDouble(model.Row) float64 { return 0 }

func (c *StringColumn) CreateFilter(kind filter.Kind, op filter.RelationalOperator, value string) (filter.Filter, error) {
	f := &stringFilter{kind: kind, column: c, op: op, ref: value}
	switch op {
	case filter.OpMatches, filter.OpDoesntMatch:
		re, err := regexp.Compile(value)
		if err != nil {
			return nil, fmt.Errorf("invalid regular expression '%s'", value)
		}
		f.regex = re
	case filter.OpMatchesICase, filter.OpDoesntMatchICase:
		re, err := regexp.Compile("(?i)" + value)
		if err != nil {
			return nil, fmt.Errorf("invalid regular expression '%s'", value)
		}
		f.regex = re
	}
	return f, nil
}

type stringFilter struct {
	kind   filter.Kind
	column *StringColumn
	op     filter.RelationalOperator
	ref    string
	regex  *regexp.Regexp
}

func (f *stringFilter) FilterKind() filter.Kind { return f.kind }

func (f *stringFilter) Accepts(row model.Row, _ model.User, _ time.Time) bool {
	v := f.column.getValue(row)
	switch f.op {
	case filter.OpEqual:
		return v == f.ref
	case filter.OpNotEqual:
		return v != f.ref
	case filter.OpEqualICase:
		return strings.EqualFold(v, f.ref)
	case filter.OpNotEqualICase:
		return !strings.EqualFold(v, f.ref)
	case filter.OpMatches, filter.OpMatchesICase:
		return f.regex.MatchString(v)
	case filter.OpDoesntMatch, filter.OpDoesntMatchICase:
		return !f.regex.MatchString(v)
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

func (f *stringFilter) Negate() filter.Filter {
	negated := *f
	negated.op = f.op.Negation()
	return &negated
}
