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

// Package query runs a ParsedQuery plan against its table: the optional
// wait barrier, then one pass over the entity list applying
// authorization, the row filter, and either row emission or the
// aggregation fold.
package query

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rulego/livestatus/aggregator"
	"github.com/rulego/livestatus/filter"
	"github.com/rulego/livestatus/logger"
	"github.com/rulego/livestatus/lsql"
	"github.com/rulego/livestatus/model"
	"github.com/rulego/livestatus/output"
	"github.com/rulego/livestatus/table"
	"github.com/rulego/livestatus/trigger"
)

// timeNow is swappable for deterministic deadline tests.
var timeNow = time.Now

// Query executes one parsed plan.
type Query struct {
	parsed   *lsql.ParsedQuery
	table    table.Table
	triggers *trigger.Registry
	out      *output.Buffer
}

// New creates an executable query from a parsed plan.
func New(parsed *lsql.ParsedQuery, t table.Table, triggers *trigger.Registry, out *output.Buffer) *Query {
	return &Query{parsed: parsed, table: t, triggers: triggers, out: out}
}

// Result summarizes one query execution.
type Result struct {
	// Rows is the number of emitted output records.
	Rows int
	// Truncated is set when the time limit fired before the scan ended.
	Truncated bool
	// WaitTimedOut is set when the wait barrier gave up; the query still
	// ran to completion.
	WaitTimedOut bool
}

// group is the fold state of one group-by key.
type group struct {
	fields      []any
	aggregators []aggregator.Aggregator
}

// Process runs the plan and renders the response into the output buffer.
func (q *Query) Process() *Result {
	result := &Result{}
	q.doWait(result)

	now := timeNow()
	user := q.parsed.User
	isStats := len(q.parsed.StatsColumns) > 0

	var rows [][]any
	groups := make(map[string]*group)
	var groupOrder []string

	q.table.ForEach(func(row model.Row) bool {
		if q.parsed.TimeLimit != nil && !timeNow().Before(q.parsed.TimeLimit.Deadline) {
			result.Truncated = true
			logger.Warn("query %s: maximum query time of %v exceeded",
				q.parsed.ID, q.parsed.TimeLimit.Duration)
			return false
		}
		if !q.table.IsAuthorized(row, user) {
			return true
		}
		if !q.parsed.Filter.Accepts(row, user, now) {
			return true
		}
		if isStats {
			q.updateGroup(row, user, now, groups, &groupOrder)
			return true
		}
		if q.parsed.Limit != nil && len(rows) >= *q.parsed.Limit {
			return false
		}
		rows = append(rows, q.rowValues(row))
		return q.parsed.Limit == nil || len(rows) < *q.parsed.Limit
	})

	if isStats {
		rows = q.groupRows(groups, groupOrder)
	}
	result.Rows = len(rows)

	renderer := output.Renderer{Format: q.parsed.OutputFormat, Separators: q.parsed.Separators}
	if err := renderer.Render(q.out, q.headers(), q.parsed.ShowColumnHeaders, rows); err != nil {
		q.out.SetError(output.CodeInternalError, "cannot render response: %v", err)
	}
	return result
}

func (q *Query) rowValues(row model.Row) []any {
	values := make([]any, len(q.parsed.Columns))
	for i, c := range q.parsed.Columns {
		values[i] = c.Value(row)
	}
	return values
}

// updateGroup folds one row into its group, creating the group's
// aggregation instances on first sight.
func (q *Query) updateGroup(row model.Row, user model.User, now time.Time,
	groups map[string]*group, groupOrder *[]string) {
	fields := q.rowValues(row)
	key := groupKey(fields)
	g, ok := groups[key]
	if !ok {
		aggregators := make([]aggregator.Aggregator, len(q.parsed.StatsColumns))
		for i, sc := range q.parsed.StatsColumns {
			aggregators[i] = sc.CreateAggregator()
		}
		g = &group{fields: fields, aggregators: aggregators}
		groups[key] = g
		*groupOrder = append(*groupOrder, key)
	}
	for _, a := range g.aggregators {
		a.Consume(row, user, now)
	}
}

// groupKey builds the lookup key of a group from its column values.
func groupKey(fields []any) string {
	var sb strings.Builder
	for i, f := range fields {
		if i > 0 {
			sb.WriteByte(0)
		}
		fmt.Fprintf(&sb, "%v", f)
	}
	return sb.String()
}

// groupRows emits one record per group in first-seen order: the group-by
// column values followed by the aggregation values.
func (q *Query) groupRows(groups map[string]*group, groupOrder []string) [][]any {
	rows := make([][]any, 0, len(groups))
	for _, key := range groupOrder {
		if q.parsed.Limit != nil && len(rows) >= *q.parsed.Limit {
			break
		}
		g := groups[key]
		record := make([]any, 0, len(g.fields)+len(g.aggregators))
		record = append(record, g.fields...)
		for _, a := range g.aggregators {
			record = append(record, a.Value())
		}
		rows = append(rows, record)
	}
	return rows
}

func (q *Query) headers() []string {
	headers := make([]string, 0, len(q.parsed.Columns)+len(q.parsed.StatsColumns))
	for _, c := range q.parsed.Columns {
		headers = append(headers, c.Name())
	}
	for i := range q.parsed.StatsColumns {
		headers = append(headers, "stats_"+strconv.Itoa(i+1))
	}
	return headers
}

// doWait blocks before the scan until the wait condition holds or the
// timeout elapses, re-checking the condition each time the trigger fires.
// Without a wait condition it returns at once, whether or not a trigger
// was given. Timing out is not an error; the scan proceeds regardless.
func (q *Query) doWait(result *Result) {
	condition := q.parsed.WaitCondition
	if filter.IsTautology(condition) {
		return
	}
	waitTrigger := q.parsed.WaitTrigger
	if waitTrigger == nil {
		waitTrigger = q.triggers.All()
	}
	var deadline time.Time
	if q.parsed.WaitTimeout > 0 {
		deadline = timeNow().Add(q.parsed.WaitTimeout)
	}
	for !q.waitConditionHolds(condition) {
		timeout := time.Duration(0)
		if !deadline.IsZero() {
			timeout = deadline.Sub(timeNow())
			if timeout <= 0 {
				result.WaitTimedOut = true
				logger.Warn("query %s: wait timeout of %v exceeded",
					q.parsed.ID, q.parsed.WaitTimeout)
				return
			}
		}
		if !waitTrigger.WaitFor(timeout) {
			result.WaitTimedOut = true
			logger.Warn("query %s: wait timeout of %v exceeded",
				q.parsed.ID, q.parsed.WaitTimeout)
			return
		}
	}
}

// waitConditionHolds evaluates the wait condition against the wait
// object, or against table membership when no object was given.
func (q *Query) waitConditionHolds(condition filter.Filter) bool {
	now := timeNow()
	user := q.parsed.User
	if !q.parsed.WaitObject.IsNull() {
		return condition.Accepts(q.parsed.WaitObject, user, now)
	}
	holds := false
	q.table.ForEach(func(row model.Row) bool {
		if q.table.IsAuthorized(row, user) && condition.Accepts(row, user, now) {
			holds = true
			return false
		}
		return true
	})
	return holds
}

