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

package livestatus

import (
	"io"
	"strings"

	"github.com/rulego/livestatus/logger"
	"github.com/rulego/livestatus/lsql"
	"github.com/rulego/livestatus/output"
	"github.com/rulego/livestatus/query"
	"github.com/rulego/livestatus/table"
	"github.com/rulego/livestatus/trigger"
	tableutil "github.com/rulego/livestatus/utils/table"
)

// Engine is the livestatus query core: a set of registered tables, the
// trigger registry, and the per-request parse/answer pipeline.
//
// Usage:
//
//	engine := livestatus.New()
//	engine.RegisterTable(table.NewServiceGroups(core, table.GroupAuthorizationLoose))
//	response := engine.AnswerTextRequest("GET servicegroups\nColumns: name\n")
type Engine struct {
	log      logger.Logger
	triggers *trigger.Registry
	tables   map[string]table.Table
	config   Config
}

// New creates an engine. Options configure logging, engine limits, and
// initial tables.
func New(options ...Option) *Engine {
	e := &Engine{
		triggers: trigger.NewRegistry(),
		tables:   make(map[string]table.Table),
		config:   DefaultConfig(),
	}
	for _, option := range options {
		option(e)
	}
	if e.log == nil {
		e.log = logger.GetDefault()
	}
	e.log.SetLevel(logger.ParseLevel(e.config.LogLevel))
	logger.SetDefault(e.log)
	return e
}

// RegisterTable makes a table queryable under its name.
func (e *Engine) RegisterTable(t table.Table) {
	e.tables[t.Name()] = t
}

// Triggers returns the engine's trigger registry.
func (e *Engine) Triggers() *trigger.Registry { return e.triggers }

// Notify fires a named trigger, waking queries blocked on it.
func (e *Engine) Notify(name string) error {
	return e.triggers.Notify(name)
}

// AnswerTextRequest splits a raw request on newlines and answers it.
func (e *Engine) AnswerTextRequest(request string) []byte {
	lines := strings.Split(strings.TrimRight(request, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return e.AnswerRequest(lines)
}

// AnswerRequest handles one request: a GET line followed by header
// lines, ending at a blank line or the end of the slice. It always
// produces a response; parse failures yield a bad_request payload.
func (e *Engine) AnswerRequest(lines []string) []byte {
	out := output.NewBuffer()
	if len(lines) == 0 || !strings.HasPrefix(lines[0], "GET ") {
		out.SetError(output.CodeBadRequest, "invalid request method")
		return out.Finish()
	}
	tableName := strings.Trim(lines[0][len("GET "):], " \t")
	t, ok := e.tables[tableName]
	if !ok {
		out.SetError(output.CodeNotFound, "invalid GET request, no such table '%s'", tableName)
		return out.Finish()
	}

	headerLines := lines[1:]
	for i, line := range headerLines {
		if line == "" {
			headerLines = headerLines[:i]
			break
		}
	}

	parsed := lsql.Parse(headerLines, t, e.triggers, out)
	e.applyConfigLimits(parsed)
	result := query.New(parsed, t, e.triggers, out).Process()
	e.log.Debug("query %s on table '%s': %d rows, truncated=%v",
		parsed.ID, tableName, result.Rows, result.Truncated)
	return out.Finish()
}

// applyConfigLimits imposes the engine-wide query time budget on plans
// that did not set their own Timelimit.
func (e *Engine) applyConfigLimits(parsed *lsql.ParsedQuery) {
	if parsed.TimeLimit == nil && e.config.MaxQueryTimeSeconds > 0 {
		parsed.TimeLimit = lsql.NewTimeLimit(e.config.MaxQueryTime())
	}
}

// PrintColumns writes a readable table of the named table's columns and
// descriptions, a debugging aid mirroring the columns meta-table.
func (e *Engine) PrintColumns(w io.Writer, tableName string) bool {
	t, ok := e.tables[tableName]
	if !ok {
		return false
	}
	rows := make([][]string, 0, len(t.Columns()))
	for _, c := range t.Columns() {
		rows = append(rows, []string{c.Name(), c.Description()})
	}
	tableutil.Fprint(w, []string{"name", "description"}, rows)
	return true
}
