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

// Package lsql parses the header lines of one livestatus request into an
// immutable ParsedQuery plan. Per-line failures are recorded on the
// output buffer as bad_request and parsing continues, so a degenerate but
// usable plan always comes out.
package lsql

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rulego/livestatus/aggregator"
	"github.com/rulego/livestatus/column"
	"github.com/rulego/livestatus/filter"
	"github.com/rulego/livestatus/logger"
	"github.com/rulego/livestatus/model"
	"github.com/rulego/livestatus/output"
	"github.com/rulego/livestatus/table"
	"github.com/rulego/livestatus/trigger"
)

// timeNow is swappable for deterministic Localtime/Timelimit tests.
var timeNow = time.Now

// TimeLimit is the wall-clock deadline from a Timelimit: header.
type TimeLimit struct {
	Duration time.Duration
	Deadline time.Time
}

// NewTimeLimit builds a deadline starting now. The engine uses it to
// impose its query time budget on plans without a Timelimit: header.
func NewTimeLimit(d time.Duration) *TimeLimit {
	return &TimeLimit{Duration: d, Deadline: timeNow().Add(d)}
}

// ParsedQuery is the immutable plan produced from one request's header
// lines and consumed by the answerer.
type ParsedQuery struct {
	// ID correlates log lines of one query.
	ID uuid.UUID

	Columns        []column.Column
	StatsColumns   []aggregator.StatsColumn
	AllColumnNames map[string]bool

	Filter        filter.Filter
	WaitCondition filter.Filter

	User model.User

	// Limit is nil when unbounded.
	Limit     *int
	TimeLimit *TimeLimit

	// WaitTimeout is zero when absent; the trigger then blocks without
	// deadline.
	WaitTimeout time.Duration
	WaitTrigger *trigger.Trigger
	WaitObject  model.Row

	Separators     output.CSVSeparators
	OutputFormat   output.Format
	ResponseHeader output.ResponseHeaderMode

	ShowColumnHeaders bool
	KeepAlive         bool

	// TimezoneOffset is quantized to half-hour steps, |offset| < 24h.
	TimezoneOffset time.Duration
}

// parser carries the mutable state of one plan build: the three stacks
// and the plan under construction.
type parser struct {
	q         *ParsedQuery
	table     table.Table
	triggers  *trigger.Registry
	out       *output.Buffer
	filters   []filter.Filter
	waitConds []filter.Filter
}

// Parse consumes the header lines of one request and builds the plan.
// The lines carry neither the GET line nor the terminating blank line.
func Parse(lines []string, t table.Table, triggers *trigger.Registry, out *output.Buffer) *ParsedQuery {
	p := &parser{
		q: &ParsedQuery{
			ID:                uuid.New(),
			AllColumnNames:    make(map[string]bool),
			User:              model.NoAuthUser{},
			Separators:        output.DefaultCSVSeparators(),
			OutputFormat:      output.FormatBrokenCSV,
			ResponseHeader:    output.ResponseHeaderOff,
			ShowColumnHeaders: true,
			WaitObject:        model.NullRow(),
		},
		table:    t,
		triggers: triggers,
		out:      out,
	}
	for _, line := range lines {
		p.parseLine(line)
	}
	p.finish()
	return p.q
}

func (p *parser) parseLine(line string) {
	header, rest, _ := strings.Cut(line, ":")
	rest = skipWhitespace(rest)
	if err := p.dispatch(header, rest); err != nil {
		parseErr := newParseError(header, p.table.Name(), err)
		logger.Warn("query %s: %s", p.q.ID, parseErr)
		p.out.SetError(output.CodeBadRequest, "%s", parseErr)
	}
}

func (p *parser) dispatch(header, line string) error {
	switch header {
	case "Filter":
		return p.parseFilterLine(line, &p.filters, filter.KindRow)
	case "And":
		return p.parseAndOrLine(line, filter.KindRow, filter.And, &p.filters)
	case "Or":
		return p.parseAndOrLine(line, filter.KindRow, filter.Or, &p.filters)
	case "Negate":
		return p.parseNegateLine(line, &p.filters)
	case "Stats":
		return p.parseStatsLine(line)
	case "StatsAnd":
		return p.parseStatsAndOrLine(line, filter.And)
	case "StatsOr":
		return p.parseStatsAndOrLine(line, filter.Or)
	case "StatsNegate":
		return p.parseStatsNegateLine(line)
	case "Columns":
		return p.parseColumnsLine(line)
	case "ColumnHeaders":
		return p.parseColumnHeadersLine(line)
	case "Limit":
		return p.parseLimitLine(line)
	case "Timelimit":
		return p.parseTimelimitLine(line)
	case "AuthUser":
		return p.parseAuthUserHeader(line)
	case "Separators":
		return p.parseSeparatorsLine(line)
	case "OutputFormat":
		return p.parseOutputFormatLine(line)
	case "ResponseHeader":
		return p.parseResponseHeaderLine(line)
	case "KeepAlive":
		return p.parseKeepAliveLine(line)
	case "WaitCondition":
		return p.parseFilterLine(line, &p.waitConds, filter.KindWaitCondition)
	case "WaitConditionAnd":
		return p.parseAndOrLine(line, filter.KindWaitCondition, filter.And, &p.waitConds)
	case "WaitConditionOr":
		return p.parseAndOrLine(line, filter.KindWaitCondition, filter.Or, &p.waitConds)
	case "WaitConditionNegate":
		return p.parseNegateLine(line, &p.waitConds)
	case "WaitTrigger":
		return p.parseWaitTriggerLine(line)
	case "WaitObject":
		return p.parseWaitObjectLine(line)
	case "WaitTimeout":
		return p.parseWaitTimeoutLine(line)
	case "Localtime":
		return p.parseLocaltimeLine(line)
	default:
		return markSyntax(errors.New("undefined request header"))
	}
}

// finish applies the end-of-request defaults and combines the remaining
// stacks into the two filter roots.
func (p *parser) finish() {
	if len(p.q.Columns) == 0 && len(p.q.StatsColumns) == 0 {
		for _, c := range p.table.Columns() {
			p.q.Columns = append(p.q.Columns, c)
			p.q.AllColumnNames[c.Name()] = true
		}
		// This overwrites the value from a possible ColumnHeaders: line.
		p.q.ShowColumnHeaders = true
	}
	if len(p.filters) > 1 {
		logger.Debug("query %s: conjoining %d filters left on stack", p.q.ID, len(p.filters))
	}
	p.q.Filter = filter.And(filter.KindRow, p.filters)
	p.q.WaitCondition = filter.And(filter.KindWaitCondition, p.waitConds)
	p.out.SetResponseHeader(p.q.ResponseHeader)
}

func stackUnderflow(expected, actual int) error {
	plural := "filters"
	if expected == 1 {
		plural = "filter"
	}
	verb := "are"
	if actual == 1 {
		verb = "is"
	}
	return fmt.Errorf("cannot combine filters: expecting %d %s, but only %d %s on stack",
		expected, plural, actual, verb)
}

func (p *parser) parseAndOrLine(line string, kind filter.Kind, connective filter.Connective, stack *[]filter.Filter) error {
	number, err := nextNonNegativeIntegerArgument(&line)
	if err != nil {
		return err
	}
	subfilters := make([]filter.Filter, 0, number)
	for i := 0; i < number; i++ {
		if len(*stack) == 0 {
			return stackUnderflow(number, i)
		}
		subfilters = append(subfilters, (*stack)[len(*stack)-1])
		*stack = (*stack)[:len(*stack)-1]
	}
	// Popping reversed the operands; restore push order as child order.
	reverseFilters(subfilters)
	*stack = append(*stack, connective(kind, subfilters))
	return nil
}

func (p *parser) parseNegateLine(line string, stack *[]filter.Filter) error {
	if err := checkNoArguments(line); err != nil {
		return err
	}
	if len(*stack) == 0 {
		return stackUnderflow(1, 0)
	}
	top := (*stack)[len(*stack)-1]
	(*stack)[len(*stack)-1] = top.Negate()
	return nil
}

func (p *parser) parseFilterLine(line string, stack *[]filter.Filter, kind filter.Kind) error {
	columnName, err := nextStringArgument(&line)
	if err != nil {
		return err
	}
	opName, err := nextStringArgument(&line)
	if err != nil {
		return err
	}
	op, err := filter.RelationalOperatorForName(opName)
	if err != nil {
		return markSyntax(err)
	}
	col, err := p.table.Column(columnName)
	if err != nil {
		return err
	}
	// One whitespace skip only; the rhs keeps its right side verbatim.
	subFilter, err := col.CreateFilter(kind, op, skipWhitespace(line))
	if err != nil {
		return err
	}
	*stack = append(*stack, subFilter)
	p.q.AllColumnNames[columnName] = true
	return nil
}

func (p *parser) parseStatsLine(line string) error {
	// The first token is either an aggregation operator or a column name.
	firstArg, err := nextStringArgument(&line)
	if err != nil {
		return err
	}
	var columnName string
	var sc aggregator.StatsColumn
	if kind, ok := aggregator.KindForName(firstArg); ok {
		columnName, err = nextStringArgument(&line)
		if err != nil {
			return err
		}
		col, err := p.table.Column(columnName)
		if err != nil {
			return err
		}
		sc = aggregator.NewOp(kind, col)
	} else {
		columnName = firstArg
		opName, err := nextStringArgument(&line)
		if err != nil {
			return err
		}
		op, err := filter.RelationalOperatorForName(opName)
		if err != nil {
			return markSyntax(err)
		}
		col, err := p.table.Column(columnName)
		if err != nil {
			return err
		}
		f, err := col.CreateFilter(filter.KindStats, op, skipWhitespace(line))
		if err != nil {
			return err
		}
		sc = aggregator.NewCount(f)
	}
	p.q.StatsColumns = append(p.q.StatsColumns, sc)
	p.q.AllColumnNames[columnName] = true
	// Old behaviour: stats queries default to no column headers.
	p.q.ShowColumnHeaders = false
	return nil
}

func (p *parser) parseStatsAndOrLine(line string, connective filter.Connective) error {
	number, err := nextNonNegativeIntegerArgument(&line)
	if err != nil {
		return err
	}
	subfilters := make([]filter.Filter, 0, number)
	for i := 0; i < number; i++ {
		if len(p.q.StatsColumns) == 0 {
			return stackUnderflow(number, i)
		}
		top := p.q.StatsColumns[len(p.q.StatsColumns)-1]
		f, err := top.StealFilter()
		if err != nil {
			return err
		}
		subfilters = append(subfilters, f)
		p.q.StatsColumns = p.q.StatsColumns[:len(p.q.StatsColumns)-1]
	}
	reverseFilters(subfilters)
	p.q.StatsColumns = append(p.q.StatsColumns,
		aggregator.NewCount(connective(filter.KindStats, subfilters)))
	return nil
}

func (p *parser) parseStatsNegateLine(line string) error {
	if err := checkNoArguments(line); err != nil {
		return err
	}
	if len(p.q.StatsColumns) == 0 {
		return stackUnderflow(1, 0)
	}
	top := p.q.StatsColumns[len(p.q.StatsColumns)-1]
	f, err := top.StealFilter()
	if err != nil {
		return err
	}
	p.q.StatsColumns[len(p.q.StatsColumns)-1] = aggregator.NewCount(f.Negate())
	return nil
}

func (p *parser) parseColumnsLine(line string) error {
	for {
		line = skipWhitespace(line)
		if line == "" {
			break
		}
		end := strings.IndexAny(line, whitespace)
		if end < 0 {
			end = len(line)
		}
		columnName := line[:end]
		line = line[end:]
		col, err := p.table.Column(columnName)
		if err != nil {
			// Unknown names degrade to a placeholder here, unlike on
			// Filter:/Stats: lines; remote sites may still request
			// columns this site does not know.
			col = column.NewNull(columnName)
		}
		p.q.Columns = append(p.q.Columns, col)
		p.q.AllColumnNames[columnName] = true
	}
	p.q.ShowColumnHeaders = false
	return nil
}

func (p *parser) parseColumnHeadersLine(line string) error {
	value, err := nextStringArgument(&line)
	if err != nil {
		return err
	}
	switch value {
	case "on":
		p.q.ShowColumnHeaders = true
	case "off":
		p.q.ShowColumnHeaders = false
	default:
		return markSyntax(errors.New("expected 'on' or 'off'"))
	}
	return nil
}

func (p *parser) parseLimitLine(line string) error {
	limit, err := nextNonNegativeIntegerArgument(&line)
	if err != nil {
		return err
	}
	p.q.Limit = &limit
	return nil
}

func (p *parser) parseTimelimitLine(line string) error {
	seconds, err := nextNonNegativeIntegerArgument(&line)
	if err != nil {
		return err
	}
	duration := time.Duration(seconds) * time.Second
	p.q.TimeLimit = &TimeLimit{Duration: duration, Deadline: timeNow().Add(duration)}
	return nil
}

func (p *parser) parseAuthUserHeader(line string) error {
	p.q.User = p.userFinder()(line)
	return nil
}

// userFinder resolves AuthUser names through the servicegroups core when
// available; other tables fall back to the unknown principal.
func (p *parser) userFinder() func(string) model.User {
	type userResolver interface {
		FindUser(name string) model.User
	}
	if resolver, ok := p.table.(userResolver); ok {
		return resolver.FindUser
	}
	return func(name string) model.User {
		return model.UnknownUser{ContactName: name}
	}
}

func (p *parser) parseSeparatorsLine(line string) error {
	bytes := make([]string, 4)
	for i := range bytes {
		code, err := nextNonNegativeIntegerArgument(&line)
		if err != nil {
			return err
		}
		bytes[i] = string(rune(code))
	}
	p.q.Separators = output.CSVSeparators{
		Dataset:     bytes[0],
		Field:       bytes[1],
		List:        bytes[2],
		HostService: bytes[3],
	}
	return nil
}

var outputFormats = map[string]output.Format{
	"CSV":     output.FormatCSV,
	"csv":     output.FormatBrokenCSV,
	"json":    output.FormatJSON,
	"python":  output.FormatPython3, // just an alias
	"python3": output.FormatPython3,
}

func (p *parser) parseOutputFormatLine(line string) error {
	value, err := nextStringArgument(&line)
	if err != nil {
		return err
	}
	format, ok := outputFormats[value]
	if !ok {
		return markSyntax(errors.New(
			"missing/invalid output format, use one of 'CSV', 'csv', 'json', 'python', 'python3'"))
	}
	p.q.OutputFormat = format
	return nil
}

func (p *parser) parseResponseHeaderLine(line string) error {
	value, err := nextStringArgument(&line)
	if err != nil {
		return err
	}
	switch value {
	case "off":
		p.q.ResponseHeader = output.ResponseHeaderOff
	case "fixed16":
		p.q.ResponseHeader = output.ResponseHeaderFixed16
	default:
		return markSyntax(errors.New("expected 'off' or 'fixed16'"))
	}
	return nil
}

func (p *parser) parseKeepAliveLine(line string) error {
	value, err := nextStringArgument(&line)
	if err != nil {
		return err
	}
	switch value {
	case "on":
		p.q.KeepAlive = true
	case "off":
		p.q.KeepAlive = false
	default:
		return markSyntax(errors.New("expected 'on' or 'off'"))
	}
	return nil
}

func (p *parser) parseWaitTriggerLine(line string) error {
	name, err := nextStringArgument(&line)
	if err != nil {
		return err
	}
	t, err := p.triggers.Find(name)
	if err != nil {
		return err
	}
	p.q.WaitTrigger = t
	return nil
}

func (p *parser) parseWaitObjectLine(line string) error {
	row := p.table.Get(line)
	if row.IsNull() {
		return fmt.Errorf("primary key '%s' not found or not supported by this table", line)
	}
	p.q.WaitObject = row
	return nil
}

func (p *parser) parseWaitTimeoutLine(line string) error {
	millis, err := nextNonNegativeIntegerArgument(&line)
	if err != nil {
		return err
	}
	p.q.WaitTimeout = time.Duration(millis) * time.Millisecond
	return nil
}

func (p *parser) parseLocaltimeLine(line string) error {
	// The offset is added each time we output our time and subtracted
	// from reference values in filter headers. Rounding to half hours
	// assumes both clocks are synchronized and only time zones differ.
	clientTime, err := nextNonNegativeIntegerArgument(&line)
	if err != nil {
		return err
	}
	diff := time.Unix(int64(clientTime), 0).Sub(timeNow())
	halfHours := math.Round(diff.Seconds() / 1800)
	offset := time.Duration(halfHours) * 1800 * time.Second
	if offset <= -24*time.Hour || offset >= 24*time.Hour {
		return errors.New("timezone difference greater than or equal to 24 hours")
	}
	p.q.TimezoneOffset = offset
	return nil
}

func reverseFilters(filters []filter.Filter) {
	for i, j := 0, len(filters)-1; i < j; i, j = i+1, j-1 {
		filters[i], filters[j] = filters[j], filters[i]
	}
}
