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

package aggregator

import (
	"errors"
	"time"

	"github.com/rulego/livestatus/column"
	"github.com/rulego/livestatus/filter"
	"github.com/rulego/livestatus/model"
)

// StatsColumn describes one output slot of a stats query: either a count
// of rows matching an embedded filter, or a numeric column folded through
// an aggregation.
type StatsColumn interface {
	// StealFilter hands back the embedded filter so StatsAnd/StatsOr/
	// StatsNegate can recombine counting columns. Non-counting columns
	// refuse.
	StealFilter() (filter.Filter, error)
	// CreateAggregator builds the per-group fold state for this slot.
	CreateAggregator() Aggregator
}

// Aggregator is the per-group state created from a StatsColumn. It sees
// every row of its group and reports the final value.
type Aggregator interface {
	Consume(row model.Row, user model.User, now time.Time)
	Value() float64
}

// CountColumn counts rows matching an embedded Kind=stats filter.
type CountColumn struct {
	filter filter.Filter
}

// NewCount creates a counting stats column around f.
func NewCount(f filter.Filter) *CountColumn {
	return &CountColumn{filter: f}
}

func (c *CountColumn) StealFilter() (filter.Filter, error) {
	return c.filter, nil
}

func (c *CountColumn) CreateAggregator() Aggregator {
	return &countAggregator{filter: c.filter}
}

type countAggregator struct {
	filter filter.Filter
	count  uint32
}

func (a *countAggregator) Consume(row model.Row, user model.User, now time.Time) {
	if a.filter.Accepts(row, user, now) {
		a.count++
	}
}

func (a *countAggregator) Value() float64 { return float64(a.count) }

// OpColumn folds a numeric column through an aggregation kind. It owns no
// aggregation instance itself; one is created per output group.
type OpColumn struct {
	kind   Kind
	column column.Column
}

// NewOp creates an aggregating stats column.
func NewOp(kind Kind, col column.Column) *OpColumn {
	return &OpColumn{kind: kind, column: col}
}

func (c *OpColumn) StealFilter() (filter.Filter, error) {
	return nil, errors.New("not a counting aggregator")
}

func (c *OpColumn) CreateAggregator() Aggregator {
	return &opAggregator{aggregation: c.kind.New(), column: c.column}
}

type opAggregator struct {
	aggregation Aggregation
	column      column.Column
}

func (a *opAggregator) Consume(row model.Row, _ model.User, _ time.Time) {
	a.aggregation.Update(a.column.GetDouble(row))
}

func (a *opAggregator) Value() float64 { return a.aggregation.Value() }
