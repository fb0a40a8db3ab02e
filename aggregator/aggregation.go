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

// Package aggregator implements the incremental folds behind Stats:
// headers and the stats-column descriptors that drive them.
package aggregator

import "math"

// Aggregation is mutable fold state over float64 values. A fresh instance
// is created per output group; Update folds one value in, Value reads the
// current result.
type Aggregation interface {
	Update(value float64)
	Value() float64
}

// Kind enumerates the aggregation operators of the protocol. The set is
// closed; KindForName decides whether the first token of a Stats: line is
// an operator or a column name.
type Kind int

const (
	Sum Kind = iota
	Min
	Max
	Avg
	Std
	SumInv
	AvgInv
)

var kindNames = map[string]Kind{
	"sum":    Sum,
	"min":    Min,
	"max":    Max,
	"avg":    Avg,
	"std":    Std,
	"suminv": SumInv,
	"avginv": AvgInv,
}

// KindForName resolves an aggregation operator name.
func KindForName(name string) (Kind, bool) {
	k, ok := kindNames[name]
	return k, ok
}

// String returns the protocol name of the aggregation.
func (k Kind) String() string {
	switch k {
	case Sum:
		return "sum"
	case Min:
		return "min"
	case Max:
		return "max"
	case Avg:
		return "avg"
	case Std:
		return "std"
	case SumInv:
		return "suminv"
	case AvgInv:
		return "avginv"
	default:
		return "unknown"
	}
}

// New creates a fresh fold for the kind.
func (k Kind) New() Aggregation {
	switch k {
	case Sum:
		return &sumAggregation{}
	case Min:
		return &minAggregation{}
	case Max:
		return &maxAggregation{}
	case Avg:
		return &avgAggregation{}
	case Std:
		return &stdAggregation{}
	case SumInv:
		return &sumInvAggregation{}
	case AvgInv:
		return &avgInvAggregation{}
	default:
		panic("unsupported aggregation kind: " + k.String())
	}
}

type sumAggregation struct {
	sum float64
}

func (a *sumAggregation) Update(value float64) { a.sum += value }
func (a *sumAggregation) Value() float64       { return a.sum }

// minAggregation tracks a seen flag because the neutral element is not
// materialized; an empty aggregation reports 0, not +Inf.
type minAggregation struct {
	seen bool
	sum  float64
}

func (a *minAggregation) Update(value float64) {
	if !a.seen || value < a.sum {
		a.sum = value
	}
	a.seen = true
}

func (a *minAggregation) Value() float64 { return a.sum }

type maxAggregation struct {
	seen bool
	sum  float64
}

func (a *maxAggregation) Update(value float64) {
	if !a.seen || value > a.sum {
		a.sum = value
	}
	a.seen = true
}

func (a *maxAggregation) Value() float64 { return a.sum }

type avgAggregation struct {
	count uint32
	sum   float64
}

func (a *avgAggregation) Update(value float64) {
	a.count++
	a.sum += value
}

func (a *avgAggregation) Value() float64 { return a.sum / float64(a.count) }

type stdAggregation struct {
	count        uint32
	sum          float64
	sumOfSquares float64
}

func (a *stdAggregation) Update(value float64) {
	a.count++
	a.sum += value
	a.sumOfSquares += value * value
}

func (a *stdAggregation) Value() float64 {
	mean := a.sum / float64(a.count)
	return math.Sqrt(a.sumOfSquares/float64(a.count) - mean*mean)
}

type sumInvAggregation struct {
	sum float64
}

func (a *sumInvAggregation) Update(value float64) { a.sum += 1.0 / value }
func (a *sumInvAggregation) Value() float64       { return a.sum }

type avgInvAggregation struct {
	count uint32
	sum   float64
}

func (a *avgInvAggregation) Update(value float64) {
	a.count++
	a.sum += 1.0 / value
}

func (a *avgInvAggregation) Value() float64 { return a.sum / float64(a.count) }
