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

// Package filter implements the boolean predicate trees built from
// Filter:/WaitCondition:/Stats: headers. A tree node is a leaf created by
// a column, a conjunction, a disjunction, or one of the two constant
// filters that serve as identity elements.
package filter

import (
	"time"

	"github.com/rulego/livestatus/model"
)

// Kind tags where in a request a filter tree originated. It is fixed at
// construction and inherited by combined nodes.
type Kind int

const (
	// KindRow filters rows on Filter:/And:/Or:/Negate: headers.
	KindRow Kind = iota
	// KindStats filters embedded in stats columns.
	KindStats
	// KindWaitCondition filters on the WaitCondition* headers.
	KindWaitCondition
)

// Filter is a pure predicate over rows. Evaluation has no observable side
// effects and Negate returns a semantically equivalent negated tree.
type Filter interface {
	FilterKind() Kind
	Accepts(row model.Row, user model.User, now time.Time) bool
	Negate() Filter
}

// Connective is the shape shared by And and Or, so the parser can treat
// And:/Or: and their Stats/WaitCondition variants uniformly.
type Connective func(kind Kind, subfilters []Filter) Filter

// And combines subfilters into a conjunction. Zero subfilters yield the
// accept-all identity, one subfilter is returned unchanged.
func And(kind Kind, subfilters []Filter) Filter {
	switch len(subfilters) {
	case 0:
		return AcceptAll(kind)
	case 1:
		return subfilters[0]
	default:
		return &andingFilter{kind: kind, subfilters: subfilters}
	}
}

// Or combines subfilters into a disjunction. Zero subfilters yield the
// reject-all identity, one subfilter is returned unchanged.
func Or(kind Kind, subfilters []Filter) Filter {
	switch len(subfilters) {
	case 0:
		return RejectAll(kind)
	case 1:
		return subfilters[0]
	default:
		return &oringFilter{kind: kind, subfilters: subfilters}
	}
}

type andingFilter struct {
	kind       Kind
	subfilters []Filter
}

func (f *andingFilter) FilterKind() Kind { return f.kind }

func (f *andingFilter) Accepts(row model.Row, user model.User, now time.Time) bool {
	for _, sub := range f.subfilters {
		if !sub.Accepts(row, user, now) {
			return false
		}
	}
	return true
}

func (f *andingFilter) Negate() Filter {
	negated := make([]Filter, len(f.subfilters))
	for i, sub := range f.subfilters {
		negated[i] = sub.Negate()
	}
	return Or(f.kind, negated)
}

type oringFilter struct {
	kind       Kind
	subfilters []Filter
}

func (f *oringFilter) FilterKind() Kind { return f.kind }

func (f *oringFilter) Accepts(row model.Row, user model.User, now time.Time) bool {
	for _, sub := range f.subfilters {
		if sub.Accepts(row, user, now) {
			return true
		}
	}
	return false
}

func (f *oringFilter) Negate() Filter {
	negated := make([]Filter, len(f.subfilters))
	for i, sub := range f.subfilters {
		negated[i] = sub.Negate()
	}
	return And(f.kind, negated)
}

type acceptAllFilter struct{ kind Kind }

func (f acceptAllFilter) FilterKind() Kind { return f.kind }
func (f acceptAllFilter) Accepts(model.Row, model.User, time.Time) bool { return true }
func (f acceptAllFilter) Negate() Filter { return rejectAllFilter{kind: f.kind} }

type rejectAllFilter struct{ kind Kind }

func (f rejectAllFilter) FilterKind() Kind { return f.kind }
func (f rejectAllFilter) Accepts(model.Row, model.User, time.Time) bool { return false }
func (f rejectAllFilter) Negate() Filter { return acceptAllFilter{kind: f.kind} }

// AcceptAll is the trivially-true filter, the identity element of And.
func AcceptAll(kind Kind) Filter { return acceptAllFilter{kind: kind} }

// RejectAll is the trivially-false filter, the identity element of Or.
func RejectAll(kind Kind) Filter { return rejectAllFilter{kind: kind} }

// IsTautology reports whether f is the trivially-true filter. The wait
// barrier uses this to skip waiting when no WaitCondition was given.
func IsTautology(f Filter) bool {
	_, ok := f.(acceptAllFilter)
	return ok
}
