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

// Package model holds the handle and principal types shared by the query
// core: the opaque Row borrowed from the monitoring core, and the User
// principal used for authorization checks.
package model

// Row is an opaque handle to a single entity of a table. The monitoring
// core owns the underlying storage for the duration of the query; a Row
// must not be retained past the query that received it.
type Row struct {
	data any
}

// NewRow wraps an entity pointer into a Row handle. A nil entity yields
// the null row.
func NewRow(data any) Row {
	return Row{data: data}
}

// NullRow is the absent row, e.g. an unresolved WaitObject.
func NullRow() Row {
	return Row{}
}

// IsNull reports whether the handle refers to no entity.
func (r Row) IsNull() bool {
	return r.data == nil
}

// RowData recovers the typed entity behind a row handle. Returns nil if
// the row is null or holds a different entity type.
func RowData[T any](r Row) *T {
	v, _ := r.data.(*T)
	return v
}
