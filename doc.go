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

// Package livestatus implements the query-processing core of a live
// monitoring data access service. It accepts line-oriented text queries
// addressed to named in-memory tables of monitoring entities and returns
// rendered responses.
//
// A request consists of a GET line naming the table, followed by header
// lines:
//
//	GET servicegroups
//	Columns: name num_services
//	Filter: num_services_crit > 0
//	Limit: 10
//
// Filters compose postfix through the And:/Or:/Negate: headers over a
// stack, so remote origins need no parenthesization. Stats: headers
// build aggregation columns (count, sum, min, max, avg, std, suminv,
// avginv); combined with Columns:, rows group by the column values.
// The WaitCondition*/WaitTrigger/WaitTimeout headers suspend a query
// until the monitored state reaches a condition.
//
// Packages:
//
//   - lsql: request parsing into an immutable ParsedQuery plan
//   - filter: the predicate tree and relational operators
//   - column: typed column variants and their leaf filters
//   - aggregator: incremental folds and stats columns
//   - table: the table abstraction and the servicegroups table
//   - query: plan execution against a table
//   - output: response buffering, framing, and rendering
//   - trigger: named wakeup events for waiting queries
package livestatus
