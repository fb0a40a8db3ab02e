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

package model

// User is the authorization principal a query runs as. Tables consult it
// row by row; unauthorized rows are silently dropped, never reported as
// errors.
type User interface {
	// Name returns the contact name, or "" for the no-auth principal.
	Name() string
	// IsAuthorizedForService reports whether the user may see the given
	// host/service pair.
	IsAuthorizedForService(host, description string) bool
	// IsAuthorizedForEverything reports whether authorization checks can
	// be skipped entirely for this principal.
	IsAuthorizedForEverything() bool
}

// NoAuthUser is the default principal: no AuthUser header was given, the
// query sees every row.
type NoAuthUser struct{}

func (NoAuthUser) Name() string { return "" }
func (NoAuthUser) IsAuthorizedForService(string, string) bool { return true }
func (NoAuthUser) IsAuthorizedForEverything() bool { return true }

// ContactUser is a known contact with an explicit set of authorized
// host/service pairs, as resolved by the monitoring core.
type ContactUser struct {
	ContactName string
	// Services holds authorized pairs keyed by ServiceKey.
	Services map[string]bool
}

// ServiceKey builds the lookup key used by ContactUser.Services.
func ServiceKey(host, description string) string {
	return host + ";" + description
}

func (u *ContactUser) Name() string { return u.ContactName }

func (u *ContactUser) IsAuthorizedForService(host, description string) bool {
	return u.Services[ServiceKey(host, description)]
}

func (u *ContactUser) IsAuthorizedForEverything() bool { return false }

// UnknownUser is the principal for an AuthUser name the core cannot
// resolve. It is authorized for nothing, so the query yields no rows.
type UnknownUser struct {
	ContactName string
}

func (u UnknownUser) Name() string { return u.ContactName }
func (UnknownUser) IsAuthorizedForService(string, string) bool { return false }
func (UnknownUser) IsAuthorizedForEverything() bool { return false }
