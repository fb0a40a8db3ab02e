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

package table

import (
	"strconv"

	"github.com/rulego/livestatus/column"
	"github.com/rulego/livestatus/model"
)

// Service states.
const (
	StateOK      = 0
	StateWarn    = 1
	StateCrit    = 2
	StateUnknown = 3
)

// State types.
const (
	StateTypeSoft = 0
	StateTypeHard = 1
)

// ServiceMember is one service of a group, with the state snapshot the
// count columns are derived from.
type ServiceMember struct {
	Host           string
	Description    string
	State          int
	StateType      int
	HasBeenChecked bool
	Acknowledged   bool
}

// ServiceGroup is one service-group entity owned by the monitoring core.
type ServiceGroup struct {
	Name      string
	Alias     string
	Notes     string
	NotesURL  string
	ActionURL string
	Members   []ServiceMember
}

// GroupAuthorization selects how group visibility is derived from member
// visibility.
type GroupAuthorization int

const (
	// GroupAuthorizationLoose shows a group when the user may see at
	// least one member.
	GroupAuthorizationLoose GroupAuthorization = iota
	// GroupAuthorizationStrict requires every member to be visible.
	GroupAuthorizationStrict
)

// Core is the monitoring-core collaborator the servicegroups table runs
// against. Implementations hold the entity storage and the contact
// authorization data.
type Core interface {
	// ForEachServiceGroup visits groups in enumeration order until f
	// returns false. Rows handed to f are only valid during the visit.
	ForEachServiceGroup(f func(*ServiceGroup) bool)
	// FindServiceGroup resolves a group by name, nil if unknown.
	FindServiceGroup(name string) *ServiceGroup
	// FindUser resolves a contact name into an authorization principal.
	// Unknown names yield a principal that sees nothing.
	FindUser(name string) model.User
}

// ServiceGroupsTable is the servicegroups table over a monitoring core.
type ServiceGroupsTable struct {
	BaseTable
	core      Core
	groupAuth GroupAuthorization
}

// NewServiceGroups builds the servicegroups table and registers its
// columns.
func NewServiceGroups(core Core, groupAuth GroupAuthorization) *ServiceGroupsTable {
	t := &ServiceGroupsTable{
		BaseTable: NewBaseTable("servicegroups"),
		core:      core,
		groupAuth: groupAuth,
	}
	t.addColumns()
	return t
}

func groupData(row model.Row) *ServiceGroup {
	return model.RowData[ServiceGroup](row)
}

func stringColumn(name, description string, get func(*ServiceGroup) string) column.Column {
	return column.NewString(name, description, func(row model.Row) string {
		if g := groupData(row); g != nil {
			return get(g)
		}
		return ""
	})
}

func countColumn(name, description string, pred func(ServiceMember) bool) column.Column {
	return column.NewInt(name, description, func(row model.Row) int64 {
		g := groupData(row)
		if g == nil {
			return 0
		}
		var n int64
		for _, m := range g.Members {
			if pred(m) {
				n++
			}
		}
		return n
	})
}

func (t *ServiceGroupsTable) addColumns() {
	t.AddColumn(stringColumn("name",
		"The name of the service group",
		func(g *ServiceGroup) string { return g.Name }))
	t.AddColumn(stringColumn("alias",
		"An alias of the service group",
		func(g *ServiceGroup) string { return g.Alias }))
	t.AddColumn(stringColumn("notes",
		"Optional additional notes about the service group",
		func(g *ServiceGroup) string { return g.Notes }))
	t.AddColumn(stringColumn("notes_url",
		"An optional URL to further notes on the service group",
		func(g *ServiceGroup) string { return g.NotesURL }))
	t.AddColumn(stringColumn("action_url",
		"An optional URL to custom notes or actions on the service group",
		func(g *ServiceGroup) string { return g.ActionURL }))
	t.AddColumn(column.NewList("members",
		"A list of all members of the service group as host/service pairs",
		func(row model.Row) []string {
			g := groupData(row)
			if g == nil {
				return nil
			}
			members := make([]string, len(g.Members))
			for i, m := range g.Members {
				members[i] = m.Host + "|" + m.Description
			}
			return members
		}))
	t.AddColumn(column.NewList("members_with_state",
		"A list of all members of the service group with state and has_been_checked",
		func(row model.Row) []string {
			g := groupData(row)
			if g == nil {
				return nil
			}
			members := make([]string, len(g.Members))
			for i, m := range g.Members {
				checked := "0"
				if m.HasBeenChecked {
					checked = "1"
				}
				members[i] = m.Host + "|" + m.Description + "|" +
					strconv.Itoa(m.State) + "|" + checked
			}
			return members
		}))
	t.AddColumn(column.NewInt("worst_service_state",
		"The worst soft state of all of the groups services (OK <= WARN <= UNKNOWN <= CRIT)",
		func(row model.Row) int64 {
			g := groupData(row)
			if g == nil {
				return StateOK
			}
			worst := int64(StateOK)
			for _, m := range g.Members {
				if stateSeverity(m.State) > stateSeverity(int(worst)) {
					worst = int64(m.State)
				}
			}
			return worst
		}))
	t.AddColumn(countColumn("num_services",
		"The total number of services in the group",
		func(ServiceMember) bool { return true }))
	t.AddColumn(countColumn("num_services_ok",
		"The number of services in the group that are OK",
		func(m ServiceMember) bool { return m.State == StateOK }))
	t.AddColumn(countColumn("num_services_warn",
		"The number of services in the group that are WARN",
		func(m ServiceMember) bool { return m.State == StateWarn }))
	t.AddColumn(countColumn("num_services_crit",
		"The number of services in the group that are CRIT",
		func(m ServiceMember) bool { return m.State == StateCrit }))
	t.AddColumn(countColumn("num_services_unknown",
		"The number of services in the group that are UNKNOWN",
		func(m ServiceMember) bool { return m.State == StateUnknown }))
	t.AddColumn(countColumn("num_services_pending",
		"The number of services in the group that are PENDING",
		func(m ServiceMember) bool { return !m.HasBeenChecked }))
	t.AddColumn(countColumn("num_services_handled_problems",
		"The number of services in the group that have handled problems",
		func(m ServiceMember) bool { return m.State != StateOK && m.Acknowledged }))
	t.AddColumn(countColumn("num_services_unhandled_problems",
		"The number of services in the group that have unhandled problems",
		func(m ServiceMember) bool { return m.State != StateOK && !m.Acknowledged }))
	t.AddColumn(countColumn("num_services_hard_ok",
		"The number of services in the group that are OK",
		func(m ServiceMember) bool { return m.StateType == StateTypeHard && m.State == StateOK }))
	t.AddColumn(countColumn("num_services_hard_warn",
		"The number of services in the group that are WARN",
		func(m ServiceMember) bool { return m.StateType == StateTypeHard && m.State == StateWarn }))
	t.AddColumn(countColumn("num_services_hard_crit",
		"The number of services in the group that are CRIT",
		func(m ServiceMember) bool { return m.StateType == StateTypeHard && m.State == StateCrit }))
	t.AddColumn(countColumn("num_services_hard_unknown",
		"The number of services in the group that are UNKNOWN",
		func(m ServiceMember) bool { return m.StateType == StateTypeHard && m.State == StateUnknown }))

	// Derived column over the count environment, compiled once at table
	// construction. The expression cannot fail to compile; ignore the
	// error to keep the constructor simple.
	_ = t.AddDerivedColumn("num_services_problems",
		"The number of services in the group that have a problem state",
		"num_services_warn + num_services_crit + num_services_unknown",
		t.countEnv)
}

// countEnv exposes the count columns as the variable environment of
// derived columns.
func (t *ServiceGroupsTable) countEnv(row model.Row) map[string]any {
	env := make(map[string]any)
	for _, name := range []string{
		"num_services_warn", "num_services_crit", "num_services_unknown",
		"num_services_ok", "num_services", "num_services_pending",
	} {
		if c, err := t.Column(name); err == nil {
			env[name] = c.Value(row)
		}
	}
	return env
}

// stateSeverity orders states OK < WARN < UNKNOWN < CRIT.
func stateSeverity(state int) int {
	switch state {
	case StateOK:
		return 0
	case StateWarn:
		return 1
	case StateUnknown:
		return 2
	case StateCrit:
		return 3
	default:
		return 4
	}
}

// Get resolves a group by its primary key "name".
func (t *ServiceGroupsTable) Get(primaryKey string) model.Row {
	g := t.core.FindServiceGroup(primaryKey)
	if g == nil {
		return model.NullRow()
	}
	return model.NewRow(g)
}

// FindUser resolves an AuthUser name through the monitoring core.
func (t *ServiceGroupsTable) FindUser(name string) model.User {
	return t.core.FindUser(name)
}

// ForEach visits all groups in the core's enumeration order.
func (t *ServiceGroupsTable) ForEach(f func(model.Row) bool) {
	t.core.ForEachServiceGroup(func(g *ServiceGroup) bool {
		return f(model.NewRow(g))
	})
}

// IsAuthorized applies the group authorization policy: loose shows the
// group when any member service is visible, strict when all are.
func (t *ServiceGroupsTable) IsAuthorized(row model.Row, user model.User) bool {
	if user.IsAuthorizedForEverything() {
		return true
	}
	g := groupData(row)
	if g == nil {
		return false
	}
	for _, m := range g.Members {
		authorized := user.IsAuthorizedForService(m.Host, m.Description)
		if t.groupAuth == GroupAuthorizationLoose && authorized {
			return true
		}
		if t.groupAuth == GroupAuthorizationStrict && !authorized {
			return false
		}
	}
	return t.groupAuth == GroupAuthorizationStrict && len(g.Members) > 0
}
