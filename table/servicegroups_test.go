package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/livestatus/model"
)

func testCore() *MemCore {
	core := NewMemCore()
	core.AddServiceGroup(&ServiceGroup{
		Name:  "web",
		Alias: "Web Services",
		Members: []ServiceMember{
			{Host: "h1", Description: "http", State: StateOK, StateType: StateTypeHard, HasBeenChecked: true},
			{Host: "h1", Description: "https", State: StateCrit, StateType: StateTypeHard, HasBeenChecked: true, Acknowledged: true},
			{Host: "h2", Description: "http", State: StateWarn, HasBeenChecked: true},
			{Host: "h2", Description: "dns", State: StateUnknown, StateType: StateTypeHard, HasBeenChecked: false},
		},
	})
	core.AddContact("alice", [2]string{"h1", "http"})
	core.AddContact("bob",
		[2]string{"h1", "http"}, [2]string{"h1", "https"},
		[2]string{"h2", "http"}, [2]string{"h2", "dns"})
	return core
}

func value(t *testing.T, tbl *ServiceGroupsTable, columnName string, row model.Row) any {
	t.Helper()
	c, err := tbl.Column(columnName)
	require.NoError(t, err)
	return c.Value(row)
}

func TestColumnRegistry(t *testing.T) {
	tbl := NewServiceGroups(testCore(), GroupAuthorizationLoose)
	assert.Equal(t, "servicegroups", tbl.Name())

	columns := tbl.Columns()
	require.NotEmpty(t, columns)
	assert.Equal(t, "name", columns[0].Name())
	assert.Equal(t, "alias", columns[1].Name())

	_, err := tbl.Column("no_such_column")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "table 'servicegroups' has no column 'no_such_column'")
}

func TestStringAndListColumns(t *testing.T) {
	tbl := NewServiceGroups(testCore(), GroupAuthorizationLoose)
	web := tbl.Get("web")

	assert.Equal(t, "web", value(t, tbl, "name", web))
	assert.Equal(t, "Web Services", value(t, tbl, "alias", web))
	assert.Equal(t, []string{"h1|http", "h1|https", "h2|http", "h2|dns"},
		value(t, tbl, "members", web))
	assert.Equal(t, []string{"h1|http|0|1", "h1|https|2|1", "h2|http|1|1", "h2|dns|3|0"},
		value(t, tbl, "members_with_state", web))
}

func TestCountColumns(t *testing.T) {
	tbl := NewServiceGroups(testCore(), GroupAuthorizationLoose)
	web := tbl.Get("web")

	tests := map[string]int64{
		"num_services":                    4,
		"num_services_ok":                 1,
		"num_services_warn":               1,
		"num_services_crit":               1,
		"num_services_unknown":            1,
		"num_services_pending":            1,
		"num_services_handled_problems":   1,
		"num_services_unhandled_problems": 2,
		"num_services_hard_ok":            1,
		"num_services_hard_warn":          0,
		"num_services_hard_crit":          1,
		"num_services_hard_unknown":       1,
	}
	for name, expected := range tests {
		assert.Equal(t, expected, value(t, tbl, name, web), name)
	}
}

func TestWorstServiceState(t *testing.T) {
	tbl := NewServiceGroups(testCore(), GroupAuthorizationLoose)
	// CRIT outranks UNKNOWN, WARN, and OK.
	assert.Equal(t, int64(StateCrit), value(t, tbl, "worst_service_state", tbl.Get("web")))
}

func TestDerivedProblemsColumn(t *testing.T) {
	tbl := NewServiceGroups(testCore(), GroupAuthorizationLoose)
	c, err := tbl.Column("num_services_problems")
	require.NoError(t, err)
	// warn + crit + unknown
	assert.Equal(t, 3.0, c.GetDouble(tbl.Get("web")))
}

func TestGetUnknownPrimaryKey(t *testing.T) {
	tbl := NewServiceGroups(testCore(), GroupAuthorizationLoose)
	assert.True(t, tbl.Get("nope").IsNull())
	assert.False(t, tbl.Get("web").IsNull())
}

func TestForEachOrder(t *testing.T) {
	core := testCore()
	core.AddServiceGroup(&ServiceGroup{Name: "zzz"})
	core.AddServiceGroup(&ServiceGroup{Name: "aaa"})
	tbl := NewServiceGroups(core, GroupAuthorizationLoose)

	var names []string
	tbl.ForEach(func(row model.Row) bool {
		names = append(names, model.RowData[ServiceGroup](row).Name)
		return true
	})
	assert.Equal(t, []string{"web", "zzz", "aaa"}, names)
}

func TestAuthorizationPolicies(t *testing.T) {
	core := testCore()
	loose := NewServiceGroups(core, GroupAuthorizationLoose)
	strict := NewServiceGroups(core, GroupAuthorizationStrict)
	web := loose.Get("web")

	alice := core.FindUser("alice")
	bob := core.FindUser("bob")
	nobody := core.FindUser("nobody")

	assert.True(t, loose.IsAuthorized(web, model.NoAuthUser{}))
	assert.True(t, loose.IsAuthorized(web, alice))
	assert.False(t, strict.IsAuthorized(web, alice))
	assert.True(t, strict.IsAuthorized(web, bob))
	assert.False(t, loose.IsAuthorized(web, nobody))
}

func TestFindUser(t *testing.T) {
	core := testCore()
	assert.Equal(t, "alice", core.FindUser("alice").Name())
	assert.False(t, core.FindUser("ghost").IsAuthorizedForService("h1", "http"))
	assert.IsType(t, model.UnknownUser{}, core.FindUser("ghost"))
}
