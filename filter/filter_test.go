package filter_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/livestatus/column"
	"github.com/rulego/livestatus/filter"
	"github.com/rulego/livestatus/model"
)

type entity struct {
	name  string
	count int64
}

var testRows = []model.Row{
	model.NewRow(&entity{name: "alpha", count: 1}),
	model.NewRow(&entity{name: "beta", count: 2}),
	model.NewRow(&entity{name: "gamma", count: 3}),
}

func nameColumn() column.Column {
	return column.NewString("name", "entity name", func(row model.Row) string {
		return model.RowData[entity](row).name
	})
}

func countColumn() column.Column {
	return column.NewInt("count", "entity count", func(row model.Row) int64 {
		return model.RowData[entity](row).count
	})
}

func leaf(t *testing.T, c column.Column, opName, value string) filter.Filter {
	t.Helper()
	op, err := filter.RelationalOperatorForName(opName)
	require.NoError(t, err)
	f, err := c.CreateFilter(filter.KindRow, op, value)
	require.NoError(t, err)
	return f
}

func accepted(f filter.Filter) []string {
	var names []string
	for _, row := range testRows {
		if f.Accepts(row, model.NoAuthUser{}, time.Now()) {
			names = append(names, model.RowData[entity](row).name)
		}
	}
	return names
}

func TestIdentityElements(t *testing.T) {
	assert.Equal(t, []string{"alpha", "beta", "gamma"},
		accepted(filter.And(filter.KindRow, nil)))
	assert.Empty(t, accepted(filter.Or(filter.KindRow, nil)))
}

func TestSingletonCombination(t *testing.T) {
	f := leaf(t, nameColumn(), "=", "beta")
	assert.Same(t, f, filter.And(filter.KindRow, []filter.Filter{f}))
	assert.Same(t, f, filter.Or(filter.KindRow, []filter.Filter{f}))
}

func TestAndOr(t *testing.T) {
	nameNotAlpha := leaf(t, nameColumn(), "!=", "alpha")
	countBelowThree := leaf(t, countColumn(), "<", "3")

	and := filter.And(filter.KindRow, []filter.Filter{nameNotAlpha, countBelowThree})
	assert.Equal(t, []string{"beta"}, accepted(and))

	or := filter.Or(filter.KindRow, []filter.Filter{
		leaf(t, nameColumn(), "=", "alpha"),
		leaf(t, countColumn(), ">", "2"),
	})
	assert.Equal(t, []string{"alpha", "gamma"}, accepted(or))
}

func TestNegationInvolution(t *testing.T) {
	filters := []filter.Filter{
		leaf(t, nameColumn(), "~", "a$"),
		leaf(t, countColumn(), ">=", "2"),
		filter.And(filter.KindRow, []filter.Filter{
			leaf(t, nameColumn(), "!=", "beta"),
			leaf(t, countColumn(), "<=", "2"),
		}),
		filter.Or(filter.KindRow, []filter.Filter{
			leaf(t, nameColumn(), "=", "gamma"),
			leaf(t, countColumn(), "=", "1"),
		}),
		filter.AcceptAll(filter.KindRow),
		filter.RejectAll(filter.KindRow),
	}
	for _, f := range filters {
		assert.Equal(t, accepted(f), accepted(f.Negate().Negate()))
	}
}

func TestDeMorgan(t *testing.T) {
	a := leaf(t, nameColumn(), "=", "alpha")
	b := leaf(t, countColumn(), ">", "1")

	negatedAnd := filter.And(filter.KindRow, []filter.Filter{a, b}).Negate()
	expected := filter.Or(filter.KindRow, []filter.Filter{a.Negate(), b.Negate()})
	assert.Equal(t, accepted(expected), accepted(negatedAnd))

	negatedOr := filter.Or(filter.KindRow, []filter.Filter{a, b}).Negate()
	expected = filter.And(filter.KindRow, []filter.Filter{a.Negate(), b.Negate()})
	assert.Equal(t, accepted(expected), accepted(negatedOr))
}

func TestKindIsInherited(t *testing.T) {
	a := leaf(t, nameColumn(), "=", "alpha")
	combined := filter.And(filter.KindStats, []filter.Filter{
		filter.AcceptAll(filter.KindStats), filter.RejectAll(filter.KindStats),
	})
	assert.Equal(t, filter.KindStats, combined.FilterKind())
	assert.Equal(t, filter.KindRow, a.FilterKind())
	assert.Equal(t, filter.KindRow, a.Negate().FilterKind())
}

func TestIsTautology(t *testing.T) {
	assert.True(t, filter.IsTautology(filter.And(filter.KindWaitCondition, nil)))
	assert.False(t, filter.IsTautology(filter.Or(filter.KindWaitCondition, nil)))
	assert.False(t, filter.IsTautology(leaf(t, nameColumn(), "=", "x")))
}
