package aggregator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/livestatus/aggregator"
	"github.com/rulego/livestatus/column"
	"github.com/rulego/livestatus/filter"
	"github.com/rulego/livestatus/model"
)

type device struct {
	load int64
}

func loadColumn() column.Column {
	return column.NewInt("load", "The current load", func(r model.Row) int64 {
		return model.RowData[device](r).load
	})
}

func rows(loads ...int64) []model.Row {
	out := make([]model.Row, len(loads))
	for i, l := range loads {
		out[i] = model.NewRow(&device{load: l})
	}
	return out
}

func TestCountColumn(t *testing.T) {
	op, _ := filter.RelationalOperatorForName(">")
	f, err := loadColumn().CreateFilter(filter.KindStats, op, "1")
	require.NoError(t, err)

	count := aggregator.NewCount(f)
	a := count.CreateAggregator()
	for _, r := range rows(0, 1, 2, 3) {
		a.Consume(r, model.NoAuthUser{}, time.Now())
	}
	assert.Equal(t, 2.0, a.Value())

	stolen, err := count.StealFilter()
	require.NoError(t, err)
	assert.Same(t, f, stolen)
}

func TestOpColumn(t *testing.T) {
	op := aggregator.NewOp(aggregator.Sum, loadColumn())
	a := op.CreateAggregator()
	for _, r := range rows(1, 2, 3) {
		a.Consume(r, model.NoAuthUser{}, time.Now())
	}
	assert.Equal(t, 6.0, a.Value())

	_, err := op.StealFilter()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a counting aggregator")
}

func TestOpColumnIndependentGroups(t *testing.T) {
	op := aggregator.NewOp(aggregator.Max, loadColumn())
	first := op.CreateAggregator()
	second := op.CreateAggregator()
	first.Consume(model.NewRow(&device{load: 9}), model.NoAuthUser{}, time.Now())
	assert.Equal(t, 9.0, first.Value())
	assert.Equal(t, 0.0, second.Value())
}
