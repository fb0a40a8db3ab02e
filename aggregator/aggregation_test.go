package aggregator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fold(k Kind, values ...float64) float64 {
	a := k.New()
	for _, v := range values {
		a.Update(v)
	}
	return a.Value()
}

func TestKindForName(t *testing.T) {
	for name, expected := range map[string]Kind{
		"sum": Sum, "min": Min, "max": Max, "avg": Avg,
		"std": Std, "suminv": SumInv, "avginv": AvgInv,
	} {
		k, ok := KindForName(name)
		require.True(t, ok, name)
		assert.Equal(t, expected, k)
		assert.Equal(t, name, k.String())
	}

	// An unknown name means the token is a column name, not an error.
	_, ok := KindForName("num_services")
	assert.False(t, ok)
}

func TestAggregations(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		values   []float64
		expected float64
	}{
		{name: "sum", kind: Sum, values: []float64{1, 2, 3.5}, expected: 6.5},
		{name: "min", kind: Min, values: []float64{3, 1, 2}, expected: 1},
		{name: "min negative", kind: Min, values: []float64{5, -2}, expected: -2},
		{name: "max", kind: Max, values: []float64{3, 7, 2}, expected: 7},
		{name: "avg", kind: Avg, values: []float64{1, 2, 3}, expected: 2},
		{name: "suminv", kind: SumInv, values: []float64{2, 4}, expected: 0.75},
		{name: "avginv", kind: AvgInv, values: []float64{2, 4}, expected: 0.375},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, fold(tt.kind, tt.values...), 1e-9)
		})
	}
}

func TestStd(t *testing.T) {
	// Population standard deviation of 2, 4, 4, 4, 5, 5, 7, 9 is 2.
	assert.InDelta(t, 2.0, fold(Std, 2, 4, 4, 4, 5, 5, 7, 9), 1e-9)
	assert.InDelta(t, 0.0, fold(Std, 3, 3, 3), 1e-9)
}

// Empty min/max report 0: the neutral element is not materialized.
func TestEmptyMinMaxAreZero(t *testing.T) {
	assert.Equal(t, 0.0, fold(Min))
	assert.Equal(t, 0.0, fold(Max))
	assert.Equal(t, 0.0, fold(Sum))
	assert.Equal(t, 0.0, fold(SumInv))
}

func TestEmptyAvgIsNaN(t *testing.T) {
	assert.True(t, math.IsNaN(fold(Avg)))
	assert.True(t, math.IsNaN(fold(AvgInv)))
	assert.True(t, math.IsNaN(fold(Std)))
}

func TestDivisionByZeroPropagates(t *testing.T) {
	assert.True(t, math.IsInf(fold(SumInv, 0), 1))
}

func TestFreshInstancePerCall(t *testing.T) {
	first := Sum.New()
	first.Update(10)
	second := Sum.New()
	assert.Equal(t, 0.0, second.Value())
	assert.Equal(t, 10.0, first.Value())
}
