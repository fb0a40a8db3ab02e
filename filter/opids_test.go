package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelationalOperatorForName(t *testing.T) {
	for name, expected := range map[string]RelationalOperator{
		"=": OpEqual, "!=": OpNotEqual, "~": OpMatches, "!~": OpDoesntMatch,
		"=~": OpEqualICase, "!=~": OpNotEqualICase, "~~": OpMatchesICase,
		"!~~": OpDoesntMatchICase, "<": OpLess, ">=": OpGreaterOrEqual,
		">": OpGreater, "<=": OpLessOrEqual,
	} {
		op, err := RelationalOperatorForName(name)
		require.NoError(t, err, name)
		assert.Equal(t, expected, op)
		assert.Equal(t, name, op.String())
	}

	_, err := RelationalOperatorForName("==")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid operator")
}

func TestNegationIsInvolutive(t *testing.T) {
	for name := range operatorNames {
		op, err := RelationalOperatorForName(name)
		require.NoError(t, err)
		assert.NotEqual(t, op, op.Negation(), "negation must differ: %s", name)
		assert.Equal(t, op, op.Negation().Negation(), "double negation: %s", name)
	}
}

func TestNegationPairs(t *testing.T) {
	assert.Equal(t, OpNotEqual, OpEqual.Negation())
	assert.Equal(t, OpDoesntMatch, OpMatches.Negation())
	assert.Equal(t, OpGreaterOrEqual, OpLess.Negation())
	assert.Equal(t, OpLessOrEqual, OpGreater.Negation())
	assert.Equal(t, OpNotEqualICase, OpEqualICase.Negation())
	assert.Equal(t, OpDoesntMatchICase, OpMatchesICase.Negation())
}
