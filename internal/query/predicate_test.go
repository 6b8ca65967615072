package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestBuildOperatorCondition_Text(t *testing.T) {
	tests := []struct {
		name     string
		operator string
		value    *string
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "equals",
			operator: OpEquals,
			value:    strPtr("apple"),
			wantSQL:  "cells.value = ?",
			wantArgs: []any{"apple"},
		},
		{
			name:     "is behaves like equals",
			operator: OpIs,
			value:    strPtr("apple"),
			wantSQL:  "cells.value = ?",
			wantArgs: []any{"apple"},
		},
		{
			name:     "not equals",
			operator: OpNotEquals,
			value:    strPtr("apple"),
			wantSQL:  "cells.value <> ?",
			wantArgs: []any{"apple"},
		},
		{
			name:     "greater than is lexical for text",
			operator: OpGreaterThan,
			value:    strPtr("b"),
			wantSQL:  "cells.value > ?",
			wantArgs: []any{"b"},
		},
		{
			name:     "contains lowercases the pattern",
			operator: OpContains,
			value:    strPtr("ApPlE"),
			wantSQL:  "LOWER(cells.value) LIKE ?",
			wantArgs: []any{"%apple%"},
		},
		{
			name:     "does not contain",
			operator: OpNotContains,
			value:    strPtr("apple"),
			wantSQL:  "LOWER(cells.value) NOT LIKE ?",
			wantArgs: []any{"%apple%"},
		},
		{
			name:     "is empty takes no operand",
			operator: OpIsEmpty,
			value:    strPtr("ignored"),
			wantSQL:  "(cells.value IS NULL OR cells.value = '')",
			wantArgs: nil,
		},
		{
			name:     "is not empty",
			operator: OpIsNotEmpty,
			value:    nil,
			wantSQL:  "(cells.value IS NOT NULL AND cells.value <> '')",
			wantArgs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := BuildOperatorCondition("cells.value", tt.operator, tt.value, false)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestBuildOperatorCondition_NumericCasts(t *testing.T) {
	sql, args, err := BuildOperatorCondition("cells.value", OpGreaterThan, strPtr("10"), true)
	require.NoError(t, err)
	assert.Contains(t, sql, "CAST(cells.value AS NUMERIC)")
	assert.Contains(t, sql, "TRIM(cells.value) <> ''")
	assert.Equal(t, []any{10.0}, args)
}

func TestBuildOperatorCondition_NumericContainsStaysTextual(t *testing.T) {
	sql, args, err := BuildOperatorCondition("cells.value", OpContains, strPtr("42"), true)
	require.NoError(t, err)
	assert.Equal(t, "LOWER(cells.value) LIKE ?", sql)
	assert.Equal(t, []any{"%42%"}, args)
}

func TestBuildOperatorCondition_NumericValueMustParse(t *testing.T) {
	_, _, err := BuildOperatorCondition("cells.value", OpLessThan, strPtr("banana"), true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not numeric")
}

func TestBuildOperatorCondition_UnsupportedOperator(t *testing.T) {
	_, _, err := BuildOperatorCondition("cells.value", "like", strPtr("x"), false)
	require.ErrorIs(t, err, ErrUnsupportedOperator)
}

func TestOperatorNeedsValue(t *testing.T) {
	assert.True(t, OperatorNeedsValue(OpEquals))
	assert.True(t, OperatorNeedsValue(OpContains))
	assert.False(t, OperatorNeedsValue(OpIsEmpty))
	assert.False(t, OperatorNeedsValue(OpIsNotEmpty))
}

func TestIsValidOperator(t *testing.T) {
	for _, op := range []string{OpEquals, OpNotEquals, OpGreaterThan, OpLessThan, OpContains, OpNotContains, OpIs, OpIsEmpty, OpIsNotEmpty} {
		assert.True(t, IsValidOperator(op), op)
	}
	assert.False(t, IsValidOperator("like"))
	assert.False(t, IsValidOperator(""))
}
