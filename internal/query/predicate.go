package query

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Filter operators recognised by the predicate builder.
const (
	OpEquals      = "="
	OpNotEquals   = "!="
	OpGreaterThan = ">"
	OpLessThan    = "<"
	OpContains    = "contains"
	OpNotContains = "does not contain"
	OpIs          = "is"
	OpIsEmpty     = "is empty"
	OpIsNotEmpty  = "is not empty"
)

var ErrUnsupportedOperator = errors.New("unsupported filter operator")

var operators = map[string]bool{
	OpEquals:      true,
	OpNotEquals:   true,
	OpGreaterThan: true,
	OpLessThan:    true,
	OpContains:    true,
	OpNotContains: true,
	OpIs:          true,
	OpIsEmpty:     true,
	OpIsNotEmpty:  true,
}

func IsValidOperator(operator string) bool {
	return operators[operator]
}

// OperatorNeedsValue reports whether the operator compares against an
// operand. Filters with a blank value and a value-requiring operator are
// treated as inactive by the engine.
func OperatorNeedsValue(operator string) bool {
	return operator != OpIsEmpty && operator != OpIsNotEmpty
}

// NumericCastExpr wraps a stored text value in a blank-guarded numeric cast.
// Blank and missing values come out as NULL instead of failing the cast.
func NumericCastExpr(valueExpr string) string {
	return fmt.Sprintf(
		"CASE WHEN %s IS NOT NULL AND TRIM(%s) <> '' THEN CAST(%s AS NUMERIC) ELSE NULL END",
		valueExpr, valueExpr, valueExpr,
	)
}

// BuildOperatorCondition renders one stored filter into a boolean SQL
// fragment over valueExpr, a reference to a cell's text value. For number
// columns the comparison operators go through the guarded numeric cast and
// the operand is bound as a float. The fragment uses ? placeholders and
// returns its bind arguments alongside.
func BuildOperatorCondition(valueExpr, operator string, value *string, numeric bool) (string, []any, error) {
	operand := ""
	if value != nil {
		operand = *value
	}

	compareExpr := valueExpr
	var compareArg any = operand
	if numeric {
		switch operator {
		case OpEquals, OpNotEquals, OpGreaterThan, OpLessThan, OpIs:
			n, err := strconv.ParseFloat(strings.TrimSpace(operand), 64)
			if err != nil {
				return "", nil, fmt.Errorf("filter value %q is not numeric: %w", operand, err)
			}
			compareExpr = NumericCastExpr(valueExpr)
			compareArg = n
		}
	}

	switch operator {
	case OpEquals, OpIs:
		return compareExpr + " = ?", []any{compareArg}, nil
	case OpNotEquals:
		return compareExpr + " <> ?", []any{compareArg}, nil
	case OpGreaterThan:
		return compareExpr + " > ?", []any{compareArg}, nil
	case OpLessThan:
		return compareExpr + " < ?", []any{compareArg}, nil
	case OpContains:
		return "LOWER(" + valueExpr + ") LIKE ?", []any{containsPattern(operand)}, nil
	case OpNotContains:
		return "LOWER(" + valueExpr + ") NOT LIKE ?", []any{containsPattern(operand)}, nil
	case OpIsEmpty:
		return "(" + valueExpr + " IS NULL OR " + valueExpr + " = '')", nil, nil
	case OpIsNotEmpty:
		return "(" + valueExpr + " IS NOT NULL AND " + valueExpr + " <> '')", nil, nil
	default:
		return "", nil, fmt.Errorf("%w: %q", ErrUnsupportedOperator, operator)
	}
}

func containsPattern(value string) string {
	return "%" + strings.ToLower(value) + "%"
}
