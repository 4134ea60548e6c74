/*
Copyright 2026 ScanDB Contributors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
// Package expression provides boolean row-filter expressions evaluated
// against a row's column values during a scan.
package expression

import "github.com/scandb/scandb/internal/storage"

// SimpleExpression compares one column against a constant value
type SimpleExpression struct {
	Column   int // index of the column in the row values
	Operator storage.Operator
	Value    storage.ColumnValue
}

// NewSimpleExpression creates a comparison of the column at the given index
// against a constant value
func NewSimpleExpression(column int, op storage.Operator, value storage.ColumnValue) *SimpleExpression {
	return &SimpleExpression{Column: column, Operator: op, Value: value}
}

// Evaluate implements the storage.Expression interface. A column index
// outside the row does not match; comparisons involving NULL do not match
// except through the explicit NULL-check operators.
func (e *SimpleExpression) Evaluate(values []storage.ColumnValue) (bool, error) {
	if e.Column < 0 || e.Column >= len(values) {
		return false, nil
	}
	v := values[e.Column]
	isNull := v == nil || v.IsNull()

	switch e.Operator {
	case storage.ISNULL:
		return isNull, nil
	case storage.ISNOTNULL:
		return !isNull, nil
	}
	if isNull || e.Value == nil || e.Value.IsNull() {
		return false, nil
	}

	cmp, err := v.Compare(e.Value)
	if err != nil {
		return false, err
	}
	switch e.Operator {
	case storage.EQ:
		return cmp == 0, nil
	case storage.NE:
		return cmp != 0, nil
	case storage.GT:
		return cmp > 0, nil
	case storage.GTE:
		return cmp >= 0, nil
	case storage.LT:
		return cmp < 0, nil
	case storage.LTE:
		return cmp <= 0, nil
	default:
		return false, nil
	}
}
