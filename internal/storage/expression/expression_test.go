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
package expression

import (
	"testing"

	"github.com/scandb/scandb/internal/storage"
)

func evalOn(t *testing.T, e storage.Expression, values ...storage.ColumnValue) bool {
	t.Helper()
	ok, err := e.Evaluate(values)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	return ok
}

func TestSimpleExpressionOperators(t *testing.T) {
	row := []storage.ColumnValue{storage.NewIntegerValue(5), storage.NewTextValue("abc")}

	cases := []struct {
		op    storage.Operator
		value storage.ColumnValue
		want  bool
	}{
		{storage.EQ, storage.NewIntegerValue(5), true},
		{storage.EQ, storage.NewIntegerValue(6), false},
		{storage.NE, storage.NewIntegerValue(6), true},
		{storage.GT, storage.NewIntegerValue(4), true},
		{storage.GT, storage.NewIntegerValue(5), false},
		{storage.GTE, storage.NewIntegerValue(5), true},
		{storage.LT, storage.NewIntegerValue(6), true},
		{storage.LTE, storage.NewIntegerValue(4), false},
		{storage.EQ, storage.NewFloatValue(5.0), true},
	}
	for _, tc := range cases {
		e := NewSimpleExpression(0, tc.op, tc.value)
		got, err := e.Evaluate(row)
		if err != nil {
			t.Errorf("%s %v: %v", tc.op, tc.value, err)
			continue
		}
		if got != tc.want {
			t.Errorf("col0 %s %v = %v, want %v", tc.op, tc.value, got, tc.want)
		}
	}
}

func TestSimpleExpressionNullHandling(t *testing.T) {
	row := []storage.ColumnValue{storage.NewNullValue(), storage.NewIntegerValue(1)}

	if !evalOn(t, NewSimpleExpression(0, storage.ISNULL, nil), row...) {
		t.Error("ISNULL on NULL column should match")
	}
	if evalOn(t, NewSimpleExpression(1, storage.ISNULL, nil), row...) {
		t.Error("ISNULL on non-NULL column should not match")
	}
	if !evalOn(t, NewSimpleExpression(1, storage.ISNOTNULL, nil), row...) {
		t.Error("ISNOTNULL on non-NULL column should match")
	}
	// NULL never matches an ordinary comparison
	if evalOn(t, NewSimpleExpression(0, storage.EQ, storage.NewIntegerValue(1)), row...) {
		t.Error("EQ against NULL column should not match")
	}
	if evalOn(t, NewSimpleExpression(1, storage.EQ, storage.NewNullValue()), row...) {
		t.Error("EQ against NULL constant should not match")
	}
}

func TestSimpleExpressionColumnOutOfRange(t *testing.T) {
	e := NewSimpleExpression(5, storage.EQ, storage.NewIntegerValue(1))
	if evalOn(t, e, storage.NewIntegerValue(1)) {
		t.Error("out-of-range column should not match")
	}
}

func TestSimpleExpressionTypeMismatch(t *testing.T) {
	e := NewSimpleExpression(0, storage.EQ, storage.NewIntegerValue(1))
	if _, err := e.Evaluate([]storage.ColumnValue{storage.NewTextValue("x")}); err == nil {
		t.Error("TEXT vs INTEGER comparison should surface an error")
	}
}

func TestLogicalExpressions(t *testing.T) {
	row := []storage.ColumnValue{storage.NewIntegerValue(5)}

	gt3 := NewSimpleExpression(0, storage.GT, storage.NewIntegerValue(3))
	lt4 := NewSimpleExpression(0, storage.LT, storage.NewIntegerValue(4))

	if evalOn(t, NewAndExpression(gt3, lt4), row...) {
		t.Error("5 > 3 AND 5 < 4 should be false")
	}
	if !evalOn(t, NewOrExpression(gt3, lt4), row...) {
		t.Error("5 > 3 OR 5 < 4 should be true")
	}
	if evalOn(t, NewNotExpression(gt3), row...) {
		t.Error("NOT (5 > 3) should be false")
	}
	if !evalOn(t, NewAndExpression(gt3), row...) {
		t.Error("single-clause AND should follow its clause")
	}
}
