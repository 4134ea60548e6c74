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
package storage

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ColumnValue represents a single value in a column
type ColumnValue interface {
	Type() DataType
	IsNull() bool
	AsInt64() (int64, bool)
	AsFloat64() (float64, bool)
	AsBoolean() (bool, bool)
	AsString() (string, bool)
	AsDecimal() (decimal.Decimal, bool)
	AsInterface() interface{} // Returns the underlying value as an interface{}

	Equals(other ColumnValue) bool

	// Compare compares two values and returns:
	// -1 if v < other
	// 0 if v == other
	// 1 if v > other
	// error if the comparison is not possible
	Compare(other ColumnValue) (int, error)
}

// IntegerValue is an INTEGER column value
type IntegerValue struct {
	v int64
}

// NewIntegerValue creates an INTEGER value
func NewIntegerValue(v int64) IntegerValue { return IntegerValue{v: v} }

func (iv IntegerValue) Type() DataType                    { return INTEGER }
func (iv IntegerValue) IsNull() bool                      { return false }
func (iv IntegerValue) AsInt64() (int64, bool)            { return iv.v, true }
func (iv IntegerValue) AsFloat64() (float64, bool)        { return float64(iv.v), true }
func (iv IntegerValue) AsBoolean() (bool, bool)           { return iv.v != 0, true }
func (iv IntegerValue) AsString() (string, bool)          { return fmt.Sprintf("%d", iv.v), true }
func (iv IntegerValue) AsDecimal() (decimal.Decimal, bool) {
	return decimal.NewFromInt(iv.v), true
}
func (iv IntegerValue) AsInterface() interface{} { return iv.v }

func (iv IntegerValue) Equals(other ColumnValue) bool {
	cmp, err := iv.Compare(other)
	return err == nil && cmp == 0
}

func (iv IntegerValue) Compare(other ColumnValue) (int, error) {
	return compareNumeric(decimal.NewFromInt(iv.v), other)
}

// FloatValue is a FLOAT column value
type FloatValue struct {
	v float64
}

// NewFloatValue creates a FLOAT value
func NewFloatValue(v float64) FloatValue { return FloatValue{v: v} }

func (fv FloatValue) Type() DataType             { return FLOAT }
func (fv FloatValue) IsNull() bool               { return false }
func (fv FloatValue) AsInt64() (int64, bool)     { return int64(fv.v), true }
func (fv FloatValue) AsFloat64() (float64, bool) { return fv.v, true }
func (fv FloatValue) AsBoolean() (bool, bool)    { return fv.v != 0, true }
func (fv FloatValue) AsString() (string, bool)   { return fmt.Sprintf("%g", fv.v), true }
func (fv FloatValue) AsDecimal() (decimal.Decimal, bool) {
	return decimal.NewFromFloat(fv.v), true
}
func (fv FloatValue) AsInterface() interface{} { return fv.v }

func (fv FloatValue) Equals(other ColumnValue) bool {
	cmp, err := fv.Compare(other)
	return err == nil && cmp == 0
}

func (fv FloatValue) Compare(other ColumnValue) (int, error) {
	return compareNumeric(decimal.NewFromFloat(fv.v), other)
}

// DecimalValue is an exact DECIMAL column value
type DecimalValue struct {
	v decimal.Decimal
}

// NewDecimalValue creates a DECIMAL value
func NewDecimalValue(v decimal.Decimal) DecimalValue { return DecimalValue{v: v} }

// ParseDecimalValue creates a DECIMAL value from its string form
func ParseDecimalValue(s string) (DecimalValue, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return DecimalValue{}, fmt.Errorf("invalid decimal %q: %w", s, err)
	}
	return DecimalValue{v: d}, nil
}

func (dv DecimalValue) Type() DataType         { return DECIMAL }
func (dv DecimalValue) IsNull() bool           { return false }
func (dv DecimalValue) AsInt64() (int64, bool) { return dv.v.IntPart(), true }
func (dv DecimalValue) AsFloat64() (float64, bool) {
	f, _ := dv.v.Float64()
	return f, true
}
func (dv DecimalValue) AsBoolean() (bool, bool)            { return !dv.v.IsZero(), true }
func (dv DecimalValue) AsString() (string, bool)           { return dv.v.String(), true }
func (dv DecimalValue) AsDecimal() (decimal.Decimal, bool) { return dv.v, true }
func (dv DecimalValue) AsInterface() interface{}           { return dv.v }

func (dv DecimalValue) Equals(other ColumnValue) bool {
	cmp, err := dv.Compare(other)
	return err == nil && cmp == 0
}

func (dv DecimalValue) Compare(other ColumnValue) (int, error) {
	return compareNumeric(dv.v, other)
}

// TextValue is a TEXT column value
type TextValue struct {
	v string
}

// NewTextValue creates a TEXT value
func NewTextValue(v string) TextValue { return TextValue{v: v} }

func (tv TextValue) Type() DataType                     { return TEXT }
func (tv TextValue) IsNull() bool                       { return false }
func (tv TextValue) AsInt64() (int64, bool)             { return 0, false }
func (tv TextValue) AsFloat64() (float64, bool)         { return 0, false }
func (tv TextValue) AsBoolean() (bool, bool)            { return false, false }
func (tv TextValue) AsString() (string, bool)           { return tv.v, true }
func (tv TextValue) AsDecimal() (decimal.Decimal, bool) { return decimal.Decimal{}, false }
func (tv TextValue) AsInterface() interface{}           { return tv.v }

func (tv TextValue) Equals(other ColumnValue) bool {
	cmp, err := tv.Compare(other)
	return err == nil && cmp == 0
}

func (tv TextValue) Compare(other ColumnValue) (int, error) {
	if other == nil || other.IsNull() {
		return 0, fmt.Errorf("cannot compare TEXT with NULL")
	}
	// every value renders through AsString, so the type gate has to be
	// explicit; "5" must not compare equal to the INTEGER 5
	if other.Type() != TEXT {
		return 0, fmt.Errorf("cannot compare TEXT with %s", other.Type())
	}
	s, _ := other.AsString()
	return strings.Compare(tv.v, s), nil
}

// BooleanValue is a BOOLEAN column value
type BooleanValue struct {
	v bool
}

// NewBooleanValue creates a BOOLEAN value
func NewBooleanValue(v bool) BooleanValue { return BooleanValue{v: v} }

func (bv BooleanValue) Type() DataType         { return BOOLEAN }
func (bv BooleanValue) IsNull() bool           { return false }
func (bv BooleanValue) AsInt64() (int64, bool) {
	if bv.v {
		return 1, true
	}
	return 0, true
}
func (bv BooleanValue) AsFloat64() (float64, bool) {
	i, _ := bv.AsInt64()
	return float64(i), true
}
func (bv BooleanValue) AsBoolean() (bool, bool) { return bv.v, true }
func (bv BooleanValue) AsString() (string, bool) {
	if bv.v {
		return "true", true
	}
	return "false", true
}
func (bv BooleanValue) AsDecimal() (decimal.Decimal, bool) { return decimal.Decimal{}, false }
func (bv BooleanValue) AsInterface() interface{}           { return bv.v }

func (bv BooleanValue) Equals(other ColumnValue) bool {
	cmp, err := bv.Compare(other)
	return err == nil && cmp == 0
}

func (bv BooleanValue) Compare(other ColumnValue) (int, error) {
	if other == nil || other.IsNull() {
		return 0, fmt.Errorf("cannot compare BOOLEAN with NULL")
	}
	o, ok := other.AsBoolean()
	if !ok {
		return 0, fmt.Errorf("cannot compare BOOLEAN with %s", other.Type())
	}
	switch {
	case bv.v == o:
		return 0, nil
	case bv.v:
		return 1, nil
	default:
		return -1, nil
	}
}

// NullValue is a NULL column value
type NullValue struct{}

// NewNullValue creates a NULL value
func NewNullValue() NullValue { return NullValue{} }

func (NullValue) Type() DataType                     { return NULL }
func (NullValue) IsNull() bool                       { return true }
func (NullValue) AsInt64() (int64, bool)             { return 0, false }
func (NullValue) AsFloat64() (float64, bool)         { return 0, false }
func (NullValue) AsBoolean() (bool, bool)            { return false, false }
func (NullValue) AsString() (string, bool)           { return "", false }
func (NullValue) AsDecimal() (decimal.Decimal, bool) { return decimal.Decimal{}, false }
func (NullValue) AsInterface() interface{}           { return nil }

func (NullValue) Equals(other ColumnValue) bool {
	return other != nil && other.IsNull()
}

func (NullValue) Compare(other ColumnValue) (int, error) {
	if other != nil && other.IsNull() {
		return 0, nil
	}
	return 0, fmt.Errorf("cannot compare NULL with a value")
}

// compareNumeric compares a numeric value against any other value that has a
// numeric reading. Decimal arithmetic keeps INTEGER/FLOAT/DECIMAL
// comparisons exact.
func compareNumeric(v decimal.Decimal, other ColumnValue) (int, error) {
	if other == nil || other.IsNull() {
		return 0, fmt.Errorf("cannot compare a number with NULL")
	}
	o, ok := other.AsDecimal()
	if !ok {
		return 0, fmt.Errorf("cannot compare a number with %s", other.Type())
	}
	return v.Cmp(o), nil
}

// FormatValue renders a column value for display
func FormatValue(v ColumnValue) string {
	if v == nil || v.IsNull() {
		return "NULL"
	}
	s, _ := v.AsString()
	return s
}
