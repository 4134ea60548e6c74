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

import "fmt"

// DataType represents a column data type
type DataType int

const (
	// NULL represents an NULL data type, This is mostly used for unknown values
	NULL DataType = iota
	// INTEGER represents an integer data type
	INTEGER
	// FLOAT represents a floating point data type
	FLOAT
	// TEXT represents a string data type
	TEXT
	// BOOLEAN represents a boolean data type
	BOOLEAN
	// DECIMAL represents an exact decimal data type
	DECIMAL
)

// String returns a string representation of the DataType
func (dt DataType) String() string {
	switch dt {
	case NULL:
		return "NULL"
	case INTEGER:
		return "INTEGER"
	case FLOAT:
		return "FLOAT"
	case TEXT:
		return "TEXT"
	case BOOLEAN:
		return "BOOLEAN"
	case DECIMAL:
		return "DECIMAL"
	default:
		return fmt.Sprintf("DataType(%d)", dt)
	}
}

// Operator represents a comparison operator
type Operator int

const (
	// EQ represents equality (=)
	EQ Operator = iota
	// NE represents inequality (!=)
	NE
	// GT represents greater than (>)
	GT
	// GTE represents greater than or equal (>=)
	GTE
	// LT represents less than (<)
	LT
	// LTE represents less than or equal (<=)
	LTE
	// ISNULL represents NULL check
	ISNULL
	// ISNOTNULL represents NOT NULL check
	ISNOTNULL
)

// String returns a string representation of the Operator
func (op Operator) String() string {
	switch op {
	case EQ:
		return "="
	case NE:
		return "!="
	case GT:
		return ">"
	case GTE:
		return ">="
	case LT:
		return "<"
	case LTE:
		return "<="
	case ISNULL:
		return "IS NULL"
	case ISNOTNULL:
		return "IS NOT NULL"
	default:
		return fmt.Sprintf("Operator(%d)", op)
	}
}

// Scanner provides an iterator over rows produced by a scan. A Scanner starts
// positioned before the first row; Next advances it and reports whether a row
// is available through Row. Once Next returns false the Scanner is exhausted
// and a new one must be created to rescan.
type Scanner interface {
	Next() bool
	Row() *Row
	Err() error
	Close() error
}

// Expression represents a boolean expression that can be evaluated against
// the column values of a row
type Expression interface {
	// Evaluate evaluates the expression against a row's values
	Evaluate(values []ColumnValue) (bool, error)
}
