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

import "github.com/scandb/scandb/internal/storage"

// AndExpression matches when every child expression matches
type AndExpression struct {
	Expressions []storage.Expression
}

// NewAndExpression creates a conjunction of expressions
func NewAndExpression(exprs ...storage.Expression) *AndExpression {
	return &AndExpression{Expressions: exprs}
}

// Evaluate implements the storage.Expression interface
func (e *AndExpression) Evaluate(values []storage.ColumnValue) (bool, error) {
	for _, expr := range e.Expressions {
		match, err := expr.Evaluate(values)
		if err != nil {
			return false, err
		}
		if !match {
			return false, nil
		}
	}
	return true, nil
}

// OrExpression matches when any child expression matches
type OrExpression struct {
	Expressions []storage.Expression
}

// NewOrExpression creates a disjunction of expressions
func NewOrExpression(exprs ...storage.Expression) *OrExpression {
	return &OrExpression{Expressions: exprs}
}

// Evaluate implements the storage.Expression interface
func (e *OrExpression) Evaluate(values []storage.ColumnValue) (bool, error) {
	for _, expr := range e.Expressions {
		match, err := expr.Evaluate(values)
		if err != nil {
			return false, err
		}
		if match {
			return true, nil
		}
	}
	return false, nil
}

// NotExpression inverts another expression
type NotExpression struct {
	Expression storage.Expression
}

// NewNotExpression creates the negation of an expression
func NewNotExpression(expr storage.Expression) *NotExpression {
	return &NotExpression{Expression: expr}
}

// Evaluate implements the storage.Expression interface
func (e *NotExpression) Evaluate(values []storage.ColumnValue) (bool, error) {
	match, err := e.Expression.Evaluate(values)
	if err != nil {
		return false, err
	}
	return !match, nil
}
