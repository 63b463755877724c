package filter

import (
	"fmt"
)

// Error types for filter operations
type (
	// CompilationError indicates a filter expression could not be compiled
	CompilationError struct {
		Expression string
		Reason     string
		Err        error
	}

	// EvaluationError indicates a filter could not be evaluated against an order
	EvaluationError struct {
		Expression string
		OrderID    string
		Err        error
	}
)

func (e *CompilationError) Error() string {
	return fmt.Sprintf("compilation error in '%s': %s", e.Expression, e.Reason)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}

func (e *EvaluationError) Error() string {
	if e.OrderID == "" {
		return fmt.Sprintf("evaluation error for filter '%s': %v", e.Expression, e.Err)
	}
	return fmt.Sprintf("evaluation error for filter '%s' on order '%s': %v", e.Expression, e.OrderID, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}
