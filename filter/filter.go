// Package filter selects orders with expr-lang expressions.
//
// Every field of an order record is available as a variable of the same
// name, so `service == "proxy_ipv6" && quantity >= 10` works against the
// records returned by the orders endpoint. Fields missing from a record
// evaluate to nil. The whole record is also bound to Order.
//
// Helper functions:
//
//	field(name)          value of a field, "" when absent
//	hasField(name)       whether the record carries the field
//	icontains(s, sub)    case-insensitive substring match
//	daysUntil(date)      whole days from now until an RFC 3339 or YYYY-MM-DD date
package filter

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/proxymakers/proxymakers"
)

const programCacheSize = 64

var programs = newLRUCache[*vm.Program](programCacheSize)

// Filter is a compiled order filter. It is safe for concurrent use.
type Filter struct {
	program    *vm.Program
	expression string
}

// Compile compiles an expression, reusing a cached program when possible
func Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{Expression: expression, Reason: "empty expression"}
	}

	if program, ok := programs.Get(expression); ok {
		return &Filter{program: program, expression: expression}, nil
	}

	program, err := expr.Compile(expression,
		expr.Env(helpers(nil)),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{Expression: expression, Reason: err.Error(), Err: err}
	}

	programs.Put(expression, program)
	return &Filter{program: program, expression: expression}, nil
}

// Expression returns the original filter expression
func (f *Filter) Expression() string {
	return f.expression
}

// Match evaluates the filter against one order
func (f *Filter) Match(order proxymakers.Fields) (bool, error) {
	env := helpers(order)
	for k, v := range order {
		if _, reserved := env[k]; !reserved {
			env[k] = v
		}
	}

	out, err := expr.Run(f.program, env)
	if err != nil {
		return false, &EvaluationError{Expression: f.expression, OrderID: order.String("order_id"), Err: err}
	}

	matched, ok := out.(bool)
	if !ok {
		return false, &EvaluationError{
			Expression: f.expression,
			OrderID:    order.String("order_id"),
			Err:        fmt.Errorf("expression returned %T, want bool", out),
		}
	}
	return matched, nil
}

// Select returns the orders the filter matches. Orders that fail to
// evaluate are left out and reported in the joined error.
func (f *Filter) Select(orders []proxymakers.Fields) ([]proxymakers.Fields, error) {
	var (
		matches []proxymakers.Fields
		errs    []error
	)
	for _, order := range orders {
		ok, err := f.Match(order)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if ok {
			matches = append(matches, order)
		}
	}
	return matches, errors.Join(errs...)
}

// ClearCache drops every cached program
func ClearCache() {
	programs.Clear()
}

// helpers builds the function part of the environment
func helpers(order proxymakers.Fields) map[string]any {
	return map[string]any{
		"Order": map[string]any(order),
		"field": func(name string) any {
			return order.Get(name)
		},
		"hasField": func(name string) bool {
			_, ok := order[name]
			return ok
		},
		"icontains": func(s, sub string) bool {
			return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
		},
		"daysUntil": daysUntil,
	}
}

func daysUntil(date string) int {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, date); err == nil {
			return int(math.Floor(time.Until(t).Hours() / 24))
		}
	}
	return 0
}
