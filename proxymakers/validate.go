package proxymakers

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks q against the documented API constraints.
// The client does not call it; the server remains the authority.
func (q PriceQuery) Validate() error {
	return validateStruct(q)
}

// Validate checks o against the documented API constraints.
func (o OrderRequest) Validate() error {
	return validateStruct(o)
}

// Validate checks s against the documented API constraints.
func (s OrderSettings) Validate() error {
	return validateStruct(s)
}

// ValidatePeriod checks a renewal period.
func ValidatePeriod(period int) error {
	if err := validate.Var(period, fmt.Sprintf("min=%d,max=%d", MinPeriod, MaxPeriod)); err != nil {
		return toValidationError(err, "Period")
	}
	return nil
}

func validateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		return toValidationError(err, "")
	}
	return nil
}

func toValidationError(err error, field string) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{Fields: make([]FieldViolation, 0, len(verrs))}
	for _, fe := range verrs {
		name := fe.Field()
		if name == "" {
			name = field
		}
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		out.Fields = append(out.Fields, FieldViolation{
			Field: name,
			Rule:  rule,
			Value: formatValue(fe.Value()),
		})
	}
	return out
}

func formatValue(v any) string {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		rv = rv.Elem()
	}
	return fmt.Sprint(rv.Interface())
}
