package config

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/amirasaad/accountsystem/pkg/money"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ErrInvalidConfig wraps every validation failure returned by Load.
var ErrInvalidConfig = errors.New("invalid configuration")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Money validates as cents, rates as float, so numeric tags like gte apply.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if m, ok := field.Interface().(money.Money); ok {
			return m.Cents()
		}
		return nil
	}, money.Money{})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// Validate checks cfg against its validate tags.
func Validate(cfg *App) error {
	if cfg == nil {
		return fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
