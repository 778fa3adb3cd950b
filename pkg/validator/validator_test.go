package validator_test

import (
	"errors"
	"testing"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/bizsuite/pkg/validator"
)

type color uint8

func (c color) Validate() error {
	if c == 0 || c > 2 {
		return errors.New("unknown color")
	}
	return nil
}

type payload struct {
	Name     string           `validate:"required,alphanumspace"`
	Sku      string           `validate:"required,sku"`
	Price    decimal.Decimal  `validate:"decimal_gte=0"`
	Discount *decimal.Decimal `validate:"omitempty,decimal_gte=0"`
	Color    color            `validate:"enum"`
}

func TestDefaultValidator(t *testing.T) {
	v, err := validator.NewDefaultValidator()
	require.NoError(t, err)

	valid := payload{
		Name:  "Blue Pen",
		Sku:   "PEN-001",
		Price: decimal.RequireFromString("12.50"),
		Color: 1,
	}

	t.Run("Should accept a valid payload", func(t *testing.T) {
		assert.NoError(t, v.Validate(valid))
	})

	t.Run("Should reject negative decimal amounts", func(t *testing.T) {
		p := valid
		p.Price = decimal.RequireFromString("-0.01")

		err := v.Validate(p)

		var ve govalidator.ValidationErrors
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "Price", ve[0].Field())
		assert.Equal(t, "must be greater than or equal to 0", validator.ValidationErrorMessage(ve[0]))
	})

	t.Run("Should reject a negative optional decimal", func(t *testing.T) {
		p := valid
		d := decimal.NewFromInt(-5)
		p.Discount = &d

		assert.Error(t, v.Validate(p))
	})

	t.Run("Should accept a nil optional decimal", func(t *testing.T) {
		p := valid
		p.Discount = nil

		assert.NoError(t, v.Validate(p))
	})

	t.Run("Should reject unknown enum values", func(t *testing.T) {
		p := valid
		p.Color = 9

		err := v.Validate(p)

		assert.True(t, validator.IsValidationError(err))
	})

	t.Run("Should reject malformed sku", func(t *testing.T) {
		p := valid
		p.Sku = "PEN 001"

		assert.Error(t, v.Validate(p))
	})
}

type bounds struct {
	Above *decimal.Decimal `validate:"omitempty,decimal_gt=100"`
	Below *decimal.Decimal `validate:"omitempty,decimal_lte=0.1"`
	Min   decimal.Decimal  `validate:"decimal_gte=0"`
}

func TestDecimalBounds(t *testing.T) {
	v, err := validator.NewDefaultValidator()
	require.NoError(t, err)

	d := func(s string) *decimal.Decimal {
		x := decimal.RequireFromString(s)
		return &x
	}

	t.Run("Should compare without float rounding", func(t *testing.T) {
		// Both round to 100 and 0.1 as float64.
		assert.NoError(t, v.Validate(bounds{Above: d("100.00000000000000001")}))
		assert.Error(t, v.Validate(bounds{Below: d("0.10000000000000000001")}))
	})

	t.Run("Should apply strict and inclusive bounds", func(t *testing.T) {
		assert.Error(t, v.Validate(bounds{Above: d("100")}))
		assert.NoError(t, v.Validate(bounds{Below: d("0.1")}))
		assert.NoError(t, v.Validate(bounds{Min: *d("0")}))
	})

	t.Run("Should reject a value one unit below the bound", func(t *testing.T) {
		err := v.Validate(bounds{Min: *d("-0.00000000000000000001")})

		var ve govalidator.ValidationErrors
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "Min", ve[0].Field())
		assert.Equal(t, "must be greater than or equal to 0", validator.ValidationErrorMessage(ve[0]))
	})

	t.Run("Should name the strict bound in the message", func(t *testing.T) {
		err := v.Validate(bounds{Above: d("99.99")})

		var ve govalidator.ValidationErrors
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "must be greater than 100", validator.ValidationErrorMessage(ve[0]))
	})
}
