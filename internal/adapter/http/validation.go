package http

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"loanlink-backend/internal/domain/user"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// report json names, falling back to the Go field name
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// entity ids = 32-char lowercase hex
	_ = v.RegisterValidation("hex32", func(fl validator.FieldLevel) bool {
		return reHex32.MatchString(fl.Field().String())
	})
	// money: decimal.Decimal fields, max 2 decimal places
	_ = v.RegisterValidation("dec2", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		return ok && d.Equal(d.Round(2))
	})
	_ = v.RegisterValidation("dgt", compareDecimal(func(c int) bool { return c > 0 }))
	_ = v.RegisterValidation("dgte", compareDecimal(func(c int) bool { return c >= 0 }))
	_ = v.RegisterValidation("dlte", compareDecimal(func(c int) bool { return c <= 0 }))
	// one of the three assignable roles
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		_, err := user.ParseRole(fl.Field().String())
		return err == nil
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// compareDecimal checks the field against the tag param with a
// decimal.Cmp-style result.
func compareDecimal(ok func(cmp int) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d, isDec := fl.Field().Interface().(decimal.Decimal)
		bound, err := decimal.NewFromString(fl.Param())
		if !isDec || err != nil {
			return false
		}
		return ok(d.Cmp(bound))
	}
}

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "hex32":
			out = append(out, FieldError{Field: field, Message: "must be 32-char lowercase hex"})
		case "dec2":
			out = append(out, FieldError{Field: field, Message: "must have at most 2 decimal places"})
		case "role":
			out = append(out, FieldError{Field: field, Message: "must be one of borrower, manager, admin"})
		case "oneof":
			out = append(out, FieldError{Field: field, Message: "must be one of " + e.Param()})
		case "email":
			out = append(out, FieldError{Field: field, Message: "must be a valid email address"})
		case "url":
			out = append(out, FieldError{Field: field, Message: "must be a valid URL"})
		case "min":
			out = append(out, FieldError{Field: field, Message: "must be at least " + e.Param() + lengthUnit(e.Kind())})
		case "max":
			out = append(out, FieldError{Field: field, Message: "must be at most " + e.Param() + lengthUnit(e.Kind())})
		case "gte", "dgte":
			out = append(out, FieldError{Field: field, Message: "must be greater than or equal to " + e.Param()})
		case "gt", "dgt":
			out = append(out, FieldError{Field: field, Message: "must be greater than " + e.Param()})
		case "lte", "dlte":
			out = append(out, FieldError{Field: field, Message: "must be less than or equal to " + e.Param()})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}

// min/max count characters or items on strings and slices, values otherwise.
func lengthUnit(k reflect.Kind) string {
	switch k {
	case reflect.String:
		return " characters"
	case reflect.Slice, reflect.Array, reflect.Map:
		return " items"
	}
	return ""
}
