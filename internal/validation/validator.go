package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"ledger-engine/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = time.DateOnly

// Validator wraps the go-playground validator with the ledger's custom rules
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

var (
	instance *Validator
	once     sync.Once
)

// GetValidator returns the shared validator instance
func GetValidator() *Validator {
	once.Do(func() {
		instance = NewValidator()
	})
	return instance
}

// NewValidator creates a validator with the custom rules registered. Field
// names in errors are taken from json tags.
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("iban", validateIBAN)
	_ = v.RegisterValidation("positive_decimal", validatePositiveDecimal)
	_ = v.RegisterValidation("execution_type", validateExecutionType)
	_ = v.RegisterValidation("interest_rate", validateInterestRate)
	_ = v.RegisterValidation("currency", validateCurrency)
	_ = v.RegisterValidation("date", validateDate)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

func (v *Validator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}

// validateIBAN accepts IBANs with or without grouping spaces
func validateIBAN(fl validator.FieldLevel) bool {
	return models.ValidateIBAN(models.NormalizeIBAN(fl.Field().String()))
}

// validatePositiveDecimal checks a decimal string is greater than zero with at
// most four fractional digits
func validatePositiveDecimal(fl validator.FieldLevel) bool {
	amount, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return amount.IsPositive() && amount.Equal(amount.Round(models.MoneyScale))
}

func validateExecutionType(fl validator.FieldLevel) bool {
	return models.IsValidExecutionType(strings.ToUpper(fl.Field().String()))
}

func validateInterestRate(fl validator.FieldLevel) bool {
	rate, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return models.ValidateInterestRate(rate) == nil
}

func validateCurrency(fl validator.FieldLevel) bool {
	return models.IsValidCurrency(fl.Field().String())
}

func validateDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(DateLayout, fl.Field().String())
	return err == nil
}

// FieldErrors turns validator errors into field -> message pairs. It returns
// nil for errors that did not come from the validator.
func FieldErrors(err error) map[string]string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil
	}

	fields := make(map[string]string, len(validationErrs))
	for _, fe := range validationErrs {
		fields[fe.Field()] = FormatFieldError(fe)
	}
	return fields
}

// FormatFieldError converts a validator.FieldError to a human-readable message
func FormatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_without":
		return fmt.Sprintf("is required when %s is missing", fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters long", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters long", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "iban":
		return "must be a valid IBAN"
	case "positive_decimal":
		return "must be a positive amount with at most 4 decimal places"
	case "execution_type":
		return "must be INSTANT or NORMAL"
	case "interest_rate":
		return "must be a rate in [0, 1) with at most 4 decimal places"
	case "currency":
		return "must be a three-letter upper-case currency code"
	case "date":
		return "must be a date in YYYY-MM-DD format"
	default:
		return fmt.Sprintf("failed validation for '%s'", fe.Tag())
	}
}
