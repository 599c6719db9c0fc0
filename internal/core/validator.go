package core

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"holocene/internal/types"
)

// BusDateLayout is the wire layout of business dates in query strings.
const BusDateLayout = "2006-01-02"

// symbolPattern accepts equity tickers and Bloomberg-style identifiers
// ("AAPL", "BRK/B", "VOD LN", "7203.T").
var symbolPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 ./\-]{0,31}$`)

// ValidationError describes one failed rule.
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

// Validator wraps go-playground/validator with the domain tags "symbol" and
// "busdate". Field names in errors follow the json tag.
type Validator struct {
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewValidator builds a Validator with the custom tags registered.
func NewValidator(logger zerolog.Logger) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("symbol", validateSymbol)
	_ = v.RegisterValidation("busdate", validateBusDate)

	return &Validator{validate: v, logger: logger}
}

func validateSymbol(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	return symbolPattern.MatchString(s)
}

func validateBusDate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := time.Parse(BusDateLayout, s)
	return err == nil
}

// ValidateStruct runs the struct's rules. Failures come back as one AppError
// whose code follows the first failed rule and whose details carry every
// failure under "validation_errors".
func (v *Validator) ValidateStruct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		v.logger.Error().Err(err).Msg("validator misuse")
		return types.NewAppError(types.ErrCodeInternalUnexpected, "validation could not run", err)
	}

	out := make([]ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Message: messageFor(fe),
		})
	}

	first := fieldErrs[0]
	return types.NewAppErrorWithDetails(
		tagToErrorCode(first.Tag()),
		messageFor(first),
		err,
		map[string]any{"validation_errors": out},
	)
}

func tagToErrorCode(tag string) types.ErrorCode {
	switch tag {
	case "required", "required_with", "required_without":
		return types.ErrCodeValidationMissingField
	case "busdate":
		return types.ErrCodeValidationInvalidDate
	case "datetime":
		return types.ErrCodeValidationInvalidTimestamp
	case "numeric", "number", "gt", "gte", "lt", "lte", "min", "max":
		return types.ErrCodeValidationInvalidNumber
	case "oneof":
		return types.ErrCodeValidationInvalidOperation
	default:
		return types.ErrCodeValidationInvalidFormat
	}
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "symbol":
		return fmt.Sprintf("%s must be a ticker symbol", fe.Field())
	case "busdate":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD form", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "gt", "gte", "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
