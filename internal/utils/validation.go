package utils

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// FieldError describes a single violated constraint on a request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var dateOnlyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// RegisterValidators installs the custom date validators on gin's binding
// engine and makes violation reports use JSON field names.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// isodate accepts a calendar date (YYYY-MM-DD) or a full RFC 3339 date-time.
	v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if dateOnlyPattern.MatchString(value) {
			_, err := time.Parse("2006-01-02", value)
			return err == nil
		}
		_, err := time.Parse(time.RFC3339, value)
		return err == nil
	})

	// isodatetime accepts an RFC 3339 date-time only.
	v.RegisterValidation("isodatetime", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(time.RFC3339, fl.Field().String())
		return err == nil
	})
}

// BindAndValidate binds the JSON request body into obj. On failure it writes
// the 400 response, with one diagnostic per violated field, and returns false.
func BindAndValidate(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			ValidationFailed(c, FormatValidationErrors(verrs))
		} else {
			BadRequest(c, "Invalid request payload")
		}
		return false
	}
	return true
}

// FormatValidationErrors converts validator violations into per-field
// diagnostics suitable for the response body.
func FormatValidationErrors(verrs validator.ValidationErrors) []FieldError {
	details := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, FieldError{Field: fe.Field(), Message: messageForTag(fe)})
	}
	return details
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "uuid":
		return "must be a valid UUID"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be %s or greater", fe.Param())
	case "lte":
		return fmt.Sprintf("must be %s or less", fe.Param())
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "isodate":
		return "must be an ISO date (YYYY-MM-DD) or date-time"
	case "isodatetime":
		return "must be an ISO 8601 date-time"
	default:
		return "is invalid"
	}
}
