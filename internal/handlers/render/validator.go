package render

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func init() {
	validate.RegisterTagNameFunc(useJSONTagNames)
}

// Report on json tag name instead of struct field name
// Look at documentation of 'RegisterTagNameFunc' for more details
func useJSONTagNames(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	// skip if tag key says it should be ignored
	if name == "-" {
		return ""
	}
	return name
}

// validationMessages builds user facing messages, one per failed field
func validationMessages(errs validator.ValidationErrors) []string {
	messages := make([]string, 0, len(errs))

	for _, fieldError := range errs {
		var message string
		switch fieldError.Tag() {
		case "email":
			message = "Invalid email address"
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters long", title(fieldError.Field()), fieldError.Param())
		case "required":
			message = fmt.Sprintf("%s is required", title(fieldError.Field()))
		default:
			message = fmt.Sprintf("%s is invalid", title(fieldError.Field()))
		}

		messages = append(messages, message)
	}

	return messages
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
