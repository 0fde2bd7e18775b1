package httpx

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	validate      *validator.Validate
	usernameChars = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
)

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = validate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameChars.MatchString(fl.Field().String())
	})
}

// ValidateStruct returns one detail per failing field, named by its json tag.
func ValidateStruct(s interface{}) []ErrorDetail {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []ErrorDetail{{Field: "", Message: err.Error()}}
	}

	details := make([]ErrorDetail, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		param := fe.Param()

		var message string
		switch fe.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", field)
		case "url":
			message = fmt.Sprintf("%s must be a valid URL", field)
		case "username":
			message = fmt.Sprintf("%s may only contain letters, numbers and underscores", field)
		case "min":
			if fe.Kind() == reflect.String {
				message = fmt.Sprintf("%s must be at least %s characters", field, param)
			} else {
				message = fmt.Sprintf("%s must be at least %s", field, param)
			}
		case "max":
			if fe.Kind() == reflect.String {
				message = fmt.Sprintf("%s must be at most %s characters", field, param)
			} else {
				message = fmt.Sprintf("%s must be at most %s", field, param)
			}
		case "gte":
			message = fmt.Sprintf("%s must be greater than or equal to %s", field, param)
		case "lte":
			message = fmt.Sprintf("%s must be less than or equal to %s", field, param)
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}

		details = append(details, ErrorDetail{Field: field, Message: message})
	}
	return details
}
