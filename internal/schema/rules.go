package schema

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"tourdesk/internal/models/request_models"
	"tourdesk/pkg/utils"
)

var (
	engineOnce sync.Once
	engine     *validator.Validate
)

func rules() *validator.Validate {
	engineOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		if err := v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
			_, err := utils.ParseISODate(fl.Field().String())
			return err == nil
		}); err != nil {
			panic(err)
		}
		engine = v
	})
	return engine
}

// check runs the struct tag rules on s and reports every violation with a
// dotted path built from the json names.
func check(s any) FieldErrors {
	err := rules().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{{Rule: "invalid", Message: err.Error()}}
	}
	out := make(FieldErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Path:    fieldPath(fe.Namespace()),
			Rule:    fe.Tag(),
			Message: message(fe),
		})
	}
	return out
}

// fieldPath turns "TourPayload.activities[2].location.latitude" into
// "activities.2.location.latitude".
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		namespace = namespace[i+1:]
	} else {
		return ""
	}
	namespace = strings.ReplaceAll(namespace, "[", ".")
	return strings.ReplaceAll(namespace, "]", "")
}

func message(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if isString {
			return fmt.Sprintf("must contain at least %s character(s)", fe.Param())
		}
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("must contain at most %s character(s)", fe.Param())
		}
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "oneof":
		return "must be one of: " + strings.Join(request_models.LocationTypes, ", ")
	case "isodate":
		return "must be an ISO-8601 date"
	default:
		return fmt.Sprintf("failed on the %q rule", fe.Tag())
	}
}
