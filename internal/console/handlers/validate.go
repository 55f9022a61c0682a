package handlers

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/preston-bernstein/transfer-console/internal/transfer"
)

var bodyValidator = newBodyValidator()

// fieldAliases maps request body fields onto the names transfer errors use.
var fieldAliases = map[string]string{
	"release_clause_millions": transfer.FieldReleaseClause,
}

func newBodyValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateBody checks a decoded request body against its validate tags and
// reports failures as a transfer.ValidationError.
func validateBody(body any) error {
	err := bodyValidator.Struct(body)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &transfer.ValidationError{}
	for _, fe := range verrs {
		field := fe.Field()
		if alias, ok := fieldAliases[field]; ok {
			field = alias
		}
		out.Fields = append(out.Fields, transfer.FieldError{Field: field, Message: bodyMessage(fe)})
	}
	return out
}

func bodyMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "datetime":
		return "must be a date (YYYY-MM-DD)"
	case "gte", "lte":
		return "is out of range"
	default:
		return "is invalid"
	}
}
