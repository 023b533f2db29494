package rest

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"
)

// One validator instance for the whole module; product packages tag
// their request and response records with `validate` constraints.
var (
	validate   *validator.Validate
	translator ut.Translator
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	locale := en.New()
	translator, _ = ut.New(locale, locale).GetTranslator("en")
	if err := entrans.RegisterDefaultTranslations(validate, translator); err != nil {
		panic(err)
	}

	// Report json field names, not Go identifiers.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
}

// ValidateInput checks a caller-supplied request record before it is
// transmitted, converting constraint violations into an
// *InvalidParameterError naming the offending fields.
func ValidateInput(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	fields, messages := explain(err)
	if fields == nil {
		return err
	}

	return NewInvalidParameterError(strings.Join(messages, "; "), fields)
}

// validateSchema checks a decoded response record against its schema
// tags, converting violations into a *ResponseFormatError. Non-struct
// destinations (lists, scalars) pass through unchecked.
func validateSchema(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return nil
	}

	fields, messages := explain(err)
	if fields == nil {
		return err
	}

	return &ResponseFormatError{
		apiErr: apiErr{Message: strings.Join(messages, "; "), kind: ErrResponseFormat},
		Fields: fields,
	}
}

// explain flattens validator errors into field names plus translated
// human-readable messages.
func explain(err error) (fields, messages []string) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, nil
	}

	for _, fe := range verrs {
		fields = append(fields, fe.Field())
		messages = append(messages, fe.Translate(translator))
	}

	return fields, messages
}
