package article

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/SergeyParamoshkin/blog/internal/model"
)

var categoryValues = func() []interface{} {
	out := make([]interface{}, 0, len(model.Categories))
	for _, c := range model.Categories {
		out = append(out, c)
	}

	return out
}()

// notBlank rejects whitespace-only strings, which validation.Required lets
// through.
var notBlank = validation.By(func(value interface{}) error {
	if s, ok := value.(string); ok && s != "" && strings.TrimSpace(s) == "" {
		return validation.NewError("validation_blank", "cannot be blank")
	}

	return nil
})

func validateArticle(a *model.Article) error {
	err := validation.ValidateStruct(a,
		validation.Field(&a.Title, validation.Required, notBlank),
		validation.Field(&a.Content, validation.Required, notBlank),
		validation.Field(&a.Category, validation.In(categoryValues...)),
	)

	return asValidationError(err, a)
}

func validateEditForm(f *model.EditForm) error {
	err := validation.ValidateStruct(f,
		validation.Field(&f.Title, validation.Required, notBlank),
		validation.Field(&f.Content, validation.Required, notBlank),
	)

	return asValidationError(err, f)
}

func asValidationError(err error, input interface{}) error {
	if err == nil {
		return nil
	}

	fields, ok := err.(validation.Errors)
	if !ok {
		return fault("validate", err)
	}

	return &ValidationError{Fields: fields, Input: input}
}
