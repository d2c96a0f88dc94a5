// Package validator provides custom validation functions and English error
// messages for Gin's binding engine.
package validator

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"spendlog/internal/models"
)

var (
	once  sync.Once
	trans ut.Translator
)

// customMessages holds the English text for the tags registered here.
var customMessages = map[string]string{
	"expense_category": "{0} must be one of FOOD, TRAVEL, BILLS, SHOPPING, OTHER",
	"recurrence_type":  "{0} must be one of NONE, DAILY, WEEKLY, MONTHLY, YEARLY",
}

// Register registers all custom validators and translations with the Gin
// binding engine. It is safe to call more than once.
func Register() {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(formFieldName)
		_ = v.RegisterValidation("expense_category", validateExpenseCategory)
		_ = v.RegisterValidation("recurrence_type", validateRecurrenceType)

		eng := en.New()
		uni := ut.New(eng, eng)
		trans, _ = uni.GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		for tag, text := range customMessages {
			tag, text := tag, text
			_ = v.RegisterTranslation(tag, trans,
				func(t ut.Translator) error { return t.Add(tag, text, true) },
				func(t ut.Translator, fe validator.FieldError) string {
					msg, err := t.T(tag, fe.Field())
					if err != nil {
						return fe.Error()
					}
					return msg
				},
			)
		}
	})
}

// Message turns a binding error into a single user-facing sentence.
// Validation errors are translated field by field; anything else (a malformed
// number, say) falls back to its own text.
func Message(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || trans == nil {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Translate(trans))
	}
	return strings.Join(msgs, ", ")
}

// formFieldName reports fields by their form name so messages read "title is
// a required field" rather than using the Go field name.
func formFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
	if name == "" || name == "-" {
		return fld.Name
	}
	return name
}

func validateExpenseCategory(fl validator.FieldLevel) bool {
	return models.Category(fl.Field().String()).Valid()
}

func validateRecurrenceType(fl validator.FieldLevel) bool {
	return models.RecurrenceType(fl.Field().String()).Valid()
}
