package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// trans is the singleton English translator for validation errors.
var trans ut.Translator

// slugPattern matches URL slugs the way the public site builds paths:
// lowercase alphanumerics separated by single hyphens.
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Setup registers the validator with English translations and the custom
// slug rule on Gin's binding engine. Call once during application startup.
func Setup() {
	v, ok := binding.Validator.Engine().(*govalidator.Validate)
	if !ok {
		return
	}

	// Use JSON tag name for field names in error messages.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("slug", func(fl govalidator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v, trans)

	_ = v.RegisterTranslation("slug", trans,
		func(ut ut.Translator) error {
			return ut.Add("slug", "{0} must be a lowercase hyphenated slug", true)
		},
		func(ut ut.Translator, fe govalidator.FieldError) string {
			t, _ := ut.T("slug", fe.Field())
			return t
		},
	)
}

// TranslateErrors takes a binding/validation error and returns a map of
// field name to human-readable error message. A non-validation error (a
// JSON syntax error for instance) becomes a single "detail" entry.
func TranslateErrors(err error) map[string]string {
	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[fe.Field()] = fe.Translate(trans)
		}
		return fields
	}

	fields["detail"] = err.Error()
	return fields
}

// Bind binds and validates the JSON request body into dst.
// Returns nil on success or a translated field error map on failure.
func Bind(c *gin.Context, dst interface{}) map[string]string {
	if err := c.ShouldBindJSON(dst); err != nil {
		return TranslateErrors(err)
	}
	return nil
}
