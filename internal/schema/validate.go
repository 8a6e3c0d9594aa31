package schema

import (
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// Validate checks obj against the rules of r. Rules run in declaration
// order and the first failing rule of a field provides its message.
// A nil map means obj is valid.
func Validate[T any](r *Resource[T], obj *T) map[string]string {
	violations := make(map[string]string)

	for _, f := range r.Fields {
		if len(f.Rules) == 0 {
			continue
		}

		value := f.Value(obj)
		for _, rule := range f.Rules {
			if err := validate.Var(value, rule.Tag); err != nil {
				violations[f.Name] = rule.Message
				break
			}
		}
	}

	if len(violations) == 0 {
		return nil
	}
	return violations
}
