package dto

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"uece-planner/internal/form"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators installs the form tags on gin's validator engine. It
// must run before any request is bound; binding a DTO with an unknown tag
// panics. Every tag accepts the empty string, which stands for "not chosen yet".
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("motor de validação inesperado %T", binding.Validator.Engine())
			return
		}
		registerErr = registerOn(v)
	})
	return registerErr
}

func registerOn(v *validator.Validate) error {
	tags := map[string]validator.Func{
		"toggle": func(fl validator.FieldLevel) bool {
			_, ok := form.ParseToggle(fl.Field().String())
			return ok
		},
		"evalmethod": func(fl validator.FieldLevel) bool {
			_, ok := form.ParseEvalMethod(fl.Field().String())
			return ok
		},
		"restype": func(fl validator.FieldLevel) bool {
			_, ok := form.ParseResourceType(fl.Field().String())
			return ok
		},
		"evalidentity": func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			if s == "" {
				return true
			}
			_, ok := form.ParseIdentity(s)
			return ok
		},
		"isodate": func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			if s == "" {
				return true
			}
			return form.ValidDate(s)
		},
		"hhmm": func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == "" || form.ValidTime(s)
		},
		"statickey": func(fl validator.FieldLevel) bool {
			return form.IsStaticKey(fl.Field().String())
		},
	}
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}
