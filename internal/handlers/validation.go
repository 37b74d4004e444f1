package handlers

import (
	"sync"

	"dairy-pos/internal/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// registerValidators teaches gin's validator the rules binding tags use.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("dairy_unit", func(fl validator.FieldLevel) bool {
			return models.Unit(fl.Field().String()).Valid()
		})
	})
}
