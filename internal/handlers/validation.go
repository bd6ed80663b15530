package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/granaapp/grana_backend/internal/core/domain"
)

// registerCustomValidators installs binding validators used by the DTO
// layer on gin's shared validator engine.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// competence validates the YYYY-MM accounting period format.
	_ = v.RegisterValidation("competence", func(fl validator.FieldLevel) bool {
		return domain.ValidCompetence(fl.Field().String())
	})
}
