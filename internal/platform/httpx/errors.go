// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// ValidatorProblem maps go-playground validation errors on an inbound DTO to
// a problem response with one entry per failing field.
func ValidatorProblem(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	type fieldError struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	}
	fields := make([]fieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fieldError{
			Field:   fe.Field(),
			Message: "failed on rule " + fe.Tag(),
		})
	}
	ValidationProblem(w, "request body is invalid", fields)
}
