package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/nutrition-scorer/internal/scoring"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrFoodNotFound indicates a food name that is not in the database
type ErrFoodNotFound struct {
	Name string
}

func (e *ErrFoodNotFound) Error() string {
	return fmt.Sprintf("food not found: %s", e.Name)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		notFoundErr   *ErrFoodNotFound
		dataErr       *scoring.DataError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &dataErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
