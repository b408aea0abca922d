// Package businessflow contains the core business logic and use cases for the street explorer
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Dataset errors
	ErrDatasetUnavailable = errors.New("dataset is unavailable")

	// Favourite errors
	// Contradictory filter criteria are not errors: they yield empty results.
	ErrFavouriteViewReadOnly = errors.New("favourites view does not allow toggling")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func IsDatasetUnavailable(err error) bool {
	return errors.Is(err, ErrDatasetUnavailable)
}

func IsFavouriteViewReadOnly(err error) bool {
	return errors.Is(err, ErrFavouriteViewReadOnly)
}
