package service

import (
	"errors"
	"fmt"
)

var (
	ErrFailedValidation     = errors.New("failed validation")
	ErrRecordNotFound       = errors.New("record not found")
	ErrEditConflict         = errors.New("edit conflict")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrContentTooLarge      = errors.New("content too large")
	ErrBadRequest           = errors.New("bad request")
	ErrDuplicateRecord      = errors.New("duplicate record")
	ErrNotPermitted         = errors.New("not permitted")
	ErrNoCopiesAvailable    = errors.New("no copies available")
	ErrOverReturn           = errors.New("return exceeds borrowed quantity")
	ErrUnknownReference     = errors.New("unknown reference")
)

// failedValidation loops through a validation error map and returns an
// error wrapping ErrFailedValidation with the key and value of the map.
func (s *service) failedValidation(errorMap map[string]string) error {
	err := ErrFailedValidation
	for k, v := range errorMap {
		err = fmt.Errorf("%q %s: %w", k, v, ErrFailedValidation)
	}
	return err
}
