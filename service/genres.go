package service

import (
	"errors"

	"athenaeum/data"
	"athenaeum/internal/validator"
	"athenaeum/repository"
)

type genres interface {
	AddGenre(name string) (*data.Genre, error)
}

// AddGenre service creates a new genre record so books can reference it.
func (s *service) AddGenre(name string) (*data.Genre, error) {
	genre := &data.Genre{
		Name: name,
	}
	v := validator.New()
	if data.ValidateGenre(v, genre); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err := s.repo.CreateGenre(genre)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, ErrDuplicateRecord
		default:
			return nil, err
		}
	}
	return genre, nil
}
