package service

import (
	"errors"

	"athenaeum/data"
	"athenaeum/internal/validator"
	"athenaeum/repository"
)

type authors interface {
	AddAuthor(name string) (*data.Author, error)
}

// AddAuthor service creates a new author record so books can reference it.
func (s *service) AddAuthor(name string) (*data.Author, error) {
	author := &data.Author{
		Name: name,
	}
	v := validator.New()
	if data.ValidateAuthor(v, author); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err := s.repo.CreateAuthor(author)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, ErrDuplicateRecord
		default:
			return nil, err
		}
	}
	return author, nil
}
