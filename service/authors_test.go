package service

import (
	"testing"

	"athenaeum/data"
	"athenaeum/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAuthor(t *testing.T) {
	t.Run("creates an author", func(t *testing.T) {
		repo := &mockRepository{
			createAuthorFn: func(author *data.Author) error {
				author.ID = 1
				return nil
			},
		}
		s := newTestService(repo)
		author, err := s.AddAuthor("Alan Donovan")
		require.NoError(t, err)
		assert.Equal(t, int64(1), author.ID)
		assert.Equal(t, "Alan Donovan", author.Name)
	})

	t.Run("rejects a blank name", func(t *testing.T) {
		s := newTestService(&mockRepository{})
		_, err := s.AddAuthor("")
		assert.ErrorIs(t, err, ErrFailedValidation)
	})

	t.Run("rejects a duplicate name", func(t *testing.T) {
		repo := &mockRepository{
			createAuthorFn: func(author *data.Author) error { return repository.ErrDuplicateRecord },
		}
		s := newTestService(repo)
		_, err := s.AddAuthor("Alan Donovan")
		assert.ErrorIs(t, err, ErrDuplicateRecord)
	})
}
