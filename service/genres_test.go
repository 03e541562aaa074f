package service

import (
	"testing"

	"athenaeum/data"
	"athenaeum/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddGenre(t *testing.T) {
	t.Run("creates a genre", func(t *testing.T) {
		repo := &mockRepository{
			createGenreFn: func(genre *data.Genre) error {
				genre.ID = 1
				return nil
			},
		}
		s := newTestService(repo)
		genre, err := s.AddGenre("Programming")
		require.NoError(t, err)
		assert.Equal(t, int64(1), genre.ID)
		assert.Equal(t, "Programming", genre.Name)
	})

	t.Run("rejects a blank name", func(t *testing.T) {
		s := newTestService(&mockRepository{})
		_, err := s.AddGenre("")
		assert.ErrorIs(t, err, ErrFailedValidation)
	})

	t.Run("rejects a duplicate name", func(t *testing.T) {
		repo := &mockRepository{
			createGenreFn: func(genre *data.Genre) error { return repository.ErrDuplicateRecord },
		}
		s := newTestService(repo)
		_, err := s.AddGenre("Programming")
		assert.ErrorIs(t, err, ErrDuplicateRecord)
	})
}
