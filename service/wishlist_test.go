package service

import (
	"testing"

	"athenaeum/data"
	"athenaeum/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleWishlist(t *testing.T) {
	t.Run("adds a book that isn't wished yet", func(t *testing.T) {
		var created *data.WishlistEntry
		repo := &mockRepository{
			getBookFn: func(isbn string) (*data.Book, error) { return testBook(isbn), nil },
			deleteWishlistEntryFn: func(userID int64, isbn string) error {
				return repository.ErrRecordNotFound
			},
			createWishlistEntryFn: func(entry *data.WishlistEntry) error {
				created = entry
				return nil
			},
		}
		s := newTestService(repo)
		wished, err := s.ToggleWishlist(7, "9780134190440")
		require.NoError(t, err)
		assert.True(t, wished)
		require.NotNil(t, created)
		assert.Equal(t, int64(7), created.UserID)
	})

	t.Run("removes a book that is already wished", func(t *testing.T) {
		repo := &mockRepository{
			getBookFn:             func(isbn string) (*data.Book, error) { return testBook(isbn), nil },
			deleteWishlistEntryFn: func(userID int64, isbn string) error { return nil },
		}
		s := newTestService(repo)
		wished, err := s.ToggleWishlist(7, "9780134190440")
		require.NoError(t, err)
		assert.False(t, wished)
	})

	t.Run("rejects a missing book", func(t *testing.T) {
		repo := &mockRepository{
			getBookFn: func(isbn string) (*data.Book, error) { return nil, repository.ErrRecordNotFound },
		}
		s := newTestService(repo)
		_, err := s.ToggleWishlist(7, "missing")
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})

	t.Run("a concurrent duplicate insert still reports the book as wished", func(t *testing.T) {
		repo := &mockRepository{
			getBookFn: func(isbn string) (*data.Book, error) { return testBook(isbn), nil },
			deleteWishlistEntryFn: func(userID int64, isbn string) error {
				return repository.ErrRecordNotFound
			},
			createWishlistEntryFn: func(entry *data.WishlistEntry) error {
				return repository.ErrDuplicateRecord
			},
		}
		s := newTestService(repo)
		wished, err := s.ToggleWishlist(7, "9780134190440")
		require.NoError(t, err)
		assert.True(t, wished)
	})
}
