package service

import (
	"errors"
	"testing"

	"athenaeum/data"
	"athenaeum/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddReview(t *testing.T) {
	t.Run("creates a review for an existing book", func(t *testing.T) {
		repo := &mockRepository{
			getBookFn: func(isbn string) (*data.Book, error) { return testBook(isbn), nil },
			reviewExistsForUserFn: func(userID int64, isbn string) (bool, error) {
				return false, nil
			},
			createReviewFn: func(review *data.Review) error {
				review.ID = 42
				return nil
			},
		}
		s := newTestService(repo)
		review, err := s.AddReview(7, "9780134190440", 5, "superb")
		require.NoError(t, err)
		assert.Equal(t, int64(42), review.ID)
		assert.Equal(t, int8(5), review.Rating)
	})

	t.Run("rejects a review for a missing book", func(t *testing.T) {
		repo := &mockRepository{
			getBookFn: func(isbn string) (*data.Book, error) { return nil, repository.ErrRecordNotFound },
		}
		s := newTestService(repo)
		_, err := s.AddReview(7, "missing", 5, "")
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})

	t.Run("rejects an out-of-range rating", func(t *testing.T) {
		repo := &mockRepository{
			getBookFn: func(isbn string) (*data.Book, error) { return testBook(isbn), nil },
		}
		s := newTestService(repo)
		_, err := s.AddReview(7, "9780134190440", 6, "")
		assert.ErrorIs(t, err, ErrFailedValidation)
	})

	t.Run("rejects a second review by the same user", func(t *testing.T) {
		repo := &mockRepository{
			getBookFn: func(isbn string) (*data.Book, error) { return testBook(isbn), nil },
			reviewExistsForUserFn: func(userID int64, isbn string) (bool, error) {
				return true, nil
			},
		}
		s := newTestService(repo)
		_, err := s.AddReview(7, "9780134190440", 4, "")
		assert.ErrorIs(t, err, ErrDuplicateRecord)
	})

	t.Run("maps a concurrent duplicate insert to ErrDuplicateRecord", func(t *testing.T) {
		repo := &mockRepository{
			getBookFn: func(isbn string) (*data.Book, error) { return testBook(isbn), nil },
			reviewExistsForUserFn: func(userID int64, isbn string) (bool, error) {
				return false, nil
			},
			createReviewFn: func(review *data.Review) error { return repository.ErrDuplicateRecord },
		}
		s := newTestService(repo)
		_, err := s.AddReview(7, "9780134190440", 4, "")
		assert.ErrorIs(t, err, ErrDuplicateRecord)
	})

	t.Run("propagates a failed existence check instead of reporting a duplicate", func(t *testing.T) {
		checkErr := errors.New("connection refused")
		repo := &mockRepository{
			getBookFn: func(isbn string) (*data.Book, error) { return testBook(isbn), nil },
			reviewExistsForUserFn: func(userID int64, isbn string) (bool, error) {
				return false, checkErr
			},
		}
		s := newTestService(repo)
		_, err := s.AddReview(7, "9780134190440", 4, "")
		assert.ErrorIs(t, err, checkErr)
		assert.NotErrorIs(t, err, ErrDuplicateRecord)
	})
}

func TestDeleteReview(t *testing.T) {
	existing := &data.Review{ID: 42, BookIsbn: "9780134190440", UserID: 7, Rating: 5}

	t.Run("deletes the caller's own review", func(t *testing.T) {
		deleted := false
		repo := &mockRepository{
			getReviewFn: func(reviewID int64) (*data.Review, error) { return existing, nil },
			deleteReviewFn: func(reviewID int64) error {
				deleted = true
				return nil
			},
		}
		s := newTestService(repo)
		err := s.DeleteReview(7, "9780134190440", 42)
		require.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("forbids deleting another user's review", func(t *testing.T) {
		repo := &mockRepository{
			getReviewFn: func(reviewID int64) (*data.Review, error) { return existing, nil },
		}
		s := newTestService(repo)
		err := s.DeleteReview(8, "9780134190440", 42)
		assert.ErrorIs(t, err, ErrNotPermitted)
	})

	t.Run("treats a book mismatch as not found", func(t *testing.T) {
		repo := &mockRepository{
			getReviewFn: func(reviewID int64) (*data.Review, error) { return existing, nil },
		}
		s := newTestService(repo)
		err := s.DeleteReview(7, "another-isbn", 42)
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})
}

func TestListReviewsForBook(t *testing.T) {
	t.Run("reports a zero rating for a book with no reviews", func(t *testing.T) {
		repo := &mockRepository{
			getBookFn: func(isbn string) (*data.Book, error) { return testBook(isbn), nil },
			getAllReviewsForBookFn: func(isbn string) ([]*data.Review, data.Rating, error) {
				return []*data.Review{}, data.Rating{}, nil
			},
		}
		s := newTestService(repo)
		reviews, rating, err := s.ListReviewsForBook("9780134190440")
		require.NoError(t, err)
		assert.Empty(t, reviews)
		assert.Zero(t, rating.Average)
		assert.Zero(t, rating.Total)
	})
}
