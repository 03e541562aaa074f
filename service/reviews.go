package service

import (
	"errors"

	"athenaeum/data"
	"athenaeum/internal/validator"
	"athenaeum/repository"
)

type reviews interface {
	AddReview(userID int64, isbn string, rating int8, comment string) (*data.Review, error)
	DeleteReview(userID int64, isbn string, reviewID int64) error
	ListReviewsForBook(isbn string) ([]*data.Review, data.Rating, error)
}

// AddReview service creates a review for a book. A user can hold at most one
// review per book, so a second submission fails with ErrDuplicateRecord.
func (s *service) AddReview(userID int64, isbn string, rating int8, comment string) (*data.Review, error) {
	_, err := s.repo.GetBook(isbn)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	review := &data.Review{
		BookIsbn: isbn,
		UserID:   userID,
		Rating:   rating,
		Comment:  comment,
	}
	v := validator.New()
	if data.ValidateReview(v, review); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	exists, err := s.repo.ReviewExistsForUser(userID, isbn)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateRecord
	}
	err = s.repo.CreateReview(review)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, ErrDuplicateRecord
		default:
			return nil, err
		}
	}
	return review, nil
}

// DeleteReview service deletes a review. Only the review's author may delete
// it, and the review must belong to the book named in the request.
func (s *service) DeleteReview(userID int64, isbn string, reviewID int64) error {
	review, err := s.repo.GetReview(reviewID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	if review.BookIsbn != isbn {
		return ErrRecordNotFound
	}
	if review.UserID != userID {
		return ErrNotPermitted
	}
	err = s.repo.DeleteReview(reviewID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	return nil
}

// ListReviewsForBook service retrieves all reviews for a book together with
// the aggregated rating.
func (s *service) ListReviewsForBook(isbn string) ([]*data.Review, data.Rating, error) {
	_, err := s.repo.GetBook(isbn)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, data.Rating{}, ErrRecordNotFound
		default:
			return nil, data.Rating{}, err
		}
	}
	reviews, rating, err := s.repo.GetAllReviewsForBook(isbn)
	if err != nil {
		return nil, data.Rating{}, err
	}
	return reviews, rating, nil
}
