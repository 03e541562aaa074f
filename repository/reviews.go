package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"athenaeum/data"
)

type reviews interface {
	CreateReview(review *data.Review) error
	GetReview(reviewID int64) (*data.Review, error)
	DeleteReview(reviewID int64) error
	ReviewExistsForUser(userID int64, isbn string) (bool, error)
	GetAllReviewsForBook(isbn string) ([]*data.Review, data.Rating, error)
}

// CreateReview creates a review record for a book.
func (r *repository) CreateReview(review *data.Review) error {
	query := `
		INSERT INTO reviews (book_isbn, user_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version`
	args := []interface{}{review.BookIsbn, review.UserID, review.Rating, review.Comment}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&review.ID, &review.CreatedAt, &review.Version)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "reviews_user_id_book_isbn_key"`:
			return ErrDuplicateRecord
		default:
			return err
		}
	}
	return nil
}

// ReviewExistsForUser checks whether a review record already exists for user.
func (r *repository) ReviewExistsForUser(userID int64, isbn string) (bool, error) {
	query := `
		SELECT 1
		FROM reviews
		WHERE user_id = $1 AND book_isbn = $2`
	var exists int
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, userID, isbn).Scan(&exists)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return false, nil
		default:
			return false, err
		}
	}
	return true, nil
}

// GetReview retrieves a review record.
func (r *repository) GetReview(reviewID int64) (*data.Review, error) {
	if reviewID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT reviews.id, reviews.book_isbn, reviews.user_id, users.name, reviews.created_at, reviews.rating, reviews.comment, reviews.version
		FROM reviews
		INNER JOIN users ON reviews.user_id = users.id
		WHERE reviews.id = $1`
	var review data.Review
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, reviewID).Scan(
		&review.ID,
		&review.BookIsbn,
		&review.UserID,
		&review.UserName,
		&review.CreatedAt,
		&review.Rating,
		&review.Comment,
		&review.Version,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &review, nil
}

// DeleteReview deletes a review record.
func (r *repository) DeleteReview(reviewID int64) error {
	if reviewID < 1 {
		return ErrRecordNotFound
	}
	query := `
		DELETE FROM reviews
		WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, reviewID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// GetAllReviewsForBook retrieves all review records for a book together with
// the aggregated rating. The average is the arithmetic mean of all ratings
// and stays 0 when the book has no reviews.
func (r *repository) GetAllReviewsForBook(isbn string) ([]*data.Review, data.Rating, error) {
	query := `
		SELECT reviews.id, reviews.book_isbn, reviews.user_id, users.name, reviews.created_at, reviews.rating, reviews.comment, reviews.version
		FROM reviews
		INNER JOIN users ON reviews.user_id = users.id
		WHERE reviews.book_isbn = $1
		ORDER BY reviews.created_at DESC, reviews.id ASC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, isbn)
	if err != nil {
		return nil, data.Rating{}, err
	}
	defer rows.Close()
	rating := data.Rating{}
	sumRatings := int64(0)
	reviews := []*data.Review{}
	for rows.Next() {
		var review data.Review
		err := rows.Scan(
			&review.ID,
			&review.BookIsbn,
			&review.UserID,
			&review.UserName,
			&review.CreatedAt,
			&review.Rating,
			&review.Comment,
			&review.Version,
		)
		if err != nil {
			return nil, data.Rating{}, err
		}
		sumRatings += int64(review.Rating)
		reviews = append(reviews, &review)
	}
	if err = rows.Err(); err != nil {
		return nil, data.Rating{}, err
	}
	rating.Total = int64(len(reviews))
	if rating.Total > 0 {
		avgRatingString := fmt.Sprintf("%.1f", float64(sumRatings)/float64(rating.Total))
		avgRating, err := strconv.ParseFloat(avgRatingString, 64)
		if err != nil {
			return nil, data.Rating{}, err
		}
		// The average must never be NaN so that JSON encoding works.
		if !math.IsNaN(avgRating) {
			rating.Average = avgRating
		}
	}
	return reviews, rating, nil
}
