package data

import (
	"time"

	"athenaeum/internal/validator"
)

// Rating defines the aggregated rating for a book. Average is the
// arithmetic mean of all review ratings and is 0 when no reviews exist.
type Rating struct {
	Average float64 `json:"average"`
	Total   int64   `json:"total"`
}

// Review defines a book review. There is at most one review per
// (user, book) pair.
type Review struct {
	ID        int64     `json:"id"`
	BookIsbn  string    `json:"book_isbn"`
	UserID    int64     `json:"user_id"`
	UserName  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	Rating    int8      `json:"rating"`
	Comment   string    `json:"comment"`
	Version   int32     `json:"-"`
}

func ValidateReview(v *validator.Validator, review *Review) {
	v.Check(review.Rating != 0, "rating", "must be provided")
	v.Check(review.Rating >= 1, "rating", "must be at least one")
	v.Check(review.Rating <= 5, "rating", "must not be greater than five")
	v.Check(len(review.Comment) <= 2000, "comment", "must not be more than 2000 bytes long")
}
