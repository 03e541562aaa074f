package data

import (
	"time"

	"athenaeum/internal/validator"
)

// Book defines a book model. A book is identified by its ISBN. Copies is the
// total stock held by the library and Lended counts the copies currently out
// on loan; RemainingCopies is derived on read and never persisted.
type Book struct {
	Isbn            string    `json:"isbn"`
	CreatedAt       time.Time `json:"created_at"`
	Title           string    `json:"title"`
	Year            int32     `json:"year,omitempty"`
	Copies          int32     `json:"copies"`
	Lended          int32     `json:"lended"`
	RemainingCopies int32     `json:"remaining_copies"`
	Authors         []string  `json:"authors,omitempty"`
	Genres          []string  `json:"genres,omitempty"`
	CoverPath       string    `json:"cover_path,omitempty"`
	Version         int32     `json:"-"`
}

func ValidateBook(v *validator.Validator, book *Book) {
	v.Check(book.Isbn != "", "isbn", "must be provided")
	v.Check(len(book.Isbn) <= 17, "isbn", "must not be more than 17 characters")
	v.Check(book.Title != "", "title", "must be provided")
	v.Check(len(book.Title) <= 500, "title", "must not be more than 500 bytes long")
	v.Check(book.Year != 0, "year", "must be provided")
	v.Check(book.Year >= 1000, "year", "must be greater than 1000")
	v.Check(book.Year <= int32(time.Now().Year()), "year", "must not be in the future")
	v.Check(book.Copies >= 0, "copies", "must not be negative")
	v.Check(book.Authors != nil, "authors", "must be provided")
	v.Check(len(book.Authors) >= 1, "authors", "must contain at least 1 author")
	v.Check(validator.Unique(book.Authors), "authors", "must not contain duplicate values")
	v.Check(validator.Unique(book.Genres), "genres", "must not contain duplicate values")
}
