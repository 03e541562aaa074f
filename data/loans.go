package data

import (
	"time"

	"athenaeum/internal/validator"
)

// LoanRecord defines one row of the lending ledger: the copies of a single
// book currently held by a single user. There is at most one active record
// per (user, book) pair. Number is incremented on repeat borrows and the
// due date keeps its original value; the record is deleted once Number
// reaches zero. The sum of Number across all records for a book always
// equals that book's Lended count.
type LoanRecord struct {
	UserID     int64     `json:"user_id"`
	UserName   string    `json:"username,omitempty"`
	BookIsbn   string    `json:"book_isbn"`
	BookTitle  string    `json:"book_title,omitempty"`
	Authors    []string  `json:"authors,omitempty"`
	Number     int32     `json:"number"`
	BorrowedOn time.Time `json:"borrowed_on"`
	ReturnOn   time.Time `json:"return_on"`
}

// DueDate computes the due date for a loan taken out on a given day.
// The lending period is one month.
func DueDate(borrowedOn time.Time) time.Time {
	return borrowedOn.AddDate(0, 1, 0)
}

func ValidateReturnQuantity(v *validator.Validator, quantity int32) {
	v.Check(quantity >= 1, "quantity", "must be at least 1")
}
