package service

import (
	"errors"
	"strings"

	"athenaeum/data"
	"athenaeum/internal/validator"
	"athenaeum/repository"
)

type loans interface {
	BorrowBook(userID int64, isbn string) (*data.Book, *data.LoanRecord, error)
	ReturnBook(userID int64, isbn string, quantity int32) (*data.LoanRecord, error)
	ListAvailableBooks(query string) ([]*data.Book, error)
	ListLoansForUser(userID int64) ([]*data.LoanRecord, error)
	ListAllLoans() ([]*data.LoanRecord, error)
	SearchLoans(query string) ([]*data.LoanRecord, error)
}

// BorrowBook service lends one copy of a book to a user. The repository
// executes the availability check, the lended increment, the ledger upsert
// and the wishlist cleanup as one serializable unit, so two concurrent
// borrowers of the last copy never both succeed; the loser of that race
// observes ErrNoCopiesAvailable and nothing is mutated on its behalf.
func (s *service) BorrowBook(userID int64, isbn string) (*data.Book, *data.LoanRecord, error) {
	v := validator.New()
	v.Check(isbn != "", "book_id", "must be provided")
	if !v.Valid() {
		return nil, nil, s.failedValidation(v.Errors)
	}
	book, loan, err := s.repo.BorrowBook(userID, isbn)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, nil, ErrRecordNotFound
		case errors.Is(err, repository.ErrNoCopiesAvailable):
			return nil, nil, ErrNoCopiesAvailable
		default:
			return nil, nil, err
		}
	}
	return book, loan, nil
}

// ReturnBook service takes back quantity copies of a book from a user.
// Returning more copies than the ledger records for the pair fails with
// ErrOverReturn and mutates nothing.
func (s *service) ReturnBook(userID int64, isbn string, quantity int32) (*data.LoanRecord, error) {
	v := validator.New()
	v.Check(isbn != "", "book_id", "must be provided")
	if data.ValidateReturnQuantity(v, quantity); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	loan, err := s.repo.ReturnBook(userID, isbn, quantity)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		case errors.Is(err, repository.ErrOverReturn):
			return nil, ErrOverReturn
		default:
			return nil, err
		}
	}
	return loan, nil
}

// ListAvailableBooks service searches the catalog by title substring, exact
// ISBN or author-name substring and returns distinct matches with their
// computed remaining copies. A blank query matches the whole catalog.
func (s *service) ListAvailableBooks(query string) ([]*data.Book, error) {
	books, err := s.repo.SearchAvailableBooks(strings.TrimSpace(query))
	if err != nil {
		return nil, err
	}
	return books, nil
}

// ListLoansForUser service retrieves the ledger records held by a user.
func (s *service) ListLoansForUser(userID int64) ([]*data.LoanRecord, error) {
	loans, err := s.repo.GetLoansForUser(userID)
	if err != nil {
		return nil, err
	}
	return loans, nil
}

// ListAllLoans service retrieves every active ledger record.
func (s *service) ListAllLoans() ([]*data.LoanRecord, error) {
	loans, err := s.repo.GetAllLoans()
	if err != nil {
		return nil, err
	}
	return loans, nil
}

// SearchLoans service retrieves ledger records matching the query against
// borrower username, book title, ISBN or author name. A blank query returns
// no records.
func (s *service) SearchLoans(query string) ([]*data.LoanRecord, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*data.LoanRecord{}, nil
	}
	loans, err := s.repo.SearchLoans(query)
	if err != nil {
		return nil, err
	}
	return loans, nil
}
