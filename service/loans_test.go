package service

import (
	"testing"
	"time"

	"athenaeum/data"
	"athenaeum/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBorrowBook(t *testing.T) {
	t.Run("lends a copy and reports the ledger record", func(t *testing.T) {
		borrowedOn := time.Now().UTC().Truncate(24 * time.Hour)
		repo := &mockRepository{
			borrowBookFn: func(userID int64, isbn string) (*data.Book, *data.LoanRecord, error) {
				book := testBook(isbn)
				book.Lended = 2
				book.RemainingCopies = 1
				loan := &data.LoanRecord{
					UserID:     userID,
					BookIsbn:   isbn,
					Number:     1,
					BorrowedOn: borrowedOn,
					ReturnOn:   data.DueDate(borrowedOn),
				}
				return book, loan, nil
			},
		}
		s := newTestService(repo)
		book, loan, err := s.BorrowBook(7, "9780134190440")
		require.NoError(t, err)
		assert.Equal(t, int32(1), book.RemainingCopies)
		assert.Equal(t, int64(7), loan.UserID)
		assert.Equal(t, borrowedOn.AddDate(0, 1, 0), loan.ReturnOn)
	})

	t.Run("rejects a blank book id without touching the ledger", func(t *testing.T) {
		s := newTestService(&mockRepository{})
		_, _, err := s.BorrowBook(7, "")
		assert.ErrorIs(t, err, ErrFailedValidation)
	})

	t.Run("maps an unknown book to ErrRecordNotFound", func(t *testing.T) {
		repo := &mockRepository{
			borrowBookFn: func(userID int64, isbn string) (*data.Book, *data.LoanRecord, error) {
				return nil, nil, repository.ErrRecordNotFound
			},
		}
		s := newTestService(repo)
		_, _, err := s.BorrowBook(7, "9780134190440")
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})

	t.Run("maps an exhausted book to ErrNoCopiesAvailable", func(t *testing.T) {
		repo := &mockRepository{
			borrowBookFn: func(userID int64, isbn string) (*data.Book, *data.LoanRecord, error) {
				return nil, nil, repository.ErrNoCopiesAvailable
			},
		}
		s := newTestService(repo)
		_, _, err := s.BorrowBook(7, "9780134190440")
		assert.ErrorIs(t, err, ErrNoCopiesAvailable)
	})
}

func TestReturnBook(t *testing.T) {
	t.Run("returns copies and reports the remaining count", func(t *testing.T) {
		repo := &mockRepository{
			returnBookFn: func(userID int64, isbn string, quantity int32) (*data.LoanRecord, error) {
				return &data.LoanRecord{UserID: userID, BookIsbn: isbn, Number: 2 - quantity}, nil
			},
		}
		s := newTestService(repo)
		loan, err := s.ReturnBook(7, "9780134190440", 1)
		require.NoError(t, err)
		assert.Equal(t, int32(1), loan.Number)
	})

	t.Run("rejects a non-positive quantity", func(t *testing.T) {
		s := newTestService(&mockRepository{})
		_, err := s.ReturnBook(7, "9780134190440", 0)
		assert.ErrorIs(t, err, ErrFailedValidation)
	})

	t.Run("maps an excessive quantity to ErrOverReturn", func(t *testing.T) {
		repo := &mockRepository{
			returnBookFn: func(userID int64, isbn string, quantity int32) (*data.LoanRecord, error) {
				return nil, repository.ErrOverReturn
			},
		}
		s := newTestService(repo)
		_, err := s.ReturnBook(7, "9780134190440", 5)
		assert.ErrorIs(t, err, ErrOverReturn)
	})

	t.Run("maps a missing ledger record to ErrRecordNotFound", func(t *testing.T) {
		repo := &mockRepository{
			returnBookFn: func(userID int64, isbn string, quantity int32) (*data.LoanRecord, error) {
				return nil, repository.ErrRecordNotFound
			},
		}
		s := newTestService(repo)
		_, err := s.ReturnBook(7, "9780134190440", 1)
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})
}

func TestSearchLoans(t *testing.T) {
	t.Run("a blank query returns no records without querying", func(t *testing.T) {
		s := newTestService(&mockRepository{})
		loans, err := s.SearchLoans("   ")
		require.NoError(t, err)
		assert.Empty(t, loans)
	})

	t.Run("passes a trimmed query through", func(t *testing.T) {
		var got string
		repo := &mockRepository{
			searchLoansFn: func(query string) ([]*data.LoanRecord, error) {
				got = query
				return []*data.LoanRecord{{BookIsbn: "9780134190440"}}, nil
			},
		}
		s := newTestService(repo)
		loans, err := s.SearchLoans("  kernighan ")
		require.NoError(t, err)
		assert.Equal(t, "kernighan", got)
		assert.Len(t, loans, 1)
	})
}

func TestListAvailableBooks(t *testing.T) {
	t.Run("a blank query matches the whole catalog", func(t *testing.T) {
		var got string
		repo := &mockRepository{
			searchAvailableBooksFn: func(query string) ([]*data.Book, error) {
				got = query
				return []*data.Book{testBook("9780134190440")}, nil
			},
		}
		s := newTestService(repo)
		books, err := s.ListAvailableBooks("")
		require.NoError(t, err)
		assert.Equal(t, "", got)
		assert.Len(t, books, 1)
	})
}
