package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"athenaeum/data"

	"github.com/lib/pq"
)

type loans interface {
	BorrowBook(userID int64, isbn string) (*data.Book, *data.LoanRecord, error)
	ReturnBook(userID int64, isbn string, quantity int32) (*data.LoanRecord, error)
	GetLoan(userID int64, isbn string) (*data.LoanRecord, error)
	GetLoansForUser(userID int64) ([]*data.LoanRecord, error)
	GetAllLoans() ([]*data.LoanRecord, error)
	SearchLoans(query string) ([]*data.LoanRecord, error)
}

// BorrowBook lends one copy of a book to a user. The availability check,
// lended increment, ledger upsert and wishlist cleanup all run inside a
// single transaction with the book row locked, so concurrent borrows of the
// last copy cannot both succeed. Returns ErrRecordNotFound if the book
// doesn't exist and ErrNoCopiesAvailable when every copy is out.
func (r *repository) BorrowBook(userID int64, isbn string) (*data.Book, *data.LoanRecord, error) {
	var book data.Book
	var loan data.LoanRecord
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.runInTx(ctx, func(tx *sql.Tx) error {
		query := `
			SELECT isbn, created_at, title, year, copies, lended, version
			FROM books
			WHERE isbn = $1
			FOR UPDATE`
		err := tx.QueryRowContext(ctx, query, isbn).Scan(
			&book.Isbn,
			&book.CreatedAt,
			&book.Title,
			&book.Year,
			&book.Copies,
			&book.Lended,
			&book.Version,
		)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				return ErrRecordNotFound
			default:
				return err
			}
		}
		if book.Lended >= book.Copies {
			return ErrNoCopiesAvailable
		}
		query = `
			UPDATE books
			SET lended = lended + 1, version = version + 1
			WHERE isbn = $1
			RETURNING lended, version`
		err = tx.QueryRowContext(ctx, query, isbn).Scan(&book.Lended, &book.Version)
		if err != nil {
			return err
		}
		// Find-or-create the ledger record for (user, book). A repeat borrow
		// only increments the held count; borrowed_on and return_on keep
		// their original values.
		borrowedOn := time.Now().UTC().Truncate(24 * time.Hour)
		query = `
			INSERT INTO loans (user_id, book_isbn, number, borrowed_on, return_on)
			VALUES ($1, $2, 1, $3, $4)
			ON CONFLICT (user_id, book_isbn)
			DO UPDATE SET number = loans.number + 1
			RETURNING user_id, book_isbn, number, borrowed_on, return_on`
		args := []interface{}{userID, isbn, borrowedOn, data.DueDate(borrowedOn)}
		err = tx.QueryRowContext(ctx, query, args...).Scan(
			&loan.UserID,
			&loan.BookIsbn,
			&loan.Number,
			&loan.BorrowedOn,
			&loan.ReturnOn,
		)
		if err != nil {
			return err
		}
		// A borrowed book cannot stay wished.
		query = `
			DELETE FROM wishlist
			WHERE user_id = $1 AND book_isbn = $2`
		_, err = tx.ExecContext(ctx, query, userID, isbn)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	book.RemainingCopies = book.Copies - book.Lended
	loan.BookTitle = book.Title
	return &book, &loan, nil
}

// ReturnBook takes back quantity copies of a book from a user. The ledger
// record is deleted once its held count reaches zero and the book's lended
// counter is decremented by the same quantity, all inside one transaction.
// Returns ErrRecordNotFound if no ledger record exists for the pair and
// ErrOverReturn when quantity exceeds the held count.
func (r *repository) ReturnBook(userID int64, isbn string, quantity int32) (*data.LoanRecord, error) {
	var loan data.LoanRecord
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.runInTx(ctx, func(tx *sql.Tx) error {
		// Lock order matches BorrowBook: the book row first, then the
		// ledger row.
		query := `
			SELECT isbn
			FROM books
			WHERE isbn = $1
			FOR UPDATE`
		var lockedIsbn string
		err := tx.QueryRowContext(ctx, query, isbn).Scan(&lockedIsbn)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				return ErrRecordNotFound
			default:
				return err
			}
		}
		query = `
			SELECT user_id, book_isbn, number, borrowed_on, return_on
			FROM loans
			WHERE user_id = $1 AND book_isbn = $2
			FOR UPDATE`
		err = tx.QueryRowContext(ctx, query, userID, isbn).Scan(
			&loan.UserID,
			&loan.BookIsbn,
			&loan.Number,
			&loan.BorrowedOn,
			&loan.ReturnOn,
		)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				return ErrRecordNotFound
			default:
				return err
			}
		}
		if quantity > loan.Number {
			return ErrOverReturn
		}
		if quantity == loan.Number {
			query = `
				DELETE FROM loans
				WHERE user_id = $1 AND book_isbn = $2`
			_, err = tx.ExecContext(ctx, query, userID, isbn)
		} else {
			query = `
				UPDATE loans
				SET number = number - $3
				WHERE user_id = $1 AND book_isbn = $2`
			_, err = tx.ExecContext(ctx, query, userID, isbn, quantity)
		}
		if err != nil {
			return err
		}
		loan.Number -= quantity
		// Matching decrement: the precondition above guarantees lended
		// never goes negative.
		query = `
			UPDATE books
			SET lended = lended - $2, version = version + 1
			WHERE isbn = $1`
		_, err = tx.ExecContext(ctx, query, isbn, quantity)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// GetLoan retrieves the ledger record for a (user, book) pair.
func (r *repository) GetLoan(userID int64, isbn string) (*data.LoanRecord, error) {
	query := `
		SELECT loans.user_id, loans.book_isbn, books.title, loans.number, loans.borrowed_on, loans.return_on
		FROM loans
		INNER JOIN books ON loans.book_isbn = books.isbn
		WHERE loans.user_id = $1 AND loans.book_isbn = $2`
	var loan data.LoanRecord
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, userID, isbn).Scan(
		&loan.UserID,
		&loan.BookIsbn,
		&loan.BookTitle,
		&loan.Number,
		&loan.BorrowedOn,
		&loan.ReturnOn,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &loan, nil
}

// GetLoansForUser retrieves all ledger records held by a user.
func (r *repository) GetLoansForUser(userID int64) ([]*data.LoanRecord, error) {
	query := `
		SELECT loans.user_id, users.name, loans.book_isbn, books.title,
			array_remove(array_agg(DISTINCT authors.name), NULL),
			loans.number, loans.borrowed_on, loans.return_on
		FROM loans
		INNER JOIN users ON loans.user_id = users.id
		INNER JOIN books ON loans.book_isbn = books.isbn
		LEFT JOIN books_authors ON books_authors.book_isbn = books.isbn
		LEFT JOIN authors ON authors.id = books_authors.author_id
		WHERE loans.user_id = $1
		GROUP BY loans.user_id, users.name, loans.book_isbn, books.title, loans.number, loans.borrowed_on, loans.return_on
		ORDER BY loans.borrowed_on DESC, loans.book_isbn ASC`
	return r.queryLoans(query, userID)
}

// GetAllLoans retrieves every active ledger record.
func (r *repository) GetAllLoans() ([]*data.LoanRecord, error) {
	query := `
		SELECT loans.user_id, users.name, loans.book_isbn, books.title,
			array_remove(array_agg(DISTINCT authors.name), NULL),
			loans.number, loans.borrowed_on, loans.return_on
		FROM loans
		INNER JOIN users ON loans.user_id = users.id
		INNER JOIN books ON loans.book_isbn = books.isbn
		LEFT JOIN books_authors ON books_authors.book_isbn = books.isbn
		LEFT JOIN authors ON authors.id = books_authors.author_id
		GROUP BY loans.user_id, users.name, loans.book_isbn, books.title, loans.number, loans.borrowed_on, loans.return_on
		ORDER BY loans.borrowed_on DESC, loans.book_isbn ASC`
	return r.queryLoans(query)
}

// SearchLoans retrieves ledger records whose borrower username, book title,
// ISBN or author name matches the query (case-insensitive substring).
func (r *repository) SearchLoans(query string) ([]*data.LoanRecord, error) {
	stmt := `
		SELECT loans.user_id, users.name, loans.book_isbn, books.title,
			array_remove(array_agg(DISTINCT authors.name), NULL),
			loans.number, loans.borrowed_on, loans.return_on
		FROM loans
		INNER JOIN users ON loans.user_id = users.id
		INNER JOIN books ON loans.book_isbn = books.isbn
		LEFT JOIN books_authors ON books_authors.book_isbn = books.isbn
		LEFT JOIN authors ON authors.id = books_authors.author_id
		WHERE users.name ILIKE $1
			OR books.title ILIKE $1
			OR books.isbn = $2
			OR EXISTS (
				SELECT 1 FROM books_authors ba
				INNER JOIN authors a ON a.id = ba.author_id
				WHERE ba.book_isbn = books.isbn AND a.name ILIKE $1
			)
		GROUP BY loans.user_id, users.name, loans.book_isbn, books.title, loans.number, loans.borrowed_on, loans.return_on
		ORDER BY loans.borrowed_on DESC, loans.book_isbn ASC`
	return r.queryLoans(stmt, "%"+query+"%", query)
}

// queryLoans runs a ledger projection query and scans the joined rows.
func (r *repository) queryLoans(query string, args ...interface{}) ([]*data.LoanRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	loans := []*data.LoanRecord{}
	for rows.Next() {
		var loan data.LoanRecord
		err := rows.Scan(
			&loan.UserID,
			&loan.UserName,
			&loan.BookIsbn,
			&loan.BookTitle,
			pq.Array(&loan.Authors),
			&loan.Number,
			&loan.BorrowedOn,
			&loan.ReturnOn,
		)
		if err != nil {
			return nil, err
		}
		loans = append(loans, &loan)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return loans, nil
}
