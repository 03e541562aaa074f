package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"athenaeum/data"

	"github.com/lib/pq"
)

type books interface {
	CreateBook(book *data.Book) error
	GetBook(isbn string) (*data.Book, error)
	GetAllBooks(filters data.Filters) ([]*data.Book, data.Metadata, error)
	SearchAvailableBooks(query string) ([]*data.Book, error)
	UpdateBook(book *data.Book) error
	DeleteBook(isbn string) error
}

// CreateBook creates a new book record.
func (r *repository) CreateBook(book *data.Book) error {
	query := `
		INSERT INTO books (isbn, title, year, copies, lended, cover_path)
		VALUES ($1, $2, $3, $4, 0, $5)
		RETURNING created_at, version`
	args := []interface{}{book.Isbn, book.Title, book.Year, book.Copies, book.CoverPath}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&book.CreatedAt, &book.Version)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "books_pkey"`:
			return ErrDuplicateRecord
		default:
			return err
		}
	}
	return nil
}

// GetBook retrieves a book record by its ISBN, with author and genre names
// aggregated from the junction tables.
func (r *repository) GetBook(isbn string) (*data.Book, error) {
	if isbn == "" {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT books.isbn, books.created_at, books.title, books.year, books.copies, books.lended, books.cover_path,
			array_remove(array_agg(DISTINCT authors.name), NULL),
			array_remove(array_agg(DISTINCT genres.name), NULL),
			books.version
		FROM books
		LEFT JOIN books_authors ON books_authors.book_isbn = books.isbn
		LEFT JOIN authors ON authors.id = books_authors.author_id
		LEFT JOIN books_genres ON books_genres.book_isbn = books.isbn
		LEFT JOIN genres ON genres.id = books_genres.genre_id
		WHERE books.isbn = $1
		GROUP BY books.isbn`
	var book data.Book
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, isbn).Scan(
		&book.Isbn,
		&book.CreatedAt,
		&book.Title,
		&book.Year,
		&book.Copies,
		&book.Lended,
		&book.CoverPath,
		pq.Array(&book.Authors),
		pq.Array(&book.Genres),
		&book.Version,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	book.RemainingCopies = book.Copies - book.Lended
	return &book, nil
}

// GetAllBooks retrieves a paginated list of all book records.
func (r *repository) GetAllBooks(filters data.Filters) ([]*data.Book, data.Metadata, error) {
	query := fmt.Sprintf(`
		SELECT count(*) OVER(), books.isbn, books.created_at, books.title, books.year, books.copies, books.lended, books.cover_path,
			array_remove(array_agg(DISTINCT authors.name), NULL),
			array_remove(array_agg(DISTINCT genres.name), NULL),
			books.version
		FROM books
		LEFT JOIN books_authors ON books_authors.book_isbn = books.isbn
		LEFT JOIN authors ON authors.id = books_authors.author_id
		LEFT JOIN books_genres ON books_genres.book_isbn = books.isbn
		LEFT JOIN genres ON genres.id = books_genres.genre_id
		GROUP BY books.isbn
		ORDER BY %s %s, books.isbn ASC
		LIMIT $1 OFFSET $2`,
		filters.SortColumn(), filters.SortDirection(),
	)
	args := []interface{}{filters.Limit(), filters.Offset()}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	defer rows.Close()
	totalRecords := 0
	books := []*data.Book{}
	for rows.Next() {
		var book data.Book
		err := rows.Scan(
			&totalRecords,
			&book.Isbn,
			&book.CreatedAt,
			&book.Title,
			&book.Year,
			&book.Copies,
			&book.Lended,
			&book.CoverPath,
			pq.Array(&book.Authors),
			pq.Array(&book.Genres),
			&book.Version,
		)
		if err != nil {
			return nil, data.Metadata{}, err
		}
		book.RemainingCopies = book.Copies - book.Lended
		books = append(books, &book)
	}
	if err = rows.Err(); err != nil {
		return nil, data.Metadata{}, err
	}
	metadata := data.CalculateMetadata(totalRecords, filters.Page, filters.PageSize)
	return books, metadata, nil
}

// SearchAvailableBooks retrieves distinct book records whose title matches
// the query as a case-insensitive substring, whose ISBN matches exactly, or
// one of whose author names matches as a case-insensitive substring.
func (r *repository) SearchAvailableBooks(query string) ([]*data.Book, error) {
	stmt := `
		SELECT books.isbn, books.created_at, books.title, books.year, books.copies, books.lended, books.cover_path,
			array_remove(array_agg(DISTINCT authors.name), NULL),
			array_remove(array_agg(DISTINCT genres.name), NULL),
			books.version
		FROM books
		LEFT JOIN books_authors ON books_authors.book_isbn = books.isbn
		LEFT JOIN authors ON authors.id = books_authors.author_id
		LEFT JOIN books_genres ON books_genres.book_isbn = books.isbn
		LEFT JOIN genres ON genres.id = books_genres.genre_id
		WHERE books.title ILIKE $1
			OR books.isbn = $2
			OR EXISTS (
				SELECT 1 FROM books_authors ba
				INNER JOIN authors a ON a.id = ba.author_id
				WHERE ba.book_isbn = books.isbn AND a.name ILIKE $1
			)
		GROUP BY books.isbn
		ORDER BY books.title ASC, books.isbn ASC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, stmt, "%"+query+"%", query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	books := []*data.Book{}
	for rows.Next() {
		var book data.Book
		err := rows.Scan(
			&book.Isbn,
			&book.CreatedAt,
			&book.Title,
			&book.Year,
			&book.Copies,
			&book.Lended,
			&book.CoverPath,
			pq.Array(&book.Authors),
			pq.Array(&book.Genres),
			&book.Version,
		)
		if err != nil {
			return nil, err
		}
		book.RemainingCopies = book.Copies - book.Lended
		books = append(books, &book)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

// UpdateBook updates a book record.
func (r *repository) UpdateBook(book *data.Book) error {
	query := `
		UPDATE books
		SET title = $1, year = $2, copies = $3, cover_path = $4, version = version + 1
		WHERE isbn = $5 AND version = $6
		RETURNING version`
	args := []interface{}{
		book.Title,
		book.Year,
		book.Copies,
		book.CoverPath,
		book.Isbn,
		book.Version,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&book.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		default:
			return err
		}
	}
	return nil
}

// DeleteBook deletes a book record.
func (r *repository) DeleteBook(isbn string) error {
	if isbn == "" {
		return ErrRecordNotFound
	}
	query := `
		DELETE FROM books
		WHERE isbn = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, isbn)
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
