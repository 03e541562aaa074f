package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"athenaeum/data"

	"github.com/lib/pq"
)

type wishlist interface {
	CreateWishlistEntry(entry *data.WishlistEntry) error
	DeleteWishlistEntry(userID int64, isbn string) error
	WishlistEntryExists(userID int64, isbn string) (bool, error)
	GetWishlistForUser(userID int64) ([]*data.WishlistEntry, error)
}

// CreateWishlistEntry creates a wishlist record.
func (r *repository) CreateWishlistEntry(entry *data.WishlistEntry) error {
	query := `
		INSERT INTO wishlist (user_id, book_isbn)
		VALUES ($1, $2)
		RETURNING created_at`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, entry.UserID, entry.BookIsbn).Scan(&entry.CreatedAt)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "wishlist_pkey"`:
			return ErrDuplicateRecord
		default:
			return err
		}
	}
	return nil
}

// DeleteWishlistEntry deletes a wishlist record.
func (r *repository) DeleteWishlistEntry(userID int64, isbn string) error {
	query := `
		DELETE FROM wishlist
		WHERE user_id = $1 AND book_isbn = $2`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, userID, isbn)
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

// WishlistEntryExists checks whether a wishlist record exists for a
// (user, book) pair.
func (r *repository) WishlistEntryExists(userID int64, isbn string) (bool, error) {
	query := `
		SELECT 1
		FROM wishlist
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

// GetWishlistForUser retrieves all wishlist records for a user, joined with
// book data.
func (r *repository) GetWishlistForUser(userID int64) ([]*data.WishlistEntry, error) {
	query := `
		SELECT wishlist.user_id, wishlist.book_isbn, books.title,
			array_remove(array_agg(DISTINCT authors.name), NULL),
			wishlist.created_at
		FROM wishlist
		INNER JOIN books ON wishlist.book_isbn = books.isbn
		LEFT JOIN books_authors ON books_authors.book_isbn = books.isbn
		LEFT JOIN authors ON authors.id = books_authors.author_id
		WHERE wishlist.user_id = $1
		GROUP BY wishlist.user_id, wishlist.book_isbn, books.title, wishlist.created_at
		ORDER BY wishlist.created_at DESC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	entries := []*data.WishlistEntry{}
	for rows.Next() {
		var entry data.WishlistEntry
		err := rows.Scan(
			&entry.UserID,
			&entry.BookIsbn,
			&entry.BookTitle,
			pq.Array(&entry.Authors),
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
