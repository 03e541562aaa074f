package repository

import (
	"context"
	"fmt"
	"time"

	"athenaeum/data"

	"github.com/lib/pq"
)

type authors interface {
	CreateAuthor(author *data.Author) error
	GetAuthorsByName(names []string) ([]*data.Author, error)
	AddAuthorsForBook(isbn string, authors []*data.Author) error
}

// CreateAuthor creates an author record.
func (r *repository) CreateAuthor(author *data.Author) error {
	query := `
		INSERT INTO authors (name)
		VALUES ($1)
		RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, author.Name).Scan(&author.ID)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "authors_name_key"`:
			return ErrDuplicateRecord
		default:
			return err
		}
	}
	return nil
}

// GetAuthorsByName retrieves author records matching the given names. Every
// name must reference an existing author; a missing name yields
// ErrUnknownReference wrapped with the offending name.
func (r *repository) GetAuthorsByName(names []string) ([]*data.Author, error) {
	query := `
		SELECT id, name
		FROM authors
		WHERE name = ANY($1)`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, pq.Array(names))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	found := make(map[string]*data.Author)
	for rows.Next() {
		var author data.Author
		err := rows.Scan(&author.ID, &author.Name)
		if err != nil {
			return nil, err
		}
		found[author.Name] = &author
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	authors := make([]*data.Author, 0, len(names))
	for _, name := range names {
		author, ok := found[name]
		if !ok {
			return nil, fmt.Errorf("%w: author %q", ErrUnknownReference, name)
		}
		authors = append(authors, author)
	}
	return authors, nil
}

// AddAuthorsForBook links author records to a book in the junction table.
func (r *repository) AddAuthorsForBook(isbn string, authors []*data.Author) error {
	query := `
		INSERT INTO books_authors (book_isbn, author_id)
		VALUES ($1, $2)`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	for _, author := range authors {
		_, err := r.db.ExecContext(ctx, query, isbn, author.ID)
		if err != nil {
			return err
		}
	}
	return nil
}
