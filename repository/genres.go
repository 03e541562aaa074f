package repository

import (
	"context"
	"fmt"
	"time"

	"athenaeum/data"

	"github.com/lib/pq"
)

type genres interface {
	CreateGenre(genre *data.Genre) error
	GetGenresByName(names []string) ([]*data.Genre, error)
	AddGenresForBook(isbn string, genres []*data.Genre) error
}

// CreateGenre creates a genre record.
func (r *repository) CreateGenre(genre *data.Genre) error {
	query := `
		INSERT INTO genres (name)
		VALUES ($1)
		RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, genre.Name).Scan(&genre.ID)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "genres_name_key"`:
			return ErrDuplicateRecord
		default:
			return err
		}
	}
	return nil
}

// GetGenresByName retrieves genre records matching the given names. A name
// that doesn't reference an existing genre yields ErrUnknownReference.
func (r *repository) GetGenresByName(names []string) ([]*data.Genre, error) {
	query := `
		SELECT id, name
		FROM genres
		WHERE name = ANY($1)`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, pq.Array(names))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	found := make(map[string]*data.Genre)
	for rows.Next() {
		var genre data.Genre
		err := rows.Scan(&genre.ID, &genre.Name)
		if err != nil {
			return nil, err
		}
		found[genre.Name] = &genre
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	genres := make([]*data.Genre, 0, len(names))
	for _, name := range names {
		genre, ok := found[name]
		if !ok {
			return nil, fmt.Errorf("%w: genre %q", ErrUnknownReference, name)
		}
		genres = append(genres, genre)
	}
	return genres, nil
}

// AddGenresForBook links genre records to a book in the junction table.
func (r *repository) AddGenresForBook(isbn string, genres []*data.Genre) error {
	query := `
		INSERT INTO books_genres (book_isbn, genre_id)
		VALUES ($1, $2)`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	for _, genre := range genres {
		_, err := r.db.ExecContext(ctx, query, isbn, genre.ID)
		if err != nil {
			return err
		}
	}
	return nil
}
