package repository

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"errors"
	"time"

	"athenaeum/data"
)

type users interface {
	RegisterUser(user *data.User) error
	GetUserByID(ID int64) (*data.User, error)
	GetUserByEmail(email string) (*data.User, error)
	GetUserByName(name string) (*data.User, error)
	UpdateUser(user *data.User) error
	GetUserForToken(tokenScope string, tokenPlaintext string) (*data.User, error)
}

// RegisterUser creates a new user record.
func (r *repository) RegisterUser(user *data.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, activated)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version`
	args := []interface{}{user.Name, user.Email, user.Password.Hash, user.Activated}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.CreatedAt,
		&user.Version,
	)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "users_email_key"`:
			return ErrDuplicateRecord
		case err.Error() == `pq: duplicate key value violates unique constraint "users_name_key"`:
			return ErrDuplicateRecord
		default:
			return err
		}
	}
	return nil
}

// GetUserByID retrieves a user record by its ID.
func (r *repository) GetUserByID(ID int64) (*data.User, error) {
	if ID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT id, created_at, name, email, password_hash, activated, version
		FROM users
		WHERE id = $1`
	return r.queryUser(query, ID)
}

// GetUserByEmail retrieves a user record by its email address.
func (r *repository) GetUserByEmail(email string) (*data.User, error) {
	query := `
		SELECT id, created_at, name, email, password_hash, activated, version
		FROM users
		WHERE email = $1`
	return r.queryUser(query, email)
}

// GetUserByName retrieves a user record by its username.
func (r *repository) GetUserByName(name string) (*data.User, error) {
	query := `
		SELECT id, created_at, name, email, password_hash, activated, version
		FROM users
		WHERE name = $1`
	return r.queryUser(query, name)
}

func (r *repository) queryUser(query string, arg interface{}) (*data.User, error) {
	var user data.User
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.CreatedAt,
		&user.Name,
		&user.Email,
		&user.Password.Hash,
		&user.Activated,
		&user.Version,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &user, nil
}

// UpdateUser updates a user record.
func (r *repository) UpdateUser(user *data.User) error {
	query := `
		UPDATE users
		SET name = $1, email = $2, password_hash = $3, activated = $4, version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version`
	args := []interface{}{
		user.Name,
		user.Email,
		user.Password.Hash,
		user.Activated,
		user.ID,
		user.Version,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&user.Version)
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

// GetUserForToken retrieves the user record associated with an unexpired
// token for the given scope.
func (r *repository) GetUserForToken(tokenScope string, tokenPlaintext string) (*data.User, error) {
	tokenHash := sha256.Sum256([]byte(tokenPlaintext))
	query := `
		SELECT users.id, users.created_at, users.name, users.email, users.password_hash, users.activated, users.version
		FROM users
		INNER JOIN tokens ON users.id = tokens.user_id
		WHERE tokens.hash = $1 AND tokens.scope = $2 AND tokens.expiry > $3`
	args := []interface{}{tokenHash[:], tokenScope, time.Now()}
	var user data.User
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.CreatedAt,
		&user.Name,
		&user.Email,
		&user.Password.Hash,
		&user.Activated,
		&user.Version,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &user, nil
}
