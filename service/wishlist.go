package service

import (
	"errors"

	"athenaeum/data"
	"athenaeum/repository"
)

type wishlist interface {
	ToggleWishlist(userID int64, isbn string) (bool, error)
	ListWishlistForUser(userID int64) ([]*data.WishlistEntry, error)
}

// ToggleWishlist service flips a book's wishlist membership for a user. It
// returns true when the book ends up on the wishlist and false when the call
// removed it.
func (s *service) ToggleWishlist(userID int64, isbn string) (bool, error) {
	_, err := s.repo.GetBook(isbn)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return false, ErrRecordNotFound
		default:
			return false, err
		}
	}
	// Try the removal first. A not-found result means the book wasn't wished
	// yet, so the toggle adds it instead.
	err = s.repo.DeleteWishlistEntry(userID, isbn)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrRecordNotFound) {
		return false, err
	}
	entry := &data.WishlistEntry{
		UserID:   userID,
		BookIsbn: isbn,
	}
	err = s.repo.CreateWishlistEntry(entry)
	if err != nil {
		switch {
		// A concurrent toggle beat this one to the insert. The book is on the
		// wishlist either way.
		case errors.Is(err, repository.ErrDuplicateRecord):
			return true, nil
		default:
			return false, err
		}
	}
	return true, nil
}

// ListWishlistForUser service retrieves a user's wishlist entries.
func (s *service) ListWishlistForUser(userID int64) ([]*data.WishlistEntry, error) {
	entries, err := s.repo.GetWishlistForUser(userID)
	if err != nil {
		return nil, err
	}
	return entries, nil
}
