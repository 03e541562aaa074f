package data

import "time"

// WishlistEntry defines a wishlist model with boolean-existence semantics:
// an entry is present while the book is wished and deleted otherwise. An
// entry is removed automatically when the same user borrows the same book.
type WishlistEntry struct {
	UserID    int64     `json:"user_id"`
	BookIsbn  string    `json:"book_isbn"`
	BookTitle string    `json:"book_title,omitempty"`
	Authors   []string  `json:"authors,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
