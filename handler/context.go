package handler

import (
	"context"
	"net/http"

	"athenaeum/data"
)

// Type contextKey is a custom contextKey type, with the underlying type string.
// This is necessary to prevent name collisions with external packages.
type contextKey string

// The userContextKey constant is used as the key for getting and setting user
// information in the request context.
const userContextKey = contextKey("user")

// contextSetUser returns a new copy of the request with the provided User struct
// added to the context.
func (h *Handler) contextSetUser(r *http.Request, user *data.User) *http.Request {
	ctx := context.WithValue(r.Context(), userContextKey, user)
	return r.WithContext(ctx)
}

// contextGetUser retrieves the User struct from the request context. This helper
// is only used when a User struct value is logically expected to be in the
// context; a missing value is firmly an 'unexpected' error.
func (h *Handler) contextGetUser(r *http.Request) *data.User {
	user, ok := r.Context().Value(userContextKey).(*data.User)
	if !ok {
		panic("missing user value in request context")
	}
	return user
}
