package handler

import (
	"expvar"
	"net/http"

	"github.com/julienschmidt/httprouter"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func (h *Handler) Routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(h.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(h.methodNotAllowed)

	router.HandlerFunc(http.MethodGet, "/books", h.requireActivatedUser(h.listBooksHandler))
	router.HandlerFunc(http.MethodGet, "/book/:isbn", h.requireActivatedUser(h.showBookHandler))
	router.HandlerFunc(http.MethodPost, "/add_book_api", h.requireActivatedUser(h.createBookHandler))
	router.HandlerFunc(http.MethodPost, "/add_author_api", h.requireActivatedUser(h.createAuthorHandler))
	router.HandlerFunc(http.MethodPost, "/add_genre_api", h.requireActivatedUser(h.createGenreHandler))

	router.HandlerFunc(http.MethodGet, "/borrow_book_api", h.requireActivatedUser(h.listAvailableBooksHandler))
	router.HandlerFunc(http.MethodPost, "/borrow_book_api", h.requireActivatedUser(h.borrowBookHandler))
	router.HandlerFunc(http.MethodPost, "/return_book_api", h.requireActivatedUser(h.returnBookHandler))
	router.HandlerFunc(http.MethodGet, "/get_borrowed_books", h.requireActivatedUser(h.listBorrowedBooksHandler))
	router.HandlerFunc(http.MethodGet, "/search_borrowed_books", h.requireActivatedUser(h.searchBorrowedBooksHandler))

	router.HandlerFunc(http.MethodPost, "/toggle_wishlist/:isbn", h.requireActivatedUser(h.toggleWishlistHandler))

	router.HandlerFunc(http.MethodGet, "/book/:isbn/reviews", h.requireActivatedUser(h.listReviewsHandler))
	router.HandlerFunc(http.MethodPost, "/add_review/:isbn", h.requireActivatedUser(h.createReviewHandler))
	router.HandlerFunc(http.MethodDelete, "/delete_review/:isbn/:reviewId", h.requireActivatedUser(h.deleteReviewHandler))

	router.HandlerFunc(http.MethodPost, "/users", h.registerUserHandler)
	router.HandlerFunc(http.MethodPut, "/users/activated", h.activateUserHandler)
	router.HandlerFunc(http.MethodPut, "/users/password", h.resetUserPasswordHandler)
	router.HandlerFunc(http.MethodGet, "/account", h.requireActivatedUser(h.showAccountHandler))

	router.HandlerFunc(http.MethodPost, "/tokens/activation", h.createActivationTokenHandler)
	router.HandlerFunc(http.MethodPost, "/tokens/authentication", h.createAuthenticationTokenHandler)
	router.HandlerFunc(http.MethodDelete, "/tokens/authentication", h.requireAuthenticatedUser(h.deleteAuthenticationTokenHandler))
	router.HandlerFunc(http.MethodPost, "/tokens/password-reset", h.createPasswordResetTokenHandler)

	router.HandlerFunc(http.MethodGet, "/debug/vars", h.basicAuth(expvar.Handler().ServeHTTP))
	router.HandlerFunc(http.MethodGet, "/healthcheck", h.healthcheckHandler)

	// Swagger routes
	router.HandlerFunc(http.MethodGet, "/spec", h.handleSwaggerFile())
	router.HandlerFunc(http.MethodGet, "/docs/*any", httpSwagger.Handler(httpSwagger.URL("/spec")))

	return h.recoverPanic(h.enableCORS(h.rateLimit(h.authenticate(h.metrics(router)))))
}
