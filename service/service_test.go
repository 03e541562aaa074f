package service

import (
	"io"
	"sync"
	"time"

	"athenaeum/config"
	"athenaeum/data"
	"athenaeum/internal/jsonlog"
	"athenaeum/repository"
)

// mockRepository implements repository.Repository via per-method function
// fields. Calling a method whose field wasn't set panics, which makes tests
// fail loudly when a service touches a repository method it shouldn't.
type mockRepository struct {
	repository.Repository

	createBookFn           func(book *data.Book) error
	getBookFn              func(isbn string) (*data.Book, error)
	updateBookFn           func(book *data.Book) error
	deleteBookFn           func(isbn string) error
	searchAvailableBooksFn func(query string) ([]*data.Book, error)

	createAuthorFn      func(author *data.Author) error
	getAuthorsByNameFn  func(names []string) ([]*data.Author, error)
	addAuthorsForBookFn func(isbn string, authors []*data.Author) error
	createGenreFn       func(genre *data.Genre) error
	getGenresByNameFn   func(names []string) ([]*data.Genre, error)
	addGenresForBookFn  func(isbn string, genres []*data.Genre) error

	borrowBookFn      func(userID int64, isbn string) (*data.Book, *data.LoanRecord, error)
	returnBookFn      func(userID int64, isbn string, quantity int32) (*data.LoanRecord, error)
	getLoanFn         func(userID int64, isbn string) (*data.LoanRecord, error)
	getLoansForUserFn func(userID int64) ([]*data.LoanRecord, error)
	searchLoansFn     func(query string) ([]*data.LoanRecord, error)

	createWishlistEntryFn func(entry *data.WishlistEntry) error
	deleteWishlistEntryFn func(userID int64, isbn string) error
	wishlistEntryExistsFn func(userID int64, isbn string) (bool, error)
	getWishlistForUserFn  func(userID int64) ([]*data.WishlistEntry, error)

	createReviewFn         func(review *data.Review) error
	getReviewFn            func(reviewID int64) (*data.Review, error)
	deleteReviewFn         func(reviewID int64) error
	reviewExistsForUserFn  func(userID int64, isbn string) (bool, error)
	getAllReviewsForBookFn func(isbn string) ([]*data.Review, data.Rating, error)

	getUserByIDFn func(ID int64) (*data.User, error)
}

func (m *mockRepository) CreateBook(book *data.Book) error { return m.createBookFn(book) }
func (m *mockRepository) GetBook(isbn string) (*data.Book, error) {
	return m.getBookFn(isbn)
}
func (m *mockRepository) UpdateBook(book *data.Book) error { return m.updateBookFn(book) }
func (m *mockRepository) DeleteBook(isbn string) error     { return m.deleteBookFn(isbn) }
func (m *mockRepository) SearchAvailableBooks(query string) ([]*data.Book, error) {
	return m.searchAvailableBooksFn(query)
}

func (m *mockRepository) CreateAuthor(author *data.Author) error { return m.createAuthorFn(author) }
func (m *mockRepository) GetAuthorsByName(names []string) ([]*data.Author, error) {
	return m.getAuthorsByNameFn(names)
}
func (m *mockRepository) AddAuthorsForBook(isbn string, authors []*data.Author) error {
	return m.addAuthorsForBookFn(isbn, authors)
}
func (m *mockRepository) CreateGenre(genre *data.Genre) error { return m.createGenreFn(genre) }
func (m *mockRepository) GetGenresByName(names []string) ([]*data.Genre, error) {
	return m.getGenresByNameFn(names)
}
func (m *mockRepository) AddGenresForBook(isbn string, genres []*data.Genre) error {
	return m.addGenresForBookFn(isbn, genres)
}

func (m *mockRepository) BorrowBook(userID int64, isbn string) (*data.Book, *data.LoanRecord, error) {
	return m.borrowBookFn(userID, isbn)
}
func (m *mockRepository) ReturnBook(userID int64, isbn string, quantity int32) (*data.LoanRecord, error) {
	return m.returnBookFn(userID, isbn, quantity)
}
func (m *mockRepository) GetLoan(userID int64, isbn string) (*data.LoanRecord, error) {
	return m.getLoanFn(userID, isbn)
}
func (m *mockRepository) GetLoansForUser(userID int64) ([]*data.LoanRecord, error) {
	return m.getLoansForUserFn(userID)
}
func (m *mockRepository) SearchLoans(query string) ([]*data.LoanRecord, error) {
	return m.searchLoansFn(query)
}

func (m *mockRepository) CreateWishlistEntry(entry *data.WishlistEntry) error {
	return m.createWishlistEntryFn(entry)
}
func (m *mockRepository) DeleteWishlistEntry(userID int64, isbn string) error {
	return m.deleteWishlistEntryFn(userID, isbn)
}
func (m *mockRepository) WishlistEntryExists(userID int64, isbn string) (bool, error) {
	return m.wishlistEntryExistsFn(userID, isbn)
}
func (m *mockRepository) GetWishlistForUser(userID int64) ([]*data.WishlistEntry, error) {
	return m.getWishlistForUserFn(userID)
}

func (m *mockRepository) CreateReview(review *data.Review) error { return m.createReviewFn(review) }
func (m *mockRepository) GetReview(reviewID int64) (*data.Review, error) {
	return m.getReviewFn(reviewID)
}
func (m *mockRepository) DeleteReview(reviewID int64) error { return m.deleteReviewFn(reviewID) }
func (m *mockRepository) ReviewExistsForUser(userID int64, isbn string) (bool, error) {
	return m.reviewExistsForUserFn(userID, isbn)
}
func (m *mockRepository) GetAllReviewsForBook(isbn string) ([]*data.Review, data.Rating, error) {
	return m.getAllReviewsForBookFn(isbn)
}

func (m *mockRepository) GetUserByID(ID int64) (*data.User, error) { return m.getUserByIDFn(ID) }

func newTestService(repo repository.Repository) *service {
	var wg sync.WaitGroup
	logger := jsonlog.New(io.Discard, jsonlog.LevelFatal)
	return New(config.Config{}, &wg, logger, repo)
}

func testBook(isbn string) *data.Book {
	return &data.Book{
		Isbn:      isbn,
		CreatedAt: time.Now(),
		Title:     "The Go Programming Language",
		Year:      2015,
		Copies:    3,
		Lended:    1,
		Authors:   []string{"Alan Donovan", "Brian Kernighan"},
		Genres:    []string{"Programming"},
	}
}
