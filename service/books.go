package service

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"athenaeum/clients"
	"athenaeum/data"
	"athenaeum/internal/validator"
	"athenaeum/repository"

	"github.com/gabriel-vasile/mimetype"
)

type books interface {
	CreateBook(r *http.Request) (*data.Book, error)
	GetBook(isbn string) (*data.Book, error)
	GetBookDetail(userID int64, isbn string) (*data.Book, []*data.Review, data.Rating, bool, *data.LoanRecord, error)
	ListBooks(filters data.Filters) ([]*data.Book, data.Metadata, error)
}

// CreateBook service creates a new book from a multipart form carrying the
// isbn, title, copies and year fields, JSON-encoded authors and genres name
// arrays, and an optional cover image. Every referenced author and genre
// must already exist. If anything fails after the book row was written, the
// partially created book is deleted so no dangling record is left behind.
func (s *service) CreateBook(r *http.Request) (*data.Book, error) {
	err := r.ParseMultipartForm(5000)
	if err != nil {
		var maxBytesError *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesError):
			return nil, ErrContentTooLarge
		default:
			return nil, ErrBadRequest
		}
	}
	book := &data.Book{
		Isbn:  r.FormValue("isbn"),
		Title: r.FormValue("title"),
	}
	if value := r.FormValue("copies"); value != "" {
		copies, err := strconv.ParseInt(value, 10, 32)
		if err != nil {
			return nil, ErrBadRequest
		}
		book.Copies = int32(copies)
	}
	if value := r.FormValue("year"); value != "" {
		year, err := strconv.ParseInt(value, 10, 32)
		if err != nil {
			return nil, ErrBadRequest
		}
		book.Year = int32(year)
	}
	if value := r.FormValue("authors"); value != "" {
		err = json.Unmarshal([]byte(value), &book.Authors)
		if err != nil {
			return nil, ErrBadRequest
		}
	}
	if value := r.FormValue("genres"); value != "" {
		err = json.Unmarshal([]byte(value), &book.Genres)
		if err != nil {
			return nil, ErrBadRequest
		}
	}
	v := validator.New()
	if data.ValidateBook(v, book); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	// Resolve author and genre names before writing anything: a name that
	// doesn't reference existing records rejects the whole request.
	authors, err := s.repo.GetAuthorsByName(book.Authors)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUnknownReference):
			return nil, unknownReference(err)
		default:
			return nil, err
		}
	}
	genres, err := s.repo.GetGenresByName(book.Genres)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUnknownReference):
			return nil, unknownReference(err)
		default:
			return nil, err
		}
	}
	err = s.repo.CreateBook(book)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, ErrDuplicateRecord
		default:
			return nil, err
		}
	}
	err = s.repo.AddAuthorsForBook(book.Isbn, authors)
	if err != nil {
		return nil, s.compensateCreateBook(book.Isbn, err)
	}
	err = s.repo.AddGenresForBook(book.Isbn, genres)
	if err != nil {
		return nil, s.compensateCreateBook(book.Isbn, err)
	}
	// Optional cover image, either uploaded directly or fetched from a URL.
	var buffer []byte
	var mtype *mimetype.MIME
	var filename string
	file, fileHeader, err := r.FormFile("cover")
	switch {
	case err == nil:
		defer file.Close()
		buffer, mtype, err = s.detectMimeType(file, fileHeader)
		if err != nil {
			return nil, s.compensateCreateBook(book.Isbn, err)
		}
		filename = fileHeader.Filename
	case r.FormValue("cover_url") != "":
		coverURL := r.FormValue("cover_url")
		buffer, mtype, err = s.downloadCover(coverURL)
		if err != nil {
			return nil, s.compensateCreateBook(book.Isbn, err)
		}
		filename = coverURL
	}
	if buffer != nil {
		supportedMediaType := []string{
			"image/jpeg",
			"image/png",
		}
		if validMime := validator.Mime(mtype, supportedMediaType...); !validMime {
			return nil, s.compensateCreateBook(book.Isbn, ErrUnsupportedMediaType)
		}
		s3Client, err := clients.NewS3Client(s.config)
		if err != nil {
			return nil, s.compensateCreateBook(book.Isbn, err)
		}
		coverPath, err := s.uploadCoverToS3(s3Client, buffer, mtype, filename)
		if err != nil {
			return nil, s.compensateCreateBook(book.Isbn, err)
		}
		book.CoverPath = coverPath
		err = s.repo.UpdateBook(book)
		if err != nil {
			return nil, s.compensateCreateBook(book.Isbn, err)
		}
	}
	book.RemainingCopies = book.Copies
	return book, nil
}

// compensateCreateBook deletes a partially created book record so a failed
// creation leaves no dangling row, then returns the original error.
func (s *service) compensateCreateBook(isbn string, cause error) error {
	err := s.repo.DeleteBook(isbn)
	if err != nil {
		s.logger.PrintError(err, map[string]string{"isbn": isbn})
	}
	return cause
}

// unknownReference maps a repository unknown-reference error to the service
// sentinel while keeping the offending name in the message.
func unknownReference(err error) error {
	return errors.Join(ErrUnknownReference, err)
}

// GetBook service retrieves a single book record.
func (s *service) GetBook(isbn string) (*data.Book, error) {
	book, err := s.repo.GetBook(isbn)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return book, nil
}

// GetBookDetail service retrieves a book together with its reviews, the
// aggregated rating, whether the calling user has wished the book and the
// user's active loan for it, if any.
func (s *service) GetBookDetail(userID int64, isbn string) (*data.Book, []*data.Review, data.Rating, bool, *data.LoanRecord, error) {
	book, err := s.repo.GetBook(isbn)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, nil, data.Rating{}, false, nil, ErrRecordNotFound
		default:
			return nil, nil, data.Rating{}, false, nil, err
		}
	}
	reviews, rating, err := s.repo.GetAllReviewsForBook(isbn)
	if err != nil {
		return nil, nil, data.Rating{}, false, nil, err
	}
	wished, err := s.repo.WishlistEntryExists(userID, isbn)
	if err != nil {
		return nil, nil, data.Rating{}, false, nil, err
	}
	loan, err := s.repo.GetLoan(userID, isbn)
	if err != nil {
		switch {
		// No ledger record just means the user doesn't hold the book.
		case errors.Is(err, repository.ErrRecordNotFound):
			loan = nil
		default:
			return nil, nil, data.Rating{}, false, nil, err
		}
	}
	return book, reviews, rating, wished, loan, nil
}

// ListBooks service retrieves a paginated list of all books.
func (s *service) ListBooks(filters data.Filters) ([]*data.Book, data.Metadata, error) {
	v := validator.New()
	if data.ValidateFilters(v, filters); !v.Valid() {
		return nil, data.Metadata{}, s.failedValidation(v.Errors)
	}
	books, metadata, err := s.repo.GetAllBooks(filters)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	return books, metadata, nil
}
