package handler

import (
	"errors"
	"fmt"
	"net/http"

	"athenaeum/data/dto"
	"athenaeum/internal/validator"
	"athenaeum/service"
)

func (h *Handler) createBookHandler(w http.ResponseWriter, r *http.Request) {
	// Set 10MB limit for request body size
	maxBytes := int64(10_485_760)
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	book, err := h.service.CreateBook(r)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrContentTooLarge):
			h.contentTooLargeResponse(w, r)
		case errors.Is(err, service.ErrBadRequest):
			h.badRequestResponse(w, r, err)
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrUnknownReference):
			h.unknownReferenceResponse(w, r, err)
		case errors.Is(err, service.ErrDuplicateRecord):
			h.recordAlreadyExistsResponse(w, r)
		case errors.Is(err, service.ErrUnsupportedMediaType):
			h.unsupportedMediaTypeResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/book/%s", book.Isbn))
	err = h.encodeJSON(w, http.StatusCreated, envelope{"book": book}, headers)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) showBookHandler(w http.ResponseWriter, r *http.Request) {
	isbn := h.readStringParam(r, "isbn")
	user := h.contextGetUser(r)
	book, reviews, rating, wished, loan, err := h.service.GetBookDetail(user.ID, isbn)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{
		"book":    book,
		"reviews": reviews,
		"rating":  rating,
		"wished":  wished,
		"loan":    loan,
	}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	var qsInput dto.QsListBooks
	v := validator.New()
	qs := r.URL.Query()
	qsInput.Filters.Page = h.readInt(qs, "page", 1, v)
	qsInput.Filters.PageSize = h.readInt(qs, "page_size", 10, v)
	qsInput.Filters.Sort = h.readString(qs, "sort", "title")
	qsInput.Filters.SortSafeList = []string{"isbn", "title", "year", "created_at", "-isbn", "-title", "-year", "-created_at"}
	books, metadata, err := h.service.ListBooks(qsInput.Filters)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"books": books, "metadata": metadata}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
