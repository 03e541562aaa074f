package handler

import (
	"errors"
	"net/http"

	"athenaeum/data/dto"
	"athenaeum/service"

	"github.com/jellydator/ttlcache/v3"
)

// listAvailableBooksHandler searches the catalog for books that can be
// borrowed. A blank query lists the whole catalog.
func (h *Handler) listAvailableBooksHandler(w http.ResponseWriter, r *http.Request) {
	var qsInput dto.QsSearchBooks
	qsInput.Query = h.readString(r.URL.Query(), "query", "")
	books, err := h.service.ListAvailableBooks(qsInput.Query)
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"books": books}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) borrowBookHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.BorrowBookRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	user := h.contextGetUser(r)
	book, loan, err := h.service.BorrowBook(user.ID, requestBody.BookID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrNoCopiesAvailable):
			h.noCopiesAvailableResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"book": book, "loan": loan}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// returnBookHandler takes back copies on behalf of the borrower named in the
// request body. The borrower's user ID is cached so repeated returns for the
// same user skip the lookup.
func (h *Handler) returnBookHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.ReturnBookRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	var userID int64
	cacheKey := "user:" + requestBody.Username
	item := h.cache.Get(cacheKey)
	if item != nil {
		userID = item.Value()
	} else {
		user, err := h.service.GetUserByName(requestBody.Username)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrRecordNotFound):
				h.notFoundResponse(w, r)
			default:
				h.serverErrorResponse(w, r, err)
			}
			return
		}
		h.cache.Set(cacheKey, user.ID, ttlcache.DefaultTTL)
		userID = user.ID
	}
	loan, err := h.service.ReturnBook(userID, requestBody.BookID, requestBody.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrOverReturn):
			h.overReturnResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"loan": loan}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) listBorrowedBooksHandler(w http.ResponseWriter, r *http.Request) {
	loans, err := h.service.ListAllLoans()
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"loans": loans}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) searchBorrowedBooksHandler(w http.ResponseWriter, r *http.Request) {
	query := h.readString(r.URL.Query(), "query", "")
	loans, err := h.service.SearchLoans(query)
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"loans": loans}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
