package handler

import (
	"errors"
	"net/http"

	"athenaeum/data/dto"
	"athenaeum/service"
)

func (h *Handler) createReviewHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.CreateReviewRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	isbn := h.readStringParam(r, "isbn")
	user := h.contextGetUser(r)
	review, err := h.service.AddReview(user.ID, isbn, requestBody.Rating, requestBody.Comment)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrDuplicateRecord):
			h.recordAlreadyExistsResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusCreated, envelope{"review": review}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) deleteReviewHandler(w http.ResponseWriter, r *http.Request) {
	isbn := h.readStringParam(r, "isbn")
	reviewID, err := h.readIDParam(r, "reviewId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	user := h.contextGetUser(r)
	err = h.service.DeleteReview(user.ID, isbn, reviewID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrNotPermitted):
			h.notPermittedResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"message": "review successfully deleted"}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) listReviewsHandler(w http.ResponseWriter, r *http.Request) {
	isbn := h.readStringParam(r, "isbn")
	reviews, rating, err := h.service.ListReviewsForBook(isbn)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"reviews": reviews, "rating": rating}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
