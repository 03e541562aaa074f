package handler

import (
	"errors"
	"net/http"

	"athenaeum/data/dto"
	"athenaeum/service"
)

func (h *Handler) createGenreHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.CreateGenreRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	genre, err := h.service.AddGenre(requestBody.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrDuplicateRecord):
			h.recordAlreadyExistsResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusCreated, envelope{"genre": genre}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
