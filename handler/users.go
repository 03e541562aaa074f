package handler

import (
	"errors"
	"net/http"

	"athenaeum/data/dto"
	"athenaeum/service"
)

func (h *Handler) registerUserHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.RegisterUserRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	user, err := h.service.RegisterUser(requestBody.Name, requestBody.Email, requestBody.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusCreated, envelope{"user": user}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) activateUserHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.ActivateUserRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	user, err := h.service.ActivateUser(requestBody.TokenPlaintext)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrEditConflict):
			h.editConflictResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"user": user}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) resetUserPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.ResetUserPasswordRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	err = h.service.ResetUserPassword(requestBody.Password, requestBody.TokenPlaintext)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrEditConflict):
			h.editConflictResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"message": "your password was successfully reset"}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// showAccountHandler returns the authenticated user's profile together with
// their active loans and wishlist.
func (h *Handler) showAccountHandler(w http.ResponseWriter, r *http.Request) {
	user := h.contextGetUser(r)
	profile, loans, wishlist, err := h.service.GetAccount(user.ID)
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
		"user":     profile,
		"loans":    loans,
		"wishlist": wishlist,
	}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
