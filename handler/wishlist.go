package handler

import (
	"errors"
	"net/http"

	"athenaeum/service"
)

func (h *Handler) toggleWishlistHandler(w http.ResponseWriter, r *http.Request) {
	isbn := h.readStringParam(r, "isbn")
	user := h.contextGetUser(r)
	wished, err := h.service.ToggleWishlist(user.ID, isbn)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"wished": wished}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
