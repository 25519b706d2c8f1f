package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/autoshop/autoshop-api/internal/auth"
)

type UsersHandler struct {
	Users *auth.Repo
	Log   *zap.Logger
}

func (h *UsersHandler) Register(r chi.Router) {
	r.Get("/users/me", h.me)
	r.Put("/users/me", h.update)
	r.Delete("/users/me", h.delete)
}

func (h *UsersHandler) me(w http.ResponseWriter, r *http.Request) {
	u, err := h.Users.GetByID(r.Context(), UserID(r.Context()))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserJSON(u))
}

type profileUpdateReq struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
}

func (h *UsersHandler) update(w http.ResponseWriter, r *http.Request) {
	var req profileUpdateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errBody("invalid json"))
		return
	}
	u, err := h.Users.GetByID(r.Context(), UserID(r.Context()))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	if req.FullName != nil {
		u.FullName = *req.FullName
	}
	if req.Email != nil {
		if err := auth.ValidateEmail(*req.Email); err != nil {
			writeError(w, h.Log, err)
			return
		}
		u.Email = *req.Email
	}
	if err := h.Users.UpdateProfile(r.Context(), u); err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserJSON(u))
}

func (h *UsersHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Users.Delete(r.Context(), UserID(r.Context())); err != nil {
		writeError(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
