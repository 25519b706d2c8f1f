package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/autoshop/autoshop-api/internal/auth"
	"github.com/autoshop/autoshop-api/internal/domain"
	"github.com/autoshop/autoshop-api/internal/redisx"
)

type AuthHandler struct {
	Users  *auth.Repo
	Issuer auth.Issuer
	Redis  *redis.Client
	Log    *zap.Logger
}

type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResp struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type userJSON struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserJSON(u *auth.User) userJSON {
	return userJSON{ID: u.ID, Email: u.Email, FullName: u.FullName, CreatedAt: u.CreatedAt}
}

// Register wires the public auth routes; logout needs the auth middleware and
// is registered by RegisterProtected.
func (h *AuthHandler) Register(r chi.Router) {
	r.Post("/auth/register", h.register)
	r.Post("/auth/login", h.login)
}

func (h *AuthHandler) RegisterProtected(r chi.Router) {
	r.Post("/auth/logout", h.logout)
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errBody("invalid json"))
		return
	}
	if err := auth.ValidateEmail(req.Email); err != nil {
		writeError(w, h.Log, err)
		return
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		writeError(w, h.Log, err)
		return
	}
	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	u := &auth.User{
		ID:             uuid.NewString(),
		Email:          req.Email,
		HashedPassword: hashed,
		FullName:       req.FullName,
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
	}
	if err := h.Users.Create(r.Context(), u); err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserJSON(u))
}

// parseLoginReq accepts either an OAuth2-style password form (the username
// field carries the email) or a JSON body.
func parseLoginReq(r *http.Request) (loginReq, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			return loginReq{}, err
		}
		email := r.PostFormValue("username")
		if email == "" {
			email = r.PostFormValue("email")
		}
		return loginReq{Email: email, Password: r.PostFormValue("password")}, nil
	}
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return loginReq{}, err
	}
	return req, nil
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	req, err := parseLoginReq(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errBody("invalid credentials payload"))
		return
	}
	u, err := h.Users.GetByEmail(r.Context(), req.Email)
	if errors.Is(err, domain.ErrNotFound) || (err == nil && !auth.CheckPassword(req.Password, u.HashedPassword)) {
		writeJSON(w, http.StatusUnauthorized, errBody("Incorrect email or password"))
		return
	}
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	token, err := h.Issuer.Issue(u.ID)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResp{AccessToken: token, TokenType: "bearer"})
}

// logout denylists the presented token for the rest of its lifetime.
func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	raw := bearerToken(r.Context())
	if d := h.Issuer.Remaining(raw); d > 0 {
		key := fmt.Sprintf(redisx.KeyRevokedToken, redisx.TokenDigest(raw))
		if err := h.Redis.Set(r.Context(), key, "1", d).Err(); err != nil {
			h.Log.Warn("token revocation write failed", zap.Error(err))
		}
	}
	w.WriteHeader(http.StatusNoContent)
}
