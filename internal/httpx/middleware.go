package httpx

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/autoshop/autoshop-api/internal/auth"
	"github.com/autoshop/autoshop-api/internal/redisx"
)

type ctxKey int

const (
	ctxUserID ctxKey = iota
	ctxToken
)

// UserID returns the authenticated user id set by Auth.Require, "" otherwise.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(ctxUserID).(string)
	return id
}

// bearerToken returns the raw token of the current request (for logout).
func bearerToken(ctx context.Context) string {
	t, _ := ctx.Value(ctxToken).(string)
	return t
}

// Auth guards routes behind a valid, non-revoked bearer token.
type Auth struct {
	Issuer auth.Issuer
	Redis  *redis.Client
}

func (a *Auth) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if raw == "" || raw == r.Header.Get("Authorization") {
			writeJSON(w, http.StatusUnauthorized, errBody("missing bearer token"))
			return
		}
		userID, err := a.Issuer.Parse(raw)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errBody(auth.ErrInvalidToken.Error()))
			return
		}
		revoked, err := redisx.Exists(r.Context(), a.Redis,
			fmt.Sprintf(redisx.KeyRevokedToken, redisx.TokenDigest(raw)))
		if err == nil && revoked {
			writeJSON(w, http.StatusUnauthorized, errBody(auth.ErrInvalidToken.Error()))
			return
		}

		ctx := context.WithValue(r.Context(), ctxUserID, userID)
		ctx = context.WithValue(ctx, ctxToken, raw)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
