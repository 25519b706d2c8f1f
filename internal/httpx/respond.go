package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/autoshop/autoshop-api/internal/auth"
	"github.com/autoshop/autoshop-api/internal/domain"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func errBody(msg string) map[string]string { return map[string]string{"error": msg} }

// writeError maps the domain taxonomy onto HTTP. Everything in the taxonomy
// is a client error; whatever falls through is a server fault and gets logged
// with its cause hidden from the response.
func writeError(w http.ResponseWriter, log *zap.Logger, err error) {
	var ve *domain.ValidationError
	var oos *domain.OutOfStockError
	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		writeJSON(w, http.StatusBadRequest, errBody(domain.ErrEmptyCart.Error()))
	case errors.As(err, &oos):
		writeJSON(w, http.StatusBadRequest, errBody(oos.Error()))
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errBody(ve.Error()))
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errBody("Not found"))
	case errors.Is(err, auth.ErrInvalidToken):
		writeJSON(w, http.StatusUnauthorized, errBody(auth.ErrInvalidToken.Error()))
	default:
		log.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errBody("internal error"))
	}
}
