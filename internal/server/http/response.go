package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/pressroom/news-service/internal/domain"
	"github.com/pressroom/news-service/internal/repository"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Best-effort; headers already sent.
		_ = err
	}
}

// writeError writes a JSON failure envelope. Every failure, regardless of
// layer, reaches the client as {"msg": "..."}.
func writeError(w http.ResponseWriter, statusCode int, msg string) {
	writeJSON(w, statusCode, map[string]string{"msg": msg})
}

// writeRequestError classifies a request failure and writes the response.
// Classification precedence is fixed: storage unique violations first,
// then storage invalid-text-representation errors, then classified domain
// errors carrying their own status and message, and finally an opaque 500
// for anything unrecognized. Internal error details are never leaked.
func writeRequestError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	switch {
	case repository.IsUniqueViolation(err):
		conflict := domain.NewConflictError("username already exists!")
		writeError(w, conflict.Status, conflict.Msg)
	case repository.IsInvalidTextRepresentation(err):
		writeError(w, http.StatusBadRequest, "Bad request")
	default:
		var ce *domain.ClassifiedError
		if errors.As(err, &ce) {
			writeError(w, ce.Status, ce.Msg)
			return
		}
		logger.Error().Err(err).Msg("unclassified request failure")
		writeError(w, http.StatusInternalServerError, "Internal server error !")
	}
}
