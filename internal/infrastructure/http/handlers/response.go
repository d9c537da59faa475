package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
)

// writeErr sends JSON { "error": message, "code": code } with a stable code
// derived from the HTTP status.
func writeErr(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": errCodeFor(status)})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDomainErr maps sentinel domain errors to their HTTP status. Anything
// unrecognized is logged and collapsed to a 500.
func writeDomainErr(log zerolog.Logger, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domerrors.ErrInvalidCredentials),
		errors.Is(err, domerrors.ErrInvalidToken):
		writeErr(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domerrors.ErrEmailTaken):
		writeErr(w, http.StatusConflict, err.Error())
	case errors.Is(err, domerrors.ErrUserNotFound),
		errors.Is(err, domerrors.ErrProjectNotFound),
		errors.Is(err, domerrors.ErrTaskNotFound):
		writeErr(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domerrors.ErrInvalidReference):
		writeErr(w, http.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Msg("unhandled error")
		writeErr(w, http.StatusInternalServerError, "internal error")
	}
}
