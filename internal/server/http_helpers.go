package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
)

func itoa(value int) string {
	return strconv.Itoa(value)
}

func readJSON(body io.Reader, dest any) error {
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}

// writeMatchError maps the match error taxonomy onto HTTP statuses:
// configuration problems are 422, forbidden transitions 409, bad input
// 400, unknown ids 404.
func writeMatchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errInvalidTransition):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, errConfiguration):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, errInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, errGameNotFound), errors.Is(err, errSessionNotFound), errors.Is(err, errMatchNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
