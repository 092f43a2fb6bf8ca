package handlers

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/tiltlabs/engineer-on-demand/pkg/errors"
)

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// statusForError maps an error to an HTTP status code. Unclassified errors
// are treated as internal.
func statusForError(err error) int {
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		return http.StatusInternalServerError
	}
	switch appErr.Type {
	case apperrors.ErrorTypeNotFound:
		return http.StatusNotFound
	case apperrors.ErrorTypeValidation:
		return http.StatusBadRequest
	case apperrors.ErrorTypeConflict:
		return http.StatusConflict
	case apperrors.ErrorTypeExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondWithAppError renders an error with its mapped status. Field-tagged
// validation errors echo the offending field so clients can highlight it.
func respondWithAppError(w http.ResponseWriter, err error) {
	status := statusForError(err)

	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		respondWithError(w, status, err.Error())
		return
	}

	payload := map[string]interface{}{
		"error": appErr.Message,
	}
	if appErr.Field != "" {
		payload["field"] = appErr.Field
	}
	respondWithJSON(w, status, payload)
}
