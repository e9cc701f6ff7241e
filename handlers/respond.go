package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aarsh-studio/portfolio-backend/models"
)

// listResponse is the stable envelope for all list operations.
type listResponse struct {
	Items interface{} `json:"items"`
	Count int         `json:"count"`
}

type errorResponse struct {
	Kind  models.Kind `json:"kind"`
	Error string      `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps a service error to its transport status. Internal causes
// never reach the response body.
func writeError(w http.ResponseWriter, err error) {
	kind := models.KindOf(err)
	message := "internal server error"
	var e *models.Error
	if errors.As(err, &e) && kind != models.KindInternal {
		message = e.Message
	}
	writeJSON(w, statusForKind(kind), errorResponse{Kind: kind, Error: message})
}

func statusForKind(kind models.Kind) int {
	switch kind {
	case models.KindConflict:
		return http.StatusConflict
	case models.KindInvalidCredentials, models.KindUnauthenticated:
		return http.StatusUnauthorized
	case models.KindNotApproved, models.KindForbidden:
		return http.StatusForbidden
	case models.KindNotFound:
		return http.StatusNotFound
	case models.KindInvalidInput, models.KindInvalidFile,
		models.KindAlreadyApproved, models.KindInvalidState,
		models.KindLastSuperAdmin, models.KindSelfDeletion:
		return http.StatusBadRequest
	case models.KindUploadFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
