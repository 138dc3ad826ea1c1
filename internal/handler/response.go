package handler

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/72tommy72/HRMate/internal/errors"
	"github.com/72tommy72/HRMate/internal/httputil"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	httputil.WriteJSON(w, status, data)
}

func writeError(w http.ResponseWriter, err error) {
	httputil.WriteError(w, err)
}

// decodeJSON rejects bodies that are not valid JSON or carry unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return apperrors.ValidationError("Invalid JSON body").WithCause(err)
	}
	return nil
}
