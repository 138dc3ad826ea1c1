package middleware

import (
	"net/http"

	"github.com/72tommy72/HRMate/internal/httputil"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	httputil.WriteJSON(w, status, data)
}
