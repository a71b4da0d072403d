package handler

import (
	"net/http"
	"time"
)

// ServerName identifies this service in health responses.
const ServerName = "weeklist-webserver"

// HandleHealth reports the server name and its current time.
// GET /health
func HandleHealth(now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"serverName":  ServerName,
			"currentTime": now().UTC().Format(time.RFC3339),
			"status":      "active",
		})
	}
}
