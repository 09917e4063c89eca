package mockapi

import (
	"encoding/json"
	"net/http"
)

// The mock speaks the same plain JSON the production Taskbench backend does:
// bare payloads on success, a {"detail": ...} object on error. No envelope.

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func badRequest(w http.ResponseWriter, detail string) {
	writeError(w, http.StatusBadRequest, detail)
}

func unauthorized(w http.ResponseWriter, detail string) {
	writeError(w, http.StatusUnauthorized, detail)
}

func notFound(w http.ResponseWriter, detail string) {
	writeError(w, http.StatusNotFound, detail)
}

func noContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
