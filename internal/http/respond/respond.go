package respond

import (
	"encoding/json"
	"log"
	"net/http"
)

// Body is the flat JSON body shared by every endpoint. Each response carries
// a "success" flag and a "message", plus endpoint-specific keys.
type Body map[string]any

// Success writes a successful response, merging extra keys into the envelope.
func Success(w http.ResponseWriter, status int, message string, extra Body) {
	body := Body{"success": true, "message": message}
	for key, value := range extra {
		body[key] = value
	}
	write(w, status, body)
}

// Error writes a failed response with the shared envelope structure.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, Body{"success": false, "message": message})
}

func write(w http.ResponseWriter, status int, body Body) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("respond: encode payload failed: %v", err)
	}
}
