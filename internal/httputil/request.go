package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// maxJSONBodySize bounds JSON request bodies. File uploads go through
// multipart and carry their own limit.
const maxJSONBodySize = 1 << 20 // 1MB

// ParseJSON decodes JSON from the request body into the given destination.
// It limits the request body size to prevent abuse and provides clear error messages.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodySize)

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}
