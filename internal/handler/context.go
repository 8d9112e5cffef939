package handler

import (
	"fmt"
	"net/http"

	"atrium/internal/httputil"
)

// getUserID extracts the authenticated user ID from the request context
func getUserID(r *http.Request) (string, error) {
	userID := httputil.GetUserID(r)
	if userID == "" {
		return "", fmt.Errorf("user ID not found in context")
	}
	return userID, nil
}
