package server

import (
	"net/http"

	"github.com/google/uuid"
)

const sessionCookie = "session_id"

// SessionID returns the caller's cart session, minting a cookie on first
// contact. The id is opaque; the cart store keys off it.
func SessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
