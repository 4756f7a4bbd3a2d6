package v1

import (
	"net/http"
	"strings"
)

// TokenFromRequest достаёт сырой токен из Authorization: Bearer.
func TokenFromRequest(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
