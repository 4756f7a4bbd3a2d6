package mw

import (
	"context"
	"net/http"
	"strings"

	"github.com/EgorLis/med-vault/internal/domain"
)

const userKey ctxKey = "auth_user_id"

type AuthDeps struct {
	Tokens    domain.TokenManager
	Blacklist domain.TokenBlacklist
}

// RequireAuth проверяет Bearer-токен и кладёт в контекст проверенный UserID.
// Обработчики никогда не берут владельца из тела запроса — только отсюда.
func RequireAuth(deps AuthDeps, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := extractBearer(r.Header.Get("Authorization"))
		if raw == "" {
			writeUnauth(w)
			return
		}
		claims, err := deps.Tokens.Parse(r.Context(), domain.Token(raw))
		if err != nil {
			writeUnauth(w)
			return
		}
		if revoked, _ := deps.Blacklist.IsRevoked(r.Context(), claims.JTI); revoked {
			writeUnauth(w)
			return
		}
		ctx := context.WithValue(r.Context(), userKey, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func UserIDFromCtx(ctx context.Context) (domain.UserID, bool) {
	id, ok := ctx.Value(userKey).(domain.UserID)
	return id, ok
}

func writeUnauth(w http.ResponseWriter) {
	http.Error(w, `{"error":{"code":1001,"text":"unauthorized"}}`, http.StatusUnauthorized)
}

func extractBearer(h string) string {
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
