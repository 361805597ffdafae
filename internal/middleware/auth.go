package middleware

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	tokenKey
)

// Authenticator разрешает токен сессии в id пользователя.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (int64, error)
}

// WithAuth читает заголовок Authorization: Bearer <token> и, если сессия открыта,
// кладёт id пользователя и токен в контекст. Запрос без сессии проходит дальше
// анонимным; решение об отказе принимает хендлер.
func WithAuth(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			userID, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				log.Debugw("auth: session not resolved", "error", err)
				next.ServeHTTP(w, r)
				return
			}
			ctx := WithUserID(r.Context(), userID)
			ctx = context.WithValue(ctx, tokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken извлекает токен из заголовка Authorization.
func BearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

// GetUserIDFromContext возвращает id пользователя, установленный WithAuth.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// GetTokenFromContext возвращает токен сессии, установленный WithAuth.
func GetTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok
}

// WithUserID кладёт id пользователя в контекст.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
