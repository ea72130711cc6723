package middleware

import (
	"encoding/json"
	"net/http"
	"strings"
)

// BearerToken extrai o token do header Authorization. Vazio = sem sessão.
func BearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireSession barra escrita sem token ANTES de qualquer chamada à API
// upstream. O front trata esse 401 como pedido de re-login.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if BearerToken(r) == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{
				"error":   "reauth_required",
				"message": "Sessão expirada ou ausente. Faça login novamente.",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
