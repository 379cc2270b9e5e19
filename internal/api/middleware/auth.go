package middleware

import (
	"context"
	"net/http"
)

// Роли, передаваемые шлюзом в заголовке X-User-Role
const (
	RoleOwner      = "Owner"
	RoleOperator   = "Operator"
	RoleBackOffice = "BackOffice"
)

// Заголовки аутентификации, проставляемые API-шлюзом
const (
	headerUserRole         = "X-User-Role"
	headerOwnerNIC         = "X-Owner-NIC"
	headerOperatorUsername = "X-Operator-Username"
)

type contextKey string

const (
	roleKey             contextKey = "userRole"
	ownerNICKey         contextKey = "ownerNIC"
	operatorUsernameKey contextKey = "operatorUsername"
)

// Auth извлекает роль и идентификаторы из заголовков запроса.
// Сервис доверяет шлюзу: проверка подписи токена происходит до нас,
// сюда приходят уже проверенные заголовки.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := r.Header.Get(headerUserRole)
		if role == "" {
			http.Error(w, `{"error":"отсутствует роль пользователя"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), roleKey, role)
		if nic := r.Header.Get(headerOwnerNIC); nic != "" {
			ctx = context.WithValue(ctx, ownerNICKey, nic)
		}
		if username := r.Header.Get(headerOperatorUsername); username != "" {
			ctx = context.WithValue(ctx, operatorUsernameKey, username)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles пропускает запрос только с одной из перечисленных ролей
func RequireRoles(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRole(r.Context())
			if !ok {
				http.Error(w, `{"error":"отсутствует роль пользователя"}`, http.StatusUnauthorized)
				return
			}
			if _, ok := allowed[role]; !ok {
				http.Error(w, `{"error":"доступ запрещен"}`, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetRole возвращает роль пользователя из контекста
func GetRole(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(roleKey).(string)
	return role, ok
}

// GetOwnerNIC возвращает NIC владельца из контекста
func GetOwnerNIC(ctx context.Context) (string, bool) {
	nic, ok := ctx.Value(ownerNICKey).(string)
	return nic, ok
}

// GetOperatorUsername возвращает имя оператора из контекста
func GetOperatorUsername(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(operatorUsernameKey).(string)
	return username, ok
}
