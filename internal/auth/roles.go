package auth

import (
	"context"
	"fmt"
)

// Role - роль подтверждённого пользователя. Набор ролей закрыт.
type Role string

const (
	Admin   Role = "admin"
	Staff   Role = "staff"
	Shipper Role = "shipper"
)

// ParseRole проверяет, что строка является одной из известных ролей.
func ParseRole(s string) (Role, error) {
	switch role := Role(s); role {
	case Admin, Staff, Shipper:
		return role, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Principal - подтверждённый пользователь, от имени которого выполняется запрос.
type Principal struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

type principalKey struct{}

// WithPrincipal кладёт пользователя в контекст запроса.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom достаёт пользователя из контекста запроса.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
