package auth

import (
	"net/http"
	"strings"

	"github.com/senyabanana/freight-service/internal/models"
	"github.com/senyabanana/freight-service/internal/utils"
)

// Authenticate требует заголовок "Authorization: Bearer <token>" и кладёт пользователя в контекст.
func Authenticate(verifier *TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenString == "" {
				utils.SendErrorResponse(w, r, models.NewErrorResponse(models.UnauthorizedKind, "no token provided"))
				return
			}

			principal, err := verifier.Verify(tokenString)
			if err != nil {
				utils.SendErrorResponse(w, r, models.NewErrorResponse(models.UnauthorizedKind, ErrInvalidToken.Error()))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

// Require пропускает запрос, только если роль пользователя допускает операцию.
func Require(perm Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFrom(r.Context())
			if !ok {
				utils.SendErrorResponse(w, r, models.NewErrorResponse(models.UnauthorizedKind, "no token provided"))
				return
			}
			if !Allowed(principal.Role, perm) {
				utils.SendErrorResponse(w, r, models.NewErrorResponse(models.ForbiddenKind, "role "+string(principal.Role)+" is not allowed to perform this action"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
