package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/evenup-app/evenup/internal/errdef"
	"github.com/evenup-app/evenup/internal/handler"
	"github.com/evenup-app/evenup/pkg/model"
)

func NewAuthentication(tokens tokenVerifier) AuthenticationMiddleware {
	return AuthenticationMiddleware{tokens: tokens}
}

type tokenVerifier interface {
	Verify(signed string) (model.Principal, error)
}

type AuthenticationMiddleware struct {
	tokens tokenVerifier
}

// TokenAuthentication verifies the bearer token and puts the decoded
// principal on both the gin context and the request context. The token is
// the entire authorization; there is no further ownership check.
func (m AuthenticationMiddleware) TokenAuthentication(c *gin.Context) {
	signed, err := handler.GetTokenFromHttpAuthHeader(c)
	if err != nil {
		_ = c.Error(errdef.NewUnauthorized("invalid or missing token"))
		c.Abort()
		return
	}

	principal, err := m.tokens.Verify(signed)
	if err != nil {
		_ = c.Error(errdef.NewUnauthorized("invalid or missing token"))
		c.Abort()
		return
	}

	// Extra precaution to ensure that no errors has occurred, and it's safe to call c.Next()
	if len(c.Errors.Errors()) > 0 {
		c.Abort()
		return
	}

	handler.SetPrincipalOnContext(c, principal)
	c.Request = c.Request.WithContext(model.NewContextWithPrincipal(c.Request.Context(), principal))
	c.Next()
}
