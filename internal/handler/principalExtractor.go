package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/evenup-app/evenup/pkg/model"
)

const principalContextKey = "principal"

// SetPrincipalOnContext stores the verified principal for downstream
// handlers. Only the authentication middleware should call this.
func SetPrincipalOnContext(c *gin.Context, p model.Principal) {
	c.Set(principalContextKey, p)
}

func GetPrincipalFromContext(c *gin.Context) (model.Principal, error) {
	principalData, exists := c.Get(principalContextKey)

	if !exists {
		return model.Principal{}, errors.New("principal not found on context")
	}

	principal, ok := principalData.(model.Principal)
	if !ok {
		return model.Principal{}, errors.New("failed to parse principal data")
	}
	return principal, nil
}
