package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func GetObjectIDPathParameter(c *gin.Context, parameter string) (primitive.ObjectID, bool) {
	idParam := c.Param(parameter)
	id, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return primitive.NilObjectID, false
	}
	return id, true
}
