package event

import (
	"github.com/gin-gonic/gin"
)

type AuthenticationMiddleware interface {
	TokenAuthentication(context *gin.Context)
}

func Routes(r *gin.RouterGroup, authenticationMiddleware AuthenticationMiddleware, handler Handler) {
	r.PUT("/event", handler.CreateEvent)

	tokenAuthenticationRouter := r.Group("")
	tokenAuthenticationRouter.Use(authenticationMiddleware.TokenAuthentication)

	tokenAuthenticationRouter.GET("/event", handler.GetEvent)
	tokenAuthenticationRouter.PUT("/bill", handler.CreateBill)
	tokenAuthenticationRouter.PUT("/user", handler.CreateUser)
	tokenAuthenticationRouter.POST("/user", handler.UpdateUser)
	tokenAuthenticationRouter.POST("/pay/:billId", handler.PayBill)
	tokenAuthenticationRouter.PUT("/pay/:billId", handler.VerifyPayment)
}
