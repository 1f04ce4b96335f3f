package controllers

import (
	"github.com/gin-gonic/gin"

	"MediTrack/handlers"
)

type AuthController struct {
	Handler      *handlers.AuthHandler
	Authenticate gin.HandlerFunc
}

// NewAuthController creates a new AuthController with the given AuthHandler
func NewAuthController(authHandler *handlers.AuthHandler, authenticate gin.HandlerFunc) *AuthController {
	return &AuthController{Handler: authHandler, Authenticate: authenticate}
}

// RegisterRoutes initializes all authentication routes directly on the router
func (ac *AuthController) RegisterRoutes(router *gin.Engine) {
	router.POST("/auth/login", ac.Handler.Login)

	authGroup := router.Group("/auth").Use(ac.Authenticate)
	{
		authGroup.GET("/me", ac.Handler.Me)
	}
}
