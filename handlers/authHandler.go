package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"MediTrack/authz"
	"MediTrack/middlewares"
	"MediTrack/models"
	"MediTrack/services"
)

type AuthHandler struct {
	UserService services.UserService
}

func NewAuthHandler(userService services.UserService) *AuthHandler {
	return &AuthHandler{UserService: userService}
}

// Login exchanges a username and password for an access token.
func (h *AuthHandler) Login(c *gin.Context) {
	var credentials models.Credentials
	if err := c.ShouldBindJSON(&credentials); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.UserService.Login(c.Request.Context(), credentials)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, result, http.StatusOK)
}

// Me returns the authenticated caller.
func (h *AuthHandler) Me(c *gin.Context) {
	principal, err := middlewares.ExtractPrincipalFromContext(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, authz.Unauthenticated("authentication required"))
		return
	}

	user, err := h.UserService.GetUserByID(c.Request.Context(), principal.UserID)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	if user == nil {
		middlewares.HttpError(c, authz.Unauthenticated("account no longer exists"))
		return
	}
	middlewares.RespondJSON(c, user, http.StatusOK)
}
