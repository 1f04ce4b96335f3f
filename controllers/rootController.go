package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"MediTrack/handlers"
)

// SetupRootRoute registers the operational endpoints, which need no token.
func SetupRootRoute(router *gin.Engine, checks map[string]handlers.Pinger, metrics http.Handler) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": "meditrack"})
	})
	router.GET("/healthz", handlers.Healthz(checks))
	router.GET("/metrics", gin.WrapH(metrics))
}
