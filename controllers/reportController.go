package controllers

import (
	"github.com/gin-gonic/gin"

	"MediTrack/authz"
	"MediTrack/handlers"
	"MediTrack/middlewares"
)

// SetupReportRoutes registers the report listings, their CSV exports and the dashboard.
func SetupReportRoutes(router *gin.Engine, authenticate gin.HandlerFunc, authorizer *authz.Authorizer, h *handlers.ReportHandler) {
	read := middlewares.Authorize(authorizer, authz.ResourceReport, authz.ActionRead)
	export := middlewares.Authorize(authorizer, authz.ResourceReport, authz.ActionExport)

	group := router.Group("/reports", authenticate)
	{
		group.GET("/hypertension", read, h.Hypertension)
		group.GET("/hypertension.csv", export, h.HypertensionCSV)
		group.GET("/glycemia", read, h.Glycemia)
		group.GET("/glycemia.csv", export, h.GlycemiaCSV)
		group.GET("/overdue", read, h.Overdue)
		group.GET("/overdue.csv", export, h.OverdueCSV)
	}

	router.GET("/dashboard", authenticate, middlewares.Authorize(authorizer, authz.ResourceDashboard, authz.ActionRead), h.Dashboard)
}
