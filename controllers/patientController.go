package controllers

import (
	"github.com/gin-gonic/gin"

	"MediTrack/authz"
	"MediTrack/handlers"
	"MediTrack/middlewares"
)

// SetupPatientRoutes registers patient and measurement routes. Every route
// requires a token; writes are additionally checked against the role policy.
func SetupPatientRoutes(router *gin.Engine, authenticate gin.HandlerFunc, authorizer *authz.Authorizer, patientHandler *handlers.PatientHandler, recordHandler *handlers.RecordHandler) {
	can := func(obj, act string) gin.HandlerFunc {
		return middlewares.Authorize(authorizer, obj, act)
	}

	patients := router.Group("/patients", authenticate)
	{
		patients.GET("", can(authz.ResourcePatient, authz.ActionRead), patientHandler.ListPatients)
		patients.POST("", can(authz.ResourcePatient, authz.ActionCreate), patientHandler.CreatePatient)
		patients.GET("/:patient_id", can(authz.ResourcePatient, authz.ActionRead), patientHandler.GetPatient)
		patients.PUT("/:patient_id", can(authz.ResourcePatient, authz.ActionUpdate), patientHandler.UpdatePatient)
		patients.DELETE("/:patient_id", can(authz.ResourcePatient, authz.ActionDelete), patientHandler.DeletePatient)

		patients.GET("/:patient_id/vitals", can(authz.ResourceVital, authz.ActionRead), recordHandler.ListVitals)
		patients.POST("/:patient_id/vitals", can(authz.ResourceVital, authz.ActionCreate), recordHandler.CreateVital)
		patients.GET("/:patient_id/labs", can(authz.ResourceLab, authz.ActionRead), recordHandler.ListLabs)
		patients.POST("/:patient_id/labs", can(authz.ResourceLab, authz.ActionCreate), recordHandler.CreateLab)
	}
}
