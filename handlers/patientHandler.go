package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"MediTrack/middlewares"
	"MediTrack/models"
	"MediTrack/repositories"
	"MediTrack/services"
)

type PatientHandler struct {
	service *services.PatientService
}

func NewPatientHandler(service *services.PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var in models.PatientInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	patient, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	c.JSON(http.StatusCreated, patient)
}

// GetPatient returns the patient detail with history and chart series.
func (h *PatientHandler) GetPatient(c *gin.Context) {
	id, ok := patientID(c)
	if !ok {
		return
	}
	detail, err := h.service.Detail(c.Request.Context(), id)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *PatientHandler) ListPatients(c *gin.Context) {
	patients, err := h.service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"patients": patients, "total": len(patients)})
}

func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	id, ok := patientID(c)
	if !ok {
		return
	}
	var in models.PatientInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	patient, err := h.service.Update(c.Request.Context(), id, in)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	c.JSON(http.StatusOK, patient)
}

// DeletePatient removes the patient together with its measurements.
func (h *PatientHandler) DeletePatient(c *gin.Context) {
	id, ok := patientID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		middlewares.HttpError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// patientID parses the :patient_id path parameter. A malformed id cannot
// name an existing patient, so it is answered with 404.
func patientID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("patient_id"), 10, 64)
	if err != nil || id == 0 {
		middlewares.HttpError(c, repositories.ErrPatientNotFound)
		return 0, false
	}
	return uint(id), true
}
