package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"MediTrack/middlewares"
	"MediTrack/models"
	"MediTrack/services"
)

type RecordHandler struct {
	service *services.RecordService
}

func NewRecordHandler(service *services.RecordService) *RecordHandler {
	return &RecordHandler{service: service}
}

func (h *RecordHandler) CreateVital(c *gin.Context) {
	id, ok := patientID(c)
	if !ok {
		return
	}
	var in models.VitalInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	vital, err := h.service.AddVital(c.Request.Context(), id, in)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	c.JSON(http.StatusCreated, vital)
}

func (h *RecordHandler) ListVitals(c *gin.Context) {
	id, ok := patientID(c)
	if !ok {
		return
	}
	vitals, err := h.service.Vitals(c.Request.Context(), id)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	c.JSON(http.StatusOK, vitals)
}

func (h *RecordHandler) CreateLab(c *gin.Context) {
	id, ok := patientID(c)
	if !ok {
		return
	}
	var in models.LabInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	lab, err := h.service.AddLab(c.Request.Context(), id, in)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lab)
}

func (h *RecordHandler) ListLabs(c *gin.Context) {
	id, ok := patientID(c)
	if !ok {
		return
	}
	labs, err := h.service.Labs(c.Request.Context(), id)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	c.JSON(http.StatusOK, labs)
}
