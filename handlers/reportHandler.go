package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"MediTrack/middlewares"
	"MediTrack/reports"
)

const csvContentType = "text/csv; charset=utf-8"

// ReportListing is one page of a report.
type ReportListing[T any] struct {
	Filter reports.Filter `json:"filter"`
	Total  int            `json:"total"`
	Rows   []T            `json:"rows"`
}

type ReportHandler struct {
	engine  *reports.Engine
	metrics *middlewares.Metrics
}

func NewReportHandler(engine *reports.Engine, metrics *middlewares.Metrics) *ReportHandler {
	return &ReportHandler{engine: engine, metrics: metrics}
}

func (h *ReportHandler) filter(c *gin.Context) reports.Filter {
	return reports.ParseFilter(c.Request.URL.Query(), h.engine.Config())
}

func (h *ReportHandler) Hypertension(c *gin.Context) {
	f := h.filter(c)
	rows, err := h.engine.Hypertension(c.Request.Context(), f)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	h.count("hypertension", "json")
	respondListing(c, f, rows)
}

func (h *ReportHandler) HypertensionCSV(c *gin.Context) {
	f := h.filter(c)
	rows, err := h.engine.Hypertension(c.Request.Context(), f)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	var buf bytes.Buffer
	if err := reports.WriteHypertensionCSV(&buf, rows); err != nil {
		middlewares.HttpError(c, err)
		return
	}
	h.count("hypertension", "csv")
	respondCSV(c, reports.HypertensionFilename, buf.Bytes())
}

func (h *ReportHandler) Glycemia(c *gin.Context) {
	f := h.filter(c)
	rows, err := h.engine.Glycemia(c.Request.Context(), f)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	h.count("glycemia", "json")
	respondListing(c, f, rows)
}

func (h *ReportHandler) GlycemiaCSV(c *gin.Context) {
	f := h.filter(c)
	rows, err := h.engine.Glycemia(c.Request.Context(), f)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	var buf bytes.Buffer
	if err := reports.WriteGlycemiaCSV(&buf, rows); err != nil {
		middlewares.HttpError(c, err)
		return
	}
	h.count("glycemia", "csv")
	respondCSV(c, reports.GlycemiaFilename, buf.Bytes())
}

func (h *ReportHandler) Overdue(c *gin.Context) {
	f := h.filter(c)
	rows, err := h.engine.Overdue(c.Request.Context(), f)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	h.count("overdue", "json")
	respondListing(c, f, rows)
}

func (h *ReportHandler) OverdueCSV(c *gin.Context) {
	f := h.filter(c)
	rows, err := h.engine.Overdue(c.Request.Context(), f)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	var buf bytes.Buffer
	if err := reports.WriteOverdueCSV(&buf, rows); err != nil {
		middlewares.HttpError(c, err)
		return
	}
	h.count("overdue", "csv")
	respondCSV(c, reports.OverdueFilename(f.Days), buf.Bytes())
}

func (h *ReportHandler) Dashboard(c *gin.Context) {
	summary, err := h.engine.Dashboard(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	h.count("dashboard", "json")
	c.JSON(http.StatusOK, summary)
}

func (h *ReportHandler) count(report, format string) {
	if h.metrics != nil {
		h.metrics.ReportGenerated(report, format)
	}
}

func respondListing[T any](c *gin.Context, f reports.Filter, rows []T) {
	c.JSON(http.StatusOK, ReportListing[T]{
		Filter: f,
		Total:  len(rows),
		Rows:   reports.Paginate(rows, f.Page, f.PerPage),
	})
}

func respondCSV(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, csvContentType, data)
}
