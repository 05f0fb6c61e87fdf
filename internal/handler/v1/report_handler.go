package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vinculodevida/lactario/internal/handler/middleware"
	"github.com/vinculodevida/lactario/internal/service"
	"github.com/vinculodevida/lactario/pkg/export"
)

type ReportHandler struct {
	reports      *service.ReportService
	registration *service.RegistrationService
	log          *zap.Logger
}

func NewReportHandler(reports *service.ReportService, registration *service.RegistrationService, log *zap.Logger) *ReportHandler {
	return &ReportHandler{reports: reports, registration: registration, log: log}
}

type generateReportRequest struct {
	ReportType string `json:"reportType"`
}

// Generate serves the report API. The response body is the report itself,
// unwrapped, and error payloads keep the messages existing clients parse.
func (h *ReportHandler) Generate(c *gin.Context) {
	var req generateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ocurrió un error al generar el reporte."})
		return
	}

	result, err := h.reports.Generate(
		c.Request.Context(), req.ReportType, middleware.ClaimsFrom(c), middleware.RequestIDFrom(c))
	if err != nil {
		if errors.Is(err, service.ErrUnknownReportType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Tipo de reporte no válido."})
			return
		}
		h.log.Error("report generation failed", zap.String("type", req.ReportType), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ocurrió un error al generar el reporte."})
		return
	}

	c.JSON(http.StatusOK, result)
}

// DownloadGeneral streams the general report as a file attachment.
func (h *ReportHandler) DownloadGeneral(c *gin.Context) {
	format := c.Query("formato")
	if format == "" {
		format = c.PostForm("formato")
	}

	counts, err := h.reports.GeneralCounts(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	payload := export.GeneralCounts{TotalInfants: counts.TotalInfants, TotalVisits: counts.TotalVisits}

	switch format {
	case "excel":
		data, err := export.GeneralXLSX(payload)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+export.GeneralXLSXFilename+`"`)
		c.Data(http.StatusOK, export.ContentTypeXLSX, data)

	case "pdf":
		data, err := export.GeneralPDF(payload)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+export.GeneralPDFFilename+`"`)
		c.Data(http.StatusOK, export.ContentTypePDF, data)

	default:
		respondError(c, http.StatusNotFound, "Formato no soportado")
	}
}

// PerInfantForm lists the infants selectable for a per-infant report.
func (h *ReportHandler) PerInfantForm(c *gin.Context) {
	refs, err := h.registration.InfantRefs(c.Request.Context(), 0)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"lactantes": refs})
}

type perInfantRequest struct {
	InfantID uint `json:"id_lactante" form:"id_lactante"`
}

func (h *ReportHandler) PerInfant(c *gin.Context) {
	var req perInfantRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if req.InfantID == 0 {
		respondError(c, http.StatusBadRequest, "id_lactante is required")
		return
	}

	history, err := h.reports.InfantHistory(c.Request.Context(), req.InfantID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"reporte_data": history})
}
