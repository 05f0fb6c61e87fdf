package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vinculodevida/lactario/internal/domain/visit"
	"github.com/vinculodevida/lactario/internal/handler/middleware"
	"github.com/vinculodevida/lactario/internal/service"
)

type VisitHandler struct {
	visits       *service.VisitService
	registration *service.RegistrationService
	log          *zap.Logger
}

func NewVisitHandler(visits *service.VisitService, registration *service.RegistrationService, log *zap.Logger) *VisitHandler {
	return &VisitHandler{visits: visits, registration: registration, log: log}
}

type bookVisitRequest struct {
	InfantID      uint   `json:"id_lactante" form:"id_lactante"`
	ReasonID      *uint  `json:"motivo" form:"motivo"`
	VisitDate     string `json:"fecha_cita" form:"fecha_cita"`
	EntryTime     string `json:"hora_cita" form:"hora_cita"`
	FollowUp      string `json:"subsecuente" form:"subsecuente"`
	Justification string `json:"justificacion" form:"justificacion"`
}

type updateVisitRequest struct {
	ReasonID      uint   `json:"id_motivo" form:"id_motivo"`
	VisitDate     string `json:"fecha_cita" form:"fecha_cita"`
	EntryTime     string `json:"hora_de_entrada" form:"hora_de_entrada"`
	FollowUp      *bool  `json:"subsecuente" form:"subsecuente"`
	Justification string `json:"justificacion" form:"justificacion"`
}

// BookingForm returns the selector data the booking form is built from.
// An id_madre query narrows the infant list to that mother's children.
func (h *VisitHandler) BookingForm(c *gin.Context) {
	ctx := c.Request.Context()

	var motherID uint
	if raw := c.Query("id_madre"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid id_madre: must be a positive integer")
			return
		}
		motherID = uint(parsed)
	}

	mothers, err := h.registration.ListMothers(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	infants, err := h.registration.InfantRefs(ctx, motherID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	reasons, err := h.registration.ListReasons(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	payload := gin.H{"madres": mothers, "lactantes": infants, "motivos": reasons}
	if claims := middleware.ClaimsFrom(c); claims != nil {
		payload["encargado"] = gin.H{"id_usuario": claims.UserID, "nombre": claims.Name}
	}
	respondOK(c, payload)
}

func (h *VisitHandler) Book(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	var req bookVisitRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	cmd := &visit.BookCommand{
		InfantID:      req.InfantID,
		ReasonID:      req.ReasonID,
		VisitDate:     req.VisitDate,
		EntryTime:     req.EntryTime,
		FollowUp:      checkboxOn(req.FollowUp),
		Justification: req.Justification,
		AttendedBy:    claims.UserID,
	}

	created, err := h.visits.BookVisit(c.Request.Context(), cmd, claims, middleware.RequestIDFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, created)
}

func (h *VisitHandler) List(c *gin.Context) {
	visits, err := h.visits.ListVisits(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, visits)
}

func (h *VisitHandler) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req updateVisitRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	cmd := &visit.UpdateCommand{
		ReasonID:      req.ReasonID,
		VisitDate:     req.VisitDate,
		EntryTime:     req.EntryTime,
		FollowUp:      req.FollowUp,
		Justification: req.Justification,
	}

	updated, err := h.visits.UpdateVisit(
		c.Request.Context(), id, cmd, middleware.ClaimsFrom(c), middleware.RequestIDFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, updated)
}

func (h *VisitHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	err := h.visits.DeleteVisit(
		c.Request.Context(), id, middleware.ClaimsFrom(c), middleware.RequestIDFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"deleted": id})
}

// checkboxOn coerces HTML checkbox submissions, where a ticked box
// arrives as "on", alongside the usual boolean spellings.
func checkboxOn(v string) bool {
	switch v {
	case "on", "1", "true":
		return true
	}
	return false
}
