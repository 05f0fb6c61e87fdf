package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vinculodevida/lactario/internal/domain/infant"
	"github.com/vinculodevida/lactario/internal/domain/mother"
	"github.com/vinculodevida/lactario/internal/handler/middleware"
	"github.com/vinculodevida/lactario/internal/service"
)

// InfantHandler serves infant registration and management. The field
// names mirror the intake forms the unit already uses.
type InfantHandler struct {
	registration *service.RegistrationService
	log          *zap.Logger
}

func NewInfantHandler(registration *service.RegistrationService, log *zap.Logger) *InfantHandler {
	return &InfantHandler{registration: registration, log: log}
}

type registerInfantRequest struct {
	PaternalSurname string   `json:"apellido_paterno_lactante" form:"apellido_paterno_lactante"`
	MaternalSurname string   `json:"apellido_materno_lactante" form:"apellido_materno_lactante"`
	BirthDate       string   `json:"fecha_nacimiento_lactante" form:"fecha_nacimiento_lactante"`
	Gender          string   `json:"genero_lactante" form:"genero_lactante"`
	AreaName        string   `json:"area_lactante" form:"area_lactante"`
	Disability      string   `json:"discapacidad_lactante" form:"discapacidad_lactante"`
	Weight          *float64 `json:"peso_lactante" form:"peso_lactante"`

	MotherName            string `json:"nombre_madre" form:"nombre_madre"`
	MotherPaternalSurname string `json:"apellido_paterno_madre" form:"apellido_paterno_madre"`
	MotherMaternalSurname string `json:"apellido_materno_madre" form:"apellido_materno_madre"`
	MotherDisability      string `json:"discapacidad_madre" form:"discapacidad_madre"`
}

type updateInfantRequest struct {
	PaternalSurname string   `json:"apellido_paterno" form:"apellido_paterno"`
	MaternalSurname string   `json:"apellido_materno" form:"apellido_materno"`
	BirthDate       string   `json:"fecha_nacimiento" form:"fecha_nacimiento"`
	Gender          string   `json:"genero" form:"genero"`
	Status          string   `json:"estado" form:"estado"`
	Disability      string   `json:"discapacidad" form:"discapacidad"`
	Weight          *float64 `json:"peso" form:"peso"`
	AreaName        string   `json:"area_nombre" form:"area_nombre"`

	MotherName            string `json:"nombre_madre" form:"nombre_madre"`
	MotherPaternalSurname string `json:"apellido_paterno_madre" form:"apellido_paterno_madre"`
	MotherMaternalSurname string `json:"apellido_materno_madre" form:"apellido_materno_madre"`
	MotherDisability      string `json:"discapacidad_madre" form:"discapacidad_madre"`
}

// RegistrationForm returns the catalogs the intake form is built from.
func (h *InfantHandler) RegistrationForm(c *gin.Context) {
	areas, err := h.registration.ListAreas(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	reasons, err := h.registration.ListReasons(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"areas": areas, "motivos": reasons})
}

func (h *InfantHandler) Register(c *gin.Context) {
	var req registerInfantRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	cmd := &infant.RegisterCommand{
		PaternalSurname:       req.PaternalSurname,
		MaternalSurname:       req.MaternalSurname,
		BirthDate:             req.BirthDate,
		Gender:                req.Gender,
		AreaName:              req.AreaName,
		Disability:            req.Disability,
		Weight:                req.Weight,
		MotherName:            req.MotherName,
		MotherPaternalSurname: req.MotherPaternalSurname,
		MotherMaternalSurname: req.MotherMaternalSurname,
		MotherDisability:      req.MotherDisability,
	}

	created, err := h.registration.RegisterInfant(
		c.Request.Context(), cmd, middleware.ClaimsFrom(c), middleware.RequestIDFrom(c))
	if err != nil {
		h.respondFormError(c, err)
		return
	}

	respondCreated(c, created)
}

// respondFormError re-includes the area catalog and the submitted values
// so the client can re-render the intake form.
func (h *InfantHandler) respondFormError(c *gin.Context, err error) {
	areas, aerr := h.registration.ListAreas(c.Request.Context())
	if aerr != nil {
		h.log.Warn("failed to reload areas for form error", zap.Error(aerr))
	}

	status := http.StatusBadRequest
	var validErr *service.ValidationError
	var refErr *service.ReferenceError
	switch {
	case errors.As(err, &validErr):
		c.JSON(status, gin.H{
			"error":  "validation failed",
			"fields": validErr.Fields,
			"areas":  areas,
		})
	case errors.As(err, &refErr):
		c.JSON(status, gin.H{"error": refErr.Error(), "areas": areas})
	default:
		respondServiceError(c, err)
	}
}

func (h *InfantHandler) List(c *gin.Context) {
	infants, err := h.registration.ListInfants(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	areas, err := h.registration.ListAreas(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"lactantes": infants, "areas": areas})
}

func (h *InfantHandler) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	found, err := h.registration.GetInfant(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	areas, err := h.registration.ListAreas(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"lactante": found, "areas": areas})
}

func (h *InfantHandler) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req updateInfantRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	cmd := &infant.UpdateCommand{
		PaternalSurname: req.PaternalSurname,
		MaternalSurname: req.MaternalSurname,
		BirthDate:       req.BirthDate,
		Gender:          req.Gender,
		Status:          req.Status,
		Disability:      req.Disability,
		Weight:          req.Weight,
		AreaName:        req.AreaName,
	}
	if req.MotherName != "" || req.MotherPaternalSurname != "" ||
		req.MotherMaternalSurname != "" || req.MotherDisability != "" {
		cmd.Mother = &mother.UpdateMotherCommand{
			Name:            req.MotherName,
			PaternalSurname: req.MotherPaternalSurname,
			MaternalSurname: req.MotherMaternalSurname,
			Disability:      req.MotherDisability,
		}
	}

	updated, err := h.registration.UpdateInfant(
		c.Request.Context(), id, cmd, middleware.ClaimsFrom(c), middleware.RequestIDFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, updated)
}

func (h *InfantHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	err := h.registration.DeleteInfant(
		c.Request.Context(), id, middleware.ClaimsFrom(c), middleware.RequestIDFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"deleted": id})
}

type growthCheckRequest struct {
	InfantID     uint     `json:"id_lactante" form:"id_lactante"`
	Weight       *float64 `json:"peso" form:"peso"`
	Height       *float64 `json:"talla" form:"talla"`
	AgeMonths    *int     `json:"edad_meses" form:"edad_meses"`
	GeneralState string   `json:"estado_general" form:"estado_general"`
	Observations string   `json:"observaciones" form:"observaciones"`
}

func (h *InfantHandler) RecordGrowthCheck(c *gin.Context) {
	var req growthCheckRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	cmd := &infant.CreateGrowthCheckCommand{
		InfantID:     req.InfantID,
		Weight:       req.Weight,
		Height:       req.Height,
		AgeMonths:    req.AgeMonths,
		GeneralState: req.GeneralState,
		Observations: req.Observations,
	}

	created, err := h.registration.RecordGrowthCheck(
		c.Request.Context(), cmd, middleware.ClaimsFrom(c), middleware.RequestIDFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, created)
}

func (h *InfantHandler) GrowthHistory(c *gin.Context) {
	id, ok := parseUintParam(c, "id_lactante")
	if !ok {
		return
	}

	checks, err := h.registration.GrowthHistory(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, checks)
}
