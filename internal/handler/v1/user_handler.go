package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vinculodevida/lactario/internal/handler/middleware"
	"github.com/vinculodevida/lactario/internal/service"
)

type UserHandler struct {
	users *service.UserService
	log   *zap.Logger
}

func NewUserHandler(users *service.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{users: users, log: log}
}

type registerUserRequest struct {
	Name     string `json:"nombre" form:"nombre"`
	Phone    string `json:"num_telefono" form:"num_telefono"`
	Password string `json:"contrasena" form:"contrasena"`
	RoleID   uint   `json:"id_rol" form:"id_rol"`
}

type updateUserRequest struct {
	Name     string `json:"nombre" form:"nombre"`
	Phone    string `json:"num_telefono" form:"num_telefono"`
	Password string `json:"contrasena" form:"contrasena"`
	RoleID   uint   `json:"id_rol" form:"id_rol"`
}

type userResponse struct {
	ID     uint   `json:"id_usuario"`
	Name   string `json:"nombre"`
	Phone  string `json:"num_telefono"`
	RoleID uint   `json:"id_rol"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerUserRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	cmd := &service.RegisterUserCommand{
		Name:     req.Name,
		Phone:    req.Phone,
		Password: req.Password,
		RoleID:   req.RoleID,
	}

	created, err := h.users.RegisterUser(
		c.Request.Context(), cmd, middleware.ClaimsFrom(c), middleware.RequestIDFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, userResponse{ID: created.ID, Name: created.Name, Phone: created.Phone, RoleID: created.RoleID})
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, users)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req updateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	cmd := &service.UpdateUserCommand{
		Name:     req.Name,
		Phone:    req.Phone,
		Password: req.Password,
		RoleID:   req.RoleID,
	}

	updated, err := h.users.UpdateUser(
		c.Request.Context(), id, cmd, middleware.ClaimsFrom(c), middleware.RequestIDFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, userResponse{ID: updated.ID, Name: updated.Name, Phone: updated.Phone, RoleID: updated.RoleID})
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	err := h.users.DeleteUser(
		c.Request.Context(), id, middleware.ClaimsFrom(c), middleware.RequestIDFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"deleted": id})
}
