package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vinculodevida/lactario/internal/config"
	"github.com/vinculodevida/lactario/internal/domain"
	"github.com/vinculodevida/lactario/internal/handler/middleware"
	v1 "github.com/vinculodevida/lactario/internal/handler/v1"
	"github.com/vinculodevida/lactario/pkg/auth"
	"github.com/vinculodevida/lactario/pkg/metrics"
)

type Handlers struct {
	Auth    *v1.AuthHandler
	Infants *v1.InfantHandler
	Visits  *v1.VisitHandler
	Users   *v1.UserHandler
	Reports *v1.ReportHandler
}

func New(cfg *config.Config, jwtManager *auth.JWTManager, mx *metrics.Collector, h Handlers, log *zap.Logger) *gin.Engine {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics(mx))

	r.Static("/static", cfg.Server.StaticDir)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": cfg.App.Name,
			"version": cfg.App.Version,
		})
	})
	r.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	r.POST("/login", h.Auth.Login)
	r.POST("/refresh", h.Auth.Refresh)
	r.POST("/logout", h.Auth.Logout)

	// The report API accepts anonymous calls; a signed-in caller
	// additionally gets the generated report archived under their name.
	r.POST("/api/generate_report", middleware.OptionalAuth(jwtManager), h.Reports.Generate)

	staff := r.Group("/", middleware.RequireAuth(jwtManager),
		middleware.RequireRoles(domain.RoleAdministrator, domain.RoleNurse))
	{
		staff.GET("/registro_lactantes", h.Infants.RegistrationForm)
		staff.POST("/registro_lactantes", h.Infants.Register)
		staff.GET("/visualizacion_lactantes", h.Infants.List)
		staff.GET("/editar_lactante/:id", h.Infants.Get)
		staff.PUT("/editar_lactante/:id", h.Infants.Update)
		staff.DELETE("/eliminar_lactante/:id", h.Infants.Delete)

		staff.POST("/controles", h.Infants.RecordGrowthCheck)
		staff.GET("/controles/:id_lactante", h.Infants.GrowthHistory)

		staff.GET("/registro_citas", h.Visits.BookingForm)
		staff.POST("/registro_citas", h.Visits.Book)
		staff.GET("/visualizacion_citas", h.Visits.List)
		staff.PUT("/editar_cita/:id", h.Visits.Update)
		staff.DELETE("/borrar_cita/:id", h.Visits.Delete)

		staff.GET("/reportes_generales", h.Reports.DownloadGeneral)
		staff.POST("/reportes_generales", h.Reports.DownloadGeneral)
		staff.GET("/reportes_por_lactante", h.Reports.PerInfantForm)
		staff.POST("/reportes_por_lactante", h.Reports.PerInfant)
	}

	admin := r.Group("/", middleware.RequireAuth(jwtManager),
		middleware.RequireRoles(domain.RoleAdministrator))
	{
		admin.POST("/administrador_registrar_usuario", h.Users.Register)
		admin.GET("/visualizacion_usuarios", h.Users.List)
		admin.PUT("/editar_usuario/:id", h.Users.Update)
		admin.DELETE("/borrar_usuario/:id", h.Users.Delete)
	}

	return r
}
