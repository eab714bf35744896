package handler

import (
	"net/http"

	"condo-reservations/internal/handler/api"
	"condo-reservations/internal/handler/middleware"
	"condo-reservations/internal/pkg/config"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *middleware.Logger,
	resourceHandler *api.ResourceHandler,
	reservationHandler *api.ReservationHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, resourceHandler, reservationHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	resourceHandler *api.ResourceHandler,
	reservationHandler *api.ReservationHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	adminOnly := []gin.HandlerFunc{authMiddleware.RequireAdministrator()}

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		resources := apiGroup.Group("/resources")
		addRoutes(resources, []route{
			{Method: http.MethodGet, Path: "", Handler: resourceHandler.List},
			{Method: http.MethodGet, Path: "/:id", Handler: resourceHandler.Get},
			{Method: http.MethodGet, Path: "/:id/availability", Handler: resourceHandler.Availability},
			{Method: http.MethodPost, Path: "", Handler: resourceHandler.Create, Mw: adminOnly},
			{Method: http.MethodPut, Path: "/:id", Handler: resourceHandler.Update, Mw: adminOnly},
			{Method: http.MethodDelete, Path: "/:id", Handler: resourceHandler.Deactivate, Mw: adminOnly},
		})

		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/availability", Handler: resourceHandler.AvailabilityOn},
		})

		reservations := apiGroup.Group("/reservations")
		addRoutes(reservations, []route{
			{Method: http.MethodPost, Path: "", Handler: reservationHandler.Create},
			{Method: http.MethodGet, Path: "", Handler: reservationHandler.List},
			{Method: http.MethodGet, Path: "/upcoming", Handler: reservationHandler.Upcoming},
			{Method: http.MethodGet, Path: "/stats", Handler: reservationHandler.Stats, Mw: adminOnly},
			{Method: http.MethodGet, Path: "/:id", Handler: reservationHandler.Get},
			{Method: http.MethodPut, Path: "/:id", Handler: reservationHandler.Reschedule},
			{Method: http.MethodPost, Path: "/:id/approve", Handler: reservationHandler.Approve, Mw: adminOnly},
			{Method: http.MethodPost, Path: "/:id/reject", Handler: reservationHandler.Reject, Mw: adminOnly},
			{Method: http.MethodPost, Path: "/:id/cancel", Handler: reservationHandler.Cancel},
			{Method: http.MethodPost, Path: "/:id/complete", Handler: reservationHandler.Complete, Mw: adminOnly},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
