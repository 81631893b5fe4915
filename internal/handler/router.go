package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"venuebook/internal/handler/api"
	"venuebook/internal/handler/middleware"
	"venuebook/internal/pkg/config"
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
	bookingHandler *api.BookingHandler,
	depositHandler *api.DepositHandler,
	lockHandler *api.LockHandler,
	opsHandler *api.OpsHandler,
	identityMiddleware *middleware.IdentityMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, cfg, bookingHandler, depositHandler, lockHandler, opsHandler, identityMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	cfg config.Config,
	bookingHandler *api.BookingHandler,
	depositHandler *api.DepositHandler,
	lockHandler *api.LockHandler,
	opsHandler *api.OpsHandler,
	identityMiddleware *middleware.IdentityMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		bookings := apiGroup.Group("/bookings")
		bookings.Use(identityMiddleware.RequireAdmin())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: bookingHandler.Submit},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.Get},
				{Method: http.MethodDelete, Path: "/:id", Handler: bookingHandler.Delete},
				{Method: http.MethodPost, Path: "/:id/request-deposit", Handler: bookingHandler.RequestDeposit},
				{Method: http.MethodPost, Path: "/:id/confirm", Handler: bookingHandler.Confirm},
				{Method: http.MethodPost, Path: "/:id/reject", Handler: bookingHandler.Reject},
				{Method: http.MethodPost, Path: "/:id/postpone", Handler: bookingHandler.Postpone},
				{Method: http.MethodPost, Path: "/:id/finish", Handler: bookingHandler.Finish},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: bookingHandler.Cancel},
				{Method: http.MethodPost, Path: "/:id/resend-email", Handler: bookingHandler.ResendResponseEmail},
			})
		}

		locks := apiGroup.Group("/locks")
		locks.Use(identityMiddleware.RequireAdmin())
		{
			addRoutes(locks, []route{
				{Method: http.MethodGet, Path: "", Handler: lockHandler.List},
				{Method: http.MethodGet, Path: "/status", Handler: lockHandler.Status},
			})
		}

		// Customer surface: no identity, every route re-checks the
		// response token inside the usecase.
		response := apiGroup.Group("/response")
		{
			addRoutes(response, []route{
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.GetByToken},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: bookingHandler.CancelByToken},
				{Method: http.MethodPost, Path: "/:id/deposit", Handler: depositHandler.Upload},
			})
		}

		cron := apiGroup.Group("/cron")
		cron.Use(middleware.NewCronGuard(cfg.Server.CronSecret))
		{
			addRoutes(cron, []route{
				{Method: http.MethodPost, Path: "/queue/run", Handler: opsHandler.RunQueueBatch},
				{Method: http.MethodPost, Path: "/queue/requeue-stuck", Handler: opsHandler.RequeueStuck},
				{Method: http.MethodGet, Path: "/queue/pending", Handler: opsHandler.QueuePending},
				{Method: http.MethodPost, Path: "/locks/sweep", Handler: opsHandler.SweepLocks},
			})
		}
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
