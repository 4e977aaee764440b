package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"experience-booking/internal/handler/api"
	"experience-booking/internal/handler/middleware"
	"experience-booking/internal/pkg/config"
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
	experienceHandler *api.ExperienceHandler,
	checkoutHandler *api.CheckoutHandler,
	bookingHandler *api.BookingHandler,
) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, experienceHandler, checkoutHandler, bookingHandler)
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
	experienceHandler *api.ExperienceHandler,
	checkoutHandler *api.CheckoutHandler,
	bookingHandler *api.BookingHandler,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	experiences := engine.Group("/experiences")
	addRoutes(experiences, []route{
		{Method: http.MethodGet, Path: "", Handler: experienceHandler.List},
		{Method: http.MethodGet, Path: "/:id", Handler: experienceHandler.Get},
	})

	addRoutes(engine.Group(""), []route{
		{Method: http.MethodPost, Path: "/promo/validate", Handler: checkoutHandler.ValidatePromo},
		{Method: http.MethodPost, Path: "/quotes", Handler: checkoutHandler.Quote},
	})

	bookings := engine.Group("/bookings")
	addRoutes(bookings, []route{
		{Method: http.MethodPost, Path: "", Handler: bookingHandler.Create},
		{Method: http.MethodGet, Path: "/:reference", Handler: bookingHandler.Get},
	})
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok": true,
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
