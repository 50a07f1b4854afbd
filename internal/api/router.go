package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/nekogravitycat/shareit-backend/internal/auth"
	"github.com/nekogravitycat/shareit-backend/internal/booking"
	bookingHttp "github.com/nekogravitycat/shareit-backend/internal/booking/http"
	"github.com/nekogravitycat/shareit-backend/internal/item"
	itemHttp "github.com/nekogravitycat/shareit-backend/internal/item/http"
	"github.com/nekogravitycat/shareit-backend/internal/itemrequest"
	requestHttp "github.com/nekogravitycat/shareit-backend/internal/itemrequest/http"
	"github.com/nekogravitycat/shareit-backend/internal/metrics"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/middleware"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/validation"
	"github.com/nekogravitycat/shareit-backend/internal/user"
	userHttp "github.com/nekogravitycat/shareit-backend/internal/user/http"
)

// Config holds the dependencies required to build the server router.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	Logger       zerolog.Logger

	UserService    user.Service
	ItemService    item.Service
	RequestService itemrequest.Service
	BookingService booking.Service

	// TokenManager enables the gateway token check when non-nil.
	TokenManager *auth.TokenManager
	// Health reports whether dependencies such as the database are reachable.
	Health func(ctx context.Context) error
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (request id, logging, metrics, CORS) and registers routes for every module.
func NewRouter(cfg Config) *gin.Engine {
	metrics.Register()
	bookingHttp.RegisterValidations(validation.Engine())

	r := gin.New()

	// Global Middleware:
	// - RequestID: attaches a request scoped zerolog logger.
	// - AccessLog / Metrics: one log line and one observation per request.
	// - Recovery: captures panics and returns a 500 error.
	r.Use(
		middleware.RequestID(cfg.Logger),
		middleware.AccessLog(auth.UserHeader),
		middleware.Metrics("server"),
		gin.Recovery(),
		middleware.CORS(cfg.IsProduction, cfg.ProdOrigins, auth.UserHeader),
	)

	r.GET("/healthz", healthHandler(cfg.Health))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Domain routes; optionally reachable only through the gateway.
	api := r.Group("")
	if cfg.TokenManager != nil {
		api.Use(auth.ServiceTokenRequired(cfg.TokenManager))
	}

	userHttp.RegisterRoutes(api, userHttp.NewHandler(cfg.UserService))
	itemHttp.RegisterRoutes(api, itemHttp.NewHandler(cfg.ItemService))
	requestHttp.RegisterRoutes(api, requestHttp.NewHandler(cfg.RequestService))
	bookingHttp.RegisterRoutes(api, bookingHttp.NewHandler(cfg.BookingService))

	return r
}

func healthHandler(check func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			if err := check(c.Request.Context()); err != nil {
				zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("health check failed")
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
