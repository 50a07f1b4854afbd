package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/nekogravitycat/shareit-backend/internal/auth"
	bookingHttp "github.com/nekogravitycat/shareit-backend/internal/booking/http"
	itemHttp "github.com/nekogravitycat/shareit-backend/internal/item/http"
	requestHttp "github.com/nekogravitycat/shareit-backend/internal/itemrequest/http"
	"github.com/nekogravitycat/shareit-backend/internal/metrics"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/middleware"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/validation"
	userHttp "github.com/nekogravitycat/shareit-backend/internal/user/http"
)

// Config holds the dependencies required to build the gateway router.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	Logger       zerolog.Logger
	Forwarder    *Forwarder
	Limiter      Limiter
}

// NewRouter mirrors the server routes. Every route validates its input and,
// when valid, is forwarded to the server unchanged.
func NewRouter(cfg Config) *gin.Engine {
	metrics.Register()
	bookingHttp.RegisterValidations(validation.Engine())

	r := gin.New()
	r.Use(
		middleware.RequestID(cfg.Logger),
		middleware.AccessLog(auth.UserHeader),
		middleware.Metrics("gateway"),
		gin.Recovery(),
		middleware.CORS(cfg.IsProduction, cfg.ProdOrigins, auth.UserHeader),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := NewHandler(cfg.Forwarder)
	api := r.Group("")
	if cfg.Limiter != nil {
		api.Use(RateLimit(cfg.Limiter))
	}

	users := api.Group("/users")
	{
		users.POST("", h.Pass(jsonBody[userHttp.CreateUserRequest]()))
		users.GET("", h.Pass())
		users.GET("/:id", h.Pass(pathID))
		users.PATCH("/:id", h.Pass(pathID, jsonBody[userHttp.UpdateUserRequest]()))
		users.DELETE("/:id", h.Pass(pathID))
	}

	items := api.Group("/items", auth.UserRequired())
	{
		items.POST("", h.Pass(jsonBody[itemHttp.CreateItemRequest]()))
		items.GET("", h.Pass(query[request.PageParams]()))
		items.GET("/search", h.Pass(query[itemHttp.SearchQuery]()))
		items.GET("/:id", h.Pass(pathID))
		items.PATCH("/:id", h.Pass(pathID, jsonBody[itemHttp.UpdateItemRequest]()))
		items.POST("/:id/comment", h.Pass(pathID, jsonBody[itemHttp.CommentRequest]()))
	}

	requests := api.Group("/requests", auth.UserRequired())
	{
		requests.POST("", h.Pass(jsonBody[requestHttp.CreateRequestRequest]()))
		requests.GET("", h.Pass(query[request.PageParams]()))
		requests.GET("/all", h.Pass(query[request.PageParams]()))
		requests.GET("/:id", h.Pass(pathID))
	}

	bookings := api.Group("/bookings", auth.UserRequired())
	{
		bookings.POST("", h.Pass(jsonBody[bookingHttp.CreateBookingRequest]()))
		bookings.GET("", h.Pass(bookingState))
		bookings.GET("/owner", h.Pass(bookingState))
		bookings.GET("/:id", h.Pass(pathID))
		bookings.PATCH("/:id", h.Pass(pathID, query[bookingHttp.StatusRequest]()))
	}

	return r
}
