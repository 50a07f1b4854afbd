package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/nekogravitycat/shareit-backend/internal/api"
	"github.com/nekogravitycat/shareit-backend/internal/auth"
	"github.com/nekogravitycat/shareit-backend/internal/booking"
	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/itemrequest"
	"github.com/nekogravitycat/shareit-backend/internal/user"
)

// Config holds the dependencies and settings required to start the server.
type Config struct {
	IsProduction  bool
	ProdOrigins   string
	DBPool        *pgxpool.Pool
	Logger        zerolog.Logger
	GatewaySecret string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router *gin.Engine
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo)

	// Repositories shared across module boundaries
	requestRepo := itemrequest.NewPgxRepository(cfg.DBPool)
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)

	// Item Module
	itemService := item.NewService(
		item.NewPgxRepository(cfg.DBPool),
		item.NewPgxCommentRepository(cfg.DBPool),
		userService,
		requestRepo,
		booking.NewItemLookup(bookingRepo),
	)

	// Item Request Module
	requestService := itemrequest.NewService(requestRepo, userService, itemService)

	// Booking Module
	bookingService := booking.NewService(bookingRepo, userService, itemService)

	// Gateway token check is off unless a shared secret is configured
	var tokenManager *auth.TokenManager
	if cfg.GatewaySecret != "" {
		tokenManager = auth.NewTokenManager(cfg.GatewaySecret, time.Minute)
	}

	// API Router Config
	routerParams := api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		Logger:         cfg.Logger,
		UserService:    userService,
		ItemService:    itemService,
		RequestService: requestService,
		BookingService: bookingService,
		TokenManager:   tokenManager,
		Health:         cfg.DBPool.Ping,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router: router,
	}
}
