package app

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/lenditapp/lendit-backend/internal/api"
	"github.com/lenditapp/lendit-backend/internal/booking"
	"github.com/lenditapp/lendit-backend/internal/item"
	"github.com/lenditapp/lendit-backend/internal/request"
	"github.com/lenditapp/lendit-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	Logger       zerolog.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router *gin.Engine
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// User module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo)

	// Repositories first: the services cross-reference each other through
	// narrow interfaces, so construction follows the dependency direction.
	itemRepo := item.NewPgxRepository(cfg.DBPool)
	commentRepo := item.NewPgxCommentRepository(cfg.DBPool)
	requestRepo := request.NewPgxRepository(cfg.DBPool)
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)

	// Item module: booking data flows in through the BookingReader adapter.
	itemService := item.NewService(
		itemRepo,
		commentRepo,
		userService,
		booking.NewItemBookings(bookingRepo),
		requestRepo,
	)

	// Request module
	requestService := request.NewService(requestRepo, userService, itemRepo)

	// Booking module
	bookingService := booking.NewService(bookingRepo, userService, itemRepo)

	// API router config
	routerParams := api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		Logger:         cfg.Logger,
		UserService:    userService,
		ItemService:    itemService,
		RequestService: requestService,
		BookingService: bookingService,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router: router,
	}
}
