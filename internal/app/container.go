package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookline-app/bookline-backend/internal/api"
	"github.com/bookline-app/bookline-backend/internal/auth"
	"github.com/bookline-app/bookline-backend/internal/booking"
	"github.com/bookline-app/bookline-backend/internal/business"
	"github.com/bookline-app/bookline-backend/internal/catalog"
	"github.com/bookline-app/bookline-backend/internal/notify"
	"github.com/bookline-app/bookline-backend/internal/photo"
	"github.com/bookline-app/bookline-backend/internal/pkg/storage"
	"github.com/bookline-app/bookline-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	UploadDir    string
	Notifier     notify.Notifier
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	store, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Business Module
	businessRepo := business.NewPgxRepository(cfg.DBPool)
	businessService := business.NewService(businessRepo)

	// Catalog Module
	catalogRepo := catalog.NewPgxRepository(cfg.DBPool)
	catalogManager := catalog.NewManager(catalogRepo, businessService)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, catalogManager, businessService, cfg.Notifier)

	// Photo Module
	photoRepo := photo.NewPgxRepository(cfg.DBPool)
	photoService := photo.NewService(photoRepo, businessService, store)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:    cfg.IsProduction,
		ProdOrigins:     cfg.ProdOrigins,
		UserService:     userService,
		BusinessService: businessService,
		CatalogManager:  catalogManager,
		BookingService:  bookingService,
		PhotoService:    photoService,
		JWTManager:      jwtManager,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}
