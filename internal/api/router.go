package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/bookline-app/bookline-backend/internal/auth"
	"github.com/bookline-app/bookline-backend/internal/booking"
	bookingHttp "github.com/bookline-app/bookline-backend/internal/booking/http"
	"github.com/bookline-app/bookline-backend/internal/business"
	businessHttp "github.com/bookline-app/bookline-backend/internal/business/http"
	"github.com/bookline-app/bookline-backend/internal/catalog"
	catalogHttp "github.com/bookline-app/bookline-backend/internal/catalog/http"
	"github.com/bookline-app/bookline-backend/internal/photo"
	photoHttp "github.com/bookline-app/bookline-backend/internal/photo/http"
	"github.com/bookline-app/bookline-backend/internal/user"
	userHttp "github.com/bookline-app/bookline-backend/internal/user/http"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string // Comma-separated list of allowed origins in production

	UserService     user.Service
	BusinessService business.Service
	CatalogManager  catalog.Manager
	BookingService  booking.Service
	PhotoService    photo.Service
	JWTManager      *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000", // Web frontend
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// adminMiddleware: Further checks if the authenticated user is an admin.
	adminMiddleware := RequireAdmin(cfg.UserService)
	// businessMiddleware: Restricts routes to business owners (and admins).
	businessMiddleware := RequireRole(cfg.UserService, user.RoleBusiness, user.RoleAdmin)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	businessHandler := businessHttp.NewHandler(cfg.BusinessService)
	catalogHandler := catalogHttp.NewHandler(cfg.CatalogManager)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService, cfg.BusinessService)
	photoHandler := photoHttp.NewHandler(cfg.PhotoService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, adminMiddleware)
		businessHttp.RegisterRoutes(v1, businessHandler, authMiddleware, businessMiddleware)
		catalogHttp.RegisterRoutes(v1, catalogHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
		photoHttp.RegisterRoutes(v1, photoHandler, authMiddleware)
	}

	return r
}

func splitOrigins(origins string) []string {
	parts := strings.Split(origins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
