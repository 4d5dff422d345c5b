package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/sunpeak-rentals/scheduling-backend/internal/attention"
	attentionHttp "github.com/sunpeak-rentals/scheduling-backend/internal/attention/http"
	"github.com/sunpeak-rentals/scheduling-backend/internal/auth"
	"github.com/sunpeak-rentals/scheduling-backend/internal/automation"
	automationHttp "github.com/sunpeak-rentals/scheduling-backend/internal/automation/http"
	"github.com/sunpeak-rentals/scheduling-backend/internal/availability"
	availabilityHttp "github.com/sunpeak-rentals/scheduling-backend/internal/availability/http"
	"github.com/sunpeak-rentals/scheduling-backend/internal/booking"
	bookingHttp "github.com/sunpeak-rentals/scheduling-backend/internal/booking/http"
	"github.com/sunpeak-rentals/scheduling-backend/internal/ledger"
	ledgerHttp "github.com/sunpeak-rentals/scheduling-backend/internal/ledger/http"
	"github.com/sunpeak-rentals/scheduling-backend/internal/operator"
	operatorHttp "github.com/sunpeak-rentals/scheduling-backend/internal/operator/http"
	"github.com/sunpeak-rentals/scheduling-backend/internal/product"
	productHttp "github.com/sunpeak-rentals/scheduling-backend/internal/product/http"
	"github.com/sunpeak-rentals/scheduling-backend/internal/resource"
	resourceHttp "github.com/sunpeak-rentals/scheduling-backend/internal/resource/http"
)

// Config carries the services the router mounts plus environment settings.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	OperatorService     operator.Service
	ProductService      product.Service
	ResourceService     resource.Service
	LedgerRepo          ledger.Repository
	AvailabilityService availability.Service
	BookingService      booking.Service
	AttentionService    attention.Service
	AutomationService   automation.Service

	JWTManager *auth.JWTManager
}

// NewRouter assembles the gin engine: global middleware (logger, recovery,
// CORS), auth middleware, and every module's routes under /v1.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://localhost:8081"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	adminMiddleware := auth.AdminRequired()

	operatorHandler := operatorHttp.NewHandler(cfg.OperatorService, cfg.JWTManager)
	productHandler := productHttp.NewHandler(cfg.ProductService)
	resourceHandler := resourceHttp.NewHandler(cfg.ResourceService)
	ledgerHandler := ledgerHttp.NewHandler(cfg.LedgerRepo)
	availabilityHandler := availabilityHttp.NewHandler(cfg.AvailabilityService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	attentionHandler := attentionHttp.NewHandler(cfg.AttentionService)
	automationHandler := automationHttp.NewHandler(cfg.AutomationService)

	v1 := r.Group("/v1")
	{
		operatorHttp.RegisterRoutes(v1, operatorHandler, authMiddleware, adminMiddleware)
		productHttp.RegisterRoutes(v1, productHandler, authMiddleware)
		resourceHttp.RegisterRoutes(v1, resourceHandler, authMiddleware)
		ledgerHttp.RegisterRoutes(v1, ledgerHandler, authMiddleware)
		availabilityHttp.RegisterRoutes(v1, availabilityHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
		attentionHttp.RegisterRoutes(v1, attentionHandler, authMiddleware)
		automationHttp.RegisterRoutes(v1, automationHandler, authMiddleware, adminMiddleware)
	}

	return r
}
