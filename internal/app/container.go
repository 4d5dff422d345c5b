package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sunpeak-rentals/scheduling-backend/internal/allocation"
	"github.com/sunpeak-rentals/scheduling-backend/internal/api"
	"github.com/sunpeak-rentals/scheduling-backend/internal/attention"
	"github.com/sunpeak-rentals/scheduling-backend/internal/auth"
	"github.com/sunpeak-rentals/scheduling-backend/internal/automation"
	"github.com/sunpeak-rentals/scheduling-backend/internal/availability"
	"github.com/sunpeak-rentals/scheduling-backend/internal/booking"
	"github.com/sunpeak-rentals/scheduling-backend/internal/ledger"
	"github.com/sunpeak-rentals/scheduling-backend/internal/operator"
	"github.com/sunpeak-rentals/scheduling-backend/internal/payment"
	"github.com/sunpeak-rentals/scheduling-backend/internal/product"
	"github.com/sunpeak-rentals/scheduling-backend/internal/resource"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int

	BusinessLocation *time.Location
	LeadTime         time.Duration
	CutoffHour       int
	DeliveryGrace    time.Duration
	PickupGrace      time.Duration
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
	Automation automation.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// Operator module
	operatorRepo := operator.NewPgxRepository(cfg.DBPool)
	operatorService := operator.NewService(operatorRepo, passwordHasher)

	// Product catalog
	productRepo := product.NewPgxRepository(cfg.DBPool)
	productService := product.NewService(productRepo)

	// Resource catalog (assets and crews)
	resourceRepo := resource.NewPgxRepository(cfg.DBPool)
	resourceService := resource.NewService(resourceRepo, productService)

	// Time-block ledger
	ledgerRepo := ledger.NewPgxRepository(cfg.DBPool)

	// Availability checker
	policy := availability.Policy{
		Location:   cfg.BusinessLocation,
		LeadTime:   cfg.LeadTime,
		CutoffHour: cfg.CutoffHour,
	}
	availabilityService := availability.NewService(productService, resourceService, ledgerRepo, policy)

	// Booking module
	allocator := allocation.NewAllocator(ledgerRepo)
	paymentProvider := payment.NewManualProvider()
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, productService, availabilityService, allocator, paymentProvider)

	// Attention worklist
	attentionRepo := attention.NewPgxRepository(cfg.DBPool)
	attentionService := attention.NewService(attentionRepo, bookingRepo)

	// Automation processor
	automationLogs := automation.NewPgxLogRepository(cfg.DBPool)
	automationService := automation.NewService(
		bookingRepo, attentionService, automationLogs,
		cfg.DeliveryGrace, cfg.PickupGrace,
	)

	router := api.NewRouter(api.Config{
		IsProduction:        cfg.IsProduction,
		ProdOrigins:         cfg.ProdOrigins,
		OperatorService:     operatorService,
		ProductService:      productService,
		ResourceService:     resourceService,
		LedgerRepo:          ledgerRepo,
		AvailabilityService: availabilityService,
		BookingService:      bookingService,
		AttentionService:    attentionService,
		AutomationService:   automationService,
		JWTManager:          jwtManager,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
		Automation: automationService,
	}
}
