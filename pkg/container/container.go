package container

import (
	"context"
	"fmt"
	"time"

	"rentora-backend/internal/config"
	infraCache "rentora-backend/internal/infrastructure/cache"
	"rentora-backend/internal/infrastructure/database"
	"rentora-backend/internal/infrastructure/queue"
	"rentora-backend/internal/infrastructure/storage"
	"rentora-backend/pkg/cache"
	"rentora-backend/pkg/jwt"
	"rentora-backend/pkg/logger"

	"rentora-backend/internal/domains/activity"
	activityHandler "rentora-backend/internal/domains/activity/handler"
	activityRepo "rentora-backend/internal/domains/activity/repository"
	activityService "rentora-backend/internal/domains/activity/service"
	"rentora-backend/internal/domains/booking"
	bookingHandler "rentora-backend/internal/domains/booking/handler"
	bookingRepo "rentora-backend/internal/domains/booking/repository"
	bookingService "rentora-backend/internal/domains/booking/service"
	"rentora-backend/internal/domains/dashboard"
	dashboardHandler "rentora-backend/internal/domains/dashboard/handler"
	dashboardRepo "rentora-backend/internal/domains/dashboard/repository"
	dashboardService "rentora-backend/internal/domains/dashboard/service"
	"rentora-backend/internal/domains/maintenance"
	maintenanceHandler "rentora-backend/internal/domains/maintenance/handler"
	maintenanceRepo "rentora-backend/internal/domains/maintenance/repository"
	maintenanceService "rentora-backend/internal/domains/maintenance/service"
	"rentora-backend/internal/domains/payment/gateway/stripe"
	paymentHandler "rentora-backend/internal/domains/payment/handler"
	"rentora-backend/internal/domains/property"
	propertyHandler "rentora-backend/internal/domains/property/handler"
	propertyRepo "rentora-backend/internal/domains/property/repository"
	propertyService "rentora-backend/internal/domains/property/service"
	uploadHandler "rentora-backend/internal/domains/upload/handler"
	uploadService "rentora-backend/internal/domains/upload/service"
	"rentora-backend/internal/domains/user"
	userHandler "rentora-backend/internal/domains/user/handler"
	userRepo "rentora-backend/internal/domains/user/repository"
	userService "rentora-backend/internal/domains/user/service"
)

// Container wires the full dependency graph: infrastructure, then
// repositories, then services, then HTTP handlers. Everything in it is
// a singleton living for the process lifetime.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager
	Queue      *queue.Client
	Storage    *storage.MinIOStorage

	UserRepo        user.Repository
	PropertyRepo    property.Repository
	BookingRepo     booking.Repository
	MaintenanceRepo maintenance.Repository
	ActivityRepo    activity.Repository
	DashboardRepo   dashboard.Repository

	UserService        *userService.UserService
	PropertyService    *propertyService.PropertyService
	BookingService     *bookingService.BookingService
	MaintenanceService *maintenanceService.MaintenanceService
	ActivityService    *activityService.ActivityService
	DashboardService   *dashboardService.DashboardService
	UploadService      *uploadService.UploadService

	UserHandler        *userHandler.UserHandler
	PropertyHandler    *propertyHandler.PropertyHandler
	BookingHandler     *bookingHandler.BookingHandler
	PaymentHandler     *paymentHandler.PaymentHandler
	MaintenanceHandler *maintenanceHandler.MaintenanceHandler
	ActivityHandler    *activityHandler.ActivityHandler
	DashboardHandler   *dashboardHandler.DashboardHandler
	UploadHandler      *uploadHandler.UploadHandler
}

// NewContainer builds the graph in dependency order. A failure in any
// required piece of infrastructure aborts startup.
func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	if err := c.initInfrastructure(cfg); err != nil {
		return nil, err
	}
	c.initRepositories()
	c.initServices(cfg)
	c.initHandlers(cfg)

	logger.Info("Dependency container initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
	})
	return c, nil
}

func (c *Container) initInfrastructure(cfg *config.Config) error {
	db := database.NewPostgresDB(&cfg.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(context.Background()); err != nil {
		// Cache failures degrade features (login throttle, webhook
		// dedup claims) but the API can still serve requests.
		logger.Error("Redis connection failed, continuing without cache guarantees", err)
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)
	c.Queue = queue.NewClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)

	store, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return fmt.Errorf("failed to init object storage: %w", err)
	}
	c.Storage = store

	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool
	c.UserRepo = userRepo.NewPostgresUserRepository(pool)
	c.PropertyRepo = propertyRepo.NewPostgresPropertyRepository(pool)
	c.BookingRepo = bookingRepo.NewPostgresBookingRepository(pool)
	c.MaintenanceRepo = maintenanceRepo.NewPostgresMaintenanceRepository(pool)
	c.ActivityRepo = activityRepo.NewPostgresActivityRepository(pool)
	c.DashboardRepo = dashboardRepo.NewPostgresDashboardRepository(pool)
}

func (c *Container) initServices(cfg *config.Config) {
	c.ActivityService = activityService.NewActivityService(c.ActivityRepo)
	recorder := c.ActivityService

	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager, c.Queue, c.Cache, recorder)
	c.PropertyService = propertyService.NewPropertyService(c.PropertyRepo, recorder)

	checkout := stripe.NewClient(cfg.Stripe.SecretKey, cfg.Stripe.APIURL)
	c.BookingService = bookingService.NewBookingService(
		c.BookingRepo,
		c.PropertyRepo,
		checkout,
		c.Cache,
		recorder,
		cfg.Stripe.ReturnURL+"?status=success&session_id={CHECKOUT_SESSION_ID}",
		cfg.Stripe.ReturnURL+"?status=cancelled",
	)

	c.MaintenanceService = maintenanceService.NewMaintenanceService(c.MaintenanceRepo, c.PropertyRepo, recorder)
	c.DashboardService = dashboardService.NewDashboardService(c.DashboardRepo, c.ActivityRepo, c.MaintenanceRepo)
	c.UploadService = uploadService.NewUploadService(c.Storage, storage.NewImageProcessor())
}

func (c *Container) initHandlers(cfg *config.Config) {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.PropertyHandler = propertyHandler.NewPropertyHandler(c.PropertyService)
	c.BookingHandler = bookingHandler.NewBookingHandler(c.BookingService)
	c.PaymentHandler = paymentHandler.NewPaymentHandler(c.BookingService, cfg.Stripe.WebhookSecret, cfg.Stripe.PublishableKey)
	c.MaintenanceHandler = maintenanceHandler.NewMaintenanceHandler(c.MaintenanceService)
	c.ActivityHandler = activityHandler.NewActivityHandler(c.ActivityService)
	c.DashboardHandler = dashboardHandler.NewDashboardHandler(c.DashboardService)
	c.UploadHandler = uploadHandler.NewUploadHandler(c.UploadService)
}

// Cleanup closes connections during graceful shutdown.
func (c *Container) Cleanup() {
	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			logger.Error("Failed to close queue client", err)
		}
	}
	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			logger.Error("Failed to close Redis", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	logger.Info("Container resources released", nil)
}
