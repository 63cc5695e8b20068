package app

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kiangasgaryishere/Booka-frontendd/domain"
	"github.com/kiangasgaryishere/Booka-frontendd/internal/config"
	"github.com/kiangasgaryishere/Booka-frontendd/internal/infrastructure/auth"
	"github.com/kiangasgaryishere/Booka-frontendd/internal/infrastructure/database"
	"github.com/kiangasgaryishere/Booka-frontendd/internal/infrastructure/notifications"
	"github.com/kiangasgaryishere/Booka-frontendd/internal/infrastructure/repositories"
	"github.com/kiangasgaryishere/Booka-frontendd/internal/logger"
	"github.com/kiangasgaryishere/Booka-frontendd/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client
	Logger      *zap.Logger
	Casbin      *auth.CasbinService

	// Repositories
	ProfileRepo domain.ProfileRepository
	SessionRepo domain.SessionRepository
	TxRepo      domain.TransactionRepository

	// Services
	TokenSvc        domain.TokenService
	NotificationSvc domain.NotificationService
	ProfileSvc      domain.ProfileService
	FlowSvc         domain.FlowService
	OTPSvc          domain.OTPService
	AuthSvc         domain.AuthService
	PaymentSvc      domain.PaymentService
	Audit           domain.AuditLogger
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg}

	if err := container.initLogger(); err != nil {
		return nil, err
	}
	if err := container.initDatabase(); err != nil {
		return nil, err
	}
	if err := container.initRedis(); err != nil {
		return nil, err
	}

	container.initRepositories()
	container.initServices()

	return container, nil
}

func (c *Container) initLogger() error {
	log, err := logger.NewProductionLogger(c.Config.Debug)
	if err != nil {
		return err
	}
	c.Logger = log
	c.Audit = logger.NewAuditLogger(log)
	return nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	cas, err := auth.NewCasbinService(db, c.Config.CasbinModelPath)
	if err != nil {
		return err
	}

	c.DB = db
	c.Casbin = cas
	return nil
}

func (c *Container) initRedis() error {
	c.RedisClient = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB).Client
	return c.RedisClient.Ping(context.Background()).Err()
}

func (c *Container) initRepositories() {
	c.ProfileRepo = repositories.NewProfileRepository(c.RedisClient)
	c.SessionRepo = repositories.NewSessionRepository(c.RedisClient, c.Config.RefreshTTL)
	c.TxRepo = repositories.NewTransactionRepository(c.DB)
}

func (c *Container) initServices() {
	c.TokenSvc = auth.NewJWTService(
		c.Config.JWTSecret,
		c.Config.JWTIssuer,
		c.Config.AccessTTL,
		c.Config.RefreshTTL,
	)
	c.NotificationSvc = notifications.NewTwilioService(
		c.Config.TwilioSID,
		c.Config.TwilioToken,
		c.Config.TwilioFrom,
	)

	c.ProfileSvc = services.NewProfileService(c.ProfileRepo, c.Logger)
	c.FlowSvc = services.NewFlowService()

	otpConfig := services.OTPConfig{
		Length:       c.Config.OTPLength,
		TTL:          c.Config.OTPTTL,
		MaxAttempts:  c.Config.OTPMaxAttempts,
		ResendWindow: c.Config.OTPResendWindow,
		AcceptAny:    c.Config.OTPAcceptAny,
	}
	c.OTPSvc = services.NewOTPService(c.NotificationSvc, auth.NewCodeHasher(), c.RedisClient, otpConfig)

	c.AuthSvc = services.NewAuthService(
		c.ProfileSvc,
		c.OTPSvc,
		c.SessionRepo,
		c.TokenSvc,
		services.AuthConfig{
			SessionTTL:      c.Config.SessionTTL,
			AccessTTL:       c.Config.AccessTTL,
			GoogleMockEmail: c.Config.GoogleMockEmail,
			GoogleMockName:  c.Config.GoogleMockName,
			MockLatency:     c.Config.MockLatency,
		},
	)

	c.PaymentSvc = services.NewPaymentService(c.TxRepo, services.PaymentConfig{
		PurchaseDelay: c.Config.PurchaseDelay,
	})
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
