package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/EkeneDeProgram/909ineFoods/apperrors"
	"github.com/EkeneDeProgram/909ineFoods/controllers"
	"github.com/EkeneDeProgram/909ineFoods/database"
	"github.com/EkeneDeProgram/909ineFoods/events"
	"github.com/EkeneDeProgram/909ineFoods/logger"
	"github.com/EkeneDeProgram/909ineFoods/middleware"
	"github.com/EkeneDeProgram/909ineFoods/models"
	aws_pkg "github.com/EkeneDeProgram/909ineFoods/pkg/aws"
	"github.com/EkeneDeProgram/909ineFoods/repository"
	"github.com/EkeneDeProgram/909ineFoods/routes"
	"github.com/EkeneDeProgram/909ineFoods/sender"
	servicepkg "github.com/EkeneDeProgram/909ineFoods/services"
	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const serviceName = "909inefoods-api"

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// AWS is optional; every AWS-backed feature degrades to a no-op without it.
	awsCfg, awsErr := aws_pkg.LoadAWSConfig(context.Background())
	awsReady := awsErr == nil

	zl := initLogger(cfg, awsCfg, awsReady)
	defer zl.Sync() //nolint:errcheck
	if !awsReady {
		zl.Warn("AWS config unavailable, SNS/SQS/S3/CloudWatch disabled", zap.Error(awsErr))
	}

	db, err := database.Connect(cfg.Postgres, zl)
	if err != nil {
		zl.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db) //nolint:errcheck

	if err := models.Migrate(db); err != nil {
		zl.Fatal("Failed to migrate database", zap.Error(err))
	}
	if cfg.CategoriesFile != "" {
		n, err := database.SeedCategoriesFromFile(context.Background(), db, cfg.CategoriesFile)
		if err != nil {
			zl.Fatal("Failed to seed categories", zap.Error(err))
		}
		zl.Info("Categories seeded", zap.Int("count", n))
	}

	var sessions repository.SessionStore
	if cfg.RedisURL != "" {
		client, err := database.NewRedisClient(context.Background(), cfg.RedisURL)
		if err != nil {
			zl.Warn("Redis unavailable, logout will not revoke tokens", zap.Error(err))
		} else {
			defer client.Close() //nolint:errcheck
			sessions = repository.NewRedisSessionStore(client)
		}
	}

	var metrics aws_pkg.CountRecorder
	var httpMetrics middleware.LatencyRecorder
	if awsReady && cfg.CloudWatchEnabled {
		mc := aws_pkg.NewMetricsClient(awsCfg, cfg.CloudWatchNamespace, true)
		metrics, httpMetrics = mc, mc
	}

	var images aws_pkg.UploadPresigner
	if awsReady && cfg.ImageBucket != "" {
		images = aws_pkg.NewS3Presigner(awsCfg, cfg.ImageBucket, cfg.ImageUploadExpiry)
	}

	emailSender, err := buildEmailSender(cfg, awsCfg, awsReady, zl)
	if err != nil {
		zl.Fatal("Failed to configure notifier", zap.Error(err))
	}

	publisher := buildPublisher(cfg, awsCfg, awsReady, zl)
	if publisher != nil {
		defer publisher.Close() //nolint:errcheck
	}

	tokens, err := servicepkg.NewTokenService(cfg.JWTSecret, cfg.SessionTTL)
	if err != nil {
		zl.Fatal("Failed to create token service", zap.Error(err))
	}

	// Repositories and DI chain
	userRepo := repository.NewGormUserRepository(db)
	vendorRepo := repository.NewGormVendorRepository(db)
	locationRepo := repository.NewGormLocationRepository(db)
	categoryRepo := repository.NewGormCategoryRepository(db)
	itemRepo := repository.NewGormMenuItemRepository(db)
	cartRepo := repository.NewGormCartRepository(db)
	orderRepo := repository.NewGormOrderRepository(db)

	deps := servicepkg.AccountDeps{
		Tokens:   tokens,
		Sessions: sessions,
		Notifier: sender.NewCodeMailer(emailSender, cfg.CodeTTL, zl),
		Images:   images,
		Metrics:  metrics,
		Options: servicepkg.AccountOptions{
			CodeTTL:     cfg.CodeTTL,
			PhoneRegion: cfg.DefaultPhoneRegion,
		},
	}

	userService := servicepkg.NewUserService(userRepo, deps, zl)
	vendorService := servicepkg.NewVendorService(vendorRepo, deps, zl)
	catalogService := servicepkg.NewCatalogService(vendorRepo, locationRepo, categoryRepo, itemRepo, images, zl)
	cartService := servicepkg.NewCartService(cartRepo, itemRepo, publisher, metrics, zl)
	orderService := servicepkg.NewOrderService(orderRepo, zl)

	cookie := controllers.CookieConfig{
		Secure: cfg.CookieSecure,
		Domain: cfg.CookieDomain,
		MaxAge: cfg.SessionTTL,
	}
	controllers.RegisterValidators()

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestID())
	r.Use(middleware.RequestLogger(zl))
	r.Use(middleware.MetricsMiddleware(httpMetrics, serviceName))
	r.Use(middleware.SecurityHeaders())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestTimeout(30 * time.Second))
	r.Use(apperrors.ErrorMiddleware())

	routes.RegisterRoutes(r, routes.Controllers{
		Users:   controllers.NewUserController(userService, cookie),
		Vendors: controllers.NewVendorController(vendorService, cookie),
		Catalog: controllers.NewCatalogController(catalogService),
		Browse:  controllers.NewBrowseController(catalogService),
		Cart:    controllers.NewCartController(cartService),
		Orders:  controllers.NewOrderController(orderService),
	}, routes.Auth{
		Tokens:      tokens,
		Sessions:    sessions,
		AuthLimiter: middleware.RateLimitMiddleware(cfg.AuthRatePerMinute, cfg.AuthRateBurst),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zl.Fatal("Server failed", zap.Error(err))
		}
	}()

	zl.Info("909ineFoods API started", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
	<-quit
	zl.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("Server forced to shutdown", zap.Error(err))
	}
	zl.Info("Server exited cleanly")
}

func initLogger(cfg *Config, awsCfg sdkaws.Config, awsReady bool) *zap.Logger {
	if awsReady && cfg.CloudWatchLogGroup != "" {
		w, err := aws_pkg.NewCloudWatchLogsWriter(context.Background(), awsCfg, cfg.CloudWatchLogGroup, serviceName)
		if err == nil {
			zl, err := logger.InitializeWithWriter(cfg.AppEnv, w)
			if err == nil {
				return zl
			}
		}
		log.Printf("CloudWatch Logs unavailable, logging to stdout only: %v", err)
	}
	zl, err := logger.Initialize(cfg.AppEnv)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	return zl
}

func buildEmailSender(cfg *Config, awsCfg sdkaws.Config, awsReady bool, zl *zap.Logger) (sender.EmailSender, error) {
	switch cfg.Notifier {
	case "smtp":
		return sender.NewSMTPSender(cfg.SMTP)
	case "sqs":
		if !awsReady {
			return nil, errors.New("NOTIFIER=sqs requires AWS credentials")
		}
		if cfg.NotificationSQS == "" {
			return nil, errors.New("NOTIFIER=sqs requires NOTIFICATION_SQS_QUEUE_URL")
		}
		return sender.NewSQSSender(aws_pkg.NewSQSQueue(awsCfg, cfg.NotificationSQS)), nil
	case "log":
		zl.Warn("Verification codes are written to the log; use NOTIFIER=smtp or NOTIFIER=sqs outside development")
		return sender.NewLogSender(zl), nil
	default:
		return nil, fmt.Errorf("unknown NOTIFIER %q", cfg.Notifier)
	}
}

// buildPublisher returns nil when no event bus is configured.
func buildPublisher(cfg *Config, awsCfg sdkaws.Config, awsReady bool, zl *zap.Logger) events.Publisher {
	switch cfg.EventBus {
	case "sns":
		if !awsReady || cfg.OrderEventsTopicARN == "" {
			zl.Warn("SNS event bus requested without AWS or ORDER_EVENTS_TOPIC_ARN, events disabled")
			return nil
		}
		return events.NewSNSPublisher(aws_pkg.NewSNSClient(awsCfg), cfg.OrderEventsTopicARN)
	case "kafka":
		if len(cfg.KafkaBrokers) == 0 {
			zl.Warn("Kafka event bus requested without KAFKA_BROKERS, events disabled")
			return nil
		}
		return events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaOrderTopic)
	default:
		return nil
	}
}
