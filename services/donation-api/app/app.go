package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/nimeshabuddhika/donation-service/pkg"
	"github.com/nimeshabuddhika/donation-service/pkg/cache"
	middleware "github.com/nimeshabuddhika/donation-service/pkg/middlewares"
	"github.com/nimeshabuddhika/donation-service/pkg/utils"
	"github.com/nimeshabuddhika/donation-service/services/donation-api/configs"
	"github.com/nimeshabuddhika/donation-service/services/donation-api/internal/handlers"
	"github.com/nimeshabuddhika/donation-service/services/donation-api/internal/services"
	"go.uber.org/zap"
)

// drainTimeout bounds how long shutdown waits for in-flight announcements.
const drainTimeout = 10 * time.Second

// NewApp wires dependencies, builds the Gin engine, and returns an *http.Server and a cleanup func.
// It reads configuration from environment variables via configs.Load.
func NewApp(ctx context.Context, logger *zap.Logger) (*http.Server, func(), error) {
	cfg, err := configs.Load(logger)
	if err != nil {
		return nil, nil, err
	}

	redisClient, redisCloser, err := cache.New(ctx, cache.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		UseTLS:   cfg.RedisUseTLS,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	logger.Info("Redis client initialized successfully")

	stripeService := services.NewStripeService(logger, cfg.StripeSecretKey, cfg.StripeWebhookSecret)
	notifier := services.NewWebhookNotifier(services.WebhookNotifierConfig{
		Logger:      logger,
		Client:      utils.NewHTTPClient(utils.WithClientTimeout(cfg.NotifyTimeout)),
		URL:         cfg.WebhookURL,
		Mentions:    cfg.WebhookMentions,
		MaxRetries:  cfg.NotifyMaxRetries,
		BaseBackoff: cfg.NotifyBaseBackoff,
		MaxBackoff:  cfg.NotifyMaxBackoff,
	})

	// Background event handling outlives the webhook request
	eventsCtx, cancelEvents := context.WithCancel(context.Background())
	processor := services.NewEventProcessor(services.EventProcessorConfig{
		Context:  eventsCtx,
		Logger:   logger,
		Deduper:  cache.NewRedisDeduper(redisClient, "donation:event:"),
		DedupTTL: cfg.EventDedupTTL,
		Notifier: notifier,
	})
	limiter := pkg.NewDistributedLimiter(pkg.RedisCounter{Client: redisClient}, "donation:billing_rate",
		cfg.BillingRateLimit, cfg.BillingRateBurst, time.Minute, logger)

	r := NewRouter(logger, Handlers{
		Base:    handlers.NewBaseHandler(logger),
		Billing: handlers.NewBillingHandler(logger, stripeService),
		Webhook: handlers.NewWebhookHandler(logger, stripeService, processor),
	}, middleware.RateLimit(limiter))

	srv := &http.Server{Addr: fmt.Sprintf(":%s", cfg.Port), Handler: r}

	cleanup := func() {
		done := make(chan struct{})
		go func() {
			processor.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(drainTimeout):
			logger.Warn("abandoning in-flight webhook events")
			cancelEvents()
			<-done
		}
		cancelEvents()
		redisCloser()
	}

	return srv, cleanup, nil
}

// Handlers groups the route handlers mounted by NewRouter.
type Handlers struct {
	Base    *handlers.BaseHandler
	Billing *handlers.BillingHandler
	Webhook *handlers.WebhookHandler
}

// NewRouter builds the Gin engine; billingMiddleware only guards the billing route.
func NewRouter(logger *zap.Logger, h Handlers, billingMiddleware ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"*"}
	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	r.Use(cors.New(corsConfig))

	r.Use(middleware.TraceID())
	r.Use(middleware.AccessLog(logger))
	r.Use(middleware.Metrics("/metrics", "/health"))

	h.Base.RegisterRoutes(r)
	h.Billing.RegisterRoutes(r, billingMiddleware...)
	h.Webhook.RegisterRoutes(r)
	return r
}
