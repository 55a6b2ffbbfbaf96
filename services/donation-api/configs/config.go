package configs

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/nimeshabuddhika/donation-service/pkg/utils"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds application configuration for donation-api.
type Config struct {
	Port                string        `mapstructure:"PORT" validate:"required"`
	StripeSecretKey     string        `mapstructure:"STRIPE_SECRET_KEY" validate:"required"`
	StripeWebhookSecret string        `mapstructure:"STRIPE_WEBHOOK_SECRET" validate:"required"`
	WebhookURL          string        `mapstructure:"WEBHOOK_URL" validate:"required,url"`
	WebhookMentions     string        `mapstructure:"WEBHOOK_MENTIONS"` // role mentions prefixed to every announcement
	RedisAddr           string        `mapstructure:"REDIS_ADDR" validate:"required"`
	RedisPassword       string        `mapstructure:"REDIS_PASSWORD"`
	RedisUseTLS         bool          `mapstructure:"REDIS_USE_TLS"`
	BillingRateLimit    int           `mapstructure:"BILLING_RATE_LIMIT" validate:"min=0"` // requests per second, 0 disables
	BillingRateBurst    int           `mapstructure:"BILLING_RATE_BURST" validate:"min=1"`
	EventDedupTTL       time.Duration `mapstructure:"EVENT_DEDUP_TTL" validate:"required"`
	NotifyMaxRetries    int           `mapstructure:"NOTIFY_MAX_RETRIES" validate:"min=0,max=10"`
	NotifyBaseBackoff   time.Duration `mapstructure:"NOTIFY_BASE_BACKOFF" validate:"required"`
	NotifyMaxBackoff    time.Duration `mapstructure:"NOTIFY_MAX_BACKOFF" validate:"required,gtefield=NotifyBaseBackoff"`
	NotifyTimeout       time.Duration `mapstructure:"NOTIFY_TIMEOUT" validate:"required"` // per delivery attempt
}

func Load(logger *zap.Logger) (*Config, error) {
	viper.SetEnvPrefix("app") // Prefix for env vars
	viper.AutomaticEnv()

	// Default values
	viper.SetDefault("PORT", "3000")
	viper.SetDefault("BILLING_RATE_LIMIT", "5")
	viper.SetDefault("BILLING_RATE_BURST", "10")
	viper.SetDefault("EVENT_DEDUP_TTL", "24h")
	viper.SetDefault("NOTIFY_MAX_RETRIES", "3")
	viper.SetDefault("NOTIFY_BASE_BACKOFF", "500ms")
	viper.SetDefault("NOTIFY_MAX_BACKOFF", "10s")
	viper.SetDefault("NOTIFY_TIMEOUT", "5s")

	// Optional: Read from config.yaml if exists
	if gin.ReleaseMode == gin.Mode() {
		viper.SetConfigName("config.prod")
	} else if gin.TestMode == gin.Mode() {
		logger.Warn("running in test mode")
		viper.SetConfigName("config.test")
	} else {
		logger.Warn("running in development mode")
		viper.SetConfigName("config.dev")
	}
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./services/donation-api/configs")
	_ = viper.ReadInConfig() // Ignore if no file

	var cfg Config
	if err := utils.ParseStructEnv(&cfg); err != nil {
		return nil, err
	}

	// Validate after unmarshal
	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, utils.FormatConfigErrors(logger, err, cfg)
	}
	return &cfg, nil
}
