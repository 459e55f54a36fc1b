package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	RedisOTPDB       int    `mapstructure:"REDIS_OTP_DB"`
	RedisRateLimitDB int    `mapstructure:"REDIS_RATELIMIT_DB"`
	RedisEventsDB    int    `mapstructure:"REDIS_EVENTS_DB"`
	RedisQueueDB     int    `mapstructure:"REDIS_QUEUE_DB"`

	// Reservation workflow knobs.
	HoldTTLMin        int `mapstructure:"HOLD_TTL_MIN"`
	OTPTTLMin         int `mapstructure:"OTP_TTL_MIN"`
	OTPResendCooldown int `mapstructure:"OTP_RESEND_COOLDOWN_SEC"`
	OTPHourlyCap      int `mapstructure:"OTP_HOURLY_CAP"`
	OTPMaxAttempts    int `mapstructure:"OTP_MAX_ATTEMPTS"`
	SlotLockWaitSec   int `mapstructure:"SLOT_LOCK_WAIT_SEC"`
	ReminderLeadHours int `mapstructure:"REMINDER_LEAD_HOURS"`

	// Outbound SMS gateway.
	SMSGatewayURL   string `mapstructure:"SMS_GATEWAY_URL"`
	SMSGatewayToken string `mapstructure:"SMS_GATEWAY_TOKEN"`

	// Base URL used to build customer-facing manage links.
	ManageBaseURL string `mapstructure:"MANAGE_BASE_URL"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_OTP_DB", 0)
	viper.SetDefault("REDIS_RATELIMIT_DB", 1)
	viper.SetDefault("REDIS_EVENTS_DB", 2)
	viper.SetDefault("REDIS_QUEUE_DB", 3)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("HOLD_TTL_MIN", 10)
	viper.SetDefault("OTP_TTL_MIN", 5)
	viper.SetDefault("OTP_RESEND_COOLDOWN_SEC", 60)
	viper.SetDefault("OTP_HOURLY_CAP", 5)
	viper.SetDefault("OTP_MAX_ATTEMPTS", 3)
	viper.SetDefault("SLOT_LOCK_WAIT_SEC", 2)
	viper.SetDefault("REMINDER_LEAD_HOURS", 24)
	viper.SetDefault("SMS_GATEWAY_URL", "")
	viper.SetDefault("SMS_GATEWAY_TOKEN", "")
	viper.SetDefault("MANAGE_BASE_URL", "http://localhost:3000")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
