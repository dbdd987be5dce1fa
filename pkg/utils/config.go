package utils

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Pricing  PricingConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
	SiteURL string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers      []string
	BookingTopic string
}

type PricingConfig struct {
	PriceCacheTTL time.Duration
	LookupTimeout time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "salon-booking")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("KAFKA_BOOKING_TOPIC", "salon.bookings")
	viper.SetDefault("PRICE_CACHE_TTL_SECONDS", 300)
	viper.SetDefault("PRICE_LOOKUP_TIMEOUT_SECONDS", 5)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
			SiteURL: viper.GetString("SITE_URL"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASS"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Kafka: KafkaConfig{
			// empty KAFKA_BROKERS disables event publishing
			Brokers:      splitList(viper.GetString("KAFKA_BROKERS")),
			BookingTopic: viper.GetString("KAFKA_BOOKING_TOPIC"),
		},
		Pricing: PricingConfig{
			PriceCacheTTL: time.Duration(viper.GetInt("PRICE_CACHE_TTL_SECONDS")) * time.Second,
			LookupTimeout: time.Duration(viper.GetInt("PRICE_LOOKUP_TIMEOUT_SECONDS")) * time.Second,
		},
	}

	return config, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
