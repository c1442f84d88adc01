package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string

	HTTPAddr string

	DBType            string
	DBPath            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int

	OpenFoodFactsBaseURL string

	OTLPEndpoint string
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:              getenv("APP_SERVICE", "pantry"),
		AppVersion:           getenv("APP_VERSION", "0.1.0"),
		Environment:          getenv("ENVIRONMENT", "development"),
		HTTPAddr:             getenv("HTTP_ADDR", ":3001"),
		DBType:               getenv("DATABASE_TYPE", "sqlite"),
		DBPath:               getenv("DATABASE_PATH", "kitchen.db"),
		DBHost:               getenv("DATABASE_HOST", "localhost"),
		DBPort:               getenv("DATABASE_PORT", "5432"),
		DBName:               getenv("DATABASE_NAME", "pantry"),
		DBUser:               getenv("DATABASE_USER", "pantry"),
		DBPassword:           getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:            getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:        getenvInt("DATABASE_MAX_IDLE_CONN", 2),
		DBMaxOpenConn:        getenvInt("DATABASE_MAX_OPEN_CONN", 10),
		DBConnMaxLifetime:    getenvInt("DATABASE_CONN_MAX_LIFETIME", 3600),
		OpenFoodFactsBaseURL: getenv("OPENFOODFACTS_BASE_URL", "https://world.openfoodfacts.org"),
		OTLPEndpoint:         getenv("OTLP_ENDPOINT", "localhost:4317"),
	}
}

func getenv(key, def string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return def
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

// Module wires application configuration.
var Module = fx.Module("config",
	fx.Provide(Load),
	fx.Provide(NewEnrichmentConfigHolder),
)
