package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Env         string `envconfig:"ENV" default:"production"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	UserBackend string `envconfig:"USER_BACKEND" default:"mongo"`

	PostgresDSN string `envconfig:"POSTGRES_DSN"`
	MongoURI    string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDB     string `envconfig:"MONGO_DB" default:"gyft_app"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// An empty MinioEndpoint disables course archiving.
	MinioEndpoint  string `envconfig:"MINIO_ENDPOINT"`
	MinioAccessKey string `envconfig:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `envconfig:"MINIO_SECRET_KEY"`
	MinioBucket    string `envconfig:"MINIO_BUCKET" default:"course-archives"`
	MinioUseSSL    bool   `envconfig:"MINIO_USE_SSL" default:"false"`

	GatewayURL     string        `envconfig:"GATEWAY_URL" default:"https://gyft-ai-ten.vercel.app/gc"`
	GatewayTimeout time.Duration `envconfig:"GATEWAY_TIMEOUT" default:"30s"`

	SessionTTL   time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	CookieSecure bool          `envconfig:"COOKIE_SECURE" default:"false"`
	BcryptCost   int           `envconfig:"BCRYPT_COST" default:"12"`

	LoginRatePerMinute int `envconfig:"LOGIN_RATE_PER_MINUTE" default:"10"`
	LoginBurst         int `envconfig:"LOGIN_BURST" default:"5"`

	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	switch cfg.UserBackend {
	case "mongo":
	case "postgres":
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("config: USER_BACKEND=postgres requires POSTGRES_DSN")
		}
	default:
		return nil, fmt.Errorf("config: unknown USER_BACKEND %q", cfg.UserBackend)
	}
	return &cfg, nil
}

// ArchiveEnabled reports whether course payloads are kept in object storage.
func (c *Config) ArchiveEnabled() bool {
	return c.MinioEndpoint != ""
}
