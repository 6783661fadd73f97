package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port       string `env:"PORT,        default=8080"`
	Env        string `env:"ENV,         default=development"`
	LogLevel   string `env:"LOG_LEVEL,   default=info"`
	CORSOrigin string `env:"CORS_ORIGIN, default=http://localhost:5173"`
	BodyLimit  string `env:"BODY_LIMIT,  default=16K"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
	Media MediaConfig
}

type AuthConfig struct {
	AccessSecret  string        `env:"ACCESS_TOKEN_SECRET"`
	AccessTTL     time.Duration `env:"ACCESS_TOKEN_TTL,  default=1h"`
	RefreshSecret string        `env:"REFRESH_TOKEN_SECRET"`
	RefreshTTL    time.Duration `env:"REFRESH_TOKEN_TTL, default=240h"`
	// SecureCookies controls the Secure flag on session cookies. Disable only
	// for plain-HTTP local development.
	SecureCookies bool `env:"SECURE_COOKIES, default=true"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=blog_platform"`
}

type RedisConfig struct {
	Addr       string        `env:"REDIS_ADDR, default=localhost:6379"`
	DB         int           `env:"REDIS_DB,   default=0"`
	ListingTTL time.Duration `env:"LISTING_CACHE_TTL, default=30s"`
}

type MediaConfig struct {
	// Folder is the top-level Cloudinary folder for all uploads.
	Folder string `env:"MEDIA_FOLDER, default=blog-platform"`
	// StageDir holds in-flight uploads before they reach Cloudinary.
	StageDir string `env:"UPLOAD_STAGE_DIR, default=./public/temp"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
