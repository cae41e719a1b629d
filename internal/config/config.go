package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App    AppConfig
	Server ServerConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	JWT    JWTConfig
	Upload UploadConfig
}

type AppConfig struct {
	Env string `env:"APP_ENV" envDefault:"production"`
}

func (c AppConfig) Development() bool { return c.Env == "development" }

type ServerConfig struct {
	Port            int           `env:"SERVER_PORT" envDefault:"8003"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5173"`
}

type MongoConfig struct {
	URI      string `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	Database string `env:"MONGODB_DATABASE" envDefault:"boldserve"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type JWTConfig struct {
	Secret     string        `env:"JWT_SECRET" envDefault:"your_jwt_secret_key"`
	Expiration time.Duration `env:"JWT_EXPIRATION" envDefault:"24h"`
}

type UploadConfig struct {
	Dir       string `env:"UPLOAD_DIR" envDefault:"uploads"`
	MaxImages int    `env:"UPLOAD_MAX_IMAGES" envDefault:"6"`
}

func Load() (*Config, error) {
	// Best effort; the real environment wins over the file.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
