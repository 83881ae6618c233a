// Package config загружает и проверяет настройки процесса из окружения.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

type Config struct {
	Port        string `validate:"required,numeric"`
	DatabaseURL string `validate:"required"`
	RedisURL    string `validate:"required"`
	LogLevel    string `validate:"required,oneof=debug info warning error"`

	// AllowedOrigins origin браузеров, которым открыта live-лента
	AllowedOrigins []string `validate:"required,min=1,dive,url"`

	JWT       JWT
	Superuser Superuser
	Storage   Storage

	BcryptCost int `validate:"required,min=4,max=31"`
}

type JWT struct {
	Secret string        `validate:"required,min=16"`
	TTL    time.Duration `validate:"required,gt=0"`
}

// Superuser учётная запись вне таблицы пользователей
type Superuser struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type Storage struct {
	Driver     string `validate:"required,oneof=local s3"`
	UploadsDir string `validate:"required_if=Driver local"`

	S3Bucket       string `validate:"required_if=Driver s3"`
	S3Region       string `validate:"required_if=Driver s3"`
	S3BaseEndpoint string `validate:"required_if=Driver s3"`
	S3AccessKey    string `validate:"required_if=Driver s3"`
	S3SecretKey    string `validate:"required_if=Driver s3"`
}

// Load читает .env.local/.env (если есть) и переменные окружения
func Load() (*Config, error) {
	if err := godotenv.Load(".env.local"); err != nil {
		_ = godotenv.Load()
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup собирает конфигурацию через произвольный источник значений
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key string) string {
		v, _ := lookup(key)
		return v
	}

	cfg := &Config{
		Port:        get("PORT"),
		DatabaseURL: get("DATABASE_URL"),
		RedisURL:    get("REDIS_URL"),
		LogLevel:    get("LOG_LEVEL"),
		JWT: JWT{
			Secret: get("JWT_SECRET"),
		},
		Superuser: Superuser{
			Username: get("SUPERUSER_USERNAME"),
			Password: get("SUPERUSER_PASSWORD"),
		},
		Storage: Storage{
			Driver:         get("STORAGE_DRIVER"),
			UploadsDir:     get("UPLOADS_DIR"),
			S3Bucket:       get("S3_BUCKET"),
			S3Region:       get("S3_REGION"),
			S3BaseEndpoint: get("S3_BASE_ENDPOINT"),
			S3AccessKey:    get("S3_ACCESS_KEY"),
			S3SecretKey:    get("S3_SECRET_KEY"),
		},
	}

	if raw := get("ALLOWED_ORIGINS"); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}

	if raw := get("JWT_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, errors.Wrap(err, "JWT_TTL")
		}
		cfg.JWT.TTL = ttl
	}

	if raw := get("BCRYPT_COST"); raw != "" {
		cost, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.Wrap(err, "BCRYPT_COST")
		}
		cfg.BcryptCost = cost
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	return nil
}

func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}
