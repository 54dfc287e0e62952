package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	CacheNone     = "none"
	CacheInMemory = "inmemory"
	CacheRedis    = "redis"
)

var ErrInvalidEnv = errors.New("invalid environment")

type Env struct {
	AppPort        int           `envconfig:"APP_PORT"        default:"8080"`
	GinMode        string        `envconfig:"GIN_MODE"        default:"release"`
	LogLevel       string        `envconfig:"LOG_LEVEL"       default:"info"`
	Storage        string        `envconfig:"STORAGE"         default:"memory"`
	DBHost         string        `envconfig:"DB_HOST"         default:"localhost"`
	DBPort         int           `envconfig:"DB_PORT"         default:"5432"`
	DBName         string        `envconfig:"DB_NAME"         default:"urls"`
	DBUser         string        `envconfig:"DB_USER"         default:"postgres"`
	DBPassword     string        `envconfig:"DB_PASSWORD"     default:"postgres"`
	CacheEngine    string        `envconfig:"CACHE_ENGINE"    default:"none"`
	CacheHost      string        `envconfig:"CACHE_HOST"      default:"localhost"`
	CachePort      int           `envconfig:"CACHE_PORT"      default:"6379"`
	CacheTTL       time.Duration `envconfig:"CACHE_TTL"       default:"1h"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
}

func Process() (env Env, err error) {
	if err = envconfig.Process("", &env); err != nil {
		return
	}
	err = env.validate()
	return
}

func (e Env) validate() error {
	switch e.Storage {
	case StorageMemory, StoragePostgres:
	default:
		return fmt.Errorf("%w: unknown STORAGE %q", ErrInvalidEnv, e.Storage)
	}
	switch e.CacheEngine {
	case CacheNone, CacheInMemory, CacheRedis:
	default:
		return fmt.Errorf("%w: unknown CACHE_ENGINE %q", ErrInvalidEnv, e.CacheEngine)
	}
	if e.RequestTimeout <= 0 {
		return fmt.Errorf("%w: REQUEST_TIMEOUT must be positive", ErrInvalidEnv)
	}
	// zero keeps cache entries until they are invalidated
	if e.CacheTTL < 0 {
		return fmt.Errorf("%w: CACHE_TTL must not be negative", ErrInvalidEnv)
	}
	return nil
}
