// Package config loads the service configuration: built-in defaults, then an
// optional YAML file, then a .env file, then environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvAPIKey       = "GEMINI_API_KEY"
	EnvAddr         = "AGRICONNECT_ADDR"
	EnvModel        = "AGRICONNECT_MODEL"
	EnvRedisAddr    = "AGRICONNECT_REDIS_ADDR"
	EnvLogLevel     = "AGRICONNECT_LOG_LEVEL"
	EnvProfilesPath = "AGRICONNECT_PROFILES_PATH"
	EnvStrictPlans  = "AGRICONNECT_STRICT_PLANS"
)

type Config struct {
	Server       ServerConfig      `yaml:"server"`
	AI           AIConfig          `yaml:"ai"`
	Plan         PlanConfig        `yaml:"plan"`
	Cache        CacheConfig       `yaml:"cache"`
	Directory    DirectoryConfig   `yaml:"directory"`
	LoanRequests LoanRequestConfig `yaml:"loan_requests"`
	Data         DataConfig        `yaml:"data"`
	Logging      LoggingConfig     `yaml:"logging"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr" validate:"required"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	RateLimit       int           `yaml:"rate_limit" validate:"gte=0"`
	// PlanRateLimit caps plan requests separately since each one calls the model.
	PlanRateLimit   int           `yaml:"plan_rate_limit" validate:"gte=0"`
	RateWindow      time.Duration `yaml:"rate_window"`
}

type AIConfig struct {
	// APIKey may be empty; plan generation then fails with a configuration error.
	APIKey  string        `yaml:"api_key"`
	Model   string        `yaml:"model" validate:"required"`
	BaseURL string        `yaml:"base_url" validate:"omitempty,url"`
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`
}

type PlanConfig struct {
	Principal        float64 `yaml:"principal" validate:"gt=0"`
	StrictValidation bool    `yaml:"strict_validation"`
}

type CacheConfig struct {
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db" validate:"gte=0"`
	TTL           time.Duration `yaml:"ttl" validate:"gte=0"`
}

type DirectoryConfig struct {
	CurrentUserID string `yaml:"current_user_id" validate:"required"`
}

type LoanRequestConfig struct {
	SubmitDelay time.Duration `yaml:"submit_delay" validate:"gte=0"`
}

type DataConfig struct {
	// ProfilesPath replaces the embedded profile seed when set.
	ProfilesPath string `yaml:"profiles_path"`
}

type LoggingConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `yaml:"json"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimit:       30,
			PlanRateLimit:   5,
			RateWindow:      time.Minute,
		},
		AI: AIConfig{
			Model:   "gemini-2.0-flash",
			Timeout: 30 * time.Second,
		},
		Plan: PlanConfig{
			Principal:        1000,
			StrictValidation: true,
		},
		Cache: CacheConfig{
			TTL: 5 * time.Minute,
		},
		Directory: DirectoryConfig{
			CurrentUserID: "6",
		},
		LoanRequests: LoanRequestConfig{
			SubmitDelay: time.Second,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

var validate = validator.New()

// Load builds the configuration. path may be empty, in which case only the
// defaults, .env and the environment are used.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// loadDotEnv never overrides variables already present in the environment.
func loadDotEnv(file string) error {
	err := godotenv.Load(file)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", file, err)
}

func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(EnvAPIKey); ok {
		cfg.AI.APIKey = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv(EnvModel); v != "" {
		cfg.AI.Model = v
	}
	if v := os.Getenv(EnvRedisAddr); v != "" {
		cfg.Cache.RedisAddr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv(EnvProfilesPath); v != "" {
		cfg.Data.ProfilesPath = v
	}
	if v := os.Getenv(EnvStrictPlans); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvStrictPlans, err)
		}
		cfg.Plan.StrictValidation = strict
	}
	return nil
}
