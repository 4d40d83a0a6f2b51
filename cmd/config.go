package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// DBConfig is the part of the environment the migrate tool needs.
type DBConfig struct {
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" required:"true"`
	DBSslMode  string `envconfig:"DB_SSLMODE" default:"disable"`
}

type Config struct {
	HTTPPort string `envconfig:"HTTP_PORT" default:"8080"`

	DBConfig
	DBAutoMigrate bool `envconfig:"DB_AUTO_MIGRATE" default:"true"`

	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	QueueEnabled     bool `envconfig:"QUEUE_ENABLED" default:"false"`
	QueueConcurrency int  `envconfig:"QUEUE_CONCURRENCY" default:"10"`

	NotifyWorkers     int `envconfig:"NOTIFY_WORKERS" default:"4"`
	NotifyBuffer      int `envconfig:"NOTIFY_BUFFER" default:"256"`
	NotifyMaxAttempts int `envconfig:"NOTIFY_MAX_ATTEMPTS" default:"5"`

	AuditSchedule string `envconfig:"AUDIT_SCHEDULE" default:"0 * * * * *"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	LogFile  string `envconfig:"LOG_FILE"`

	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"15s"`
}

// LoadConfig reads the environment, after loading envFile when it exists.
func LoadConfig(envFile string) (Config, error) {
	var cfg Config
	if err := process(envFile, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDBConfig reads only the database settings.
func LoadDBConfig(envFile string) (DBConfig, error) {
	var cfg DBConfig
	if err := process(envFile, &cfg); err != nil {
		return DBConfig{}, err
	}
	if err := cfg.validate(); err != nil {
		return DBConfig{}, err
	}
	return cfg, nil
}

func process(envFile string, spec any) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	if err := envconfig.Process("", spec); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

// DSN is the key/value connection string understood by both gorm's postgres
// driver and lib/pq.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// RedisEnabled reports whether idempotency keys and the queue have a Redis to use.
func (c Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

// envconfig's required only checks that a variable is set, so blank values are
// rejected here.
func (c DBConfig) validate() error {
	var errs []error
	if strings.TrimSpace(c.DBUser) == "" {
		errs = append(errs, errors.New("DB_USER must not be empty"))
	}
	if strings.TrimSpace(c.DBName) == "" {
		errs = append(errs, errors.New("DB_NAME must not be empty"))
	}
	return errors.Join(errs...)
}

func (c Config) validate() error {
	errs := []error{c.DBConfig.validate()}
	if strings.TrimSpace(c.JWTSecret) == "" {
		errs = append(errs, errors.New("JWT_SECRET must not be empty"))
	}
	if c.QueueEnabled && !c.RedisEnabled() {
		errs = append(errs, errors.New("QUEUE_ENABLED requires REDIS_ADDR"))
	}
	if c.NotifyWorkers <= 0 {
		errs = append(errs, errors.New("NOTIFY_WORKERS must be positive"))
	}
	if c.NotifyBuffer <= 0 {
		errs = append(errs, errors.New("NOTIFY_BUFFER must be positive"))
	}
	if c.NotifyMaxAttempts <= 0 {
		errs = append(errs, errors.New("NOTIFY_MAX_ATTEMPTS must be positive"))
	}
	return errors.Join(errs...)
}
