package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	Production = "production"

	DefaultJWTSecret = "super-secret-key"

	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type OperatorOptions struct {
	Email    string `env:"OPERATOR_EMAIL" envDefault:"admin@rebuhr.com"`
	Name     string `env:"OPERATOR_NAME" envDefault:"Admin User"`
	Password string `env:"OPERATOR_PASSWORD" envDefault:"password123"`
	// PasswordHash wins over Password when both are set.
	PasswordHash string `env:"OPERATOR_PASSWORD_HASH"`
}

type DatabaseOptions struct {
	Host       string `env:"DB_HOST" envDefault:"localhost"`
	Port       string `env:"DB_PORT" envDefault:"5432"`
	User       string `env:"DB_USER" envDefault:"postgres"`
	Password   string `env:"DB_PASSWORD" envDefault:"postgres"`
	Name       string `env:"DB_NAME" envDefault:"onboarding"`
	SSLMode    string `env:"DB_SSLMODE" envDefault:"disable"`
	MaxRetries int    `env:"DB_MAX_RETRIES" envDefault:"5"`
}

type FormOptions struct {
	DraftDebounce time.Duration `env:"FORM_DRAFT_DEBOUNCE" envDefault:"1s"`
	DraftInterval time.Duration `env:"FORM_DRAFT_INTERVAL" envDefault:"30s"`
	IdleTTL       time.Duration `env:"FORM_IDLE_TTL" envDefault:"30m"`
}

type ServerOptions struct {
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"development"`
	Port   string `env:"PORT" envDefault:"3000"`

	JWTSecret      string        `env:"JWT_SECRET" envDefault:"super-secret-key"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"168h"`
	OrgEmailDomain string        `env:"ORG_EMAIL_DOMAIN" envDefault:"@rebuhr.com"`

	LoginRateLimit float64 `env:"LOGIN_RATE_LIMIT" envDefault:"1"`
	LoginRateBurst int     `env:"LOGIN_RATE_BURST" envDefault:"5"`

	EmployeeCreateDelay time.Duration `env:"EMPLOYEE_CREATE_DELAY" envDefault:"800ms"`
	EmployeeListDelay   time.Duration `env:"EMPLOYEE_LIST_DELAY" envDefault:"300ms"`
	TablePageSize       int           `env:"TABLE_PAGE_SIZE" envDefault:"10"`

	StorageDriver  string        `env:"STORAGE_DRIVER" envDefault:"memory"`
	RedisAddr      string        `env:"REDIS_ADDR"`
	RedisRetries   int           `env:"REDIS_MAX_RETRIES" envDefault:"5"`
	DraftTTL       time.Duration `env:"DRAFT_TTL" envDefault:"720h"`
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"24h"`

	KafkaBroker        string `env:"KAFKA_BROKER"`
	KafkaEmployeeTopic string `env:"KAFKA_EMPLOYEE_TOPIC" envDefault:"onboarding.employee.created.v1"`
	KafkaRetries       int    `env:"KAFKA_MAX_RETRIES" envDefault:"3"`
	KafkaConsumerGroup string `env:"KAFKA_CONSUMER_GROUP" envDefault:"onboarding-audit"`

	Operator OperatorOptions
	Database DatabaseOptions
	Form     FormOptions
	Server   ServerOptions
}

// Load reads .env files when present and parses the process environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	existing := make([]string, 0, len(envFiles))
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) > 0 {
		if err := godotenv.Load(existing...); err != nil {
			return nil, fmt.Errorf("load env files: %w", err)
		}
	}

	return parse(env.Options{})
}

// FromMap parses the configuration from an explicit environment, ignoring the process one.
func FromMap(environment map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environment})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, Production)
}

func (c *Config) Validate() error {
	var errs []error

	if c.IsProduction() && (c.JWTSecret == "" || c.JWTSecret == DefaultJWTSecret) {
		errs = append(errs, errors.New("JWT_SECRET must be set to a non-default value in production"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET must not be empty"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if c.TablePageSize <= 0 {
		errs = append(errs, errors.New("TABLE_PAGE_SIZE must be positive"))
	}
	if !strings.HasPrefix(c.OrgEmailDomain, "@") {
		errs = append(errs, errors.New("ORG_EMAIL_DOMAIN must start with @"))
	}
	switch c.StorageDriver {
	case StorageMemory, StoragePostgres:
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver))
	}
	if c.EmployeeCreateDelay < 0 || c.EmployeeListDelay < 0 {
		errs = append(errs, errors.New("employee delays must not be negative"))
	}
	if c.Form.DraftDebounce <= 0 || c.Form.DraftInterval <= 0 || c.Form.IdleTTL <= 0 {
		errs = append(errs, errors.New("form timings must be positive"))
	}

	return errors.Join(errs...)
}
