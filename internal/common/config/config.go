// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Scoring ScoringConfig `mapstructure:"scoring"`
	Storage StorageConfig `mapstructure:"storage"`
	Results ResultsConfig `mapstructure:"results"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Wizard  WizardConfig  `mapstructure:"wizard"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// AuthConfig holds settings for the OIDC identity provider (Cognito-style).
type AuthConfig struct {
	TokenURL     string `mapstructure:"token_url"`
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	Scope        string `mapstructure:"scope"`
}

// ScoringConfig holds settings for the remote scoring endpoint.
type ScoringConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Timeout  int    `mapstructure:"timeout"` // milliseconds
}

// StorageConfig holds settings for document uploads. Issuer selects the
// write-credential source: "gateway" for the presigned-URL HTTP endpoint,
// "s3" for signing directly against S3.
type StorageConfig struct {
	Issuer        string `mapstructure:"issuer"`
	GatewayURL    string `mapstructure:"gateway_url"`
	Bucket        string `mapstructure:"bucket"`
	Region        string `mapstructure:"region"`
	PresignExpiry int    `mapstructure:"presign_expiry"` // seconds
	UploadTimeout int    `mapstructure:"upload_timeout"` // milliseconds
}

// ResultsConfig holds settings for the shared result slot and its consumer.
type ResultsConfig struct {
	Backend      string `mapstructure:"backend"`       // "memory" or "redis"
	PollInterval int    `mapstructure:"poll_interval"` // milliseconds
	TTL          int    `mapstructure:"ttl"`           // seconds, redis backend only
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// WizardConfig controls step behavior. Strict mode turns per-step schema
// validation from advisory into gating.
type WizardConfig struct {
	Strict bool `mapstructure:"strict"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func validateConfig(cfg *Config) error {
	if cfg.Scoring.Endpoint == "" {
		return fmt.Errorf("scoring.endpoint is required")
	}
	switch cfg.Storage.Issuer {
	case "gateway":
		if cfg.Storage.GatewayURL == "" {
			return fmt.Errorf("storage.gateway_url is required for the gateway issuer")
		}
	case "s3":
		if cfg.Storage.Bucket == "" {
			return fmt.Errorf("storage.bucket is required for the s3 issuer")
		}
	default:
		return fmt.Errorf("storage.issuer must be \"gateway\" or \"s3\", got %q", cfg.Storage.Issuer)
	}
	switch cfg.Results.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("results.backend must be \"memory\" or \"redis\", got %q", cfg.Results.Backend)
	}
	if cfg.Results.Backend == "redis" && cfg.Redis.Address == "" {
		return fmt.Errorf("redis.address is required for the redis results backend")
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "credit-intake"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.Scoring.Timeout <= 0 {
		cfg.Scoring.Timeout = 30000
	}
	if cfg.Storage.Issuer == "" {
		cfg.Storage.Issuer = "gateway"
	}
	if cfg.Storage.PresignExpiry <= 0 {
		cfg.Storage.PresignExpiry = 900
	}
	if cfg.Storage.UploadTimeout <= 0 {
		cfg.Storage.UploadTimeout = 60000
	}
	if cfg.Results.Backend == "" {
		cfg.Results.Backend = "memory"
	}
	if cfg.Results.PollInterval <= 0 {
		cfg.Results.PollInterval = 1000
	}
	if cfg.Results.TTL <= 0 {
		cfg.Results.TTL = 3600
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}
