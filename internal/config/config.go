package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// MisconfiguredPolicy controls what the mailer does when required SMTP
// settings are absent.
type MisconfiguredPolicy string

const (
	// MisconfiguredLog logs the submission and reports success to the
	// caller, so a forgotten SMTP password does not lose leads.
	MisconfiguredLog MisconfiguredPolicy = "log"
	// MisconfiguredFail reports the send as failed.
	MisconfiguredFail MisconfiguredPolicy = "fail"
)

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Environment string `env:"ENV" envDefault:"development"`
	Port        string `env:"PORT" envDefault:"8080"`
	LogFile     string `env:"LOG_FILE"`

	// CORS
	AllowedOrigins string `env:"ALLOWED_ORIGINS"`

	// Site branding, referenced by email templates only
	SiteName string `env:"SITE_NAME" envDefault:"Portfolio"`
	SiteURL  string `env:"SITE_URL"`

	// SMTP Configuration
	SMTP SMTPConfig

	// Cloudflare Turnstile
	TurnstileSecretKey string `env:"CLOUDFLARE_TURNSTILE_SECRET_KEY"`

	// Rate limiting (per-IP fixed window)
	RateLimitMaxRequests int `env:"RATE_LIMIT_MAX_REQUESTS" envDefault:"5"`
	RateLimitWindowMs    int `env:"RATE_LIMIT_WINDOW_MS" envDefault:"60000"`

	// Bot heuristics
	RobotMinSubmissionTimeMs int `env:"ROBOT_MIN_SUBMISSION_TIME" envDefault:"2000"`
}

// SMTPConfig holds the mail transport settings.
type SMTPConfig struct {
	Host               string              `env:"SMTP_HOST"`
	Port               int                 `env:"SMTP_PORT" envDefault:"587"`
	User               string              `env:"SMTP_USER"`
	Pass               string              `env:"SMTP_PASS"`
	FromEmail          string              `env:"SMTP_FROM_EMAIL"`
	ToEmail            string              `env:"SMTP_TO_EMAIL"`
	Secure             bool                `env:"SMTP_SECURE" envDefault:"false"`
	RejectUnauthorized bool                `env:"SMTP_REJECT_UNAUTHORIZED" envDefault:"true"`
	OnMisconfigured    MisconfiguredPolicy `env:"SMTP_ON_MISCONFIGURED" envDefault:"log"`
}

// Configured reports whether every setting required to actually send
// mail is present.
func (s SMTPConfig) Configured() bool {
	return s.Host != "" && s.Port != 0 && s.User != "" && s.Pass != "" &&
		s.FromEmail != "" && s.ToEmail != ""
}

// MissingSettings lists the absent required SMTP variables for
// operator-facing log lines.
func (s SMTPConfig) MissingSettings() []string {
	var missing []string
	if s.Host == "" {
		missing = append(missing, "SMTP_HOST")
	}
	if s.Port == 0 {
		missing = append(missing, "SMTP_PORT")
	}
	if s.User == "" {
		missing = append(missing, "SMTP_USER")
	}
	if s.Pass == "" {
		missing = append(missing, "SMTP_PASS")
	}
	if s.FromEmail == "" {
		missing = append(missing, "SMTP_FROM_EMAIL")
	}
	if s.ToEmail == "" {
		missing = append(missing, "SMTP_TO_EMAIL")
	}
	return missing
}

// TurnstileEnabled reports whether server-side CAPTCHA verification is
// active. This is the single capability query; components receive its
// result instead of re-reading the environment.
func (c *Config) TurnstileEnabled() bool {
	return c.TurnstileSecretKey != ""
}

// RateLimitWindow returns the fixed window duration.
func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowMs) * time.Millisecond
}

// RobotMinSubmissionTime returns the minimum human submission duration.
func (c *Config) RobotMinSubmissionTime() time.Duration {
	return time.Duration(c.RobotMinSubmissionTimeMs) * time.Millisecond
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	// godotenv never overwrites variables that are already set, so the
	// real environment wins over .env files.
	envLocations := []string{".env"}
	if envName := os.Getenv("ENV"); envName != "" {
		envLocations = append([]string{fmt.Sprintf(".env.%s", envName)}, envLocations...)
	}
	for _, loc := range envLocations {
		if err := godotenv.Load(loc); err == nil {
			break
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.SMTP.OnMisconfigured != MisconfiguredLog && cfg.SMTP.OnMisconfigured != MisconfiguredFail {
		return nil, fmt.Errorf("invalid SMTP_ON_MISCONFIGURED value %q (expected %q or %q)",
			cfg.SMTP.OnMisconfigured, MisconfiguredLog, MisconfiguredFail)
	}

	if cfg.RateLimitMaxRequests < 1 {
		cfg.RateLimitMaxRequests = 5
	}
	if cfg.RateLimitWindowMs < 1 {
		cfg.RateLimitWindowMs = 60000
	}

	// Set default log file if not set
	if cfg.LogFile == "" {
		if cfg.Environment == "production" {
			cfg.LogFile = "/app/logs/api.log"
		} else {
			cfg.LogFile = "./logs/api.log"
		}
	}

	return cfg, nil
}
