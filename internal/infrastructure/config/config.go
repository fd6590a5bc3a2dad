package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config is read once at process start and passed down explicitly; nothing
// else in the service reads the environment.
type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// SecretKey and Algorithm drive both session-token signing and the
	// unwrapping of the SMTP app password.
	SecretKey string `env:"SECRET_KEY, required"`
	Algorithm string `env:"ALGORITHM,  default=HS256"`

	// PublicBaseURL is the externally reachable origin used in profile URLs,
	// confirmation links and the post-confirmation redirect.
	PublicBaseURL string `env:"PUBLIC_BASE_URL, default=https://k4d102.p.ssafy.io"`

	Database DatabaseConfig
	Mail     MailConfig
}

type DatabaseConfig struct {
	URL string `env:"DATABASE_URL, default=postgres://localhost:5432/coderun?sslmode=disable"`
}

type MailConfig struct {
	Sender string `env:"SENDER"`
	// AppPassword arrives JWT-wrapped; see mail.UnwrapAppPassword.
	AppPassword string `env:"PW"`
	SMTPHost    string `env:"SMTP_HOST,    default=smtp.gmail.com"`
	SMTPPort    int    `env:"SMTP_PORT,    default=587"`
	Workers     int    `env:"MAIL_WORKERS, default=8"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
