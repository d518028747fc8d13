package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	SendGrid  SendGridConfig  `yaml:"sendgrid"`
	JWT       JWTConfig       `yaml:"jwt"`
	Frontend  FrontendConfig  `yaml:"frontend"`
	CORS      CORSConfig      `yaml:"cors"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// SendGridConfig contains email delivery settings
type SendGridConfig struct {
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

// JWTConfig contains token settings. Each token purpose is signed with
// its own secret so a leaked invitation link can never stand in for a
// session.
type JWTConfig struct {
	LoginSecret           string `yaml:"login_secret"`
	InvitationSecret      string `yaml:"invitation_secret"`
	ResetSecret           string `yaml:"reset_secret"`
	LoginTokenExpiry      int    `yaml:"login_token_expiry_minutes"`
	InvitationTokenExpiry int    `yaml:"invitation_token_expiry_hours"`
	ResetTokenExpiry      int    `yaml:"reset_token_expiry_minutes"`
}

// FrontendConfig holds the base URL used to build deep links in emails
type FrontendConfig struct {
	BaseURL string `yaml:"base_url"`
}

// CORSConfig lists origins the browser surface may call from
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	SweepExpiredInvitations string `yaml:"sweep_expired_invitations"`
	SweepGraceHours         int    `yaml:"sweep_grace_hours"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Override with environment variables if present
	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// SendGrid
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.SendGrid.APIKey = val
	}
	if val := os.Getenv("SENDGRID_FROM_EMAIL"); val != "" {
		c.SendGrid.FromEmail = val
	}
	if val := os.Getenv("SENDGRID_FROM_NAME"); val != "" {
		c.SendGrid.FromName = val
	}

	// JWT
	if val := os.Getenv("JWT_LOGIN_SECRET"); val != "" {
		c.JWT.LoginSecret = val
	}
	if val := os.Getenv("JWT_INVITATION_SECRET"); val != "" {
		c.JWT.InvitationSecret = val
	}
	if val := os.Getenv("JWT_RESET_SECRET"); val != "" {
		c.JWT.ResetSecret = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Frontend
	if val := os.Getenv("FRONTEND_BASE_URL"); val != "" {
		c.Frontend.BaseURL = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Set defaults for log if not configured
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	// Database validation
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	// SendGrid validation
	if c.SendGrid.APIKey == "" {
		return fmt.Errorf("sendgrid API key is required")
	}
	if c.SendGrid.FromEmail == "" {
		return fmt.Errorf("sendgrid from email is required")
	}

	// JWT validation
	for name, secret := range map[string]string{
		"login":      c.JWT.LoginSecret,
		"invitation": c.JWT.InvitationSecret,
		"reset":      c.JWT.ResetSecret,
	} {
		if secret == "" {
			return fmt.Errorf("JWT %s secret is required", name)
		}
		if len(secret) < 32 {
			return fmt.Errorf("JWT %s secret must be at least 32 characters", name)
		}
	}

	// Frontend validation
	if c.Frontend.BaseURL == "" {
		return fmt.Errorf("frontend base URL is required")
	}

	// Token expiry defaults
	if c.JWT.LoginTokenExpiry == 0 {
		c.JWT.LoginTokenExpiry = 60 // 1 hour
	}
	if c.JWT.InvitationTokenExpiry == 0 {
		c.JWT.InvitationTokenExpiry = 72
	}
	if c.JWT.ResetTokenExpiry == 0 {
		c.JWT.ResetTokenExpiry = 30
	}

	// Scheduler defaults
	if c.Scheduler.SweepExpiredInvitations == "" {
		c.Scheduler.SweepExpiredInvitations = "0 0 3 * * *" // 3 AM UTC
	}
	if c.Scheduler.SweepGraceHours == 0 {
		c.Scheduler.SweepGraceHours = 24
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// LoginTokenTTL returns the login token lifetime as a duration
func (c *Config) LoginTokenTTL() time.Duration {
	return time.Duration(c.JWT.LoginTokenExpiry) * time.Minute
}

// InvitationTokenTTL returns the invitation lifetime as a duration
func (c *Config) InvitationTokenTTL() time.Duration {
	return time.Duration(c.JWT.InvitationTokenExpiry) * time.Hour
}

// ResetTokenTTL returns the password reset token lifetime as a duration
func (c *Config) ResetTokenTTL() time.Duration {
	return time.Duration(c.JWT.ResetTokenExpiry) * time.Minute
}

// SweepGrace returns how long an expired invitation is retained before
// the sweeper deletes it
func (c *Config) SweepGrace() time.Duration {
	return time.Duration(c.Scheduler.SweepGraceHours) * time.Hour
}
