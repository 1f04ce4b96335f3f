package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"MediTrack/reports"
)

// AppConfig holds the application configuration
type AppConfig struct {
	Port           string   `mapstructure:"PORT"`
	Env            string   `mapstructure:"ENV"`
	DBURL          string   `mapstructure:"DB_URL"`
	RedisURL       string   `mapstructure:"REDIS_URL"`
	SymmetricKey   string   `mapstructure:"SYMMETRIC_KEY"`
	LogLevel       string   `mapstructure:"LOG_LEVEL"`
	LogFile        string   `mapstructure:"LOG_FILE"`
	RateLimitRPS   float64  `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int      `mapstructure:"RATE_LIMIT_BURST"`
	CORSOrigins    []string `mapstructure:"-"`

	SBPHigh     int     `mapstructure:"REPORT_SBP_HIGH"`
	DBPHigh     int     `mapstructure:"REPORT_DBP_HIGH"`
	GlucoseHigh float64 `mapstructure:"REPORT_GLUCOSE_HIGH"`
	HbA1cHigh   float64 `mapstructure:"REPORT_HBA1C_HIGH"`
	OverdueDays int     `mapstructure:"OVERDUE_DAYS"`

	SMTPHost string `mapstructure:"SMTP_HOST"`
	SMTPPort int    `mapstructure:"SMTP_PORT"`
	SMTPUser string `mapstructure:"SMTP_USER"`
	SMTPPass string `mapstructure:"SMTP_PASS"`
	SMTPFrom string `mapstructure:"SMTP_FROM"`

	AdminUsername string `mapstructure:"ADMIN_USERNAME"`
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`

	TokenTTL time.Duration `mapstructure:"TOKEN_TTL"`
}

var keys = []string{
	"PORT", "ENV", "DB_URL", "REDIS_URL", "SYMMETRIC_KEY", "LOG_LEVEL", "LOG_FILE",
	"RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "CORS_ORIGINS",
	"REPORT_SBP_HIGH", "REPORT_DBP_HIGH", "REPORT_GLUCOSE_HIGH", "REPORT_HBA1C_HIGH", "OVERDUE_DAYS",
	"SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASS", "SMTP_FROM",
	"ADMIN_USERNAME", "ADMIN_PASSWORD", "TOKEN_TTL",
}

// Load reads the configuration from envFile, if present, and the process
// environment. Environment variables win over the file.
func Load(envFile string) (*AppConfig, error) {
	v := viper.New()
	if envFile == "" {
		envFile = ".env"
	}
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8930")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("RATE_LIMIT_RPS", 15)
	v.SetDefault("RATE_LIMIT_BURST", 30)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("REPORT_SBP_HIGH", reports.DefaultSBPHigh)
	v.SetDefault("REPORT_DBP_HIGH", reports.DefaultDBPHigh)
	v.SetDefault("REPORT_GLUCOSE_HIGH", reports.DefaultGlucoseHigh)
	v.SetDefault("REPORT_HBA1C_HIGH", reports.DefaultHbA1cHigh)
	v.SetDefault("OVERDUE_DAYS", reports.DefaultOverdueDays)
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_PASSWORD", "admin123")
	v.SetDefault("TOKEN_TTL", "24h")

	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	// A missing file is fine, the environment alone is enough.
	_ = v.ReadInConfig()

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.CORSOrigins = splitList(v.GetString("CORS_ORIGINS"))

	return cfg, nil
}

// Validate checks that the configuration is complete enough to serve requests.
func (c *AppConfig) Validate() error {
	if c.DBURL == "" {
		return fmt.Errorf("DB_URL is required")
	}
	if c.RedisURL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}
	if len(c.SymmetricKey) != 32 {
		return fmt.Errorf("SYMMETRIC_KEY must be 32 bytes long, got %d", len(c.SymmetricKey))
	}
	if c.SBPHigh <= 0 || c.DBPHigh <= 0 || c.GlucoseHigh <= 0 || c.HbA1cHigh <= 0 {
		return fmt.Errorf("report thresholds must be positive")
	}
	if c.OverdueDays <= 0 {
		return fmt.Errorf("OVERDUE_DAYS must be positive, got %d", c.OverdueDays)
	}
	return nil
}

// IsDev reports whether the server runs in development mode.
func (c *AppConfig) IsDev() bool {
	return c.Env == "development"
}

// Thresholds returns the default report thresholds.
func (c *AppConfig) Thresholds() reports.Thresholds {
	return reports.Thresholds{
		SBPHigh:     c.SBPHigh,
		DBPHigh:     c.DBPHigh,
		GlucoseHigh: c.GlucoseHigh,
		HbA1cHigh:   c.HbA1cHigh,
	}
}

// ReportConfig is the configuration handed to the report engine.
func (c *AppConfig) ReportConfig() reports.Config {
	return reports.Config{Thresholds: c.Thresholds(), OverdueDays: c.OverdueDays}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
