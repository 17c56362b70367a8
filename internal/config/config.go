// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone              = "UTC"
	defaultOpeningHour           = 9
	defaultClosingHour           = 22
	defaultOfferExpiryMinutes    = 30
	defaultBookingCompletionCron = "*/5 * * * *"
	defaultWaitlistExpiryCron    = "*/5 * * * *"
	defaultWaitlistCleanupCron   = "0 * * * *"
	defaultEventsTopic           = "courtside.booking-events"
)

type DatabaseConfig struct {
	// Driver must be "sqlite".
	Driver   string `yaml:"driver"`
	Filename string `yaml:"filename"`
}

// BookingConfig controls how booking intervals are interpreted.
type BookingConfig struct {
	// Timezone is the facility's IANA zone. Peak and weekend surcharges and
	// the daily slot grid are evaluated in it.
	Timezone    string `yaml:"timezone"`
	OpeningHour int    `yaml:"opening_hour"`
	ClosingHour int    `yaml:"closing_hour"`
}

type WaitlistConfig struct {
	// OfferExpiryMinutes is how long a notified entry keeps its claim before
	// the expiry job cancels it.
	OfferExpiryMinutes int `yaml:"offer_expiry_minutes"`
}

type SchedulerConfig struct {
	Enabled               bool   `yaml:"enabled"`
	BookingCompletionCron string `yaml:"booking_completion_cron"`
	WaitlistExpiryCron    string `yaml:"waitlist_expiry_cron"`
	WaitlistCleanupCron   string `yaml:"waitlist_cleanup_cron"`
}

type EventsConfig struct {
	// Driver is "log" (default) or "kafka".
	Driver  string   `yaml:"driver"`
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// RateLimitConfig throttles booking and waitlist writes per client.
type RateLimitConfig struct {
	Enabled          bool `yaml:"enabled"`
	WindowSeconds    int  `yaml:"window_seconds"`
	MaxWritesPerIP   int  `yaml:"max_writes_per_ip"`
	MaxWritesPerUser int  `yaml:"max_writes_per_user"`
	// TrustProxy reads the client IP from X-Forwarded-For. Enable only
	// behind a proxy that sets it.
	TrustProxy bool `yaml:"trust_proxy"`
}

type Config struct {
	App struct {
		Name        string `yaml:"name"`
		Environment string `yaml:"environment"`
		Port        int    `yaml:"port"`
		BaseURL     string `yaml:"base_url"`
		SecretKey   string `yaml:"-"` // Loaded from environment
	} `yaml:"app"`

	Database  DatabaseConfig  `yaml:"database"`
	Booking   BookingConfig   `yaml:"booking"`
	Waitlist  WaitlistConfig  `yaml:"waitlist"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Events    EventsConfig    `yaml:"events"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`

	Features struct {
		// EnableDebug turns on debug logging outside development.
		EnableDebug bool `yaml:"enable_debug"`
	} `yaml:"features"`
}

// Load loads both .env and yaml configuration
func Load(configPath string) (*Config, error) {
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	// Load sensitive values from environment
	cfg.App.SecretKey = os.Getenv("APP_SECRET_KEY")
	if brokers := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); brokers != "" {
		cfg.Events.Brokers = strings.Split(brokers, ",")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Parse decodes YAML and fills defaults. It does not validate.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	cfg.Scheduler.Enabled = true
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Booking.Timezone == "" {
		c.Booking.Timezone = defaultTimezone
	}
	if c.Booking.OpeningHour == 0 && c.Booking.ClosingHour == 0 {
		c.Booking.OpeningHour = defaultOpeningHour
		c.Booking.ClosingHour = defaultClosingHour
	}
	if c.Waitlist.OfferExpiryMinutes == 0 {
		c.Waitlist.OfferExpiryMinutes = defaultOfferExpiryMinutes
	}
	if c.Scheduler.BookingCompletionCron == "" {
		c.Scheduler.BookingCompletionCron = defaultBookingCompletionCron
	}
	if c.Scheduler.WaitlistExpiryCron == "" {
		c.Scheduler.WaitlistExpiryCron = defaultWaitlistExpiryCron
	}
	if c.Scheduler.WaitlistCleanupCron == "" {
		c.Scheduler.WaitlistCleanupCron = defaultWaitlistCleanupCron
	}
	if c.Events.Driver == "" {
		c.Events.Driver = "log"
	}
	if c.Events.Topic == "" {
		c.Events.Topic = defaultEventsTopic
	}
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}
	if c.Database.Driver == "" {
		return fmt.Errorf("database driver is required")
	}

	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Filename == "" {
			return fmt.Errorf("database filename is required for sqlite")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Booking.OpeningHour < 0 || c.Booking.ClosingHour > 24 || c.Booking.OpeningHour >= c.Booking.ClosingHour {
		return fmt.Errorf("booking hours must satisfy 0 <= opening_hour < closing_hour <= 24")
	}
	if c.RateLimit.WindowSeconds < 0 || c.RateLimit.MaxWritesPerIP < 0 || c.RateLimit.MaxWritesPerUser < 0 {
		return fmt.Errorf("rate_limit values must be 0 or greater")
	}
	if c.Waitlist.OfferExpiryMinutes < 0 {
		return fmt.Errorf("waitlist offer_expiry_minutes must be 0 or greater")
	}

	for name, expr := range map[string]string{
		"booking_completion_cron": c.Scheduler.BookingCompletionCron,
		"waitlist_expiry_cron":    c.Scheduler.WaitlistExpiryCron,
		"waitlist_cleanup_cron":   c.Scheduler.WaitlistCleanupCron,
	} {
		if _, err := cron.ParseStandard(expr); err != nil {
			return fmt.Errorf("scheduler %s %q is invalid: %w", name, expr, err)
		}
	}

	switch c.Events.Driver {
	case "log":
	case "kafka":
		if len(c.Events.Brokers) == 0 {
			return fmt.Errorf("events brokers are required for kafka")
		}
	default:
		return fmt.Errorf("unsupported events driver: %s", c.Events.Driver)
	}

	return nil
}

// Location resolves the configured booking timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Booking.Timezone)
	if err != nil {
		return nil, fmt.Errorf("booking timezone %q is invalid: %w", c.Booking.Timezone, err)
	}
	return loc, nil
}

// OfferExpiry returns the waitlist offer window as a duration.
func (c *Config) OfferExpiry() time.Duration {
	return time.Duration(c.Waitlist.OfferExpiryMinutes) * time.Minute
}
