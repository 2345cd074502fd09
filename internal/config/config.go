// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/acereserve/acereserve/internal/loyalty"
	"github.com/acereserve/acereserve/internal/models"
	"github.com/acereserve/acereserve/internal/pricing"
)

type DatabaseConfig struct {
	Filename string `yaml:"filename"`
}

// BookingConfig carries the reservation rule parameters that must stay
// injectable: the lighting start hour and the completion sweep cadence.
type BookingConfig struct {
	LightingStartHour int    `yaml:"lighting_start_hour"`
	CompletionCron    string `yaml:"completion_cron"`
}

type Config struct {
	App struct {
		Name        string `yaml:"name"`
		Environment string `yaml:"environment"`
		Port        int    `yaml:"port"`
	} `yaml:"app"`

	Database DatabaseConfig `yaml:"database"`
	Booking  BookingConfig  `yaml:"booking"`
	Pricing  pricing.Rates  `yaml:"pricing"`
	Loyalty  loyalty.Program `yaml:"loyalty"`
}

// Load loads both .env and yaml configuration. Pricing and loyalty tables
// default to the standard catalogue when the file omits them.
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Default returns the configuration with the standard rates, thresholds, and
// booking rules filled in.
func Default() *Config {
	cfg := &Config{}
	cfg.App.Name = "acereserve"
	cfg.App.Environment = "development"
	cfg.App.Port = 8080
	cfg.Database.Filename = "data/acereserve.db"
	cfg.Booking.LightingStartHour = 19
	cfg.Booking.CompletionCron = "*/15 * * * *"
	cfg.Pricing = pricing.DefaultRates()
	cfg.Loyalty = loyalty.DefaultProgram()
	return cfg
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}
	if c.Database.Filename == "" {
		return fmt.Errorf("database filename is required")
	}
	if c.Booking.LightingStartHour < 0 || c.Booking.LightingStartHour > 23 {
		return fmt.Errorf("lighting start hour must be within 0-23")
	}
	if c.Loyalty.PointsPerHour < 0 {
		return fmt.Errorf("points per hour must not be negative")
	}
	thresholds := c.Loyalty.Thresholds
	if !(thresholds.Silver < thresholds.Gold && thresholds.Gold < thresholds.Platinum) {
		return fmt.Errorf("loyalty thresholds must be strictly ascending")
	}
	for tier, bp := range c.Pricing.DiscountBasisPoints {
		if bp < 0 || bp > 10000 {
			return fmt.Errorf("discount for tier %s out of range: %d basis points", tier, bp)
		}
	}
	if _, ok := c.Pricing.DiscountBasisPoints[models.TierBeginner]; len(c.Pricing.DiscountBasisPoints) > 0 && !ok {
		return fmt.Errorf("discount table must include the beginner tier")
	}
	return nil
}
