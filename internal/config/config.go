package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment  DeploymentConfig  `validate:"required"`
	Server      ServerConfig      `validate:"required"`
	Logging     LoggingConfig     `validate:"required"`
	Postgres    PostgresConfig    `validate:"required"`
	Billing     BillingConfig     `validate:"required"`
	Integration IntegrationConfig `validate:"required"`
}

type DeploymentConfig struct {
	Mode string `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level string `validate:"required"`
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// BillingConfig holds pricing-engine reference values.
type BillingConfig struct {
	// ReferenceLevelID is the fixed level at which tax-rate allocations are
	// read, regardless of the level the purchase was made at.
	ReferenceLevelID string `validate:"required"`
}

// IntegrationConfig holds the base URLs and timeouts of the external
// collaborators the billing core calls synchronously.
type IntegrationConfig struct {
	Payment   CollaboratorConfig `validate:"required"`
	Agreement CollaboratorConfig `validate:"required"`
	Invoicing CollaboratorConfig `validate:"required"`
}

type CollaboratorConfig struct {
	BaseURL string        `validate:"required"`
	Timeout time.Duration `validate:"required"`
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/memberly")

	// Set up environment variables support
	v.SetEnvPrefix("MEMBERLY")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	v.SetDefault("deployment.mode", "local")
	v.SetDefault("logging.level", "info")
	v.SetDefault("billing.referencelevelid", "level_root")
	v.SetDefault("integration.payment.timeout", 30*time.Second)
	v.SetDefault("integration.agreement.timeout", 30*time.Second)
	v.SetDefault("integration.invoicing.timeout", 30*time.Second)

	// Read config file if exists
	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// and for tests that never reach the database or the collaborators.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: "local"},
		Logging:    LoggingConfig{Level: "debug"},
		Billing:    BillingConfig{ReferenceLevelID: "level_root"},
		Integration: IntegrationConfig{
			Payment:   CollaboratorConfig{BaseURL: "http://localhost:8081", Timeout: 30 * time.Second},
			Agreement: CollaboratorConfig{BaseURL: "http://localhost:8082", Timeout: 30 * time.Second},
			Invoicing: CollaboratorConfig{BaseURL: "http://localhost:8083", Timeout: 30 * time.Second},
		},
	}
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}
