package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/a8m/envsubst"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Core struct {
		// CompanyId is the tenant identifier that is assumed for requests
		// that do not carry one. It acts as a stand-in until a real identity
		// provider is connected.
		CompanyId string `yaml:"company_id"`
		// UserId is the user identifier that is assumed for requests that do
		// not carry one.
		UserId string `yaml:"user_id"`
	} `yaml:"core"`

	Advanced struct {
		LogLevel  string `yaml:"log_level"`
		LogPretty bool   `yaml:"log_pretty"`
		LogJson   bool   `yaml:"log_json"`
	} `yaml:"advanced"`

	Statistics struct {
		CollectAuditData bool   `yaml:"collect_audit_data"`
		ListeningAddress string `yaml:"listening_address"`
		MetricsEnabled   bool   `yaml:"metrics_enabled"`
	} `yaml:"statistics"`

	Database DatabaseConfig `yaml:"database"`

	Web WebConfig `yaml:"web"`

	Upload UploadConfig `yaml:"upload"`
}

func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Core.CompanyId = "c1"
	cfg.Core.UserId = "1"

	cfg.Advanced.LogLevel = "info"

	cfg.Statistics.CollectAuditData = true
	cfg.Statistics.MetricsEnabled = true
	cfg.Statistics.ListeningAddress = ":8788"

	cfg.Database = DatabaseConfig{
		Type: DatabaseSQLite,
		DSN:  "data/expenses.db",
	}

	cfg.Web = WebConfig{
		RequestLogging:   false,
		ListeningAddress: ":8787",
	}

	cfg.Upload = UploadConfig{
		BasePath:     "data/uploads",
		MaxSizeMB:    10,
		AllowedTypes: []string{"image/jpeg", "image/png", "application/pdf"},
	}

	return cfg
}

// GetConfig returns the configuration, loaded from the YAML file referenced
// by the EXPENSE_PORTAL_CONFIG environment variable (config.yml by default).
// Environment variable references in the file are expanded before parsing.
// A missing config file is not an error, the defaults are used instead.
func GetConfig() (*Config, error) {
	cfg := defaultConfig()

	cfgFileName := "config.yml"
	if envCfgFileName := os.Getenv("EXPENSE_PORTAL_CONFIG"); envCfgFileName != "" {
		cfgFileName = envCfgFileName
	}

	if err := loadConfigFile(cfg, cfgFileName); err != nil {
		if os.IsNotExist(err) {
			slog.Warn("config file not found, using default configuration", "file", cfgFileName)
			cfg.Web.Sanitize()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to load config from yaml: %w", err)
	}

	cfg.Web.Sanitize()

	return cfg, nil
}

func loadConfigFile(cfg any, filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	data, err = envsubst.Bytes(data)
	if err != nil {
		return fmt.Errorf("failed to substitute environment variables: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse yaml: %w", err)
	}

	return nil
}
