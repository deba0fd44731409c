package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// MetricsSourceConfig configures the outbound statistics API client
type MetricsSourceConfig struct {
	BaseURL          string `toml:"BaseURL"`
	MetricName       string `toml:"MetricName"`
	Namespace        string `toml:"Namespace"`
	PeriodInSeconds  uint32 `toml:"PeriodInSeconds"`
	TimeoutInSeconds uint32 `toml:"TimeoutInSeconds"`
}

// InstancesConfig configures the instance enumeration client
type InstancesConfig struct {
	BaseURL          string `toml:"BaseURL"`
	PageSize         int    `toml:"PageSize"`
	TimeoutInSeconds uint32 `toml:"TimeoutInSeconds"`
}

// ReportConfig configures the reporting cycle and the reports database
type ReportConfig struct {
	IntervalInSeconds uint32 `toml:"IntervalInSeconds"`
	DBPath            string `toml:"DBPath"`
	RetentionSeconds  int    `toml:"RetentionSeconds"`
}

// Config maps to the config.toml file for the reporting service
type Config struct {
	ServiceName   string              `toml:"ServiceName"`
	ListenAddress string              `toml:"ListenAddress"`
	MetricsSource MetricsSourceConfig `toml:"MetricsSource"`
	Instances     InstancesConfig     `toml:"Instances"`
	Report        ReportConfig        `toml:"Report"`
}

// LoadConfig parses a TOML file into the Config struct
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", filepath, err)
	}

	var cfg Config
	err = toml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	return &cfg, nil
}
