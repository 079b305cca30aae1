package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type AWSSettings struct {
	Profile string `mapstructure:"profile"`
	Region  string `mapstructure:"region"`
}

type ServerSettings struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type RemediationSettings struct {
	ApplyConcurrency int `mapstructure:"apply_concurrency"`
}

type Settings struct {
	AWS         AWSSettings         `mapstructure:"aws"`
	Server      ServerSettings      `mapstructure:"server"`
	Remediation RemediationSettings `mapstructure:"remediation"`
	PricingFile string              `mapstructure:"pricing_file"`
}

// LoadSettings reads the service settings file. Missing keys fall back to
// defaults; a missing file is an error.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("aws.profile", "default")
	v.SetDefault("aws.region", "us-east-1")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8000")
	v.SetDefault("remediation.apply_concurrency", 4)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return &settings, nil
}
