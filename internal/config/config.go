// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
	"github.com/iwvelando/mortgage-calculator/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for mortgage-calculator.
type Configuration struct {
	Server  ServerConfig  `yaml:"server,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
	Rules   RulesConfig   `yaml:"rules,omitempty"`
}

// ServerConfig holds HTTP listener options.
type ServerConfig struct {
	Address     string `yaml:"address,omitempty"`
	MaxBodySize string `yaml:"maxBodySize,omitempty"` // e.g. 64K, 1M
	Version     string `yaml:"version,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// RulesConfig adjusts the insurance program rules.
type RulesConfig struct {
	EnforceInsurableCeiling bool `yaml:"enforceInsurableCeiling,omitempty"`
}

// RuleSet returns the default program rules with the configured adjustments.
func (r RulesConfig) RuleSet() mortgage.RuleSet {
	rules := mortgage.DefaultRules()
	rules.EnforceInsurableCeiling = r.EnforceInsurableCeiling
	return rules
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. A missing file yields the defaults, still subject to
// environment overrides.
func LoadConfiguration(configPath string) (*Configuration, error) {
	if configPath == "" {
		return decode(newViper())
	}

	file, err := os.Open(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return decode(newViper())
	}
	if err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}
	defer file.Close()

	return LoadConfigurationFromReader(file)
}

// LoadConfigurationFromReader loads YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %w", err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("server.address", constants.DefaultServerAddress)
	v.SetDefault("server.maxBodySize", fmt.Sprintf("%d", constants.DefaultMaxBodySizeBytes))
	v.SetDefault("server.version", constants.DefaultVersion)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("rules.enforceInsurableCeiling", false)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	// PORT applies unless MORTGAGE_SERVER_ADDRESS is set.
	if os.Getenv(constants.EnvPrefix+"_SERVER_ADDRESS") == "" {
		if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
			configuration.Server.Address = ":" + port
		}
	}

	if err := validation.ValidateOutputFormat(configuration.Output.Format); err != nil {
		return nil, fmt.Errorf("invalid output configuration: %w", err)
	}

	return &configuration, nil
}
