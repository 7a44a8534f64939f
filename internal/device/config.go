package device

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/deploymenttheory/go-mbr/internal/types"
)

// Config holds settings for locating the Master Boot Record within an image.
type Config struct {
	SectorOffset    int64  `mapstructure:"sector_offset"`
	SectorSize      int    `mapstructure:"sector_size"`
	OutputFormat    string `mapstructure:"output_format"`
	CreateIfMissing bool   `mapstructure:"create_if_missing"`
}

// DefaultConfig returns the settings used when no config file or environment overrides exist.
func DefaultConfig() *Config {
	return &Config{
		SectorOffset: 0,
		SectorSize:   types.DefaultSectorSize,
		OutputFormat: "table",
	}
}

// LoadConfig loads configuration using Viper. When configFile is empty the
// standard search paths are used; a missing config file is not an error.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("mbr-config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.go-mbr")
		v.AddConfigPath("/etc/go-mbr")
	}

	defaults := DefaultConfig()
	v.SetDefault("sector_offset", defaults.SectorOffset)
	v.SetDefault("sector_size", defaults.SectorSize)
	v.SetDefault("output_format", defaults.OutputFormat)
	v.SetDefault("create_if_missing", defaults.CreateIfMissing)

	// MBR_SECTOR_OFFSET, MBR_OUTPUT_FORMAT, ...
	v.SetEnvPrefix("MBR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the configured values.
func (c *Config) Validate() error {
	if c.SectorOffset < 0 {
		return fmt.Errorf("sector_offset cannot be negative: %d", c.SectorOffset)
	}
	if c.SectorSize <= 0 {
		return fmt.Errorf("sector_size must be positive: %d", c.SectorSize)
	}
	return nil
}
