// Package config provides configuration loading for fngate.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// InitViper initializes Viper with the configuration file and environment
// variables. If configFile is empty, fngate.yaml/.yml is searched in
// standard locations; running with no file at all is supported.
func InitViper(configFile string) {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else if found := findConfigFile(); found != "" {
		viper.SetConfigFile(found)
	} else {
		// No config file in any standard location. Set name/type without
		// search paths so ReadInConfig returns ConfigFileNotFoundError,
		// which callers handle gracefully.
		viper.SetConfigName("fngate")
		viper.SetConfigType("yaml")
	}

	// Environment variable support: FNGATE_SERVER_PORT, FNGATE_AUTH_TOKEN, ...
	viper.SetEnvPrefix("FNGATE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	bindNestedEnvKeys()
}

// findConfigFile searches standard locations for fngate.yaml or fngate.yml.
func findConfigFile() string {
	home, _ := os.UserHomeDir()
	paths := []string{
		".",
		filepath.Join(home, ".fngate"),
		"/etc/fngate",
	}
	for _, dir := range paths {
		for _, ext := range []string{".yaml", ".yml"} {
			path := filepath.Join(dir, "fngate"+ext)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// bindNestedEnvKeys binds config keys for environment variable support.
// The auth token and port additionally honor their bare deployment names,
// INTERNAL_AUTH_TOKEN and PORT, which take effect when the FNGATE_-prefixed
// variants are unset.
func bindNestedEnvKeys() {
	_ = viper.BindEnv("server.port", "FNGATE_SERVER_PORT", "PORT")
	_ = viper.BindEnv("server.log_level", "FNGATE_SERVER_LOG_LEVEL")

	_ = viper.BindEnv("auth.token", "FNGATE_AUTH_TOKEN", "INTERNAL_AUTH_TOKEN")

	_ = viper.BindEnv("audit.output")
	_ = viper.BindEnv("audit.channel_size")
	_ = viper.BindEnv("audit.batch_size")
	_ = viper.BindEnv("audit.flush_interval")
	_ = viper.BindEnv("audit.send_timeout")
	_ = viper.BindEnv("audit.warning_threshold")

	_ = viper.BindEnv("telemetry.trace_enabled")
}

// LoadConfig reads the configuration file, applies environment overrides and
// defaults, validates, and returns the Config.
func LoadConfig() (*Config, error) {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - continue with env vars only.
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// ConfigFileUsed returns the path of the loaded configuration file, or empty
// when running on environment variables alone.
func ConfigFileUsed() string {
	return viper.ConfigFileUsed()
}
