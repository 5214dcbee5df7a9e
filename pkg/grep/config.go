package grep

import (
	"os"
	"runtime"

	"github.com/spf13/viper"
)

// Config carries the tool-level options around the core compiler:
// nothing in here changes what a pattern means except IgnoreCase.
type Config struct {
	IgnoreCase    bool   `mapstructure:"ignore_case"`
	Workers       int    `mapstructure:"workers"`
	LogLevel      string `mapstructure:"log_level"`
	LogDB         string `mapstructure:"log_db"`
	ListenAddress string `mapstructure:"listen_address"`
}

func DefaultConfig() *Config {
	return &Config{
		Workers:       runtime.NumCPU(),
		LogLevel:      "info",
		ListenAddress: ":7743",
	}
}

// LoadConfig loads configuration from file and environment, in that
// order of precedence. Flag overrides are applied by the CLI layer.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName("regrep")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/regrep/")
	v.AddConfigPath("$HOME/.regrep")
	v.SetEnvPrefix("REGREP")
	v.AutomaticEnv()

	// Registering defaults also makes env-only keys visible to Unmarshal.
	v.SetDefault("ignore_case", cfg.IgnoreCase)
	v.SetDefault("workers", cfg.Workers)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("log_db", cfg.LogDB)
	v.SetDefault("listen_address", cfg.ListenAddress)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// No config file is fine; defaults and env apply.
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	// Bare IGNORE_CASE in the environment also switches folding on.
	if _, ok := os.LookupEnv("IGNORE_CASE"); ok {
		cfg.IgnoreCase = true
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return cfg, nil
}
