// internal/common/config/loader.go
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	apperrors "drivethru/internal/common/errors"
)

func Load() (*Config, error) {
	loadEnvFile()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like NLU_API_KEY
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, apperrors.NewConfigInvalidError(err.Error())
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, apperrors.NewConfigInvalidError(err.Error())
	}

	applyDefaults(&cfg)
	overrideFromEnv(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, apperrors.NewConfigInvalidError(err.Error())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, apperrors.NewConfigInvalidError(err.Error())
	}

	applyDefaults(&cfg)
	overrideFromEnv(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadEnvFile tries the usual .env locations so the binary and the tests
// can both pick up local credentials.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}
	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "drivethru"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.Menu.Dir == "" {
		cfg.Menu.Dir = "./configs/menu"
	}
	if cfg.NLU.Model == "" {
		cfg.NLU.Model = "gpt-4.1-mini"
	}
	if cfg.NLU.MaxRetries == 0 {
		cfg.NLU.MaxRetries = 5
	}
	if cfg.NLU.Timeout == 0 {
		cfg.NLU.Timeout = 60000
	}
	if cfg.Session.TTL == 0 {
		cfg.Session.TTL = 1800
	}
	if cfg.Metrics.Address == "" {
		cfg.Metrics.Address = ":9102"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}

func overrideFromEnv(cfg *Config) {
	if cfg.NLU.APIKey == "" {
		if val := os.Getenv("OPENAI_API_KEY"); val != "" {
			cfg.NLU.APIKey = val
		}
	}
	if cfg.Session.RedisAddress == "" {
		if val := os.Getenv("REDIS_ADDRESS"); val != "" {
			cfg.Session.RedisAddress = val
		}
	}
	if cfg.Session.RedisPassword == "" {
		if val := os.Getenv("REDIS_PASSWORD"); val != "" {
			cfg.Session.RedisPassword = val
		}
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Menu.Dir == "" {
		return apperrors.NewConfigInvalidError("menu.dir is required")
	}
	if cfg.NLU.Model == "" {
		return apperrors.NewConfigInvalidError("nlu.model is required")
	}
	return nil
}

// GetDuration converts milliseconds from config to time.Duration.
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

// SessionTTL converts the configured TTL seconds to a time.Duration.
func SessionTTL(cfg *Config) time.Duration {
	return time.Duration(cfg.Session.TTL) * time.Second
}
