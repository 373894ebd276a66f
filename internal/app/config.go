package app

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Constants
const (
	DefaultTablesDir = "tables"
	TablesExt        = ".csv"
	TmpSuffix        = ".tmp"
	FilePermissions  = 0644
	DirPermissions   = 0755

	// Error messages
	ErrInvalidYear    = "Invalid year"
	ErrInvalidMonth   = "Invalid month"
	ErrInvalidFormat  = "Invalid format"
	ErrInvalidTime    = "Invalid reminder time"
	ErrInternalServer = "Internal server error"
	ErrFailedToSave   = "Failed to save table"
	ErrTableNotFound  = "Table not found"
	ErrTooManyReqs    = "Too many requests"
	ErrUnauthorized   = "Unauthorized"

	// Mode strings
	ModeShell = "shell"
	ModeServe = "serve"

	// ICS constants
	ICSProductID = "-//Palgapaev//Payday Calendar//EN"
	ICSTimezone  = "Europe/Tallinn"
	ICSDomain    = "payday-calendar.local"
)

// Config holds runtime settings read from the environment and an optional YAML file
type Config struct {
	TablesDir string `yaml:"tables_dir" env:"TABLES_DIR" env-default:"tables" env-description:"directory for saved CSV tables"`
	AuthFile  string `yaml:"auth_file" env:"AUTH_FILE" env-description:"username:argon2id-hash file protecting write endpoints"`
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT" env-default:"console"`
	HTTP      HTTP   `yaml:"http"`
}

// HTTP holds the serve mode settings
type HTTP struct {
	Addr         string        `yaml:"addr" env:"HTTP_ADDR" env-default:":8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	RateLimit    float64       `yaml:"rate_limit" env:"RATE_LIMIT" env-default:"5"`
	RateBurst    int           `yaml:"rate_burst" env:"RATE_BURST" env-default:"10"`
}

// LoadConfig reads the YAML file named by CONFIG_PATH (if set) and then the environment
func LoadConfig() (*Config, error) {
	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("cannot read environment: %w", err)
		}
		return &cfg, nil
	}

	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("config file %s: %w", configPath, err)
	}
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}
	return &cfg, nil
}

// ConfigUsage returns the environment variable help text
func ConfigUsage() string {
	text, err := cleanenv.GetDescription(&Config{}, nil)
	if err != nil {
		return ""
	}
	return text
}
