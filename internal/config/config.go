package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/tabcheck/internal/utils"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	envPrefix = "TABCHECK"
	dirName   = ".tabcheck"
)

// Output formats accepted by output_format and --format.
var Formats = []string{"text", "markdown", "json", "html"}

// Global configuration structure.
type Global struct {
	OutputFormat  string `mapstructure:"output_format" yaml:"output_format"`
	LogLevel      string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat     string `mapstructure:"log_format" yaml:"log_format"`
	ServerAddr    string `mapstructure:"server_addr" yaml:"server_addr"`
	MaxInputBytes int64  `mapstructure:"max_input_bytes" yaml:"max_input_bytes"`
	BatchWorkers  int    `mapstructure:"batch_workers" yaml:"batch_workers"`
}

// Defaults returns the configuration used when no file or env overrides a key.
func Defaults() *Global {
	return &Global{
		OutputFormat:  "text",
		LogLevel:      "info",
		LogFormat:     "text",
		ServerAddr:    "127.0.0.1:8080",
		MaxInputBytes: 10 << 20,
		BatchWorkers:  4,
	}
}

// Validate checks values that would otherwise fail later in a confusing way.
func (c *Global) Validate() error {
	if !ValidFormat(c.OutputFormat) {
		return fmt.Errorf("invalid output_format: %s (use %s)", c.OutputFormat, strings.Join(Formats, "|"))
	}
	if c.MaxInputBytes <= 0 {
		return fmt.Errorf("max_input_bytes must be positive, got %d", c.MaxInputBytes)
	}
	if c.BatchWorkers <= 0 {
		return fmt.Errorf("batch_workers must be positive, got %d", c.BatchWorkers)
	}
	if c.ServerAddr == "" {
		return fmt.Errorf("server_addr must not be empty")
	}
	return nil
}

// NormalizeFormat lowercases and trims f and maps the "md" alias to "markdown".
func NormalizeFormat(f string) string {
	f = strings.ToLower(strings.TrimSpace(f))
	if f == "md" {
		return "markdown"
	}
	return f
}

// ValidFormat reports whether f names a supported output format.
func ValidFormat(f string) bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.tabcheck/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, dirName)
		if err := utils.EnsureDir(dir); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Command flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("output_format", d.OutputFormat)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("server_addr", d.ServerAddr)
	v.SetDefault("max_input_bytes", d.MaxInputBytes)
	v.SetDefault("batch_workers", d.BatchWorkers)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, dirName))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	c.OutputFormat = NormalizeFormat(c.OutputFormat)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
