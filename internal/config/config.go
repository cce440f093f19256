package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/livp123/shieldevt/internal/metrics"
	"github.com/livp123/shieldevt/internal/stream"
	"github.com/livp123/shieldevt/internal/utils/fileutil"
	"github.com/livp123/shieldevt/internal/utils/logger"
	"github.com/livp123/shieldevt/pkg/errors"
)

// Config is the top-level shieldevt configuration.
// Config 是 shieldevt 的顶层配置。
type Config struct {
	Logging   logger.LoggingConfig `yaml:"logging"`
	Converter ConverterConfig      `yaml:"converter"`
	Follow    FollowConfig         `yaml:"follow"`
	Metrics   MetricsConfig        `yaml:"metrics"`
}

// ConverterConfig controls timestamp derivation and line limits.
// ConverterConfig 控制时间戳派生与行长度限制。
type ConverterConfig struct {
	Timezone     string `yaml:"timezone"`
	MaxLineBytes int    `yaml:"max_line_bytes"`
}

// FollowConfig controls the follow-mode tailer.
// FollowConfig 控制 follow 模式的文件跟踪。
type FollowConfig struct {
	Poll   bool `yaml:"poll"`
	ReOpen bool `yaml:"reopen"`
}

// MetricsConfig controls metrics export after a run.
// MetricsConfig 控制运行结束后的指标导出。
type MetricsConfig struct {
	Enabled         bool   `yaml:"enabled"`
	TextfilePath    string `yaml:"textfile_path"`
	PushGatewayAddr string `yaml:"push_gateway_addr"`
	Job             string `yaml:"job"`
}

// Default returns the built-in configuration.
// Default 返回内置默认配置。
func Default() *Config {
	return &Config{
		Logging: logger.LoggingConfig{
			Enabled:    false,
			Level:      "info",
			Path:       DefaultLogPath,
			MaxSize:    10, // 10MB
			MaxBackups: 3,
			MaxAge:     30, // 30 days
			Compress:   true,
		},
		Converter: ConverterConfig{
			Timezone:     LocalTimezone,
			MaxLineBytes: DefaultMaxLineBytes,
		},
		Follow: FollowConfig{
			Poll:   false,
			ReOpen: true,
		},
		Metrics: MetricsConfig{
			Job: DefaultMetricsJob,
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
// Load 在默认配置之上读取 YAML 文件并校验结果。
func Load(path string) (*Config, error) {
	safePath := filepath.Clean(path) // Sanitize path to prevent directory traversal
	data, err := os.ReadFile(safePath)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", errors.ErrConfigNotFound, path)
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errors.ErrConfigInvalid, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault loads path when given. With an empty path it tries DefaultConfigPath
// and falls back to the built-in defaults when that file does not exist.
// LoadOrDefault 指定路径时加载该文件；路径为空时尝试 DefaultConfigPath，不存在则使用默认配置。
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}

	cfg, err := Load(DefaultConfigPath)
	if stderrors.Is(err, errors.ErrConfigNotFound) {
		return Default(), nil
	}
	return cfg, err
}

// InitFile writes DefaultConfigTemplate to path unless a file already exists there.
// It reports whether the file was created.
// InitFile 在 path 不存在时写入 DefaultConfigTemplate，并返回是否创建了文件。
func InitFile(path string) (bool, error) {
	safePath := filepath.Clean(path)
	if _, err := os.Stat(safePath); err == nil {
		return false, nil
	} else if !stderrors.Is(err, fs.ErrNotExist) {
		return false, err
	}

	if err := fileutil.AtomicWriteFile(safePath, []byte(DefaultConfigTemplate), 0600); err != nil {
		return false, fmt.Errorf("create %s: %w", path, err)
	}
	return true, nil
}

// Validate checks the configuration for errors.
// Validate 检查配置是否存在错误。
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.NewConfigError("logging.level", c.Logging.Level)
	}
	if c.Converter.MaxLineBytes <= 0 {
		return errors.NewConfigError("converter.max_line_bytes", c.Converter.MaxLineBytes)
	}
	if _, err := c.Converter.Location(); err != nil {
		return errors.NewConfigError("converter.timezone", c.Converter.Timezone)
	}
	if c.Metrics.Enabled {
		if c.Metrics.TextfilePath == "" && c.Metrics.PushGatewayAddr == "" {
			return errors.NewConfigError("metrics", "enabled without textfile_path or push_gateway_addr")
		}
		if c.Metrics.Job == "" {
			return errors.NewConfigError("metrics.job", c.Metrics.Job)
		}
	}
	return nil
}

// Location resolves the configured zone. "Local" or empty means time.Local.
// Location 解析配置的时区，"Local" 或空表示 time.Local。
func (c ConverterConfig) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == LocalTimezone {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// FollowOptions converts the follow settings for the stream package.
func (c FollowConfig) FollowOptions() stream.FollowOptions {
	return stream.FollowOptions{Poll: c.Poll, ReOpen: c.ReOpen}
}

// ExportConfig converts the metrics settings for the metrics package.
// Disabled metrics yield an empty export config.
func (c MetricsConfig) ExportConfig() metrics.ExportConfig {
	if !c.Enabled {
		return metrics.ExportConfig{}
	}
	return metrics.ExportConfig{
		TextfilePath:    c.TextfilePath,
		PushGatewayAddr: c.PushGatewayAddr,
		Job:             c.Job,
	}
}
