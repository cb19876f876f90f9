// Package config loads YAML configuration for the liftbook binaries.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "github.com/liftbook/liftbook/internal/errors"
)

// Duration wraps time.Duration so YAML values like "15s" parse; plain
// integers are taken as nanoseconds for compatibility.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, perr := time.ParseDuration(s)
		if perr != nil {
			return fmt.Errorf("invalid duration %q: %w", s, perr)
		}
		*d = Duration(parsed)
		return nil
	}
	var n int64
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("invalid duration value: %w", err)
	}
	*d = Duration(n)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// AppConfig configures the local session binary (cmd/app).
type AppConfig struct {
	// DataDir is where the local SQLite slot lives. Default: ./data.
	DataDir string `yaml:"data_dir"`

	// ListenAddr is the local REST/WebSocket address. Default: localhost:8090.
	ListenAddr string `yaml:"listen_addr"`

	// LogLevel is one of debug, info, warn, error. Default: info.
	LogLevel string `yaml:"log_level"`

	Remote RemoteConfig `yaml:"remote"`
	Sync   SyncConfig   `yaml:"sync"`
}

// RemoteConfig points the sync client at the remote endpoint.
type RemoteConfig struct {
	// BaseURL of the remote sync server. Empty disables sync entirely;
	// the app then runs purely offline.
	BaseURL string `yaml:"base_url"`

	// Timeout for a single fetch or push. Default: 30s.
	Timeout Duration `yaml:"timeout"`
}

// SyncConfig tunes the orchestrator.
type SyncConfig struct {
	// Interval between sync cycles. Default: 15s.
	Interval Duration `yaml:"interval"`
}

// ServerConfig configures the remote endpoint binary (cmd/server).
type ServerConfig struct {
	// ListenAddr is the sync endpoint address. Default: :8091.
	ListenAddr string `yaml:"listen_addr"`

	// LogLevel is one of debug, info, warn, error. Default: info.
	LogLevel string `yaml:"log_level"`

	Store StoreConfig `yaml:"store"`
}

// StoreConfig selects the blob store behind the remote slot.
type StoreConfig struct {
	// Backend is one of memory, file, s3. Default: file.
	Backend string `yaml:"backend"`

	// Path is the base directory for the file backend. Default: ./data/remote.
	Path string `yaml:"path"`

	S3 S3Config `yaml:"s3"`
}

// S3Config holds settings for the s3 backend.
type S3Config struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Prefix          string `yaml:"prefix"`
	UsePathStyle    bool   `yaml:"use_path_style"`
}

// LoadApp reads the app config from path. A missing file yields the
// defaults; a file that exists but does not parse is an error.
func LoadApp(path string) (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := loadYAML(path, cfg); err != nil {
		return nil, err
	}

	if cfg.DataDir == "" {
		cfg.DataDir = "./data"
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = envOr("LIFTBOOK_LISTEN_ADDR", "localhost:8090")
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Remote.BaseURL == "" {
		cfg.Remote.BaseURL = os.Getenv("LIFTBOOK_REMOTE_URL")
	}
	if cfg.Remote.Timeout <= 0 {
		cfg.Remote.Timeout = Duration(30 * time.Second)
	}
	if cfg.Sync.Interval <= 0 {
		cfg.Sync.Interval = Duration(15 * time.Second)
	}
	return cfg, nil
}

// LoadServer reads the server config from path with the same
// missing-file semantics as LoadApp.
func LoadServer(path string) (*ServerConfig, error) {
	cfg := &ServerConfig{}
	if err := loadYAML(path, cfg); err != nil {
		return nil, err
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = envOr("LIFTBOOK_SERVER_ADDR", ":8091")
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = "file"
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = "./data/remote"
	}

	switch cfg.Store.Backend {
	case "memory", "file":
	case "s3":
		if cfg.Store.S3.Bucket == "" {
			return nil, apperrors.New(apperrors.ErrConfig, "s3 backend requires store.s3.bucket")
		}
	default:
		return nil, apperrors.New(apperrors.ErrConfig,
			fmt.Sprintf("unknown store backend %q", cfg.Store.Backend))
	}
	return cfg, nil
}

func loadYAML(path string, out interface{}) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return apperrors.Wrap(apperrors.ErrConfig, "failed to read config file", err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return apperrors.Wrap(apperrors.ErrConfig, "failed to parse config file", err)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
