package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultConfigPath     = "./config.yaml"
	defaultListenAddr     = ":8080"
	defaultMetaDSN        = "memory://"
	defaultKeyPrefix      = "files"
	defaultDataDir        = "./data"
	defaultS3Region       = "us-east-1"
	defaultMaxUploadBytes = 64 << 20
)

// Поддерживаемые бэкенды блоб-хранилища.
const (
	BackendLocal = "local"
	BackendNode  = "node"
	BackendS3    = "s3"
)

type Config struct {
	ListenAddr     string   `yaml:"listen_addr" json:"listen_addr"`
	MetaDSN        string   `yaml:"meta_dsn" json:"-"`
	Storages       []string `yaml:"storages" json:"storages"`
	Blob           Blob     `yaml:"blob" json:"blob"`
	MaxUploadBytes int64    `yaml:"max_upload_bytes" json:"max_upload_bytes"`

	ReadTimeout     time.Duration `yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" json:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" json:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`

	LogLevel  string `yaml:"log_level" json:"log_level"`
	LogFormat string `yaml:"log_format" json:"log_format"`
}

// Blob описывает выбранный бэкенд блоб-хранилища.
type Blob struct {
	Backend          string `yaml:"backend" json:"backend"`
	KeyPrefix        string `yaml:"key_prefix" json:"key_prefix"`
	DataDir          string `yaml:"data_dir" json:"data_dir"`
	MaxNodeLoadBytes int64  `yaml:"max_node_load_bytes" json:"max_node_load_bytes"`
	S3               S3     `yaml:"s3" json:"s3"`
}

type S3 struct {
	Bucket          string `yaml:"bucket" json:"bucket"`
	Prefix          string `yaml:"prefix" json:"prefix"`
	Region          string `yaml:"region" json:"region"`
	Endpoint        string `yaml:"endpoint" json:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id" json:"-"`
	SecretAccessKey string `yaml:"secret_access_key" json:"-"`
	PathStyle       bool   `yaml:"path_style" json:"path_style"`
}

// Default возвращает конфигурацию со значениями по умолчанию.
func Default() *Config {
	return &Config{
		ListenAddr: defaultListenAddr,
		MetaDSN:    defaultMetaDSN,
		Blob: Blob{
			Backend:   BackendLocal,
			KeyPrefix: defaultKeyPrefix,
			DataDir:   defaultDataDir,
			S3:        S3{Region: defaultS3Region},
		},
		MaxUploadBytes:  defaultMaxUploadBytes,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    5 * time.Minute,
		IdleTimeout:     2 * time.Minute,
		ShutdownTimeout: 15 * time.Second,
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

// Load читает YAML-конфигурацию, применяет ENV-переопределения и возвращает актуальную структуру.
// Отсутствие файла по умолчанию не считается ошибкой: тогда работают дефолты и ENV.
func Load() (*Config, error) {
	path, explicit := os.LookupEnv("CONFIG_PATH")
	if !explicit || path == "" {
		path = defaultConfigPath
	}

	c := Default()
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, err
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Config) applyEnv() error {
	// ENV override
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("META_DSN"); v != "" {
		c.MetaDSN = v
	}
	if v := os.Getenv("STORAGES"); v != "" {
		c.Storages = splitComma(v)
	}
	if v := os.Getenv("BLOB_BACKEND"); v != "" {
		c.Blob.Backend = v
	}
	if v := os.Getenv("BLOB_KEY_PREFIX"); v != "" {
		c.Blob.KeyPrefix = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		c.Blob.DataDir = v
	}
	if v := os.Getenv("S3_BUCKET"); v != "" {
		c.Blob.S3.Bucket = v
	}
	if v := os.Getenv("S3_PREFIX"); v != "" {
		c.Blob.S3.Prefix = v
	}
	if v := os.Getenv("S3_REGION"); v != "" {
		c.Blob.S3.Region = v
	}
	if v := os.Getenv("S3_ENDPOINT"); v != "" {
		c.Blob.S3.Endpoint = v
	}
	if v := os.Getenv("S3_ACCESS_KEY_ID"); v != "" {
		c.Blob.S3.AccessKeyID = v
	}
	if v := os.Getenv("S3_SECRET_ACCESS_KEY"); v != "" {
		c.Blob.S3.SecretAccessKey = v
	}
	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("MAX_UPLOAD_BYTES: %w", err)
		}
		c.MaxUploadBytes = n
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}

	return nil
}

// Validate проверяет согласованность настроек выбранного бэкенда.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.MetaDSN) == "" {
		return errors.New("meta_dsn is not configured")
	}
	if c.MaxUploadBytes <= 0 {
		return errors.New("max_upload_bytes must be > 0")
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}

	switch c.Blob.Backend {
	case BackendLocal:
		if strings.TrimSpace(c.Blob.DataDir) == "" {
			return errors.New("blob.data_dir is required for the local backend")
		}
	case BackendNode:
		if len(c.Storages) == 0 {
			return errors.New("storages are required for the node backend")
		}
	case BackendS3:
		if strings.TrimSpace(c.Blob.S3.Bucket) == "" {
			return errors.New("blob.s3.bucket is required for the s3 backend")
		}
	default:
		return fmt.Errorf("unknown blob backend %q", c.Blob.Backend)
	}

	return nil
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(c *Config) *slog.Logger {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if c.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

func splitComma(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}
