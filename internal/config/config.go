package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the form service
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	JWT       JWTConfig       `yaml:"jwt"`
	Logger    LoggerConfig    `yaml:"logger"`
	Forms     FormsConfig     `yaml:"forms"`
	Artifacts ArtifactsConfig `yaml:"artifacts"`
	S3        S3Config        `yaml:"s3"`
	Notifier  NotifierConfig  `yaml:"notifier"`
}

type ServerConfig struct {
	Port            string        `yaml:"port"`
	Mode            string        `yaml:"mode"`
	BasePath        string        `yaml:"base_path"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// AllowedOrigins limits CORS; empty reflects any origin
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type DatabaseConfig struct {
	URL             string        `yaml:"url"`
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	DBName          string        `yaml:"dbname"`
	SSLMode         string        `yaml:"sslmode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
}

type LoggerConfig struct {
	Level string `yaml:"level"`
}

// FormsConfig replaces the plugin-wide settings the render and save paths read.
type FormsConfig struct {
	SubmissionEndpoint string `yaml:"submission_endpoint"`
	IDSuffix           string `yaml:"id_suffix"`
	DefaultSiteID      uint   `yaml:"default_site_id"`
	SigningSecret      string `yaml:"signing_secret"`
	RecaptchaPublicKey string `yaml:"recaptcha_public_key"`
	RecaptchaVersion   string `yaml:"recaptcha_version"`
	RecaptchaScriptURL string `yaml:"recaptcha_script_url"`
	ListAssetName      string `yaml:"list_asset_name"`
	SubmitLabel        string `yaml:"submit_label"`
	// CSRFEnabled issues a double-submit token with rendered post forms and requires it on send
	CSRFEnabled bool `yaml:"csrf_enabled"`
}

type ArtifactsConfig struct {
	Backend     string        `yaml:"backend"`
	TempDir     string        `yaml:"temp_dir"`
	MaxAge      time.Duration `yaml:"max_age"`
	CleanupSpec string        `yaml:"cleanup_spec"`
	S3Prefix    string        `yaml:"s3_prefix"`
}

type S3Config struct {
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// NotifierConfig points at the service that mails submissions to a form's recipients.
// An empty BaseURL disables delivery.
type NotifierConfig struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8000",
			Mode:            "debug",
			BasePath:        "/api",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            "5432",
			User:            "postgres",
			DBName:          "forms",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Redis: RedisConfig{
			CacheTTL: 10 * time.Minute,
		},
		Logger: LoggerConfig{
			Level: "info",
		},
		Forms: FormsConfig{
			SubmissionEndpoint: "/forms/send",
			IDSuffix:           "form",
			DefaultSiteID:      1,
			RecaptchaVersion:   "2",
			RecaptchaScriptURL: "https://www.google.com/recaptcha/api.js",
			ListAssetName:      "list-field",
			SubmitLabel:        "Send",
		},
		Artifacts: ArtifactsConfig{
			Backend:     "local",
			TempDir:     os.TempDir(),
			MaxAge:      24 * time.Hour,
			CleanupSpec: "@every 1h",
			S3Prefix:    "exports",
		},
		Notifier: NotifierConfig{
			Timeout: 5 * time.Second,
		},
	}
}

// Load reads the yaml file at path (if it exists) over the defaults and applies env overrides
func Load(path string) (*Config, error) {
	cfg := Default()

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Port = port
	}
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		c.Server.Mode = mode
	}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		c.Server.AllowedOrigins = strings.Split(origins, ",")
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Logger.Level = level
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		c.Database.URL = dbURL
	}
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		c.Redis.URL = redisURL
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		c.JWT.Secret = secret
	}
	if secret := os.Getenv("SIGNING_SECRET"); secret != "" {
		c.Forms.SigningSecret = secret
	}
	if key := os.Getenv("RECAPTCHA_PUBLIC_KEY"); key != "" {
		c.Forms.RecaptchaPublicKey = key
	}
	if version := os.Getenv("RECAPTCHA_VERSION"); version != "" {
		c.Forms.RecaptchaVersion = version
	}
	if csrf := os.Getenv("CSRF_ENABLED"); csrf != "" {
		if enabled, err := strconv.ParseBool(csrf); err == nil {
			c.Forms.CSRFEnabled = enabled
		}
	}
	if siteID := os.Getenv("DEFAULT_SITE_ID"); siteID != "" {
		if id, err := strconv.ParseUint(siteID, 10, 64); err == nil {
			c.Forms.DefaultSiteID = uint(id)
		}
	}
	if backend := os.Getenv("ARTIFACT_BACKEND"); backend != "" {
		c.Artifacts.Backend = backend
	}
	if dir := os.Getenv("ARTIFACT_TEMP_DIR"); dir != "" {
		c.Artifacts.TempDir = dir
	}
	if notifierURL := os.Getenv("NOTIFIER_URL"); notifierURL != "" {
		c.Notifier.BaseURL = notifierURL
	}
	if apiKey := os.Getenv("INTERNAL_API_KEY"); apiKey != "" {
		c.Notifier.APIKey = apiKey
	}
	if bucket := os.Getenv("S3_BUCKET"); bucket != "" {
		c.S3.Bucket = bucket
	}
	if region := os.Getenv("S3_REGION"); region != "" {
		c.S3.Region = region
	}
	if endpoint := os.Getenv("S3_ENDPOINT"); endpoint != "" {
		c.S3.Endpoint = endpoint
	}
	if accessKey := os.Getenv("S3_ACCESS_KEY"); accessKey != "" {
		c.S3.AccessKey = accessKey
	}
	if secretKey := os.Getenv("S3_SECRET_KEY"); secretKey != "" {
		c.S3.SecretKey = secretKey
	}
}

// Validate checks the keys the service cannot start without
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}
	if c.Forms.SubmissionEndpoint == "" {
		return fmt.Errorf("forms.submission_endpoint is required")
	}
	switch c.Artifacts.Backend {
	case "local":
		if c.Artifacts.TempDir == "" {
			return fmt.Errorf("artifacts.temp_dir is required for the local backend")
		}
	case "s3":
		if c.S3.Bucket == "" || c.S3.Region == "" {
			return fmt.Errorf("s3.bucket and s3.region are required for the s3 backend")
		}
	default:
		return fmt.Errorf("unknown artifacts.backend %q", c.Artifacts.Backend)
	}
	return nil
}

// GetDSN returns the postgres connection string
func (d DatabaseConfig) GetDSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// SigningKey falls back to the JWT secret when no dedicated redirect signing secret is set
func (c *Config) SigningKey() string {
	if c.Forms.SigningSecret != "" {
		return c.Forms.SigningSecret
	}
	return c.JWT.Secret
}
