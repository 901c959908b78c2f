package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/bryanwahyu/rcis/internal/domain/catalog"
)

// Supported database drivers.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Server struct {
		Port        int      `yaml:"port"`
		CORSOrigins []string `yaml:"corsOrigins"`
	} `yaml:"server"`

	Database struct {
		Driver     string `yaml:"driver"`
		Host       string `yaml:"host"`
		Port       int    `yaml:"port"`
		User       string `yaml:"user"`
		Password   string `yaml:"password"`
		Name       string `yaml:"name"`
		SSLMode    string `yaml:"sslMode"`
		Path       string `yaml:"path"` // sqlite file
		AutoCreate bool   `yaml:"autoCreate"`
	} `yaml:"database"`

	Minio struct {
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`

	OpenAI struct {
		APIKey  string `yaml:"apiKey"`
		Model   string `yaml:"model"`
		BaseURL string `yaml:"baseURL"`
	} `yaml:"openai"`

	Slack struct {
		BotToken  string `yaml:"botToken"`
		ChannelID string `yaml:"channelID"`
	} `yaml:"slack"`

	Alerts struct {
		Schedule     string `yaml:"schedule"` // 5-field cron; empty disables
		LookbackDays int    `yaml:"lookbackDays"`
	} `yaml:"alerts"`

	App struct {
		Timezone string `yaml:"timezone"`
		Role     string `yaml:"role"`
	} `yaml:"app"`

	Log struct {
		Level       string `yaml:"level"`
		Development bool   `yaml:"development"`
	} `yaml:"log"`

	Location *time.Location `yaml:"-"` // dari App.Timezone
}

// Load baca file config.yaml. An empty path means CONFIG_PATH or
// ./config.yaml, and a missing default file is not an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = "config.yaml"
		if env := os.Getenv("CONFIG_PATH"); env != "" {
			path, explicit = env, true
		}
	}

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, err
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	envOverride(&c.Database.Driver, "DB_DRIVER")
	envOverride(&c.Database.Host, "DB_HOST")
	envOverride(&c.Database.User, "DB_USER")
	envOverride(&c.Database.Password, "DB_PASSWORD")
	envOverride(&c.Database.Name, "DB_NAME")
	envOverride(&c.Database.Path, "DB_PATH")
	envOverride(&c.Minio.AccessKey, "MINIO_ACCESS_KEY")
	envOverride(&c.Minio.SecretKey, "MINIO_SECRET_KEY")
	envOverride(&c.OpenAI.APIKey, "OPENAI_API_KEY")
	envOverride(&c.OpenAI.Model, "OPENAI_MODEL")
	envOverride(&c.Slack.BotToken, "SLACK_BOT_TOKEN")
	envOverride(&c.Slack.ChannelID, "SLACK_CHANNEL_ID")
	envOverride(&c.Alerts.Schedule, "ALERTS_SCHEDULE")
	envOverride(&c.App.Timezone, "TIMEZONE")
	envOverride(&c.App.Role, "APP_ROLE")
	envOverride(&c.Log.Level, "LOG_LEVEL")
	if err := envOverrideInt(&c.Server.Port, "PORT"); err != nil {
		return err
	}
	return envOverrideInt(&c.Database.Port, "DB_PORT")
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{"*"}
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverSQLite
	}
	if c.Database.Port == 0 {
		switch c.Database.Driver {
		case DriverMySQL:
			c.Database.Port = 3306
		case DriverPostgres:
			c.Database.Port = 5432
		}
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.Path == "" {
		c.Database.Path = "./rcis.db"
	}
	if c.Minio.BucketName == "" {
		c.Minio.BucketName = "rcis-knowledge"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}
	if c.Alerts.LookbackDays == 0 {
		c.Alerts.LookbackDays = 7
	}
	if c.App.Timezone == "" {
		c.App.Timezone = "Local"
	}
	if c.App.Role == "" {
		c.App.Role = catalog.RoleAdmin
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks the knobs that would otherwise fail late, and resolves
// Location.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverMySQL, DriverPostgres:
		if c.Database.Host == "" || c.Database.Name == "" {
			return fmt.Errorf("database.host and database.name are required for driver %q", c.Database.Driver)
		}
	case DriverSQLite:
	default:
		return fmt.Errorf("database.driver must be mysql, postgres or sqlite, got %q", c.Database.Driver)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if !catalog.Contains(catalog.Roles, c.App.Role) {
		return fmt.Errorf("app.role must be Admin or Viewer, got %q", c.App.Role)
	}
	if c.Alerts.LookbackDays < 1 {
		return fmt.Errorf("alerts.lookbackDays must be >= 1, got %d", c.Alerts.LookbackDays)
	}
	if c.Alerts.Schedule != "" {
		sched, err := cron.ParseStandard(c.Alerts.Schedule)
		if err != nil {
			return fmt.Errorf("alerts.schedule %q: %w", c.Alerts.Schedule, err)
		}
		if sched.Next(time.Now()).IsZero() {
			return fmt.Errorf("alerts.schedule %q never fires", c.Alerts.Schedule)
		}
	}
	if strings.EqualFold(c.App.Timezone, "Local") {
		c.Location = time.Local
	} else {
		loc, err := time.LoadLocation(c.App.Timezone)
		if err != nil {
			return fmt.Errorf("invalid timezone %q: %w", c.App.Timezone, err)
		}
		c.Location = loc
	}
	return nil
}

// Helper untuk build DSN MySQL
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// Helper untuk build DSN Postgres (lib/pq key=value form)
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func (c *Config) MinioEnabled() bool  { return c.Minio.Endpoint != "" }
func (c *Config) OpenAIEnabled() bool { return c.OpenAI.APIKey != "" }
func (c *Config) SlackEnabled() bool {
	return c.Slack.BotToken != "" && c.Slack.ChannelID != ""
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func envOverrideInt(field *int, envKey string) error {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", envKey, val, err)
		}
		*field = parsed
	}
	return nil
}
