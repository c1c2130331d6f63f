package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Database struct {
		Driver          string `yaml:"driver" env:"DB_DRIVER"`
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Dashboard DashboardConfig `yaml:"dashboard"`
}

// DashboardConfig holds the access and classification policy knobs.
type DashboardConfig struct {
	// Recognized role names, checked first at system scope, then site-wide.
	AdminRoles   []string `yaml:"admin_roles"`
	TeacherRoles []string `yaml:"teacher_roles"`
	StudentRoles []string `yaml:"student_roles"`

	// Usernames treated as guests; guests never qualify for any view.
	GuestUsers []string `yaml:"guest_users"`

	// AllowUnassignedStudents grants student access to any authenticated
	// non-guest with no recognized role who requests the student view.
	// Deliberately permissive; disable to tighten the access model.
	AllowUnassignedStudents bool `yaml:"allow_unassigned_students" env:"DASHBOARD_ALLOW_UNASSIGNED"`

	// PassThreshold is the grade percentage below which a course counts as
	// not completed (unless all gradable items are graded).
	PassThreshold float64 `yaml:"pass_threshold" env:"DASHBOARD_PASS_THRESHOLD"`

	// CollectPageSize is the fixed page size of the in-memory
	// outstanding-work listings (zero-based pages).
	CollectPageSize int `yaml:"collect_page_size" env:"DASHBOARD_COLLECT_PAGE_SIZE"`

	// Search caps for the attach pickers.
	CourseSearchLimit  int `yaml:"course_search_limit" env:"DASHBOARD_COURSE_SEARCH_LIMIT"`
	DefaultSearchLimit int `yaml:"default_search_limit" env:"DASHBOARD_DEFAULT_SEARCH_LIMIT"`

	Markers MarkerConfig `yaml:"markers"`
}

// MarkerConfig defines the legacy name-substring marker sets used to detect
// gradable items. Every substring in a set must occur (case-insensitive) in
// the item name. An explicit item tag always wins over these.
type MarkerConfig struct {
	ReadingReport []string `yaml:"reading_report"`
	WrittenWork   []string `yaml:"written_work"`
	Exam          []string `yaml:"exam"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// Config file is optional; env vars can carry everything
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		err = yaml.Unmarshal(file, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	// Database defaults
	config.Database.Driver = "postgres"
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "eduboard"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	// JWT defaults
	config.JWT.AccessTokenExpiration = "8h"
	config.JWT.Issuer = "eduboard.local"

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"

	// Dashboard policy defaults mirror the platform's conventional role
	// names and the legacy Russian item-name markers.
	config.Dashboard.AdminRoles = []string{"manager"}
	config.Dashboard.TeacherRoles = []string{"editingteacher", "teacher"}
	config.Dashboard.StudentRoles = []string{"student"}
	config.Dashboard.GuestUsers = []string{"guest"}
	config.Dashboard.AllowUnassignedStudents = true
	config.Dashboard.PassThreshold = 70
	config.Dashboard.CollectPageSize = 25
	config.Dashboard.CourseSearchLimit = 50
	config.Dashboard.DefaultSearchLimit = 100
	config.Dashboard.Markers = MarkerConfig{
		ReadingReport: []string{"отчет", "чтени"},
		WrittenWork:   []string{"письменн"},
		Exam:          []string{"экзамен"},
	}
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return applyEnvOverrides(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Driver == "" {
		return fmt.Errorf("database driver is required")
	}

	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}

	if config.Dashboard.PassThreshold < 0 || config.Dashboard.PassThreshold > 100 {
		return fmt.Errorf("pass threshold must be within 0..100")
	}

	if config.Dashboard.CollectPageSize <= 0 {
		return fmt.Errorf("collect page size must be positive")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}
