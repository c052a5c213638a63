package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// SourceConfig holds the upstream open-data API configuration
type SourceConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	ResourceID  string        `mapstructure:"resource_id"`
	APIKey      string        `mapstructure:"api_key"`
	PageLimit   int           `mapstructure:"page_limit"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
}

// IngestConfig holds ingestion run configuration
type IngestConfig struct {
	// States restricts ingestion to the listed states; empty means all-India
	States []string `mapstructure:"states"`
	// HorizonDays is the retention window swept after each run
	HorizonDays int `mapstructure:"horizon_days"`
}

// SeedConfig holds commodity catalog seeding configuration
type SeedConfig struct {
	// SourceStates are scanned for distinct commodity names
	SourceStates []string `mapstructure:"source_states"`
}

// SchedulerConfig holds cron schedules for the scheduler binary
type SchedulerConfig struct {
	IngestSpec string `mapstructure:"ingest_spec"`
	SyncSpec   string `mapstructure:"sync_spec"`
}

// APIConfig holds configuration for the API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig   `mapstructure:"server"`
	Database   DatabaseConfig `mapstructure:"database"`
	Source     SourceConfig   `mapstructure:"source"`
}

// IngesterConfig holds configuration for the ingest binary
type IngesterConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	Source     SourceConfig   `mapstructure:"source"`
	Ingest     IngestConfig   `mapstructure:"ingest"`
}

// SyncConfig holds configuration for the sync binary
type SyncConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	Source     SourceConfig   `mapstructure:"source"`
	Seed       SeedConfig     `mapstructure:"seed"`
}

// RunnerConfig holds configuration for the scheduler binary
type RunnerConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig  `mapstructure:"database"`
	Source     SourceConfig    `mapstructure:"source"`
	Ingest     IngestConfig    `mapstructure:"ingest"`
	Seed       SeedConfig      `mapstructure:"seed"`
	Scheduler  SchedulerConfig `mapstructure:"scheduler"`
}

// LoadAPIConfig loads configuration for the API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	setDatabaseDefaults(v)
	setSourceDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateDatabase(&config.Database); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadIngesterConfig loads configuration for the ingest binary
func LoadIngesterConfig(configFile string, envPath string) (*IngesterConfig, error) {
	v := configureViper("ingest", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	setSourceDefaults(v)
	v.SetDefault("ingest.horizon_days", 30)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config IngesterConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateDatabase(&config.Database); err != nil {
		return nil, err
	}
	if err := validateSource(&config.Source); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadSyncConfig loads configuration for the sync binary
func LoadSyncConfig(configFile string, envPath string) (*SyncConfig, error) {
	v := configureViper("sync", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	setSourceDefaults(v)
	v.SetDefault("seed.source_states", defaultSeedStates)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config SyncConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateDatabase(&config.Database); err != nil {
		return nil, err
	}
	if err := validateSource(&config.Source); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadRunnerConfig loads configuration for the scheduler binary
func LoadRunnerConfig(configFile string, envPath string) (*RunnerConfig, error) {
	v := configureViper("scheduler", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	setSourceDefaults(v)
	v.SetDefault("ingest.horizon_days", 30)
	v.SetDefault("seed.source_states", defaultSeedStates)
	// Ingest four times a day, rebuild master data shortly after midnight
	v.SetDefault("scheduler.ingest_spec", "0 6,10,14,18 * * *")
	v.SetDefault("scheduler.sync_spec", "5 0 * * *")

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config RunnerConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateDatabase(&config.Database); err != nil {
		return nil, err
	}
	if err := validateSource(&config.Source); err != nil {
		return nil, err
	}

	return &config, nil
}

// defaultSeedStates covers enough of the market to enumerate most commodities
var defaultSeedStates = []string{
	"Uttar Pradesh",
	"Maharashtra",
	"Karnataka",
	"Madhya Pradesh",
	"Punjab",
	"Gujarat",
	"Rajasthan",
	"Tamil Nadu",
	"West Bengal",
	"Kerala",
}

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
}

func setSourceDefaults(v *viper.Viper) {
	v.SetDefault("source.base_url", "https://api.data.gov.in")
	v.SetDefault("source.resource_id", "35985678-0d79-46b4-9ed6-6f13308a1d24")
	v.SetDefault("source.page_limit", 2000)
	v.SetDefault("source.http_timeout", "30s")
}

func validateDatabase(c *DatabaseConfig) error {
	if c.Host == "" {
		return errors.New("database.host is required")
	}
	if c.DBName == "" {
		return errors.New("database.dbname is required")
	}
	return nil
}

func validateSource(c *SourceConfig) error {
	if c.APIKey == "" {
		return errors.New("source.api_key is required")
	}
	return nil
}

// readConfig reads the config file, tolerating a missing file since all
// settings can come from environment variables
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/api/, cmd/ingest/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("MANDI_INDEXER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	commonKeys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Source
		"source.base_url",
		"source.resource_id",
		"source.api_key",
		"source.page_limit",
		"source.http_timeout",
		// Ingest
		"ingest.states",
		"ingest.horizon_days",
		// Seed
		"seed.source_states",
		// Scheduler
		"scheduler.ingest_spec",
		"scheduler.sync_spec",
	}

	for _, key := range commonKeys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
