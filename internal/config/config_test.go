package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAPIConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *APIConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
sentry_dsn: "https://sentry.example.com"
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: 20
  write_timeout: 20
  idle_timeout: 180
database:
  host: localhost
  port: 5432
  user: testuser
  password: testpass
  dbname: testdb
  sslmode: require
source:
  base_url: "https://api.example.gov.in"
  resource_id: "resource-123"
  api_key: "test-key"
`,
			expectError: false,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 20, cfg.Server.ReadTimeout)
				assert.Equal(t, 180, cfg.Server.IdleTimeout)
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, "require", cfg.Database.SSLMode)
				assert.Equal(t, "https://api.example.gov.in", cfg.Source.BaseURL)
				assert.Equal(t, "resource-123", cfg.Source.ResourceID)
				assert.Equal(t, "test-key", cfg.Source.APIKey)
			},
		},
		{
			name: "config with defaults",
			configFile: `
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
`,
			expectError: false,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.False(t, cfg.Debug)                   // default
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)  // default
				assert.Equal(t, 8080, cfg.Server.Port)       // default
				assert.Equal(t, 10, cfg.Server.ReadTimeout)  // default
				assert.Equal(t, 10, cfg.Server.WriteTimeout) // default
				assert.Equal(t, 120, cfg.Server.IdleTimeout) // default
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, "https://api.data.gov.in", cfg.Source.BaseURL)
				assert.Equal(t, 2000, cfg.Source.PageLimit)
				assert.Equal(t, 30*time.Second, cfg.Source.HTTPTimeout)
			},
		},
		{
			name: "missing database host",
			configFile: `
database:
  dbname: testdb
`,
			expectError: true,
			validate:    nil,
		},
		{
			name: "invalid yaml",
			configFile: `
				database:
				  host: localhost
				  port: invalid
			`,
			expectError: true, // Invalid port should cause unmarshal error
			validate:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			configFile := filepath.Join(tmpDir, "config.yaml")
			err := os.WriteFile(configFile, []byte(tt.configFile), 0600)
			require.NoError(t, err)

			cfg, err := LoadAPIConfig(configFile, "")

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
			} else {
				if tt.validate != nil {
					require.NoError(t, err)
					require.NotNil(t, cfg)
					tt.validate(t, cfg)
				}
			}
		})
	}
}

func TestLoadIngesterConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *IngesterConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
source:
  api_key: "test-key"
  page_limit: 500
  http_timeout: "10s"
ingest:
  states:
    - "Karnataka"
    - "Maharashtra"
  horizon_days: 45
`,
			expectError: false,
			validate: func(t *testing.T, cfg *IngesterConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "test-key", cfg.Source.APIKey)
				assert.Equal(t, 500, cfg.Source.PageLimit)
				assert.Equal(t, 10*time.Second, cfg.Source.HTTPTimeout)
				assert.Equal(t, []string{"Karnataka", "Maharashtra"}, cfg.Ingest.States)
				assert.Equal(t, 45, cfg.Ingest.HorizonDays)
			},
		},
		{
			name: "config with defaults",
			configFile: `
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
source:
  api_key: "test-key"
`,
			expectError: false,
			validate: func(t *testing.T, cfg *IngesterConfig) {
				assert.Equal(t, "https://api.data.gov.in", cfg.Source.BaseURL)
				assert.Equal(t, "35985678-0d79-46b4-9ed6-6f13308a1d24", cfg.Source.ResourceID)
				assert.Equal(t, 2000, cfg.Source.PageLimit)
				assert.Equal(t, 30, cfg.Ingest.HorizonDays)
				assert.Empty(t, cfg.Ingest.States)
			},
		},
		{
			name: "missing api key",
			configFile: `
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
`,
			expectError: true,
			validate:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			configFile := filepath.Join(tmpDir, "config.yaml")
			err := os.WriteFile(configFile, []byte(tt.configFile), 0600)
			require.NoError(t, err)

			cfg, err := LoadIngesterConfig(configFile, "")

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
			} else {
				if tt.validate != nil {
					require.NoError(t, err)
					require.NotNil(t, cfg)
					tt.validate(t, cfg)
				}
			}
		})
	}
}

func TestLoadSyncConfig(t *testing.T) {
	configFile := `
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
source:
  api_key: "test-key"
seed:
  source_states:
    - "Karnataka"
`
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configFile), 0600))

	cfg, err := LoadSyncConfig(path, "")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, []string{"Karnataka"}, cfg.Seed.SourceStates)
}

func TestLoadSyncConfigDefaultSeedStates(t *testing.T) {
	configFile := `
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
source:
  api_key: "test-key"
`
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configFile), 0600))

	cfg, err := LoadSyncConfig(path, "")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, defaultSeedStates, cfg.Seed.SourceStates)
}

func TestLoadRunnerConfig(t *testing.T) {
	configFile := `
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
source:
  api_key: "test-key"
scheduler:
  ingest_spec: "0 */6 * * *"
`
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configFile), 0600))

	cfg, err := LoadRunnerConfig(path, "")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "0 */6 * * *", cfg.Scheduler.IngestSpec)
	assert.Equal(t, "5 0 * * *", cfg.Scheduler.SyncSpec) // default
	assert.Equal(t, 30, cfg.Ingest.HorizonDays)          // default
}

func TestDatabaseConfig_DSN(t *testing.T) {
	tests := []struct {
		name     string
		config   DatabaseConfig
		expected string
	}{
		{
			name: "complete config",
			config: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "testuser",
				Password: "testpass",
				DBName:   "testdb",
				SSLMode:  "require",
			},
			expected: "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=require",
		},
		{
			name: "with special characters in password",
			config: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "testuser",
				Password: "p@ssw0rd!",
				DBName:   "testdb",
				SSLMode:  "disable",
			},
			expected: "host=localhost port=5432 user=testuser password=p@ssw0rd! dbname=testdb sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn := tt.config.DSN()
			assert.Equal(t, tt.expected, dsn)
		})
	}
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	tmpDir := t.TempDir()

	// Create temporary directory for env files
	envDir := filepath.Join(tmpDir, "env")
	err := os.MkdirAll(envDir, 0750)
	require.NoError(t, err)

	// Create .env file with environment variables
	// Note: Viper uses MANDI_INDEXER_ prefix, so env vars need the prefix
	envFile := filepath.Join(envDir, ".env")
	envContent := `MANDI_INDEXER_DEBUG=true
MANDI_INDEXER_DATABASE_HOST=env-host
MANDI_INDEXER_DATABASE_PORT=3306
MANDI_INDEXER_DATABASE_USER=env-user
MANDI_INDEXER_DATABASE_PASSWORD=env-pass
MANDI_INDEXER_DATABASE_DBNAME=env-db
MANDI_INDEXER_DATABASE_SSLMODE=require
`
	err = os.WriteFile(envFile, []byte(envContent), 0600)
	require.NoError(t, err)

	// Create config file with different values to verify env vars override
	configPath := filepath.Join(tmpDir, "config.yaml")
	configFile := `
debug: false
database:
  host: file-host
  port: 5432
  user: file-user
  password: file-pass
  dbname: file-db
  sslmode: disable
`

	err = os.WriteFile(configPath, []byte(configFile), 0600)
	require.NoError(t, err)

	// Load config with envPath pointing to the temporary env directory
	cfg, err := LoadAPIConfig(configPath, envDir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	// The .env file is loaded via godotenv.Overload, which sets actual environment
	// variables; viper's AutomaticEnv then picks them up with the prefix
	assert.True(t, cfg.Debug)
	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "env-user", cfg.Database.User)
	assert.Equal(t, "env-pass", cfg.Database.Password)
	assert.Equal(t, "env-db", cfg.Database.DBName)
	assert.Equal(t, "require", cfg.Database.SSLMode)
}
