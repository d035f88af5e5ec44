package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var managedVars = []string{
	"APP_PORT", "LOG_LEVEL", "RECORDS_BACKEND", "RECORDS_API_URL", "RECORDS_API_TOKEN",
	"MONGODB_URI", "MONGODB_DB_NAME", "GOOGLE_SHEETS_CREDENTIALS_PATH",
	"GOOGLE_SHEET_DATABASE_ID", "REPORT_CRON_SCHEDULE", "TIMEZONE",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range managedVars {
		// Setenv restores the original value on cleanup; godotenv only fills unset keys.
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, BackendMongo, cfg.Records.Backend)
	assert.Equal(t, "roostery", cfg.MongoDB.DBName)
	assert.Equal(t, "0 6 1 * *", cfg.Reporting.CronSchedule)
	assert.False(t, cfg.Sheets.Enabled())
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "app.env")
	content := "APP_PORT=9090\nRECORDS_BACKEND=HTTP\nRECORDS_API_URL=http://records.local/api\nTIMEZONE=Africa/Conakry\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, BackendHTTP, cfg.Records.Backend)
	assert.Equal(t, "http://records.local/api", cfg.Records.BaseURL)
	assert.Equal(t, "Africa/Conakry", cfg.Reporting.Timezone)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: "8080"},
			Records:   RecordsConfig{Backend: BackendMongo},
			MongoDB:   MongoDBConfig{URI: "mongodb://localhost", DBName: "farm"},
			Reporting: ReportingConfig{CronSchedule: "@monthly", Timezone: "UTC"},
		}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing port", func(c *Config) { c.Server.Port = "" }, "APP_PORT"},
		{"unknown backend", func(c *Config) { c.Records.Backend = "postgres" }, "RECORDS_BACKEND"},
		{"http without url", func(c *Config) { c.Records.Backend = BackendHTTP }, "RECORDS_API_URL"},
		{"mongo without uri", func(c *Config) { c.MongoDB.URI = "" }, "MONGODB_URI"},
		{"sheets without credentials", func(c *Config) { c.Sheets.SpreadsheetID = "sheet-1" }, "GOOGLE_SHEETS_CREDENTIALS_PATH"},
		{"bad timezone", func(c *Config) { c.Reporting.Timezone = "Mars/Olympus" }, "TIMEZONE"},
		{"missing schedule", func(c *Config) { c.Reporting.CronSchedule = "" }, "REPORT_CRON_SCHEDULE"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}

	var nilCfg *Config
	assert.Error(t, nilCfg.Validate())
}
