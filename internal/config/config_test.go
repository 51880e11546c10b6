package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Siva2k2k/ES-TM-sub001/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GIN_MODE", "debug")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("TIMESHEET_CONSISTENCY_MODE", "")
	t.Setenv("USE_TRANSACTIONS", "")
}

func TestLoad_Defaults(t *testing.T) {
	baseEnv(t)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PASSWORD", "p@ss")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "test-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, model.ConsistencyTransactional, cfg.Workflow.Mode())
	assert.Contains(t, cfg.Database.DSN(), "@db.internal:")
	assert.Contains(t, cfg.Database.DSN(), "sslmode=")
	assert.Contains(t, cfg.Database.DSN(), "p%40ss")
}

func TestLoad_EnvFile(t *testing.T) {
	baseEnv(t)
	os.Unsetenv("LOG_FORMAT")
	t.Setenv("PORT", "9191")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LOG_FORMAT=console\nPORT=7000\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("LOG_FORMAT") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "9191", cfg.Server.Port, "process env wins over the file")
}

func TestValidate_ConsistencyMode(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		useTx   string
		want    model.ConsistencyMode
		wantErr bool
	}{
		{"default", "", "", model.ConsistencyTransactional, false},
		{"explicit best effort", "best_effort", "", model.ConsistencyBestEffort, false},
		{"mode wins over legacy flag", "transactional", "false", model.ConsistencyTransactional, false},
		{"legacy flag off", "", "false", model.ConsistencyBestEffort, false},
		{"legacy flag on", "", "true", model.ConsistencyTransactional, false},
		{"unknown mode", "eventual", "", "", true},
		{"bad legacy flag", "", "sometimes", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{
				Auth:     AuthConfig{JWTSecret: "s"},
				Log:      LogConfig{Level: "info", Format: "json"},
				Workflow: WorkflowConfig{ConsistencyMode: tt.mode, UseTransactions: tt.useTx},
			}
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Workflow.Mode())
		})
	}
}

func TestValidate_JWTSecret(t *testing.T) {
	cfg := Config{Log: LogConfig{Level: "info", Format: "json"}}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, devJWTSecret, cfg.Auth.JWTSecret)

	release := Config{
		Server: ServerConfig{GinMode: "release"},
		Log:    LogConfig{Level: "info", Format: "json"},
	}
	require.Error(t, release.Validate())
}

func TestValidate_Log(t *testing.T) {
	cfg := Config{Auth: AuthConfig{JWTSecret: "s"}, Log: LogConfig{Level: "loud", Format: "json"}}
	require.Error(t, cfg.Validate())

	cfg = Config{Auth: AuthConfig{JWTSecret: "s"}, Log: LogConfig{Level: "debug", Format: "xml"}}
	require.Error(t, cfg.Validate())
}

func TestCORSOrigins(t *testing.T) {
	c := CORSConfig{AllowOrigins: "http://a.test, ,http://b.test"}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, c.Origins())
}
