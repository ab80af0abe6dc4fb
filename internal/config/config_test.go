package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, "http://localhost:8000/graphql", cfg.API.Endpoint)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, "@every 5m", cfg.Jobs.Heartbeat.Schedule)
	assert.Equal(t, "/tmp/crm_heartbeat_log.txt", cfg.Jobs.Heartbeat.LogFile)
	assert.Equal(t, "/tmp/low_stock_updates_log.txt", cfg.Jobs.Restock.LogFile)
	assert.Equal(t, "/tmp/crm_report_log.txt", cfg.Jobs.Report.LogFile)
	assert.Equal(t, "/tmp/order_reminders_log.txt", cfg.Jobs.Reminders.LogFile)
	assert.Equal(t, 7*24*time.Hour, cfg.Jobs.RemindersLookback)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, "none", cfg.Tracing.Exporter)
}

func TestFileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9000"
storage:
  driver: sqlite
  dsn: "file:test.db"
jobs:
  restock:
    schedule: "@every 1h"
`), 0o644))

	t.Setenv("CRM_SERVER_ADDR", ":9100")
	t.Setenv("CRM_KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("CRM_API_TIMEOUT", "3s")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.Server.Addr, "env wins over file")
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "@every 1h", cfg.Jobs.Restock.Schedule)
	assert.Equal(t, "0 0 6 * * 1", cfg.Jobs.Report.Schedule)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
}

func TestExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Chdir(t.TempDir())

	tests := map[string]map[string]string{
		"unknown driver":   {"CRM_STORAGE_DRIVER": "oracle"},
		"missing dsn":      {"CRM_STORAGE_DRIVER": "postgres"},
		"unknown exporter": {"CRM_TRACING_EXPORTER": "zipkin"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			require.Error(t, err)
		})
	}
}
