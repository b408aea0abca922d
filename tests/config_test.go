package tests

import (
	"testing"
	"time"

	"github.com/ssoogun/outlier.property/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *config.ProductionConfig {
	return &config.ProductionConfig{
		Server: config.ServerConfig{
			Port:         8080,
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
			IdleTimeout:  time.Second,
		},
		Dataset: config.DatasetConfig{
			FilePath:    "streets.csv",
			LoadTimeout: time.Second,
		},
		Session: config.SessionConfig{
			IdleTTL:         time.Hour,
			CleanupInterval: time.Minute,
		},
		Logging: config.LoggingConfig{Level: "info"},
	}
}

func TestValidateProductionConfig(t *testing.T) {
	t.Run("ValidConfigPasses", func(t *testing.T) {
		require.NoError(t, config.ValidateProductionConfig(validConfig()))
	})

	t.Run("BadPortFails", func(t *testing.T) {
		cfg := validConfig()
		cfg.Server.Port = 0
		err := config.ValidateProductionConfig(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SERVER_PORT")
	})

	t.Run("UnsupportedDatasetExtensionFails", func(t *testing.T) {
		cfg := validConfig()
		cfg.Dataset.FilePath = "streets.parquet"
		err := config.ValidateProductionConfig(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DATASET_FILE_PATH")
	})

	t.Run("XLSXDatasetIsAccepted", func(t *testing.T) {
		cfg := validConfig()
		cfg.Dataset.FilePath = "streets.xlsx"
		require.NoError(t, config.ValidateProductionConfig(cfg))
	})

	t.Run("NonPositiveSessionTTLFails", func(t *testing.T) {
		cfg := validConfig()
		cfg.Session.IdleTTL = 0
		err := config.ValidateProductionConfig(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SESSION_IDLE_TTL")
	})

	t.Run("BadLogLevelFails", func(t *testing.T) {
		cfg := validConfig()
		cfg.Logging.Level = "verbose"
		require.Error(t, config.ValidateProductionConfig(cfg))
	})
}
