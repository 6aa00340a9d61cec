package config_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/yiffos/pkgreport/pkg/cli/config"
)

func TestLogger_Configure(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		wantErr bool
	}{
		{name: "Valid level: debug", level: "debug"},
		{name: "Valid level: DEBUG (case insensitive)", level: "DEBUG"},
		{name: "Valid level: info", level: "info"},
		{name: "Valid level: INFO", level: "INFO"},
		{name: "Valid level: warn", level: "warn"},
		{name: "Valid level: WARN", level: "WARN"},
		{name: "Valid level: error", level: "error"},
		{name: "Valid level: ERROR", level: "ERROR"},
		{name: "Invalid level: invalid", level: "invalid", wantErr: true},
		{name: "Invalid level: empty string", level: "", wantErr: true},
		{name: "Invalid level: random", level: "random", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Logger{
				Level:  tt.level,
				Format: "console",
				Output: &bytes.Buffer{},
			}

			logger, err := cfg.Configure()
			if tt.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err)
			gt.NotNil(t, logger)
		})
	}
}

func TestLogger_Configure_Format(t *testing.T) {
	t.Run("console", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := (&config.Logger{Level: "info", Format: "console", Output: &buf}).Configure()
		gt.NoError(t, err)

		logger.Info("test log message")
		gt.S(t, buf.String()).Contains("test log message")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := (&config.Logger{Level: "info", Format: "JSON", Output: &buf}).Configure()
		gt.NoError(t, err)

		logger.Info("test log message", "count", 3)

		var record map[string]any
		gt.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		gt.Equal(t, record["msg"], any("test log message"))
		gt.Equal(t, record["count"], any(float64(3)))
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := (&config.Logger{Level: "info", Format: "xml"}).Configure()
		gt.Error(t, err)
	})
}

func TestLogger_Configure_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger, err := (&config.Logger{Level: "warn", Format: "json", Output: &buf}).Configure()
	gt.NoError(t, err)

	logger.Info("hidden message")
	logger.Warn("visible message")

	gt.False(t, bytes.Contains(buf.Bytes(), []byte("hidden message")))
	gt.True(t, bytes.Contains(buf.Bytes(), []byte("visible message")))
}

func TestLogger_Configure_RedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	logger, err := (&config.Logger{Level: "info", Format: "json", Output: &buf}).Configure()
	gt.NoError(t, err)

	jira := config.Jira{
		URL:   "https://jira.example.com/",
		Email: "bot@example.com",
		Token: "super-secret-token",
	}
	logger.Info("Jira configured", "jira", jira)

	gt.True(t, bytes.Contains(buf.Bytes(), []byte("bot@example.com")))
	gt.False(t, bytes.Contains(buf.Bytes(), []byte("super-secret-token")))
}

func TestLogger_Flags(t *testing.T) {
	cfg := &config.Logger{}
	flags := cfg.Flags()
	gt.A(t, flags).Length(2)

	names := map[string]bool{}
	for _, flag := range flags {
		names[flag.Names()[0]] = true
	}
	gt.True(t, names["log-level"])
	gt.True(t, names["log-format"])
}
