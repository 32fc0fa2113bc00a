package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	// Packages
	kong "github.com/alecthomas/kong"
	logger "github.com/mutablelogic/go-server/pkg/logger"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func Test_LogLevel_001(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(logger.LevelWarn, logLevel(false, false))
	assert.Equal(logger.LevelInfo, logLevel(false, true))
	assert.Equal(logger.LevelDebug, logLevel(true, true))
}

func Test_Logger_001(t *testing.T) {
	// JSON output follows the level, which can change after creation
	assert := assert.New(t)
	var buf bytes.Buffer
	var level slog.LevelVar
	level.Set(logger.LevelWarn)
	log := newLogger(&buf, &level, true)

	log.Info("hidden")
	assert.Empty(buf.String())
	log.Warn("shown", "tool", "get_member_profile")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal("shown", entry["msg"])
	assert.Equal("get_member_profile", entry["tool"])

	buf.Reset()
	level.Set(logger.LevelDebug)
	log.Debug("now shown")
	assert.Contains(buf.String(), "now shown")
}

func Test_Logger_002(t *testing.T) {
	assert := assert.New(t)
	var buf bytes.Buffer
	var level slog.LevelVar
	level.Set(logger.LevelInfo)
	log := newLogger(&buf, &level, false)

	log.Debug("hidden")
	assert.Empty(buf.String())
	log.Info("started", "server", "fashion")
	assert.Contains(buf.String(), "started")
	assert.Contains(buf.String(), "fashion")
}

func Test_Middleware_001(t *testing.T) {
	// Each request is logged after the handler completes
	assert := assert.New(t)
	var buf bytes.Buffer
	var level slog.LevelVar
	g := Globals{logger: newLogger(&buf, &level, true)}

	middleware := g.middleware("localhost")
	require.Len(t, middleware, 1)
	handler := middleware[0](func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(http.StatusTeapot, w.Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal("WARN", entry["level"])
	assert.Equal("/api/health", entry["url.path"])
	assert.Equal(float64(http.StatusTeapot), entry["http.response.status_code"])
}

func Test_WeatherServer_001(t *testing.T) {
	// The service key is read from either environment variable
	for _, env := range []string{"KMA_SERVICE_KEY", "WEATHER_API_KEY"} {
		t.Run(env, func(t *testing.T) {
			for _, name := range []string{"KMA_SERVICE_KEY", "WEATHER_API_KEY"} {
				t.Setenv(name, "")
				require.NoError(t, os.Unsetenv(name))
			}
			t.Setenv(env, "secret")

			var cli CLI
			parser, err := kong.New(&cli, kong.Vars{"EXECUTABLE_NAME": "stylist", "VERSION": "test"})
			require.NoError(t, err)
			_, err = parser.Parse([]string{"weather"})
			require.NoError(t, err)
			assert.Equal(t, "secret", cli.WeatherServer.ServiceKey)
		})
	}
}
