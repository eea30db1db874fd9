package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coingaming/gremlex/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("gremlin.example.com")
	assert.Equal(t, "gremlin.example.com", cfg.Host)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultPath, cfg.Path)
	assert.False(t, cfg.Secure)
	assert.Equal(t, DefaultPoolSize, cfg.PoolSize)
	assert.Equal(t, DefaultPingDelay, cfg.PingDelay.Std())
	require.NoError(t, cfg.Validate())
}

func TestValidateFillsDefaults(t *testing.T) {
	cfg := Config{Host: "localhost"}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultPath, cfg.Path)
	assert.Equal(t, DefaultPoolSize, cfg.PoolSize)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing host", Config{}},
		{"port out of range", Config{Host: "h", Port: 70000}},
		{"negative port", Config{Host: "h", Port: -1}},
		{"relative path", Config{Host: "h", Path: "gremlin"}},
		{"negative overflow", Config{Host: "h", MaxOverflow: -1}},
		{"negative ping delay", Config{Host: "h", PingDelay: Duration(-time.Second)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsInvalid(err))
		})
	}
}

func TestURLScheme(t *testing.T) {
	cfg := DefaultConfig("localhost")
	assert.Equal(t, "ws://localhost:8182/gremlin", cfg.URL())

	cfg.Secure = true
	cfg.Port = 443
	cfg.Path = "/graph"
	assert.Equal(t, "wss://localhost:443/graph", cfg.URL())
}

func TestFromAddr(t *testing.T) {
	cfg, err := FromAddr("gremlin.local:8183")
	require.NoError(t, err)
	assert.Equal(t, "gremlin.local", cfg.Host)
	assert.Equal(t, 8183, cfg.Port)
}

func TestFromAddrInvalidPort(t *testing.T) {
	_, err := FromAddr("gremlin.local:http")
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))

	_, err = FromAddr("no-port-here")
	require.Error(t, err)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gremlex.yaml")
	content := []byte(`
host: gremlin.internal
port: 8282
secure: true
pool_size: 8
max_overflow: 4
ping_delay: 45s
opts:
  handshake_timeout: 5s
  read_buffer_size: 4096
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gremlin.internal", cfg.Host)
	assert.Equal(t, 8282, cfg.Port)
	assert.True(t, cfg.Secure)
	assert.Equal(t, 8, cfg.PoolSize)
	assert.Equal(t, 4, cfg.MaxOverflow)
	assert.Equal(t, 45*time.Second, cfg.PingDelay.Std())
	assert.Equal(t, 5*time.Second, cfg.Opts.HandshakeTimeout.Std())
	assert.Equal(t, 4096, cfg.Opts.ReadBufferSize)
	assert.Equal(t, DefaultPath, cfg.Path, "defaults still apply after load")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host: [unclosed"), 0o600))
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestDurationJSONRoundTrip(t *testing.T) {
	type holder struct {
		Delay Duration `json:"delay"`
	}

	var h holder
	require.NoError(t, json.Unmarshal([]byte(`{"delay":"90s"}`), &h))
	assert.Equal(t, 90*time.Second, h.Delay.Std())

	data, err := json.Marshal(h)
	require.NoError(t, err)
	assert.JSONEq(t, `{"delay":"1m30s"}`, string(data))

	require.Error(t, json.Unmarshal([]byte(`{"delay":"bogus"}`), &h))
}
