package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, Config{
		Port:                 "8080",
		LogLevel:             "ERROR",
		RemoteSynthTimeout:   20 * time.Second,
		LinkCheckConcurrency: 10,
		MaxCandidates:        4,
	}, cfg)
	assert.False(t, cfg.RemoteEnabled())
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"PORT":                   "9090",
		"LOG_LEVEL":              "DEBUG",
		"REMOTE_SYNTH_URL":       "https://synth.example/v1/page",
		"REMOTE_SYNTH_TIMEOUT":   "5s",
		"LINK_AUDIT":             "true",
		"LINK_CHECK_CONCURRENCY": "25",
		"MAX_CANDIDATES":         "8",
	})
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.True(t, cfg.RemoteEnabled())
	assert.Equal(t, 5*time.Second, cfg.RemoteSynthTimeout)
	assert.True(t, cfg.LinkAudit)
	assert.Equal(t, 25, cfg.LinkCheckConcurrency)
	assert.Equal(t, 8, cfg.MaxCandidates)
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		vars    map[string]string
		wantErr error
	}{
		{name: "port not a number", vars: map[string]string{"PORT": "http"}, wantErr: errInvalidPort},
		{name: "port too large", vars: map[string]string{"PORT": "70000"}, wantErr: errInvalidPort},
		{name: "concurrency zero", vars: map[string]string{"LINK_CHECK_CONCURRENCY": "0"}, wantErr: errConcurrencyOutOfRange},
		{name: "concurrency too large", vars: map[string]string{"LINK_CHECK_CONCURRENCY": "101"}, wantErr: errConcurrencyOutOfRange},
		{name: "candidates too large", vars: map[string]string{"MAX_CANDIDATES": "17"}, wantErr: errCandidatesOutOfRange},
		{name: "remote url without scheme", vars: map[string]string{"REMOTE_SYNTH_URL": "synth.example"}, wantErr: errInvalidRemoteURL},
		{name: "remote url ftp", vars: map[string]string{"REMOTE_SYNTH_URL": "ftp://synth.example"}, wantErr: errInvalidRemoteURL},
		{
			name:    "remote timeout zero",
			vars:    map[string]string{"REMOTE_SYNTH_URL": "http://synth.example", "REMOTE_SYNTH_TIMEOUT": "0s"},
			wantErr: errInvalidRemoteTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(tt.vars)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadFrom_ParseErrors(t *testing.T) {
	for _, vars := range []map[string]string{
		{"LINK_CHECK_CONCURRENCY": "many"},
		{"REMOTE_SYNTH_TIMEOUT": "soon"},
		{"LINK_AUDIT": "maybe"},
	} {
		_, err := LoadFrom(vars)
		assert.Error(t, err, "vars %v", vars)
	}
}

func TestLoad_ReadsProcessEnvironment(t *testing.T) {
	t.Setenv("PORT", "8181")
	t.Setenv("MAX_CANDIDATES", "2")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8181", cfg.Port)
	assert.Equal(t, 2, cfg.MaxCandidates)
}
