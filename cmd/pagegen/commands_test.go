package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bahjat/page-composer/backend/internal/configio"
	"github.com/Bahjat/page-composer/backend/internal/model"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSynth_JSONAndYAML(t *testing.T) {
	out, _, err := execute(t, "synth", "A luxury fitness app")
	require.NoError(t, err)
	cfg, err := configio.Unmarshal([]byte(out), configio.JSON)
	require.NoError(t, err)
	assert.Equal(t, model.ToneLuxury, cfg.Brand.Tone)

	yamlOut, _, err := execute(t, "synth", "--yaml", "A luxury fitness app")
	require.NoError(t, err)
	fromYAML, err := configio.Unmarshal([]byte(yamlOut), configio.YAML)
	require.NoError(t, err)
	assert.Equal(t, cfg, fromYAML)
}

func TestSynth_RemoteDownWarnsAndFallsBack(t *testing.T) {
	out, stderr, err := execute(t, "synth", "--remote", "http://127.0.0.1:1/synth", "Cozy cafe")
	require.NoError(t, err)
	assert.Contains(t, stderr, "warning: degraded")
	_, err = configio.Unmarshal([]byte(out), configio.JSON)
	assert.NoError(t, err)
}

func TestValidateAndRender(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.yaml")
	out, _, err := execute(t, "synth", "--yaml", "Northwind Traders. Fine goods online")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte(out), 0o600))

	report, _, err := execute(t, "validate", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(report, "Northwind Traders: ok (11 sections)"))
	assert.Contains(t, report, "footer")

	html, _, err := execute(t, "render", path)
	require.NoError(t, err)
	assert.Contains(t, html, "<title>Northwind Traders</title>")
}

func TestValidate_RejectsBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"brand": {"name": "Acme"}, "sections": []}`), 0o600))

	_, _, err := execute(t, "validate", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestUsageErrors(t *testing.T) {
	for _, args := range [][]string{{"synth"}, {"validate"}, {"render", "a", "b"}} {
		_, _, err := execute(t, args...)
		assert.ErrorIs(t, err, errUsage, "args %v", args)
	}
}
