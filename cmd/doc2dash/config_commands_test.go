package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Config path: "+env.configPath)
	assert.Contains(t, out, "Configuration valid")

	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote sample configuration")
	_, err = os.Stat(target)
	require.NoError(t, err)

	_, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--overwrite")

	_, _, err = runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, "")
	require.NoError(t, err)

	out, _, err = runCLI(t, []string{"config", "validate"}, target)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration valid")
}

func TestConfigValidateWithoutFile(t *testing.T) {
	setupCLITestEnv(t)

	missing := filepath.Join(t.TempDir(), "absent.toml")
	out, _, err := runCLI(t, []string{"config", "validate"}, missing)
	require.NoError(t, err)
	assert.Contains(t, out, "defaults were used")
}

func TestConfigValidateRejectsBadValues(t *testing.T) {
	setupCLITestEnv(t)

	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[docset]\nfull_text_search = \"sometimes\"\n"), 0o644))

	_, _, err := runCLI(t, []string{"config", "validate"}, path)
	require.Error(t, err)
}
