package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"doc2dash/internal/config"
	"doc2dash/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	source     string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	require.NoError(t, os.MkdirAll(homeDir, 0o755))
	t.Setenv("HOME", homeDir)
	t.Chdir(base)

	cfg := testsupport.NewConfig(t)
	configPath := filepath.Join(homeDir, ".config", "doc2dash", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(configPath), 0o755))
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		source:     writeSphinxDocs(t, filepath.Join(base, "docs")),
	}
}

// writeSphinxDocs lays out a small Sphinx build with a module, a function and
// a section label.
func writeSphinxDocs(t *testing.T, root string) string {
	t.Helper()

	testsupport.WriteInventory(t, root, "Sample Project", "1.0",
		testsupport.InventoryLine{Name: "sample", Role: "py:module", Priority: 0, URI: "api.html#module-$"},
		testsupport.InventoryLine{Name: "sample.run", Role: "py:function", Priority: 1, URI: "api.html#$"},
		testsupport.InventoryLine{Name: "intro", Role: "std:label", Priority: -1, URI: "index.html#intro", DisplayName: "Introduction"},
	)
	testsupport.WriteDoc(t, root, "api.html", testsupport.Page(
		`<h1>sample</h1><dl><dt id="sample.run">run()</dt><dd>Runs.</dd></dl>`,
	))
	testsupport.WriteDoc(t, root, "index.html", testsupport.Page(
		`<section id="intro"><h2>Introduction</h2></section>`,
	))
	return root
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\ndestination = %q\nglobal_dir = %q\n\n[patch]\nprogress = false\n",
		cfg.Paths.Destination,
		cfg.Paths.GlobalDir,
	)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	cmd.SetContext(t.Context())
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
