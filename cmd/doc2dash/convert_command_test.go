package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc2dash/internal/docset"
	"doc2dash/internal/index"
	"doc2dash/internal/parsers"
	"doc2dash/internal/testsupport"
)

func TestConvertBuildsDocset(t *testing.T) {
	env := setupCLITestEnv(t)

	out, stderr, err := runCLI(t, []string{env.source, "--index-page", "index.html", "-u", "https://sample.example/"}, env.configPath)
	require.NoError(t, err, stderr)
	assert.Contains(t, stderr, "Added 3 index entries.")
	assert.Contains(t, out, "Function")
	assert.Contains(t, out, "Total")

	ds := docset.Layout(filepath.Join(env.cfg.Paths.Destination, "Sample Project.docset"))

	plist, err := docset.ReadPlist(ds.Plist)
	require.NoError(t, err)
	assert.Equal(t, "Sample Project", plist["CFBundleName"])
	assert.Equal(t, "sample project", plist["DocSetPlatformFamily"])
	assert.Equal(t, "index.html", plist["dashIndexFilePath"])
	assert.Equal(t, "https://sample.example/", plist["DashDocSetFallbackURL"])

	store, err := index.Open(context.Background(), ds.Index)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	api := testsupport.ReadDoc(t, ds.Documents, "api.html")
	assert.Contains(t, api, `<a name="//apple_ref/cpp/Module/sample" class="dashAnchor"></a><h1>sample</h1>`)
	assert.Contains(t, api, `<a name="//apple_ref/cpp/Function/sample.run" class="dashAnchor"></a><dt id="sample.run">`)
	assert.Contains(t, testsupport.ReadDoc(t, ds.Documents, "index.html"), `<a name="//apple_ref/cpp/Section/Introduction" class="dashAnchor"></a><section id="intro">`)

	_, err = os.Stat(ds.Path + ".lock")
	assert.True(t, os.IsNotExist(err), "lock file should be removed")
}

func TestConvertExplicitNameAndDestination(t *testing.T) {
	env := setupCLITestEnv(t)
	dest := filepath.Join(t.TempDir(), "docsets")

	out, _, err := runCLI(t, []string{"-q", "-n", "Renamed.docset", "-d", dest, env.source}, env.configPath)
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = os.Stat(filepath.Join(dest, "Renamed.docset", "Contents", "Info.plist"))
	require.NoError(t, err)
}

func TestConvertDestinationExists(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"-q", env.source}, env.configPath)
	require.NoError(t, err)

	_, _, err = runCLI(t, []string{"-q", env.source}, env.configPath)
	require.ErrorIs(t, err, docset.ErrDestinationExists)
	assert.Contains(t, err.Error(), "--force")

	_, _, err = runCLI(t, []string{"-q", "--force", env.source}, env.configPath)
	require.NoError(t, err)
}

func TestConvertRejectsInvalidIcon(t *testing.T) {
	env := setupCLITestEnv(t)
	icon := testsupport.WriteDoc(t, t.TempDir(), "icon.png", "GIF89a")

	_, _, err := runCLI(t, []string{"--icon", icon, env.source}, env.configPath)
	require.ErrorIs(t, err, docset.ErrInvalidIcon)

	_, err = os.Stat(env.cfg.Paths.Destination)
	assert.True(t, os.IsNotExist(err), "nothing should be written for a bad icon")
}

func TestConvertCopiesIcons(t *testing.T) {
	env := setupCLITestEnv(t)
	png := string(docset.PNGSignature) + "rest"
	icon := testsupport.WriteDoc(t, t.TempDir(), "icon.png", png)

	_, _, err := runCLI(t, []string{"-q", "-i", icon, "--icon-2x", icon, env.source}, env.configPath)
	require.NoError(t, err)

	bundle := filepath.Join(env.cfg.Paths.Destination, "Sample Project.docset")
	for _, name := range []string{"icon.png", "icon@2x.png"} {
		assert.Equal(t, png, testsupport.ReadDoc(t, bundle, name))
	}
}

func TestConvertRejectsMissingIndexPage(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"-I", "nope.html", env.source}, env.configPath)
	require.ErrorIs(t, err, docset.ErrIndexPageMissing)
}

func TestConvertUnknownFormat(t *testing.T) {
	env := setupCLITestEnv(t)
	empty := t.TempDir()

	_, _, err := runCLI(t, []string{empty}, env.configPath)
	require.ErrorIs(t, err, parsers.ErrUnknownFormat)

	_, _, err = runCLI(t, []string{"--parser", "doxygen", env.source}, env.configPath)
	require.ErrorIs(t, err, parsers.ErrUnknownParser)
}

func TestConvertFullTextSearchFlag(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"-q", "--full-text-search", "forbidden", env.source}, env.configPath)
	require.NoError(t, err)

	plist, err := docset.ReadPlist(docset.Layout(filepath.Join(env.cfg.Paths.Destination, "Sample Project.docset")).Plist)
	require.NoError(t, err)
	assert.Equal(t, true, plist["DashDocSetFTSNotSupported"])

	_, _, err = runCLI(t, []string{"--full-text-search", "maybe", "-f", env.source}, env.configPath)
	require.Error(t, err)
}

func TestQuietAndVerboseAreExclusive(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"-q", "-v", env.source}, env.configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quiet")
}

func TestDetectCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"detect", env.source}, "")
	require.NoError(t, err)
	assert.Contains(t, out, "Parser:  intersphinx")
	assert.Contains(t, out, "Project: Sample Project")

	_, _, err = runCLI(t, []string{"detect", t.TempDir()}, "")
	require.ErrorIs(t, err, parsers.ErrUnknownFormat)
}
