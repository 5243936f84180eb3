package parsers_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc2dash/internal/intersphinx"
	"doc2dash/internal/parsers"
	"doc2dash/internal/testsupport"
)

func fakeFormat(name, project string, claims bool) parsers.Format {
	return parsers.Format{
		Name: name,
		Detect: func(string, *slog.Logger) (string, bool) {
			return project, claims
		},
	}
}

func TestDetectFirstMatchWins(t *testing.T) {
	reg := parsers.NewRegistry(
		fakeFormat("first", "", false),
		fakeFormat("second", "Two", true),
		fakeFormat("third", "Three", true),
	)

	f, project, err := reg.Detect(t.TempDir(), nil)
	require.NoError(t, err)
	assert.Equal(t, "second", f.Name)
	assert.Equal(t, "Two", project)
	assert.Equal(t, []string{"first", "second", "third"}, reg.Names())
}

func TestDetectUnknownFormat(t *testing.T) {
	_, _, err := parsers.Default().Detect(t.TempDir(), nil)
	assert.ErrorIs(t, err, parsers.ErrUnknownFormat)
}

func TestDefaultDetectsIntersphinx(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteInventory(t, root, "Sample", "1")

	f, project, err := parsers.Default().Detect(root, nil)
	require.NoError(t, err)
	assert.Equal(t, intersphinx.Name, f.Name)
	assert.Equal(t, "Sample", project)

	p := f.New(root, nil)
	assert.Equal(t, intersphinx.Name, p.Name())
}

func TestLookup(t *testing.T) {
	reg := parsers.Default()

	f, err := reg.Lookup("InterSphinx")
	require.NoError(t, err)
	assert.Equal(t, intersphinx.Name, f.Name)

	_, err = reg.Lookup("pydoctor")
	assert.ErrorIs(t, err, parsers.ErrUnknownParser)
}

func TestResolveForcedParserMustDetect(t *testing.T) {
	reg := parsers.Default()

	_, _, err := reg.Resolve(t.TempDir(), intersphinx.Name, nil)
	assert.ErrorIs(t, err, parsers.ErrUnknownFormat)

	root := t.TempDir()
	testsupport.WriteInventory(t, root, "Forced", "1")
	f, project, err := reg.Resolve(root, intersphinx.Name, nil)
	require.NoError(t, err)
	assert.Equal(t, intersphinx.Name, f.Name)
	assert.Equal(t, "Forced", project)

	_, project, err = reg.Resolve(root, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "Forced", project)
}
