package inventory_test

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc2dash/internal/inventory"
	"doc2dash/internal/logging"
	"doc2dash/internal/testsupport"
)

func TestDecodeRoundTrip(t *testing.T) {
	data := testsupport.InventoryBytes(t, "Project", "1.0",
		testsupport.InventoryLine{Name: "some_module", Role: "py:module", Priority: 0, URI: "some_module.html#module-$"},
		testsupport.InventoryLine{Name: "some_module.Foo", Role: "py:class", Priority: 1, URI: "some_module.html#$", DisplayName: "Foo"},
		testsupport.InventoryLine{Name: "api", Role: "std:label", Priority: -1, URI: "docs/#api", DisplayName: "API Reference"},
		testsupport.InventoryLine{Name: "nested", Role: "std:label", Priority: -1, URI: "docs.html#foo#api", DisplayName: "Nested"},
	)

	inv, err := inventory.NewDecoder().Decode(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, inventory.Header{Project: "Project", Version: "1.0"}, inv.Header)
	assert.Equal(t, 4, inv.Len())
	assert.Equal(t, map[string]map[string]inventory.Item{
		"py:module": {
			"some_module": {URI: "some_module.html#module-some_module", DisplayName: "-"},
		},
		"py:class": {
			"some_module.Foo": {URI: "some_module.html#some_module.Foo", DisplayName: "Foo"},
		},
		"std:label": {
			"api":    {URI: "docs/index.html#api", DisplayName: "API Reference"},
			"nested": {URI: "docs.html#api", DisplayName: "Nested"},
		},
	}, inv.Map())

	roles := inv.Roles()
	require.Len(t, roles, 3)
	assert.Equal(t, "py:module", roles[0].Name)
	assert.Equal(t, "std:label", roles[2].Name)

	item, ok := roles[2].Get("api")
	require.True(t, ok)
	assert.Equal(t, "docs/index.html", item.Path())
}

func TestDecodeKeepsNamesWithSpaces(t *testing.T) {
	data := testsupport.RawInventory(t, "P", "1",
		"some term std:term -1 glossary.html#term-some-term Some term 2\n")

	inv, err := inventory.NewDecoder().Decode(bytes.NewReader(data))
	require.NoError(t, err)

	role, ok := inv.Role("std:term")
	require.True(t, ok)
	item, ok := role.Get("some term")
	require.True(t, ok)
	assert.Equal(t, "glossary.html#term-some-term", item.URI)
	assert.Equal(t, "Some term 2", item.DisplayName)
}

func TestDecodeSkipsMalformedLines(t *testing.T) {
	logger, logs := testsupport.NewLogger(t, "debug")

	body := strings.Join([]string{
		"good py:function 1 mod.html#$ -",
		"this line is garbage",
		"also_good py:data 1 mod.html#$ -",
	}, "\n")
	data := testsupport.RawInventory(t, "P", "1", body)

	inv, err := inventory.NewDecoder(inventory.WithLogger(logger)).Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 2, inv.Len())
	assert.Equal(t, 1, strings.Count(logs.String(), "skipping malformed inventory line"))
	assert.Contains(t, logs.String(), "line=2")
}

func TestDecodeDropsMissingFilesAndWarnsOnce(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteDoc(t, root, "present.html", "<html></html>")
	testsupport.WriteDoc(t, root, "with space.html", "<html></html>")

	logger, logs := testsupport.NewLogger(t, "info")
	cache := inventory.NewFileCache(root)

	data := testsupport.InventoryBytes(t, "P", "1",
		testsupport.InventoryLine{Name: "a", Role: "py:function", Priority: 1, URI: "present.html#$"},
		testsupport.InventoryLine{Name: "b", Role: "py:function", Priority: 1, URI: "missing.html#$"},
		testsupport.InventoryLine{Name: "c", Role: "py:function", Priority: 1, URI: "missing.html#$"},
		testsupport.InventoryLine{Name: "d", Role: "py:data", Priority: 1, URI: "missing.html#$"},
		testsupport.InventoryLine{Name: "e", Role: "py:data", Priority: 1, URI: "with%20space.html#$"},
	)

	dec := inventory.NewDecoder(inventory.WithFileCache(cache), inventory.WithLogger(logger))
	inv, err := dec.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, 2, inv.Len())
	fn, ok := inv.Role("py:function")
	require.True(t, ok)
	_, ok = fn.Get("a")
	assert.True(t, ok)
	_, ok = fn.Get("b")
	assert.False(t, ok)

	assert.Equal(t, 1, strings.Count(logs.String(), "missing file"))
	assert.Equal(t, 3, cache.Len())
}

func TestFileCacheRejectsDirectories(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteDoc(t, root, "docs/index.html", "x")
	cache := inventory.NewFileCache(root)

	exists, cached := cache.Exists("docs")
	assert.False(t, exists)
	assert.False(t, cached)

	exists, cached = cache.Exists("docs")
	assert.False(t, exists)
	assert.True(t, cached)

	exists, _ = cache.Exists("docs/index.html")
	assert.True(t, exists)
	exists, _ = cache.Exists("")
	assert.False(t, exists)
	assert.Equal(t, root, cache.Root())
}

func TestDecodeDuplicateKeyKeepsFirstPosition(t *testing.T) {
	data := testsupport.InventoryBytes(t, "P", "1",
		testsupport.InventoryLine{Name: "a", Role: "py:function", Priority: 1, URI: "one.html#$"},
		testsupport.InventoryLine{Name: "b", Role: "py:function", Priority: 1, URI: "one.html#$"},
		testsupport.InventoryLine{Name: "a", Role: "py:function", Priority: 1, URI: "two.html#$"},
	)
	inv, err := inventory.NewDecoder().Decode(bytes.NewReader(data))
	require.NoError(t, err)

	role, ok := inv.Role("py:function")
	require.True(t, ok)
	var keys []string
	for key, item := range role.All() {
		keys = append(keys, key)
		if key == "a" {
			assert.Equal(t, "two.html#a", item.URI)
		}
	}
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestDecodeRejectsInvalidUTF8(t *testing.T) {
	data := testsupport.RawInventory(t, "P", "1", "bad\xff py:function 1 a.html -\n")
	_, err := inventory.NewDecoder().Decode(bytes.NewReader(data))
	require.Error(t, err)
}

func TestReadHeaderAcceptsBothCompressionWordings(t *testing.T) {
	for _, line := range []string{
		"# The remainder of this file is compressed using zlib.\n",
		"# The rest of this file is compressed with zlib.\n",
		"# The remainder of this file is compressed with zlib.\n",
	} {
		raw := inventory.MagicLine + "# Project: Foo Bar\n# Version: 2.1\n" + line
		h, err := inventory.ReadHeader(bufio.NewReader(strings.NewReader(raw)))
		require.NoError(t, err, line)
		assert.Equal(t, inventory.Header{Project: "Foo Bar", Version: "2.1"}, h)
	}
}

func TestReadHeaderErrors(t *testing.T) {
	cases := map[string]string{
		"empty":           "",
		"wrong magic":     "# Sphinx inventory version 1\n",
		"bad project":     inventory.MagicLine + "# Projekt: x\n",
		"bad version":     inventory.MagicLine + "# Project: x\n# Release: 1\n",
		"bad compression": inventory.MagicLine + "# Project: x\n# Version: 1\n# The body is compressed using gzip.\n",
		"truncated":       inventory.MagicLine + "# Project: x\n",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := inventory.ReadHeader(bufio.NewReader(strings.NewReader(raw)))
			assert.ErrorIs(t, err, inventory.ErrInvalidHeader)
		})
	}
}

func TestLoadReadsFromDocsRoot(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteDoc(t, root, "index.html", "x")
	testsupport.WriteInventory(t, root, "Proj", "3",
		testsupport.InventoryLine{Name: "index", Role: "std:doc", Priority: -1, URI: "index.html", DisplayName: "Home"},
		testsupport.InventoryLine{Name: "gone", Role: "std:doc", Priority: -1, URI: "gone.html", DisplayName: "Gone"},
	)

	inv, err := inventory.Load(root, logging.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "Proj", inv.Header.Project)
	assert.Equal(t, 1, inv.Len())

	_, err = inventory.Load(t.TempDir(), nil)
	require.Error(t, err)
}

func TestCleanURI(t *testing.T) {
	cases := map[string]string{
		"docs/#api":         "docs/index.html#api",
		"docs.html#foo#api": "docs.html#api",
		"docs/":             "docs/index.html",
		"plain.html":        "plain.html",
		"a.html#":           "a.html#",
	}
	for in, want := range cases {
		assert.Equal(t, want, inventory.CleanURI(in), in)
	}
}
