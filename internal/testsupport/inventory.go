package testsupport

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/klauspost/compress/zlib"
)

// InventoryLine is one body record of a Sphinx inventory.
type InventoryLine struct {
	Name        string
	Role        string
	Priority    int
	URI         string
	DisplayName string
}

func (l InventoryLine) String() string {
	display := l.DisplayName
	if display == "" {
		display = "-"
	}
	return fmt.Sprintf("%s %s %d %s %s", l.Name, l.Role, l.Priority, l.URI, display)
}

// InventoryBytes renders a version 2 inventory with a zlib-compressed body.
func InventoryBytes(t testing.TB, project, version string, lines ...InventoryLine) []byte {
	t.Helper()

	body := make([]string, 0, len(lines))
	for _, l := range lines {
		body = append(body, l.String())
	}
	return RawInventory(t, project, version, strings.Join(body, "\n")+"\n")
}

// RawInventory renders a valid header followed by body compressed verbatim.
func RawInventory(t testing.TB, project, version, body string) []byte {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("# Sphinx inventory version 2\n")
	fmt.Fprintf(&buf, "# Project: %s\n", project)
	fmt.Fprintf(&buf, "# Version: %s\n", version)
	buf.WriteString("# The remainder of this file is compressed using zlib.\n")

	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write([]byte(body)); err != nil {
		t.Fatalf("compress inventory body: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zlib writer: %v", err)
	}
	return buf.Bytes()
}

// WriteInventory writes objects.inv at the root of dir and returns its path.
func WriteInventory(t testing.TB, dir, project, version string, lines ...InventoryLine) string {
	t.Helper()

	return WriteDoc(t, dir, "objects.inv", string(InventoryBytes(t, project, version, lines...)))
}
