package inventory

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// FileName is the inventory file Sphinx writes at the documentation root.
const FileName = "objects.inv"

// MagicLine is the first line of every version 2 inventory.
const MagicLine = "# Sphinx inventory version 2\n"

// ErrInvalidHeader wraps every header violation reported by ReadHeader.
var ErrInvalidHeader = errors.New("invalid inventory header")

var compressionLineRE = regexp.MustCompile(
	`^# The (remainder|rest) of this file is compressed (using|with) zlib\.\n$`,
)

// Header carries the informational fields of the inventory preamble.
type Header struct {
	Project string
	Version string
}

// ReadHeader consumes and validates the four header lines from r, leaving r
// positioned at the start of the compressed body.
func ReadHeader(r *bufio.Reader) (Header, error) {
	var h Header

	line, err := readLine(r, "version")
	if err != nil {
		return h, err
	}
	if line != MagicLine {
		return h, fmt.Errorf("%w: missing %q", ErrInvalidHeader, strings.TrimSpace(MagicLine))
	}

	line, err = readLine(r, "project")
	if err != nil {
		return h, err
	}
	project, ok := headerValue(line, "# Project")
	if !ok {
		return h, fmt.Errorf("%w: malformed project line %q", ErrInvalidHeader, strings.TrimSpace(line))
	}
	h.Project = project

	line, err = readLine(r, "version")
	if err != nil {
		return h, err
	}
	version, ok := headerValue(line, "# Version")
	if !ok {
		return h, fmt.Errorf("%w: malformed version line %q", ErrInvalidHeader, strings.TrimSpace(line))
	}
	h.Version = version

	line, err = readLine(r, "compression")
	if err != nil {
		return h, err
	}
	if !compressionLineRE.MatchString(line) {
		return h, fmt.Errorf("%w: unexpected compression line %q", ErrInvalidHeader, strings.TrimSpace(line))
	}

	return h, nil
}

func readLine(r *bufio.Reader, what string) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%w: truncated before %s line", ErrInvalidHeader, what)
		}
		return "", fmt.Errorf("read %s line: %w", what, err)
	}
	return line, nil
}

// headerValue splits "<key>: <value>\n" and returns value when key matches.
func headerValue(line, key string) (string, bool) {
	k, v, found := strings.Cut(line, ": ")
	if !found || k != key {
		return "", false
	}
	return strings.TrimRight(v, "\r\n"), true
}
