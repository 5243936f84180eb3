package intersphinx

import "strings"

const projectKey = "# Project"

func projectName(line string) (string, bool) {
	key, value, ok := strings.Cut(line, ": ")
	if !ok || key != projectKey {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}
