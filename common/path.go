package common

import (
	"os"
	"strings"
)

// expandLogDirPath resolves $VAR placeholders and a leading ~ in log directory paths.
func expandLogDirPath(path string) string {
	if path == "" {
		return ""
	}

	expanded := os.ExpandEnv(path)
	if strings.HasPrefix(expanded, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			expanded = home + expanded[1:]
		}
	}
	return expanded
}
