// Package env reads typed values from the process environment with defaults.
package env

import (
	"os"
	"strconv"
	"strings"
)

// String returns the value of name, or defaultValue when it is unset or blank.
func String(name string, defaultValue string) string {
	v, ok := os.LookupEnv(name)
	if !ok || strings.TrimSpace(v) == "" {
		return defaultValue
	}
	return v
}

// Bool parses name as a boolean. Unparsable values fall back to defaultValue.
func Bool(name string, defaultValue bool) bool {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue
	}
	return b
}

// Int parses name as an integer. Unparsable values fall back to defaultValue.
func Int(name string, defaultValue int) int {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return n
}

// List splits a comma separated variable into trimmed, non-empty items.
func List(name string, defaultValue []string) []string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
