package main

import (
	"strings"

	"github.com/Laisky/errors/v2"

	cfg "github.com/testgen-ai/testgen/common/config"
	"github.com/testgen-ai/testgen/relay/prompt"
)

const defaultAPIBase = "http://localhost:8000"

// config captures the configuration derived from environment variables.
type config struct {
	APIBase    string
	Token      string
	RepoURL    string
	FilePaths  []string
	Frameworks []string
}

// loadConfig constructs the harness configuration from the shared config package.
func loadConfig() (config, error) {
	base := strings.TrimSpace(cfg.SmokeAPIBase)
	if base == "" {
		base = defaultAPIBase
	}

	repoURL := strings.TrimSpace(cfg.SmokeRepoURL)
	if repoURL == "" {
		return config{}, errors.New("SMOKE_REPO_URL must be set")
	}
	paths := parseList(cfg.SmokeFilePaths)
	if len(paths) == 0 {
		return config{}, errors.New("SMOKE_FILE_PATHS must list at least one file")
	}

	frameworks, err := parseFrameworks(cfg.SmokeFrameworks)
	if err != nil {
		return config{}, errors.Wrap(err, "parse frameworks")
	}

	return config{
		APIBase:    strings.TrimSuffix(base, "/"),
		Token:      strings.TrimSpace(cfg.SmokeToken),
		RepoURL:    repoURL,
		FilePaths:  paths,
		Frameworks: frameworks,
	}, nil
}

// parseList tokenizes a comma, semicolon or newline separated list.
func parseList(raw string) []string {
	normalized := raw
	for _, sep := range []string{";", "\n", "\r"} {
		normalized = strings.ReplaceAll(normalized, sep, ",")
	}

	var out []string
	for _, part := range strings.Split(normalized, ",") {
		if candidate := strings.TrimSpace(part); candidate != "" {
			out = append(out, candidate)
		}
	}
	return out
}

// parseFrameworks resolves SMOKE_FRAMEWORKS. Empty means every registered framework.
func parseFrameworks(raw string) ([]string, error) {
	requested := parseList(raw)
	if len(requested) == 0 {
		return prompt.Frameworks(), nil
	}

	seen := make(map[string]bool, len(requested))
	selected := make([]string, 0, len(requested))
	for _, fw := range requested {
		fw = strings.ToLower(fw)
		if !prompt.IsRegistered(fw) {
			return nil, errors.Errorf("unknown framework %q", fw)
		}
		if !seen[fw] {
			seen[fw] = true
			selected = append(selected, fw)
		}
	}
	return selected, nil
}
