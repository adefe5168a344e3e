// Package prompt holds the per-framework instruction templates and assembles model prompts from them.
package prompt

import (
	"sort"
	"strings"
)

// DefaultFramework names the template returned for unknown framework identifiers.
const DefaultFramework = "generic"

// Stage selects which half of a template is used.
type Stage int

const (
	// StageSummary asks the model for one-sentence test case summaries.
	StageSummary Stage = iota
	// StageCode asks the model for a complete test file.
	StageCode
)

// String returns the stage label used in logs and metrics.
func (s Stage) String() string {
	switch s {
	case StageSummary:
		return "summary"
	case StageCode:
		return "code"
	default:
		return "unknown"
	}
}

// Template is the instruction text of one framework for both generation stages.
type Template struct {
	Summary string
	Code    string
}

// TemplateFor returns the template registered for framework.
// The key is trimmed and lowercased; anything unregistered falls back to the generic template.
func TemplateFor(framework string) Template {
	if tpl, ok := templates[strings.ToLower(strings.TrimSpace(framework))]; ok {
		return tpl
	}
	return templates[DefaultFramework]
}

// TemplateForStage returns the instruction text of framework for stage.
func TemplateForStage(stage Stage, framework string) string {
	tpl := TemplateFor(framework)
	if stage == StageCode {
		return tpl.Code
	}
	return tpl.Summary
}

// IsRegistered reports whether framework has its own template.
func IsRegistered(framework string) bool {
	_, ok := templates[strings.ToLower(strings.TrimSpace(framework))]
	return ok
}

// Frameworks lists registered framework identifiers in ascending order.
func Frameworks() []string {
	ids := make([]string, 0, len(templates))
	for id := range templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
