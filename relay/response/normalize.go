// Package response turns free-form model output into the shapes the API returns.
package response

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/testgen-ai/testgen/monitor"
)

// Parse tiers reported to monitor.
const (
	TierDirect   = "direct"
	TierEmbedded = "embedded"
	TierFallback = "fallback"
)

// embeddedArray spans from the first '[' to the last ']' across newlines.
var embeddedArray = regexp.MustCompile(`(?s)\[.*\]`)

type attempt struct {
	tier  string
	parse func(text string) ([]string, bool)
}

// attempts run in order; the first one that yields a result wins.
var attempts = []attempt{
	{TierDirect, parseDirect},
	{TierEmbedded, parseEmbedded},
}

// NormalizeSummaries recovers a list of summaries from raw model output. It never fails:
// when no JSON can be recovered the trimmed text becomes the only element.
func NormalizeSummaries(raw string) []string {
	summaries, _ := normalizeSummaries(raw)
	return summaries
}

func normalizeSummaries(raw string) ([]string, string) {
	text := strings.TrimSpace(raw)
	for _, a := range attempts {
		if out, ok := a.parse(text); ok {
			monitor.RecordSummaryParse(a.tier)
			return out, a.tier
		}
	}

	monitor.RecordSummaryParse(TierFallback)
	return []string{text}, TierFallback
}

// NormalizeCode returns the model output untouched.
func NormalizeCode(raw string) string {
	return raw
}

// parseDirect accepts any JSON document. Arrays yield their elements, any other value
// yields itself as the single element.
func parseDirect(text string) ([]string, bool) {
	var doc json.RawMessage
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, false
	}

	if bytes.HasPrefix(doc, []byte("[")) {
		return parseArray(doc)
	}
	return []string{elementText(doc)}, true
}

// parseEmbedded looks for an array surrounded by prose.
func parseEmbedded(text string) ([]string, bool) {
	match := embeddedArray.FindString(text)
	if match == "" {
		return nil, false
	}
	return parseArray([]byte(match))
}

func parseArray(data []byte) ([]string, bool) {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, false
	}

	out := make([]string, 0, len(elems))
	for _, e := range elems {
		out = append(out, elementText(e))
	}
	return out, true
}

// elementText unquotes JSON strings and renders every other value as compact JSON.
func elementText(v json.RawMessage) string {
	if bytes.HasPrefix(v, []byte(`"`)) {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			return s
		}
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, v); err != nil {
		return string(v)
	}
	return buf.String()
}
