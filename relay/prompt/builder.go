package prompt

import "strings"

const (
	// SummaryFormatDirective asks for a bare JSON array. The model may still ignore it;
	// the response normalizer copes with that.
	SummaryFormatDirective = " Return your response as a valid JSON array of strings only." +
		" Do not include any other text, explanation, or markdown code fences."
	// CodeFormatDirective asks for raw source without decoration.
	CodeFormatDirective = " Do not include markdown fences (```), explanations, or any other text."
)

// BuildSummaryPrompt assembles the summary-stage prompt around the annotated repository content.
func BuildSummaryPrompt(tpl Template, content string) string {
	var sb strings.Builder
	sb.Grow(len(tpl.Summary) + len(SummaryFormatDirective) + len(content) + 32)
	sb.WriteString(tpl.Summary)
	sb.WriteString(SummaryFormatDirective)
	sb.WriteString("\n\nCode to analyze:\n---\n")
	sb.WriteString(content)
	sb.WriteString("\n---")
	return sb.String()
}

// BuildCodePrompt assembles the code-stage prompt for a single test objective.
func BuildCodePrompt(tpl Template, objective, source string) string {
	var sb strings.Builder
	sb.Grow(len(tpl.Code) + len(CodeFormatDirective) + len(objective) + len(source) + 64)
	sb.WriteString(tpl.Code)
	sb.WriteString(CodeFormatDirective)
	sb.WriteString("\n\nTest case objective: ")
	sb.WriteString(objective)
	sb.WriteString("\n\nSource code:\n---\n")
	sb.WriteString(source)
	sb.WriteString("\n---")
	return sb.String()
}
