package dto

import "github.com/testgen-ai/testgen/relay/framework"

// RepositoryInfo is the subset of repository metadata shown next to suggestions.
type RepositoryInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Language    string `json:"language"`
}

// FrameworkSuggestions answers POST /api/repo/frameworks.
// PrimaryLanguage is null when GitHub reports no language at all.
type FrameworkSuggestions struct {
	PrimaryLanguage     *string               `json:"primary_language"`
	AllLanguages        map[string]int        `json:"all_languages"`
	SuggestedFrameworks []framework.Framework `json:"suggested_frameworks"`
	RepositoryInfo      RepositoryInfo        `json:"repository_info"`
}

// AuthCheck answers GET /api/auth/check.
type AuthCheck struct {
	HasToken   bool   `json:"has_token"`
	AuthMethod string `json:"auth_method"`
}
