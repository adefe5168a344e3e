// Package framework suggests testing frameworks for a repository's primary language.
package framework

// Framework is one suggestion shown to the user. ID is a key of the prompt template registry.
type Framework struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var (
	jest       = Framework{ID: "jest", Name: "Jest", Description: "Widely used JavaScript test runner"}
	cypress    = Framework{ID: "cypress", Name: "Cypress", Description: "End-to-end testing in a real browser"}
	playwright = Framework{ID: "playwright", Name: "Playwright", Description: "Cross-browser automation library"}
	selenium   = Framework{ID: "selenium", Name: "Selenium", Description: "Web application automation"}
)

// suggestions is keyed by the language names GitHub reports.
var suggestions = map[string][]Framework{
	"JavaScript": {
		jest,
		{ID: "mocha", Name: "Mocha", Description: "Flexible JavaScript test framework"},
		cypress,
		playwright,
	},
	"TypeScript": {
		{ID: "jest", Name: "Jest", Description: "JavaScript and TypeScript test runner"},
		{ID: "vitest", Name: "Vitest", Description: "Fast unit testing for Vite projects"},
		cypress,
		playwright,
	},
	"Python": {
		{ID: "pytest", Name: "pytest", Description: "Concise, scalable Python testing"},
		{ID: "unittest", Name: "unittest", Description: "Python's built-in test framework"},
		selenium,
		{ID: "behave", Name: "Behave", Description: "Behavior-driven development for Python"},
	},
	"Java": {
		{ID: "junit", Name: "JUnit", Description: "Standard Java testing framework"},
		{ID: "testng", Name: "TestNG", Description: "Configurable testing framework for Java"},
		selenium,
		{ID: "mockito", Name: "Mockito", Description: "Mocking for Java unit tests"},
	},
	"C#": {
		{ID: "nunit", Name: "NUnit", Description: "Unit testing for .NET"},
		{ID: "xunit", Name: "xUnit", Description: "Open-source testing tool for .NET"},
		{ID: "mstest", Name: "MSTest", Description: "Microsoft's .NET test framework"},
		selenium,
	},
	"Go": {
		{ID: "testing", Name: "Go Testing", Description: "Go's built-in testing package"},
		{ID: "ginkgo", Name: "Ginkgo", Description: "BDD-style testing for Go"},
		{ID: "testify", Name: "Testify", Description: "Assertions and helpers for Go tests"},
	},
	"Ruby": {
		{ID: "rspec", Name: "RSpec", Description: "Behavior-driven development for Ruby"},
		{ID: "minitest", Name: "Minitest", Description: "Lightweight Ruby testing suite"},
		{ID: "cucumber", Name: "Cucumber", Description: "Acceptance testing with plain-language scenarios"},
	},
}

var defaultSuggestions = []Framework{
	{ID: "generic", Name: "Generic Testing", Description: "Language-agnostic testing approach"},
	selenium,
}

// PrimaryLanguage returns the language with the most bytes. Ties go to the name that sorts
// first; an empty histogram yields "".
func PrimaryLanguage(languages map[string]int) string {
	var (
		best string
		most = -1
	)
	for lang, n := range languages {
		if n > most || (n == most && lang < best) {
			best, most = lang, n
		}
	}
	return best
}

// Suggest returns the frameworks offered for language. Unknown or empty languages get the
// generic suggestions. The returned slice is a copy.
func Suggest(language string) []Framework {
	list, ok := suggestions[language]
	if !ok {
		list = defaultSuggestions
	}
	return append([]Framework(nil), list...)
}
