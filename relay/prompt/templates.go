package prompt

// templates is built once at init and never written afterwards.
var templates = map[string]Template{
	"jest": {
		Summary: summaryInstruction("Jest for JavaScript and React", "component props, state transitions, user interactions and edge cases"),
		Code:    codeInstruction("Jest", "test file", "the required imports together with setup and teardown"),
	},
	"vitest": {
		Summary: summaryInstruction("Vitest for modern JavaScript and TypeScript projects", "unit tests, component tests and performance-sensitive paths"),
		Code:    codeInstruction("Vitest", "test file", "the required imports written in modern ES module syntax"),
	},
	"mocha": {
		Summary: summaryInstruction("Mocha for JavaScript", "behavior-driven scenarios and asynchronous code paths"),
		Code:    codeInstruction("Mocha", "test file", "describe blocks, before and after hooks and explicit assertions"),
	},
	"cypress": {
		Summary: summaryInstruction("Cypress for end-to-end testing", "user workflows, UI interactions and integration between pages"),
		Code:    codeInstruction("Cypress", "test file", "commands that drive the user interactions against real page elements"),
	},
	"playwright": {
		Summary: summaryInstruction("Playwright for cross-browser testing", "browser automation, API checks and visual regressions"),
		Code:    codeInstruction("Playwright", "test file", "page interactions that hold across browsers"),
	},
	"pytest": {
		Summary: summaryInstruction("pytest for Python", "fixtures, parametrized cases and test discovery"),
		Code:    codeInstruction("pytest", "test module", "fixtures, parametrize decorators and plain assert statements"),
	},
	"unittest": {
		Summary: summaryInstruction("unittest for Python", "test cases, suites and assertion methods"),
		Code:    codeInstruction("unittest", "test module", "a TestCase class with setUp and tearDown methods and assertion helpers"),
	},
	"selenium": {
		Summary: summaryInstruction("Selenium for web automation", "element interactions, page navigation and browser compatibility"),
		Code:    codeInstruction("Selenium", "test script", "WebDriver setup, element locators and browser interactions"),
	},
	"behave": {
		Summary: summaryInstruction("behave for behavior-driven Python", "user-facing scenarios phrased as given, when and then steps"),
		Code:    codeInstruction("behave", "feature file followed by its step definitions", "Gherkin scenarios and the Python steps that implement them"),
	},
	"junit": {
		Summary: summaryInstruction("JUnit for Java", "test methods, annotations and lifecycle management"),
		Code:    codeInstruction("JUnit", "test class", "the proper annotations, setup methods and assertions"),
	},
	"testng": {
		Summary: summaryInstruction("TestNG for Java", "data-driven cases, parallel execution and test configuration"),
		Code:    codeInstruction("TestNG", "test class", "test groups, data providers and the proper annotations"),
	},
	"mockito": {
		Summary: summaryInstruction("JUnit with Mockito for Java", "collaborator interactions, stubbed dependencies and verification of calls"),
		Code:    codeInstruction("JUnit and Mockito", "test class", "mocks for every collaborator, stubbing and interaction verification"),
	},
	"nunit": {
		Summary: summaryInstruction("NUnit for .NET", "test fixtures, assertions and parameterized cases"),
		Code:    codeInstruction("NUnit", "test class", "test fixtures, setup and teardown methods and assertions"),
	},
	"xunit": {
		Summary: summaryInstruction("xUnit for .NET", "facts, theories and dependency injection"),
		Code:    codeInstruction("xUnit", "test class", "Fact and Theory tests with explicit assertions"),
	},
	"mstest": {
		Summary: summaryInstruction("MSTest for .NET", "test methods, data rows and initialization hooks"),
		Code:    codeInstruction("MSTest", "test class", "TestClass and TestMethod attributes, DataRow cases and initialize hooks"),
	},
	"rspec": {
		Summary: summaryInstruction("RSpec for Ruby", "behavior-driven examples, describe blocks and matchers"),
		Code:    codeInstruction("RSpec", "spec file", "describe and context blocks with expressive matchers"),
	},
	"minitest": {
		Summary: summaryInstruction("Minitest for Ruby", "small focused unit tests and assertions"),
		Code:    codeInstruction("Minitest", "test file", "a Minitest::Test subclass with setup and assertion methods"),
	},
	"cucumber": {
		Summary: summaryInstruction("Cucumber for acceptance testing", "business scenarios written as given, when and then steps"),
		Code:    codeInstruction("Cucumber", "feature file followed by its step definitions", "Gherkin scenarios and the step definitions that implement them"),
	},
	"testing": {
		Summary: summaryInstruction("the Go standard testing package", "table-driven cases, benchmarks and examples"),
		Code:    codeInstruction("Go testing", "_test.go file", "table-driven tests and explicit error checks"),
	},
	"ginkgo": {
		Summary: summaryInstruction("Ginkgo with Gomega for Go", "Describe, Context and It specs with expressive matchers"),
		Code:    codeInstruction("Ginkgo", "_test.go suite", "a suite bootstrap, Describe and It blocks and Gomega matchers"),
	},
	"testify": {
		Summary: summaryInstruction("Go testing with testify", "table-driven cases checked with assert and require"),
		Code:    codeInstruction("testify", "_test.go file", "table-driven tests using the assert and require packages"),
	},
	DefaultFramework: {
		Summary: "You are an expert test case analyst. Analyze the following code and propose a list of concise, one-sentence test case summaries. " +
			"Apply testing principles that hold for any framework, covering functionality, edge cases and error handling.",
		Code: "You are an expert test code generator. Write a complete, executable test file for the provided source code " +
			"that fulfills the given test case objective, following widely accepted testing practice. Output only the raw code of the test file.",
	},
}

func summaryInstruction(target, focus string) string {
	return "You are an expert test case analyst. Analyze the following code and propose a list of concise, one-sentence test case summaries. " +
		"The target testing framework is " + target + ". Concentrate on " + focus + "."
}

func codeInstruction(name, artifact, includes string) string {
	return "You are an expert " + name + " test code generator. Write a complete, executable " + name + " " + artifact +
		" for the provided source code that fulfills the given test case objective. Include " + includes +
		". Output only the raw code of the test file."
}
