package main

import "time"

// stage identifies which generation endpoint is exercised.
type stage string

const (
	stageSummaries stage = "summaries"
	stageCode      stage = "code"
)

var stages = []stage{stageSummaries, stageCode}

// testResult captures the outcome of one stage for one framework.
type testResult struct {
	Framework    string
	Stage        stage
	Success      bool
	Skipped      bool
	StatusCode   int
	Duration     time.Duration
	ErrorReason  string
	ResponseBody string
	// Summaries is only set by a successful summaries stage.
	Summaries []string
}
