package main

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/olekukonko/tablewriter"
)

type report struct {
	frameworks   []string
	byFramework  map[string]map[stage]testResult
	totalStages  int
	failedCount  int
	skippedCount int
}

// buildReport aggregates raw stage results by framework.
func buildReport(frameworks []string, results []testResult) report {
	byFramework := make(map[string]map[stage]testResult, len(frameworks))
	for _, fw := range frameworks {
		byFramework[fw] = make(map[stage]testResult)
	}

	failed, skipped := 0, 0
	for _, res := range results {
		if res.Framework == "" {
			continue
		}
		entry, ok := byFramework[res.Framework]
		if !ok {
			entry = make(map[stage]testResult)
			byFramework[res.Framework] = entry
		}
		entry[res.Stage] = res
		switch {
		case res.Skipped:
			skipped++
		case !res.Success:
			failed++
		}
	}

	return report{
		frameworks:   frameworks,
		byFramework:  byFramework,
		totalStages:  len(results),
		failedCount:  failed,
		skippedCount: skipped,
	}
}

// renderReport prints the framework by stage matrix and the failure list.
func renderReport(out io.Writer, rep report) {
	if len(rep.frameworks) == 0 {
		fmt.Fprintln(out, "no frameworks to report")
		return
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "=== Testgen Smoke Matrix ===")
	fmt.Fprintln(out)

	header := []string{"Framework"}
	for _, st := range stages {
		header = append(header, string(st))
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	for _, fw := range rep.frameworks {
		row := []string{fw}
		for _, st := range stages {
			row = append(row, formatMatrixCell(rep.byFramework[fw][st]))
		}
		table.Append(row)
	}
	table.Render()

	fmt.Fprintln(out)
	passed := rep.totalStages - rep.failedCount - rep.skippedCount
	fmt.Fprintf(out, "Totals  | Stages: %d | Passed: %d | Failed: %d | Skipped: %d\n",
		rep.totalStages, passed, rep.failedCount, rep.skippedCount)

	if failures := gatherFailures(rep); len(failures) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Failures:")
		for _, res := range failures {
			fmt.Fprintf(out, "- %s · %s → %s\n", res.Framework, res.Stage, shorten(res.ErrorReason, 200))
		}
	}
	fmt.Fprintln(out)
}

func formatMatrixCell(res testResult) string {
	if res.Framework == "" {
		return "—"
	}

	duration := res.Duration.Truncate(10 * time.Millisecond)
	switch {
	case res.Success:
		return fmt.Sprintf("PASS %.2fs", duration.Seconds())
	case res.Skipped:
		return "SKIP " + shorten(res.ErrorReason, 32)
	default:
		reason := res.ErrorReason
		if reason == "" {
			reason = duration.String()
		}
		return "FAIL " + shorten(reason, 32)
	}
}

func gatherFailures(rep report) []testResult {
	var failures []testResult
	for _, fw := range rep.frameworks {
		for _, st := range stages {
			res, ok := rep.byFramework[fw][st]
			if ok && !res.Success && !res.Skipped {
				failures = append(failures, res)
			}
		}
	}
	sort.SliceStable(failures, func(i, j int) bool {
		if failures[i].Framework == failures[j].Framework {
			return failures[i].Stage < failures[j].Stage
		}
		return failures[i].Framework < failures[j].Framework
	})
	return failures
}
