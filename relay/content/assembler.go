// Package content assembles repository files into one annotated text blob for the model.
package content

import (
	"context"
	"strings"

	gmw "github.com/Laisky/gin-middlewares/v6"
	"github.com/Laisky/zap"
	"golang.org/x/sync/errgroup"

	"github.com/testgen-ai/testgen/monitor"
	"github.com/testgen-ai/testgen/relay/githost"
)

// FileFetcher returns the decoded text of one repository file.
type FileFetcher interface {
	FileContent(ctx context.Context, repo githost.RepoRef, path string) (string, error)
}

// Assembler fetches files and concatenates them in caller order.
//
// A failed fetch never fails the batch: the file is logged, counted and left out.
type Assembler struct {
	Fetcher FileFetcher
	// Concurrency caps parallel fetches. Values below 2 fetch one file at a time.
	Concurrency int
}

// Result is the assembled content plus the paths that made it in and the ones left out.
type Result struct {
	Content  string
	Included []string
	Skipped  []string
}

// FileHeader is the annotation line written before every file.
func FileHeader(path string) string {
	return "// File: " + path + "\n"
}

// Assemble fetches every path and concatenates `// File: {path}` blocks in input order.
func (a *Assembler) Assemble(ctx context.Context, repo githost.RepoRef, paths []string) Result {
	type slot struct {
		content string
		err     error
	}
	slots := make([]slot, len(paths))

	limit := a.Concurrency
	if limit < 1 {
		limit = 1
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for i, path := range paths {
		g.Go(func() error {
			slots[i].content, slots[i].err = a.Fetcher.FileContent(ctx, repo, path)
			// per-file failures are recorded in the slot, never returned
			return nil
		})
	}
	_ = g.Wait()

	logger := gmw.GetLogger(ctx)
	var (
		sb     strings.Builder
		result Result
	)
	for i, path := range paths {
		if err := slots[i].err; err != nil {
			logger.Warn("skip file in content assembly",
				zap.String("repo", repo.String()),
				zap.String("path", path),
				zap.Error(err))
			monitor.RecordContentFile(false)
			result.Skipped = append(result.Skipped, path)
			continue
		}

		monitor.RecordContentFile(true)
		sb.WriteString(FileHeader(path))
		sb.WriteString(slots[i].content)
		sb.WriteString("\n\n")
		result.Included = append(result.Included, path)
	}

	result.Content = sb.String()
	return result
}
