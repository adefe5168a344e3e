package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/Laisky/errors/v2"
	glog "github.com/Laisky/go-utils/v5/log"
	"github.com/Laisky/zap"
	"golang.org/x/sync/errgroup"
)

const requestTimeout = 3 * time.Minute

// run drives the summaries and code stages for every configured framework.
func run(ctx context.Context, logger glog.Logger) error {
	cfg, err := loadConfig()
	if err != nil {
		return errors.Wrap(err, "load config")
	}
	return sweep(ctx, logger, cfg, &http.Client{Timeout: requestTimeout}, os.Stdout)
}

// sweep runs the frameworks in parallel and renders the matrix to out.
func sweep(ctx context.Context, logger glog.Logger, cfg config, httpClient *http.Client, out io.Writer) error {
	logger.Info("starting generation smoke sweep",
		zap.String("base_url", cfg.APIBase),
		zap.String("repo", cfg.RepoURL),
		zap.Int("file_count", len(cfg.FilePaths)),
		zap.Strings("frameworks", cfg.Frameworks),
	)

	resultsCh := make(chan testResult, len(cfg.Frameworks)*len(stages))

	var (
		results   []testResult
		collectWg sync.WaitGroup
	)
	collectWg.Add(1)
	go func() {
		defer collectWg.Done()
		for res := range resultsCh {
			results = append(results, res)
			switch {
			case res.Success:
				logger.Info("stage succeeded",
					zap.String("framework", res.Framework),
					zap.String("stage", string(res.Stage)),
					zap.Duration("duration", res.Duration),
				)
			case res.Skipped:
				logger.Info("stage skipped",
					zap.String("framework", res.Framework),
					zap.String("stage", string(res.Stage)),
					zap.String("reason", res.ErrorReason),
				)
			default:
				logger.Warn("stage failed",
					zap.String("framework", res.Framework),
					zap.String("stage", string(res.Stage)),
					zap.Int("status", res.StatusCode),
					zap.Duration("duration", res.Duration),
					zap.String("error", res.ErrorReason),
					zap.String("response_body", res.ResponseBody),
				)
			}
		}
	}()

	grp, grpCtx := errgroup.WithContext(ctx)
	for _, fw := range cfg.Frameworks {
		grp.Go(func() error {
			executeFramework(grpCtx, httpClient, cfg, fw, resultsCh)
			return nil
		})
	}

	waitErr := grp.Wait()
	close(resultsCh)
	collectWg.Wait()
	if waitErr != nil {
		return errors.Wrap(waitErr, "await framework sweeps")
	}

	rep := buildReport(cfg.Frameworks, results)
	renderReport(out, rep)

	if rep.failedCount > 0 {
		return errors.Errorf("%d of %d stages failed", rep.failedCount, rep.totalStages)
	}
	return nil
}

// executeFramework runs the two stages in order. The code stage needs a summary, so a
// failed summaries stage skips it.
func executeFramework(ctx context.Context, client *http.Client, cfg config, framework string, results chan<- testResult) {
	summaries := runSummaries(ctx, client, cfg, framework)
	results <- summaries

	if !summaries.Success {
		results <- testResult{
			Framework:   framework,
			Stage:       stageCode,
			Skipped:     true,
			ErrorReason: "summaries stage failed",
		}
		return
	}

	results <- runCode(ctx, client, cfg, framework, summaries.Summaries[0])
}
