// Package logger owns the process-wide structured logger.
//
// Logger is usable from package init onwards. main refines it once config is loaded:
// SetupLogger mirrors gin output into LogDir and SetupEnhancedLogger attaches host context
// and the optional alert webhook.
package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Laisky/errors/v2"
	gutils "github.com/Laisky/go-utils/v5"
	glog "github.com/Laisky/go-utils/v5/log"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"

	"github.com/testgen-ai/testgen/common/config"
)

const loggerName = "testgen"

var (
	// Logger is the root logger. Request handlers should prefer gmw.GetLogger(c), which
	// carries the request id.
	Logger glog.Logger
	// LogDir receives a copy of gin's access and error output. Empty keeps stdout only.
	LogDir string

	setupLogOnce sync.Once
)

func init() {
	lg, err := glog.NewConsoleWithName(loggerName, configuredLevel())
	if err != nil {
		panic(fmt.Sprintf("failed to create logger: %+v", err))
	}
	Logger = lg
}

// configuredLevel is debug when DEBUG=true and info otherwise.
func configuredLevel() glog.Level {
	if config.DebugEnabled {
		return glog.LevelDebug
	}
	return glog.LevelInfo
}

// SetupLogger tees gin's writers into a log file under LogDir. It runs at most once.
func SetupLogger() {
	setupLogOnce.Do(func() {
		if LogDir == "" {
			return
		}

		logPath := logFilePath(time.Now())
		fd, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			Logger.Fatal("open log file", zap.String("path", logPath), zap.Error(err))
		}
		gin.DefaultWriter = io.MultiWriter(os.Stdout, fd)
		gin.DefaultErrorWriter = io.MultiWriter(os.Stderr, fd)
		Logger.Info("gin output teed into log file", zap.String("path", logPath))
	})
}

// logFilePath names one file per day unless ONLY_ONE_LOG_FILE is set.
func logFilePath(now time.Time) string {
	if config.OnlyOneLogFile {
		return filepath.Join(LogDir, loggerName+".log")
	}
	return filepath.Join(LogDir, fmt.Sprintf("%s-%s.log", loggerName, now.Format("20060102")))
}

// SetupEnhancedLogger tags every entry with the host name, pushes error-level entries to
// LOG_PUSH_API when configured and re-applies the configured level.
func SetupEnhancedLogger(ctx context.Context) {
	var opts []zap.Option
	if config.LogPushAPI != "" {
		hook, err := alertHook(ctx)
		if err != nil {
			Logger.Panic("set up alert pusher", zap.Error(err))
		}
		opts = append(opts, hook)
		Logger.Info("alert pusher configured",
			zap.String("alert_api", config.LogPushAPI),
			zap.String("alert_type", config.LogPushType))
	}

	hostname, err := os.Hostname()
	if err != nil {
		Logger.Panic("get hostname", zap.Error(err))
	}
	Logger = Logger.WithOptions(opts...).With(zap.String("host", hostname))

	_ = Logger.ChangeLevel(configuredLevel())
	Logger.Debug("debug logging enabled")
}

// alertHook forwards error-level entries to the alert webhook, at most one per second.
func alertHook(ctx context.Context) (zap.Option, error) {
	limiter, err := gutils.NewRateLimiter(ctx, gutils.RateLimiterArgs{
		Max:     1,
		NPerSec: 1,
	})
	if err != nil {
		return nil, errors.Wrap(err, "new rate limiter")
	}

	pusher, err := glog.NewAlert(ctx,
		config.LogPushAPI,
		glog.WithAlertType(config.LogPushType),
		glog.WithAlertToken(config.LogPushToken),
		glog.WithAlertHookLevel(zap.ErrorLevel),
		glog.WithRateLimiter(limiter),
	)
	if err != nil {
		return nil, errors.Wrap(err, "new alert pusher")
	}
	return zap.HooksWithFields(pusher.GetZapHook()), nil
}
