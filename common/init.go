package common

import (
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/Laisky/zap"

	"github.com/testgen-ai/testgen/common/logger"
)

// Version is overwritten at build time through -ldflags.
var Version = "v0.0.0"

// StartTime is the unix timestamp the process started at.
var StartTime = time.Now().Unix()

var (
	Port   = flag.Int("port", 8000, "the listening port")
	LogDir = flag.String("log-dir", "", "specify the log directory")
)

func Init() {
	flag.Parse()

	if *LogDir != "" {
		expanded := expandLogDirPath(*LogDir)
		lg := logger.Logger.With(zap.String("log_dir", expanded))

		var err error
		expanded, err = filepath.Abs(expanded)
		if err != nil {
			lg.Fatal("failed to get absolute log dir", zap.Error(err))
		}

		if err = os.MkdirAll(expanded, 0o755); err != nil {
			lg.Fatal("failed to create log dir", zap.Error(err))
		}

		lg.Info("set log dir", zap.String("log_dir", expanded))
		logger.LogDir = expanded
		*LogDir = expanded
	}
}
