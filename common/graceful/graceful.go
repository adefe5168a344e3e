package graceful

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/Laisky/zap"

	"github.com/testgen-ai/testgen/common/logger"
)

// Lifecycle manager for graceful shutdown and request draining.

var (
	inFlightRequests int64
	draining         atomic.Bool
)

// BeginRequest increments the in-flight request counter and returns a function
// to decrement it. Use with `defer` at the top of request handlers/middlewares.
func BeginRequest() func() {
	atomic.AddInt64(&inFlightRequests, 1)
	return func() {
		atomic.AddInt64(&inFlightRequests, -1)
	}
}

// InFlight returns the number of requests currently being served.
func InFlight() int64 {
	return atomic.LoadInt64(&inFlightRequests)
}

// Drain waits until no request is in flight, bounded by the ctx deadline.
func Drain(ctx context.Context) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		n := InFlight()
		if n == 0 {
			logger.Logger.Info("graceful drain complete")
			return nil
		}

		select {
		case <-ctx.Done():
			logger.Logger.Error("graceful drain timeout", zap.Int64("in_flight_requests", n))
			return ctx.Err()
		case <-ticker.C:
			logger.Logger.Debug("draining...", zap.Int64("in_flight_requests", n))
		}
	}
}

// SetDraining flips the draining flag to true.
func SetDraining() { draining.Store(true) }

// IsDraining returns whether the server is currently draining.
func IsDraining() bool { return draining.Load() }
