package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/testgen-ai/testgen/common/config"
	"github.com/testgen-ai/testgen/common/logger"
	"github.com/testgen-ai/testgen/monitor"
)

func SetMetricsRouter(router *gin.Engine) {
	if !config.EnablePrometheusMetrics {
		return
	}
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(monitor.Registry, promhttp.HandlerOpts{})))
	logger.Logger.Info("Prometheus metrics endpoint available at /metrics")
}
