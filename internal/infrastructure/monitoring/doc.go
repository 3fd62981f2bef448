/*
Package monitoring provides Prometheus metrics for the backend.

# Overview

Collects HTTP request metrics plus the domain signals that matter for a
hospital call system: live WebSocket connections, chat turns and token
throughput, tool-call outcomes, and department broadcast volume.

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	metrics.WSConnections.Inc()
	metrics.ToolCalls.WithLabelValues("create_request", "ok").Inc()
*/
package monitoring
