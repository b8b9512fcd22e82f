// Package metrics registers the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled requests by method and status class.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "backoffice_http_requests_total",
		Help: "Handled HTTP requests.",
	}, []string{"method", "status"})

	// NotificationsTotal counts dispatch outcomes per channel. Outcome is
	// "sent" for a live provider delivery and "recorded" for the local
	// audit-log fallback.
	NotificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "backoffice_notifications_total",
		Help: "Notification dispatch outcomes.",
	}, []string{"channel", "outcome"})
)
