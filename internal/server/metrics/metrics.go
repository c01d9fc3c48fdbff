// Package metrics exposes Prometheus instrumentation for the identity
// endpoints. Collectors are registered on the default registry and served
// by promhttp on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RegistrationsTotal counts successful account registrations.
	RegistrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fittrack",
		Name:      "registrations_total",
		Help:      "Number of successfully registered accounts.",
	})

	// LoginsTotal counts login attempts by outcome ("ok", "unauthorized",
	// "error").
	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fittrack",
		Name:      "logins_total",
		Help:      "Number of login attempts by outcome.",
	}, []string{"outcome"})
)
