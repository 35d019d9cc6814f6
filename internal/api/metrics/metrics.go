// Package metrics defines and registers all custom Prometheus metrics
// for the office API. It is the single source of truth for metric names,
// labels, and help strings. Registration happens at import time through
// promauto; the router only needs to expose the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "simanis"

// CasesCreatedTotal counts newly created cases.
// Label:
//   - priority: "low", "normal", "high" or "urgent"
var CasesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cases_created_total",
		Help:      "Total number of service cases created, by priority.",
	},
	[]string{"priority"},
)

// CaseTransitionsTotal counts lifecycle transitions.
// Labels:
//   - from: the previous case status
//   - to: the new case status
var CaseTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "case_transitions_total",
		Help:      "Total number of case status transitions, by from/to status.",
	},
	[]string{"from", "to"},
)

// WizardSubmissionsTotal counts completed wizard submissions.
var WizardSubmissionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "wizard_submissions_total",
		Help:      "Total number of creation wizard submissions that produced a case.",
	},
)

// ChecklistProgress observes a case's document checklist completion
// percentage each time a required document is received.
var ChecklistProgress = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "checklist_progress_percent",
		Help:      "Document checklist completion percentage observed after each received document.",
		Buckets:   prometheus.LinearBuckets(0, 10, 11),
	},
)

// AuthFailuresTotal counts rejected authentication attempts.
// Label:
//   - reason: "missing_token", "invalid_token" or "bad_credentials"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of rejected authentication attempts, by reason.",
	},
	[]string{"reason"},
)
