// Package metrics defines all custom Prometheus metrics for the project
// portal. It is the single source of truth for metric names, labels, and
// help strings. Metrics register themselves with the default registry via
// promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// SignupsTotal counts successful student account creations.
var SignupsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of student accounts created.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ProjectsSubmittedTotal counts newly submitted project ideas.
var ProjectsSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projects_submitted_total",
		Help:      "Total number of project ideas submitted.",
	},
)

// ProjectDecisionsTotal counts faculty approval decisions.
// Label:
//   - decision: "approved" or "rejected"
var ProjectDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "project_decisions_total",
		Help:      "Total number of faculty approval decisions, by outcome.",
	},
	[]string{"decision"},
)

// FinalSubmissionsTotal counts final link submissions.
var FinalSubmissionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "final_submissions_total",
		Help:      "Total number of final project submissions.",
	},
)

// FeedbackAssignedTotal counts feedback/marks writes by faculty.
var FeedbackAssignedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feedback_assigned_total",
		Help:      "Total number of feedback or marks assignments.",
	},
)
