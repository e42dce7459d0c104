// Package metrics defines all custom Prometheus metrics for the issue
// tracker API. It is the single source of truth for metric names, labels
// and help strings; registration happens automatically via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "issuetracker"

// EventsPublishedTotal counts domain events handed to the message
// fabric, labelled by event kind ("new_issue", "new_comment").
var EventsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_published_total",
		Help:      "Total number of domain events published to the fabric.",
	},
	[]string{"kind"},
)

// EventsDroppedTotal counts events dropped because the publish queue was
// full. Fire-and-forget: a drop is logged and counted, never surfaced.
var EventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_dropped_total",
		Help:      "Total number of events dropped on a full publish queue.",
	},
)

// EventsErrorsTotal counts publish attempts the fabric rejected.
var EventsErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_errors_total",
		Help:      "Total number of failed event publish attempts.",
	},
)

// AuthDeniedTotal counts requests rejected by the token middleware.
var AuthDeniedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_denied_total",
		Help:      "Total number of requests rejected for missing or invalid tokens.",
	},
)

// IssuesCreatedTotal counts successfully created issues.
var IssuesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "issues_created_total",
		Help:      "Total number of issues created.",
	},
)

// CommentsCreatedTotal counts successfully posted comments.
var CommentsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_created_total",
		Help:      "Total number of comments posted.",
	},
)
