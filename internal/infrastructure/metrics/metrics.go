// Package metrics provides Prometheus metrics for the call-api service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ActiveCalls tracks the number of live call sessions.
	ActiveCalls = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "voxassist_active_calls",
			Help: "Number of currently active call sessions",
		},
	)

	// CallsStarted tracks the total number of calls started.
	CallsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "voxassist_calls_started_total",
			Help: "Total number of call sessions started",
		},
	)

	// CallsFinished tracks terminal transitions by final status.
	CallsFinished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voxassist_calls_finished_total",
			Help: "Total number of call sessions finished, by final status",
		},
		[]string{"status"},
	)

	// TurnsProcessed tracks orchestrated turns.
	TurnsProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "voxassist_turns_total",
			Help: "Total number of conversation turns processed",
		},
	)

	// TurnDuration tracks end-to-end turn processing time.
	TurnDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "voxassist_turn_duration_seconds",
			Help:    "Duration of orchestrated conversation turns",
			Buckets: prometheus.DefBuckets,
		},
	)

	// IntentsDetected tracks classified intents by label.
	IntentsDetected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voxassist_intents_detected_total",
			Help: "Total number of detected intents, by intent",
		},
		[]string{"intent"},
	)

	// Escalations tracks turns that triggered a human handoff.
	Escalations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "voxassist_escalations_total",
			Help: "Total number of turns that escalated toward a human agent",
		},
	)

	// ToolExecutions tracks responder-requested tool calls by tool.
	ToolExecutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voxassist_tool_executions_total",
			Help: "Total number of tool executions requested by the responder",
		},
		[]string{"tool"},
	)

	// CollaboratorFailures tracks absorbed external-service failures.
	CollaboratorFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voxassist_collaborator_failures_total",
			Help: "Total number of collaborator failures absorbed into fallback replies",
		},
		[]string{"collaborator"},
	)

	// HTTPRequests tracks served HTTP requests by route and status.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voxassist_http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration tracks HTTP handler latency by route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "voxassist_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// RecordHTTPRequest records one served HTTP request.
func RecordHTTPRequest(method, path, status string, d time.Duration) {
	HTTPRequests.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

// RecordCallStarted increments call creation metrics.
func RecordCallStarted() {
	CallsStarted.Inc()
	ActiveCalls.Inc()
}

// RecordCallEnded records a terminal transition with its final status.
func RecordCallEnded(status string) {
	CallsFinished.WithLabelValues(status).Inc()
	ActiveCalls.Dec()
}

// RecordIntentDetected counts a classified intent.
func RecordIntentDetected(intent string) {
	IntentsDetected.WithLabelValues(intent).Inc()
}

// RecordEscalation counts a turn that escalated.
func RecordEscalation() {
	Escalations.Inc()
}

// RecordToolExecuted counts a successful tool execution.
func RecordToolExecuted(tool string) {
	ToolExecutions.WithLabelValues(tool).Inc()
}

// RecordCollaboratorFailure counts an absorbed collaborator failure.
func RecordCollaboratorFailure(collaborator string) {
	CollaboratorFailures.WithLabelValues(collaborator).Inc()
}

// ObserveTurnDuration records one turn's processing time.
func ObserveTurnDuration(d time.Duration) {
	TurnsProcessed.Inc()
	TurnDuration.Observe(d.Seconds())
}
