// Package metrics exposes Prometheus counters for the approval workflow.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

var (
	workflowActions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workflow_actions_total",
			Help: "Approval workflow operations by action, approver role and outcome.",
		},
		[]string{"action", "role", "outcome"},
	)

	batchItems = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workflow_batch_items_total",
			Help: "Items handled by bulk verify and bulk bill, by result.",
		},
		[]string{"operation", "result"},
	)
)

// Init registers the workflow metrics in the default registry.
func Init() {
	prometheus.MustRegister(workflowActions, batchItems)
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveAction counts one workflow operation.
func ObserveAction(action, role string, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	workflowActions.WithLabelValues(action, role, outcome).Inc()
}

// ObserveBatch counts the processed and failed items of one batch call.
func ObserveBatch(operation string, processed, failed int) {
	batchItems.WithLabelValues(operation, "processed").Add(float64(processed))
	batchItems.WithLabelValues(operation, "failed").Add(float64(failed))
}
