package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveAction(t *testing.T) {
	before := testutil.ToFloat64(workflowActions.WithLabelValues("approve_project", "lead", OutcomeError))

	ObserveAction("approve_project", "lead", errors.New("boom"))
	ObserveAction("approve_project", "lead", nil)

	after := testutil.ToFloat64(workflowActions.WithLabelValues("approve_project", "lead", OutcomeError))
	assert.Equal(t, before+1, after)
}

func TestObserveBatch(t *testing.T) {
	ObserveBatch("bulk_bill", 2, 1)

	assert.GreaterOrEqual(t, testutil.ToFloat64(batchItems.WithLabelValues("bulk_bill", "processed")), 2.0)
	assert.GreaterOrEqual(t, testutil.ToFloat64(batchItems.WithLabelValues("bulk_bill", "failed")), 1.0)
}
