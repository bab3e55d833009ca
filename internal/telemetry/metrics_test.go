package telemetry

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveTransform_CountsOutcomes(t *testing.T) {
	ok := transformsTotal.WithLabelValues("metrics_test", "ok")
	failed := transformsTotal.WithLabelValues("metrics_test", "error")
	okBefore, failedBefore := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	ObserveTransform("metrics_test", 12, time.Millisecond, nil)
	ObserveTransform("metrics_test", 0, time.Millisecond, errors.New("boom"))
	ObserveTransform("metrics_test", 3, time.Millisecond, nil)

	assert.Equal(t, okBefore+2, testutil.ToFloat64(ok))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(failed))
	assert.Equal(t, 1, testutil.CollectAndCount(transformRows, "tabular_transform_rows"))
}
