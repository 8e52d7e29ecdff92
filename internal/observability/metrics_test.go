package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestTrackQuery(t *testing.T) {
	done := TrackQuery("select", "track_query_test")
	done()

	count := testutil.CollectAndCount(DatabaseQueryLatency)
	assert.GreaterOrEqual(t, count, 1)

	histogram, err := DatabaseQueryLatency.GetMetricWithLabelValues("select", "track_query_test")
	assert.NoError(t, err)
	assert.NotNil(t, histogram)
}
