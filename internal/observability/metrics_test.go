package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/calendar/map", "GET", 200, 10*time.Millisecond)
	m.RecordRequest("/calendar/map", "GET", 200, 30*time.Millisecond)
	m.RecordError("/ingredients/:id", "PUT", "NOT_FOUND")

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.Requests["GET /calendar/map|200"])
	assert.Equal(t, int64(20), snap.AvgLatencyMS["GET /calendar/map|200"])
	assert.Equal(t, int64(1), snap.Errors["PUT /ingredients/:id|NOT_FOUND"])
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "X")

	snap := m.Snapshot()
	assert.Empty(t, snap.Requests)
	assert.Empty(t, snap.Errors)
}
