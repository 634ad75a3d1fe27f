package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/stats", "200"))
	RecordAPIRequest("GET", "/api/stats", 200, 15*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/stats", "200"))
	assert.Equal(t, before+1, after)
}

func TestRecordAuthAttempt(t *testing.T) {
	before := testutil.ToFloat64(AuthAttempts.WithLabelValues("login", "rejected"))
	RecordAuthAttempt("login", "rejected")
	assert.Equal(t, before+1, testutil.ToFloat64(AuthAttempts.WithLabelValues("login", "rejected")))
}

func TestRecordPublish(t *testing.T) {
	okBefore := testutil.ToFloat64(EventsPublished.WithLabelValues("journal.shared", "ok"))
	errBefore := testutil.ToFloat64(EventsPublished.WithLabelValues("journal.shared", "error"))

	RecordPublish("journal.shared", nil)
	RecordPublish("journal.shared", errors.New("channel closed"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(EventsPublished.WithLabelValues("journal.shared", "ok")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(EventsPublished.WithLabelValues("journal.shared", "error")))
}
