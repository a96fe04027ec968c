package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vladimiradmaev/babycare-helper/internal/domain"
)

func TestEntryKind(t *testing.T) {
	tests := []struct {
		entry domain.LogEntry
		want  string
	}{
		{domain.LogEntry{FormulaMl: 60, Stool: true}, "feeding"},
		{domain.LogEntry{Urination: true}, "diaper"},
		{domain.LogEntry{Iron: true}, "supplement"},
		{domain.LogEntry{Bathing: true}, "care"},
		{domain.LogEntry{Notes: "hiccups"}, "other"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, EntryKind(tc.entry))
	}
}

func TestHandlerExposesCounters(t *testing.T) {
	before := testutil.ToFloat64(RemindersSent.WithLabelValues("feeding"))
	RemindersSent.WithLabelValues("feeding").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(RemindersSent.WithLabelValues("feeding")))

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `babycare_reminders_sent_total{kind="feeding"}`)
}
