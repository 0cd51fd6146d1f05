package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/K0NGR3SS/critfindings/internal/models"
	"github.com/K0NGR3SS/critfindings/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureSlack(t *testing.T, status int) (*SlackNotifier, *slackMessage) {
	t.Helper()

	got := &slackMessage{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(got))
		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)

	return NewSlackNotifier(server.URL, "#appsec"), got
}

func entries(n int) []report.Entry {
	var out []report.Entry
	for i := 1; i <= n; i++ {
		out = append(out, report.Entry{ID: models.FindingID{Value: strconv.Itoa(i), Numeric: true}, Title: "Finding " + strconv.Itoa(i)})
	}
	return out
}

func TestSendReport(t *testing.T) {
	notifier, got := captureSlack(t, http.StatusOK)

	require.NoError(t, notifier.SendReport(context.Background(), "shop", entries(2), false))

	assert.Equal(t, "#appsec", got.Channel)
	assert.Contains(t, got.Text, "*shop* has *2* critical")
	require.Len(t, got.Attachments, 1)
	assert.Contains(t, got.Attachments[0].Text, "`#1` Finding 1")
	assert.Empty(t, got.Attachments[0].Footer)
}

func TestSendReportTruncatesList(t *testing.T) {
	notifier, got := captureSlack(t, http.StatusOK)

	require.NoError(t, notifier.SendReport(context.Background(), "shop", entries(12), true))

	assert.Contains(t, got.Attachments[0].Text, "...and 2 more")
	assert.Equal(t, report.TruncatedWarning, got.Attachments[0].Footer)
}

func TestSendReportClean(t *testing.T) {
	notifier, got := captureSlack(t, http.StatusOK)

	require.NoError(t, notifier.SendReport(context.Background(), "shop", nil, false))
	assert.Contains(t, got.Text, "no critical severity findings")
	assert.Empty(t, got.Attachments)
}

func TestSendReportNon200(t *testing.T) {
	notifier, _ := captureSlack(t, http.StatusForbidden)

	err := notifier.SendReport(context.Background(), "shop", entries(1), false)
	assert.ErrorContains(t, err, "non-200 status: 403")
}
