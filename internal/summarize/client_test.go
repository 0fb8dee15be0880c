package summarize

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinybird-labs/tb-migrate/internal/checks"
	"github.com/tinybird-labs/tb-migrate/pkg/shared/config"
)

func testFindings() []checks.Finding {
	return []checks.Finding{
		{
			Name:         checks.CheckSinks,
			Status:       checks.StatusFail,
			Issues:       []string{"Sink found in a.pipe: Sinks are not supported in Tinybird Forward"},
			FilesChecked: []string{"a.pipe"},
			AutoFixable:  true,
		},
		{
			Name:   checks.CheckEndpointTypes,
			Status: checks.StatusPass,
		},
	}
}

func TestClientSummarize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Len(t, payload.Findings, 2)
		assert.Contains(t, payload.CheckResults, "**Sinks Check**: FAIL")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Narrative{
			Summary:       "One blocking sink issue found.",
			MigrationPlan: "1. Remove the sink node.",
		})
	}))
	defer server.Close()

	cfg := &config.Config{}
	cfg.Summarizer.URL = server.URL
	client := NewClient(cfg, hclog.NewNullLogger())

	narrative, err := client.Summarize(testFindings())
	require.NoError(t, err)
	assert.Equal(t, "One blocking sink issue found.", narrative.Summary)
	assert.Equal(t, "1. Remove the sink node.", narrative.MigrationPlan)
}

func TestClientSummarizeServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	cfg := &config.Config{}
	cfg.Summarizer.URL = server.URL
	cfg.HttpClient.RetryCount = 1
	client := NewClient(cfg, hclog.NewNullLogger())

	_, err := client.Summarize(testFindings())
	assert.Error(t, err)
}

func TestDisabledSummarizerReturnsEmptyNarrative(t *testing.T) {
	narrative, err := Disabled{}.Summarize(testFindings())
	require.NoError(t, err)
	assert.Empty(t, narrative.Summary)
	assert.Empty(t, narrative.MigrationPlan)
}

func TestFormatCheckResults(t *testing.T) {
	out := FormatCheckResults(testFindings())

	assert.Contains(t, out, "**Sinks Check**: FAIL")
	assert.Contains(t, out, "Issues: Sink found in a.pipe")
	assert.Contains(t, out, "Files checked: 1")
	assert.Contains(t, out, "**Endpoint Types Check**: PASS")
	assert.Contains(t, out, "Issues: None")
}
