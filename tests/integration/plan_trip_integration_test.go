package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPlanTripEndToEnd drives a running server. It needs TRAVEL_API_BASE_URL and
// a server configured with a real generation credential.
func TestPlanTripEndToEnd(t *testing.T) {
	loadDotEnv(t)

	baseURL := strings.TrimRight(os.Getenv("TRAVEL_API_BASE_URL"), "/")
	if baseURL == "" {
		t.Skip("TRAVEL_API_BASE_URL not set; skipping live API test")
	}
	client := &http.Client{Timeout: 5 * time.Minute}
	waitForAPIReady(t, client, baseURL)

	requestID := "it-" + time.Now().UTC().Format("20060102150405.000000")
	status, body := callPlanTrip(t, client, baseURL, requestID, map[string]any{
		"destination": "Lisbon",
		"travelers":   "2 adults",
		"duration":    "3 days",
		"budget":      "$3,000",
	})
	require.Equal(t, http.StatusOK, status, string(body))

	var resp struct {
		Success   bool   `json:"success"`
		Itinerary string `json:"itinerary"`
		Metadata  struct {
			InputTokens   int    `json:"inputTokens"`
			OutputTokens  int    `json:"outputTokens"`
			EstimatedCost string `json:"estimatedCost"`
		} `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(body, &resp), string(body))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, strings.TrimSpace(resp.Itinerary))
	assert.Greater(t, resp.Metadata.InputTokens, 0)
	assert.Greater(t, resp.Metadata.OutputTokens, 0)
	assert.True(t, strings.HasPrefix(resp.Metadata.EstimatedCost, "$"))
	t.Logf("[TEST LOG] tokens in=%d out=%d cost=%s", resp.Metadata.InputTokens, resp.Metadata.OutputTokens, resp.Metadata.EstimatedCost)

	// With a ledger configured on the server, the generation must have been recorded.
	if dsn := strings.TrimSpace(os.Getenv("TRAVEL_TEST_DSN")); dsn != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		db, err := pgxpool.New(ctx, dsn)
		require.NoError(t, err)
		defer db.Close()

		var in, out int
		err = db.QueryRow(ctx,
			"SELECT input_tokens, output_tokens FROM generation_usage WHERE request_id = $1", requestID,
		).Scan(&in, &out)
		require.NoError(t, err, "ledger row for %s (dsn %s)", requestID, redactedDSN(dsn))
		assert.Equal(t, resp.Metadata.InputTokens, in)
		assert.Equal(t, resp.Metadata.OutputTokens, out)
	}
}

// TestPlanTripValidationEndToEnd checks the 400 paths, which never reach the upstream.
func TestPlanTripValidationEndToEnd(t *testing.T) {
	loadDotEnv(t)

	baseURL := strings.TrimRight(os.Getenv("TRAVEL_API_BASE_URL"), "/")
	if baseURL == "" {
		t.Skip("TRAVEL_API_BASE_URL not set; skipping live API test")
	}
	client := &http.Client{Timeout: 30 * time.Second}
	waitForAPIReady(t, client, baseURL)

	status, body := callPlanTrip(t, client, baseURL, "", map[string]any{"destination": "Lisbon"})
	require.Equal(t, http.StatusBadRequest, status, string(body))
	assert.Contains(t, string(body), "Missing required fields: travelers, duration")
}

func callPlanTrip(t *testing.T, client *http.Client, baseURL, requestID string, payload map[string]any) (int, []byte) {
	t.Helper()

	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, baseURL+"/api/plan-trip", bytes.NewReader(raw))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	resp, err := client.Do(req)
	require.NoError(t, err, "call /api/plan-trip")
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func redactedDSN(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	scheme := strings.Index(dsn, "://")
	if at == -1 || scheme == -1 || at <= scheme+3 {
		return dsn
	}
	return dsn[:scheme+3] + "***:***" + dsn[at:]
}

func waitForAPIReady(t *testing.T, client *http.Client, baseURL string) {
	t.Helper()

	deadline := time.Now().Add(20 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := client.Get(baseURL + "/")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("api not ready: GET %s/ did not return 200 in time", baseURL)
}

// loadDotEnv loads the nearest .env walking up from the test directory.
// Variables already in the environment win.
func loadDotEnv(t *testing.T) {
	t.Helper()

	dir, err := os.Getwd()
	if err != nil {
		return
	}
	for i := 0; i < 8; i++ {
		candidate := filepath.Join(dir, ".env")
		if _, err := os.Stat(candidate); err == nil {
			_ = godotenv.Load(candidate)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}
