package e2etest

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/status-im/price-dashboard/dashboard"
)

// waitFor polls cond until it holds or maxWait elapses
func waitFor(maxWait time.Duration, cond func() bool) bool {
	deadline := time.Now().Add(maxWait)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(50 * time.Millisecond)
	}
	return cond()
}

// getView fetches the dashboard view model
func getView(t *testing.T, env *TestEnv) dashboard.View {
	t.Helper()
	resp, err := http.Get(env.ServerBaseURL + "/api/v1/dashboard")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var view dashboard.View
	require.NoError(t, json.Unmarshal(body, &view))
	return view
}

// waitForInitialLoad waits until the dashboard leaves the loading state
func waitForInitialLoad(t *testing.T, env *TestEnv) dashboard.View {
	t.Helper()
	var view dashboard.View
	loaded := waitFor(5*time.Second, func() bool {
		view = getView(t, env)
		return !view.Loading
	})
	require.True(t, loaded, "dashboard did not finish the initial load")
	return view
}
