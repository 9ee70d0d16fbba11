package api

import (
	"net/http"

	"github.com/status-im/price-dashboard/metrics"
)

// handleHealth responds with 200 OK and the status of each data source
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status": "ok",
		"services": map[string]string{
			metrics.SourcePrice:   s.dashboard.SourceStatus(metrics.SourcePrice),
			metrics.SourceHistory: s.dashboard.SourceStatus(metrics.SourceHistory),
		},
		"healthy": s.dashboard.Healthy(),
	}

	s.sendJSONResponse(w, r, status)
}
