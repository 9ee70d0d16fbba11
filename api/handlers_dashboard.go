package api

import (
	"bytes"
	"net/http"
)

// handleDashboard returns the current view model
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.sendJSONResponse(w, r, s.dashboard.View())
}

// handleRefresh re-fetches both sources and waits for them to settle.
// Form posts from the page are redirected back to it.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	s.dashboard.RefreshAll(r.Context())

	if wantsHTML(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.sendJSONResponse(w, nil, s.dashboard.View())
}

func (s *Server) handleDashboardPage(w http.ResponseWriter, r *http.Request) {
	view := s.dashboard.View()
	page := newPageData(view, s.refreshInterval)

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, page); err != nil {
		s.logger.Error().Err(err).Msg("Error rendering dashboard page")
		http.Error(w, "Error rendering page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Warn().Err(err).Msg("Error writing page")
	}
}
