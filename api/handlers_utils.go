package api

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// sendJSONResponse is a common wrapper for JSON responses that sets Content-Type,
// Content-Length and ETag headers. A matching If-None-Match gets 304.
func (s *Server) sendJSONResponse(w http.ResponseWriter, r *http.Request, data interface{}) {
	responseBytes, err := json.Marshal(data)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error encoding response")
		http.Error(w, "Error encoding response", http.StatusInternalServerError)
		return
	}

	// ETag is the MD5 of the body
	hash := md5.Sum(responseBytes)
	etag := "\"" + hex.EncodeToString(hash[:]) + "\""

	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if r != nil && etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(responseBytes)))

	if _, err := w.Write(responseBytes); err != nil {
		s.logger.Warn().Err(err).Msg("Error writing response")
	}
}

func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

// wantsHTML is true for browser form posts, which get redirected back to the page
func wantsHTML(r *http.Request) bool {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		return true
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") && !strings.Contains(accept, "application/json")
}

// Stop gracefully shuts down the server
func (s *Server) Stop() {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("Error shutting down server")
		}
	}
}
