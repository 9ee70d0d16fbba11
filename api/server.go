package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/status-im/price-dashboard/dashboard"
)

// Dashboard is the part of the dashboard controller the server renders from
type Dashboard interface {
	View() dashboard.View
	RefreshAll(ctx context.Context)
	SourceStatus(source string) string
	Healthy() bool
}

type Server struct {
	port            string
	dashboard       Dashboard
	refreshInterval time.Duration
	logger          zerolog.Logger
	server          *http.Server
	addr            net.Addr
}

func New(port string, dashboard Dashboard, refreshInterval time.Duration) *Server {
	return &Server{
		port:            port,
		dashboard:       dashboard,
		refreshInterval: refreshInterval,
		logger:          log.With().Str("component", "api").Logger(),
	}
}

// Handler builds the router
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/", s.handleDashboardPage).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/dashboard", s.handleDashboard).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/refresh", s.handleRefresh).Methods(http.MethodPost)

	router.HandleFunc("/health", s.handleHealth)
	router.Handle("/metrics", promhttp.Handler())

	return router
}

func (s *Server) Start(ctx context.Context) error {
	if s.dashboard == nil {
		return errors.New("dashboard dependency not provided")
	}

	listener, err := net.Listen("tcp", ":"+s.port)
	if err != nil {
		return err
	}
	s.addr = listener.Addr()

	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info().Str("addr", s.addr.String()).Msg("Server starting")
	s.logger.Info().Msg("Prometheus metrics available at /metrics endpoint")

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("Server error")
		}
	}()

	return nil
}

// Addr returns the bound address once started
func (s *Server) Addr() net.Addr {
	return s.addr
}
