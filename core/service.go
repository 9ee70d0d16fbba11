package core

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Interface defines a common interface for all services
type Interface interface {
	Start(ctx context.Context) error
	Stop()
}

// Registry manages all services
type Registry struct {
	services []Interface
	started  int
}

// NewRegistry creates a new core registry
func NewRegistry() *Registry {
	return &Registry{
		services: make([]Interface, 0),
	}
}

// Register adds a core to the registry
func (sr *Registry) Register(service Interface) {
	sr.services = append(sr.services, service)
}

// StartAll starts all registered services in registration order. When one
// fails, the services already started are stopped again.
func (sr *Registry) StartAll(ctx context.Context) error {
	for i, service := range sr.services {
		if err := service.Start(ctx); err != nil {
			log.Error().Err(err).Str("service", fmt.Sprintf("%T", service)).Msg("Service failed to start")
			sr.started = i
			sr.StopAll()
			return err
		}
	}
	sr.started = len(sr.services)
	return nil
}

// StopAll stops started services in reverse order
func (sr *Registry) StopAll() {
	for i := sr.started - 1; i >= 0; i-- {
		sr.services[i].Stop()
	}
	sr.started = 0
}
