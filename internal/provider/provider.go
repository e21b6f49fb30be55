// Package provider adapts an external source of running units (the Docker
// daemon, the Kubernetes API) into the engine's Target type.
package provider

import (
	"context"

	"github.com/radvisor/radvisor/internal/target"
)

// Provider is the narrow capability the poll thread needs from either
// backend: connect once, then repeatedly list the currently running units.
// Neither method is called concurrently with itself; Fetch is called once
// per poll tick from a single goroutine.
type Provider interface {
	// Initialize establishes the connection (Docker socket dial, k8s
	// client construction and informer cache sync). Called once before
	// the first Fetch.
	Initialize(ctx context.Context) error

	// Fetch returns every currently running unit this provider can see.
	Fetch(ctx context.Context) ([]target.Target, error)

	// Close releases any held connections.
	Close() error
}
