package ports

import (
	"context"

	"github.com/effective-digital/flowkit/pkg/domain"
)

// Directory is the process directory service: a thin client over the remote
// engine's query surface. All operations are single-shot network calls with
// no retry and no caching; errors are returned, never thrown across the
// boundary.
type Directory interface {
	// GetContextProcesses fetches the process instances grouped under a named
	// business context. The optional filter map is appended as query
	// parameters. When checkExpiry is true the session gate is consulted
	// before the network call.
	GetContextProcesses(ctx context.Context, name string, filters map[string]string, checkExpiry bool) (domain.ContextFlows, error)

	// StartOrResumeContextProcess starts (or resumes) the named process with
	// the given payload data.
	StartOrResumeContextProcess(ctx context.Context, name string, data map[string]string, checkExpiry bool) (*domain.ProcessInstance, error)

	// StartOrResumeProcess resumes the process instance with the given id.
	StartOrResumeProcess(ctx context.Context, instanceID string) (*domain.ProcessInstance, error)
}
