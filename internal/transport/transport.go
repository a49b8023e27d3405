// Package transport defines the contract between the orchestrator and an
// external generation provider. Concrete clients live in subpackages; the
// orchestrator only ever sees this interface.
package transport

import (
	"context"

	"studio/internal/domain"
)

// SubmitResult is the provider's immediate answer to a submission. Exactly
// one of the two outcomes is meaningful: a synchronously completed result
// (ResultRef set) or a remote job id to track (RemoteID set).
type SubmitResult struct {
	RemoteID  string
	ResultRef string
	State     string // raw provider status accompanying a synchronous result
}

// Completed reports whether the provider finished the job synchronously.
func (r SubmitResult) Completed() bool { return r.ResultRef != "" }

// JobStatus is one raw status snapshot for a tracked remote job. State
// carries the provider's own vocabulary; normalization happens in the
// orchestrator.
type JobStatus struct {
	State     string
	Progress  int
	ResultRef string
	Error     string
}

// Client submits jobs to a provider, polls their status and requests
// best-effort cancellation.
type Client interface {
	Submit(ctx context.Context, req domain.GenerationRequest) (SubmitResult, error)
	PollStatus(ctx context.Context, remoteID string) (JobStatus, error)
	Cancel(ctx context.Context, remoteID string) error
}
