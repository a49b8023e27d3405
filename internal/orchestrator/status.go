package orchestrator

import (
	"strings"

	"studio/internal/domain"
)

// NormalizeStatus maps a provider's raw status vocabulary onto the canonical
// lifecycle states. Providers disagree on spelling ("completed" vs "success",
// "canceled" vs "cancelled", "pending" vs "queuing"); anything unrecognized
// is treated as still processing so a new provider status never strands a
// job silently.
func NormalizeStatus(raw string) domain.JobStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "completed", "complete", "success", "succeeded", "done", "finished":
		return domain.JobStatusSuccess
	case "failed", "fail", "error", "errored", "timed_out":
		return domain.JobStatusFailed
	case "cancelled", "canceled", "cancel", "aborted":
		return domain.JobStatusCancelled
	case "queued", "queuing", "pending", "waiting", "created", "in_queue", "submitted":
		return domain.JobStatusQueued
	default:
		return domain.JobStatusProcessing
	}
}
