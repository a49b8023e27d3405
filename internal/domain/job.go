package domain

import "time"

// JobStatus enumerates the canonical job lifecycle states. Provider-specific
// status vocabularies are normalized into exactly these five values.
type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusProcessing JobStatus = "processing"
	JobStatusSuccess    JobStatus = "success"
	JobStatusFailed     JobStatus = "failed"
	JobStatusCancelled  JobStatus = "cancelled"
)

// IsTerminal reports whether the status has no outgoing transitions.
func (s JobStatus) IsTerminal() bool {
	switch s {
	case JobStatusSuccess, JobStatusFailed, JobStatusCancelled:
		return true
	default:
		return false
	}
}

// JobCard is one generation job as tracked by the registry. Cards are owned
// by the registry; callers always receive copies. Once a card reaches a
// terminal status it becomes immutable — a re-submission creates a new card.
type JobCard struct {
	LocalID   string
	RemoteID  string
	Status    JobStatus
	Progress  int
	ResultRef string
	Error     string
	Credits   int
	Request   GenerationRequest
	CreatedAt time.Time
	UpdatedAt time.Time
}

// JobPatch carries a partial update for a card. Nil fields keep their prior
// value; a patch is a merge, never a replace.
type JobPatch struct {
	RemoteID  *string
	Status    *JobStatus
	Progress  *int
	ResultRef *string
	Error     *string
}

// StatusUpdate is one normalized poll result from the external transport.
type StatusUpdate struct {
	Status    JobStatus
	Progress  int
	ResultRef string
	Error     string
}
