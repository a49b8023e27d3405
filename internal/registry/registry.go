package registry

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"studio/internal/domain"
)

// Registry is the in-memory collection of job cards, ordered most recent
// first. It is the only shared mutable resource in the lifecycle machinery
// and is safe for concurrent use by poll loops, the cancellation path and
// display readers. Callers always receive copies, never shared references.
type Registry struct {
	mu     sync.RWMutex
	order  []string
	cards  map[string]*domain.JobCard
	logger zerolog.Logger
}

// New creates an empty registry.
func New(logger zerolog.Logger) *Registry {
	return &Registry{cards: make(map[string]*domain.JobCard), logger: logger}
}

// Insert stores a new card and returns its local id, generating one when the
// card does not carry it yet.
func (r *Registry) Insert(card domain.JobCard) string {
	if card.LocalID == "" {
		card.LocalID = uuid.NewString()
	}
	now := time.Now().UTC()
	if card.CreatedAt.IsZero() {
		card.CreatedAt = now
	}
	card.UpdatedAt = now

	r.mu.Lock()
	defer r.mu.Unlock()
	c := card
	r.cards[c.LocalID] = &c
	r.order = append([]string{c.LocalID}, r.order...)
	return c.LocalID
}

// Patch merges the given fields into a card. Omitted fields keep their prior
// value. Patching a terminal card is a no-op except for the one legal racing
// transition queued/processing -> cancelled. Progress never decreases while
// the card is non-terminal.
func (r *Registry) Patch(localID string, patch domain.JobPatch) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	card, ok := r.cards[localID]
	if !ok {
		r.logger.Warn().Str("local_id", localID).Msg("registry: patch for unknown card")
		return false
	}
	if card.Status.IsTerminal() {
		if patch.Status == nil || *patch.Status != domain.JobStatusCancelled {
			r.logger.Warn().Str("local_id", localID).Str("status", string(card.Status)).
				Msg("registry: patch on terminal card ignored")
			return false
		}
		// Cancellation may race the poll loop, but a card that already
		// finished stays finished.
		r.logger.Warn().Str("local_id", localID).Str("status", string(card.Status)).
			Msg("registry: cancel after terminal state ignored")
		return false
	}

	if patch.RemoteID != nil {
		card.RemoteID = *patch.RemoteID
	}
	if patch.Status != nil {
		card.Status = *patch.Status
	}
	if patch.Progress != nil && *patch.Progress > card.Progress {
		card.Progress = *patch.Progress
	}
	if patch.ResultRef != nil {
		card.ResultRef = *patch.ResultRef
	}
	if patch.Error != nil {
		card.Error = *patch.Error
	}
	card.UpdatedAt = time.Now().UTC()
	return true
}

// Get returns a copy of the card with the given local id.
func (r *Registry) Get(localID string) (domain.JobCard, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	card, ok := r.cards[localID]
	if !ok {
		return domain.JobCard{}, false
	}
	return *card, true
}

// FindByRemoteID returns a copy of the card tracking the given remote id.
func (r *Registry) FindByRemoteID(remoteID string) (domain.JobCard, bool) {
	if remoteID == "" {
		return domain.JobCard{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, card := range r.cards {
		if card.RemoteID == remoteID {
			return *card, true
		}
	}
	return domain.JobCard{}, false
}

// List returns copies of all cards, most recent first.
func (r *Registry) List() []domain.JobCard {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.JobCard, 0, len(r.order))
	for _, id := range r.order {
		if card, ok := r.cards[id]; ok {
			out = append(out, *card)
		}
	}
	return out
}
