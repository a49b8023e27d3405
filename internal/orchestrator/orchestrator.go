package orchestrator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"studio/internal/catalog"
	"studio/internal/domain"
	"studio/internal/pricing"
	"studio/internal/registry"
	"studio/internal/transport"
)

const (
	defaultPollInterval = 2 * time.Second
	defaultMaxAttempts  = 180 // ~6 minutes at the default interval
)

// HistorySink receives a refresh signal whenever a job reaches terminal
// success. Notification is fire-and-forget; failures never affect the job.
type HistorySink interface {
	Refresh(ctx context.Context, card domain.JobCard)
}

// Options tune the poll loop. Zero values fall back to the defaults.
type Options struct {
	PollInterval    time.Duration
	MaxPollAttempts int
}

// Orchestrator drives jobs through submit -> poll -> terminal state,
// patching the registry on every transition. Each started job runs its own
// goroutine; cancellation is cooperative via a per-job context checked at
// every tick boundary.
type Orchestrator struct {
	registry *registry.Registry
	engine   *pricing.Engine
	client   transport.Client
	history  HistorySink
	logger   zerolog.Logger

	pollInterval time.Duration
	maxAttempts  int

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
}

// New builds an orchestrator. history may be nil.
func New(reg *registry.Registry, engine *pricing.Engine, client transport.Client, history HistorySink, logger zerolog.Logger, opts Options) *Orchestrator {
	interval := opts.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	attempts := opts.MaxPollAttempts
	if attempts <= 0 {
		attempts = defaultMaxAttempts
	}
	return &Orchestrator{
		registry:     reg,
		engine:       engine,
		client:       client,
		history:      history,
		logger:       logger,
		pollInterval: interval,
		maxAttempts:  attempts,
		cancels:      make(map[string]context.CancelFunc),
	}
}

// Start validates the request, records a queued card and fires the async
// lifecycle. Validation failures never create a card. The caller is expected
// to have debited credits already.
func (o *Orchestrator) Start(ctx context.Context, req domain.GenerationRequest) (string, error) {
	cap := o.engine.Catalog().Resolve(req.ModelID, req.ModelVariant)
	if !cap.Known {
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownModel, req.ModelID)
	}
	if !cap.SupportsMode(req.Mode) {
		return "", fmt.Errorf("%w: %s does not support %s", domain.ErrUnsupportedMode, cap.ModelID, req.Mode)
	}
	if err := checkAssets(req); err != nil {
		return "", err
	}

	req = normalizeRequest(cap, req)
	quote := o.engine.Quote(req.ModelID, req)
	if quote.Unpriced || quote.Credits <= 0 {
		return "", fmt.Errorf("%w: %s", domain.ErrUnpricedModel, req.ModelID)
	}
	req.DurationSec = quote.EffectiveDurationSec

	localID := o.registry.Insert(domain.JobCard{
		Status:  domain.JobStatusQueued,
		Credits: quote.Credits,
		Request: req,
	})

	// The job outlives the caller's request context.
	runCtx, cancel := context.WithCancel(context.Background())
	o.mu.Lock()
	o.cancels[localID] = cancel
	o.mu.Unlock()

	go o.run(runCtx, localID, req)
	return localID, nil
}

// Cancel flips the job's abort context, marks the card cancelled and asks
// the transport to stop server-side work. Local cancellation is
// authoritative; the remote call is best-effort. Cancelling a terminal job
// is a no-op.
func (o *Orchestrator) Cancel(ctx context.Context, localID string) error {
	card, ok := o.registry.Get(localID)
	if !ok {
		return domain.ErrNotFound
	}
	if card.Status.IsTerminal() {
		return nil
	}

	o.mu.Lock()
	if cancel, ok := o.cancels[localID]; ok {
		cancel()
	}
	o.mu.Unlock()

	status := domain.JobStatusCancelled
	msg := domain.ErrCancelled.Error()
	o.registry.Patch(localID, domain.JobPatch{Status: &status, Error: &msg})

	if card.RemoteID != "" {
		if err := o.client.Cancel(ctx, card.RemoteID); err != nil {
			o.logger.Warn().Err(err).Str("local_id", localID).Str("remote_id", card.RemoteID).
				Msg("orchestrator: remote cancel failed")
		}
	}
	o.logger.Info().Str("local_id", localID).Msg("orchestrator: job cancelled")
	return nil
}

func (o *Orchestrator) run(ctx context.Context, localID string, req domain.GenerationRequest) {
	defer o.release(localID)

	res, err := o.client.Submit(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return // cancelled during submission; Cancel already patched the card
		}
		o.fail(localID, fmt.Sprintf("submit failed: %v", err))
		return
	}

	if res.Completed() {
		o.succeed(ctx, localID, res.ResultRef)
		return
	}
	if res.RemoteID == "" {
		o.fail(localID, "submit returned neither a result nor a job id")
		return
	}

	status := domain.JobStatusProcessing
	progress := 5
	o.registry.Patch(localID, domain.JobPatch{RemoteID: &res.RemoteID, Status: &status, Progress: &progress})
	o.logger.Info().Str("local_id", localID).Str("remote_id", res.RemoteID).Msg("orchestrator: job submitted")

	o.poll(ctx, localID, res.RemoteID)
}

func (o *Orchestrator) poll(ctx context.Context, localID, remoteID string) {
	for attempt := 0; attempt < o.maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return
		case <-time.After(o.pollInterval):
		}

		st, err := o.client.PollStatus(ctx, remoteID)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			// Transient transport errors consume attempts from the same
			// budget; there is no separate retry loop.
			o.logger.Warn().Err(err).Str("remote_id", remoteID).Msg("orchestrator: poll failed")
			continue
		}

		switch NormalizeStatus(st.State) {
		case domain.JobStatusSuccess:
			o.succeed(ctx, localID, st.ResultRef)
			return
		case domain.JobStatusFailed:
			msg := st.Error
			if msg == "" {
				msg = "generation failed"
			}
			o.fail(localID, msg)
			return
		case domain.JobStatusCancelled:
			status := domain.JobStatusCancelled
			msg := st.Error
			if msg == "" {
				msg = domain.ErrCancelled.Error()
			}
			o.registry.Patch(localID, domain.JobPatch{Status: &status, Error: &msg})
			return
		case domain.JobStatusQueued:
			status := domain.JobStatusQueued
			progress := clampProgress(st.Progress, 10)
			o.registry.Patch(localID, domain.JobPatch{Status: &status, Progress: &progress})
		default:
			status := domain.JobStatusProcessing
			progress := clampProgress(st.Progress, 50)
			o.registry.Patch(localID, domain.JobPatch{Status: &status, Progress: &progress})
		}
	}
	o.fail(localID, domain.ErrPollTimeout.Error())
}

func (o *Orchestrator) succeed(ctx context.Context, localID, resultRef string) {
	status := domain.JobStatusSuccess
	progress := 100
	o.registry.Patch(localID, domain.JobPatch{Status: &status, Progress: &progress, ResultRef: &resultRef})
	o.logger.Info().Str("local_id", localID).Msg("orchestrator: job succeeded")

	if o.history == nil {
		return
	}
	if card, ok := o.registry.Get(localID); ok {
		go o.history.Refresh(context.WithoutCancel(ctx), card)
	}
}

func (o *Orchestrator) fail(localID, msg string) {
	status := domain.JobStatusFailed
	o.registry.Patch(localID, domain.JobPatch{Status: &status, Error: &msg})
	o.logger.Warn().Str("local_id", localID).Str("error", msg).Msg("orchestrator: job failed")
}

func (o *Orchestrator) release(localID string) {
	o.mu.Lock()
	if cancel, ok := o.cancels[localID]; ok {
		cancel()
		delete(o.cancels, localID)
	}
	o.mu.Unlock()
}

func clampProgress(p, floor int) int {
	if p <= 0 {
		return floor
	}
	if p > 100 {
		return 100
	}
	return p
}

// checkAssets verifies that mode-specific payloads are present before any
// card is created.
func checkAssets(req domain.GenerationRequest) error {
	switch req.Mode {
	case domain.ModeImageToVideo:
		if req.StartFrame == "" {
			return fmt.Errorf("%w: image-to-video needs a start frame", domain.ErrMissingAsset)
		}
	case domain.ModeStartEnd:
		if req.StartFrame == "" || req.EndFrame == "" {
			return fmt.Errorf("%w: start/end mode needs both frames", domain.ErrMissingAsset)
		}
	case domain.ModeVideoToVideo, domain.ModeExtend:
		if req.ReferenceVideo == "" {
			return fmt.Errorf("%w: %s needs a source video", domain.ErrMissingAsset, req.Mode)
		}
	case domain.ModeMotionTransfer:
		if req.MotionVideo == "" || req.CharacterImage == "" {
			return fmt.Errorf("%w: motion transfer needs a motion video and a character image", domain.ErrMissingAsset)
		}
	}
	return nil
}

// normalizeRequest clears fields the capability does not support and forces
// the audio flag per the model's audio class, so stale caller state never
// reaches pricing or the provider.
func normalizeRequest(cap catalog.Capability, req domain.GenerationRequest) domain.GenerationRequest {
	switch cap.AudioSupport {
	case domain.AudioAlways:
		req.Audio = true
	case domain.AudioNone:
		req.Audio = false
	}
	if len(cap.SoundPresets) == 0 {
		req.SoundPreset = ""
	}
	if len(cap.StyleOptions) == 0 {
		req.Style = ""
	}
	if len(cap.Qualities) == 0 {
		req.Quality = ""
	}
	if cap.VariantID != "" {
		req.ModelVariant = cap.VariantID
	}
	if req.VariantCount < 1 {
		req.VariantCount = 1
	}
	return req
}
