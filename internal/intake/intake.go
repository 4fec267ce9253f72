// Package intake turns raw contact-form payloads into stored service
// requests. The happy path writes straight to the hosted database; when
// that fails for any reason the submission is parked in the local durable
// queue and the outcome is degraded, not failed. The visitor still gets
// their WhatsApp handoff.
package intake

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/VitorSouza2004/SouzaTec/internal/models"
)

// Sink is the remote create capability of the hosted database.
type Sink interface {
	Create(ctx context.Context, req *models.ServiceRequest, localRef string) (string, error)
}

// Store is the enqueue side of the local durable queue.
type Store interface {
	Enqueue(ctx context.Context, req models.ServiceRequest) (models.QueuedSubmission, error)
}

// Notifier pushes a staff alert for a new request. Fire-and-forget.
type Notifier interface {
	NotifyNewRequest(req models.ServiceRequest) error
}

// Submission outcome statuses.
const (
	OutcomeSaved  = "saved"  // confirmed by the hosted database
	OutcomeQueued = "queued" // accepted locally, remote delivery deferred
)

type Outcome struct {
	Status      string `json:"status"`
	ID          string `json:"id,omitempty"`
	LocalID     string `json:"localId,omitempty"`
	WhatsAppURL string `json:"whatsappUrl"`
}

type Intake struct {
	sink     Sink
	store    Store
	ip       *IPLookup
	notifier Notifier // nil disables staff notifications
	waNumber string
	log      zerolog.Logger
	now      func() time.Time
}

func New(sink Sink, store Store, ip *IPLookup, notifier Notifier, waNumber string, log zerolog.Logger) *Intake {
	return &Intake{
		sink:     sink,
		store:    store,
		ip:       ip,
		notifier: notifier,
		waNumber: waNumber,
		log:      log,
		now:      time.Now,
	}
}

// Submit validates and stores one contact-form payload.
// A *ValidationError return means the payload was rejected with zero side
// effects. Any other error means even the local fallback failed.
func (i *Intake) Submit(ctx context.Context, in RawSubmission) (Outcome, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return Outcome{}, err
	}

	now := i.now()
	req := models.ServiceRequest{
		Name:      in.Name,
		Phone:     in.Phone,
		Email:     in.Email,
		Service:   in.Service,
		Message:   in.Message,
		Status:    models.StatusPending,
		Date:      now.UTC().Format(time.RFC3339),
		Timestamp: now.UnixMilli(),
		Source:    models.SourceWebsiteForm,
	}
	if i.ip != nil {
		req.IP = i.ip.Lookup(ctx)
	}

	waURL := WhatsAppURL(i.waNumber, req, now)

	id, err := i.sink.Create(ctx, &req, "")
	if err == nil {
		i.log.Info().Str("id", id).Str("name", req.Name).Msg("intake: request saved")
		i.notify(req)
		return Outcome{Status: OutcomeSaved, ID: id, WhatsAppURL: waURL}, nil
	}

	// remote unavailable or rejected: either way the queue takes it
	i.log.Warn().Err(err).Msg("intake: remote write failed, queueing locally")
	sub, qerr := i.store.Enqueue(ctx, req)
	if qerr != nil {
		i.log.Error().Err(qerr).Msg("intake: local fallback failed")
		return Outcome{}, qerr
	}
	i.log.Info().Str("local_id", sub.LocalID).Msg("intake: request queued for sync")
	return Outcome{Status: OutcomeQueued, LocalID: sub.LocalID, WhatsAppURL: waURL}, nil
}

func (i *Intake) notify(req models.ServiceRequest) {
	if i.notifier == nil {
		return
	}
	if err := i.notifier.NotifyNewRequest(req); err != nil {
		i.log.Warn().Err(err).Msg("intake: staff notification failed")
	}
}
