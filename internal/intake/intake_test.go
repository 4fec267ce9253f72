package intake

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitorSouza2004/SouzaTec/internal/models"
)

type fakeSink struct {
	err     error
	created []models.ServiceRequest
}

func (s *fakeSink) Create(ctx context.Context, req *models.ServiceRequest, localRef string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.created = append(s.created, *req)
	return "doc-1", nil
}

type fakeQueue struct {
	err     error
	entries []models.QueuedSubmission
}

func (q *fakeQueue) Enqueue(ctx context.Context, req models.ServiceRequest) (models.QueuedSubmission, error) {
	if q.err != nil {
		return models.QueuedSubmission{}, q.err
	}
	sub := models.QueuedSubmission{ServiceRequest: req, LocalID: "local_123", NeedsSync: true}
	q.entries = append(q.entries, sub)
	return sub, nil
}

type fakeNotifier struct{ seen []models.ServiceRequest }

func (n *fakeNotifier) NotifyNewRequest(req models.ServiceRequest) error {
	n.seen = append(n.seen, req)
	return nil
}

func newIntake(sink Sink, store Store, n Notifier) *Intake {
	i := New(sink, store, nil, n, "5511939231112", zerolog.Nop())
	i.now = func() time.Time { return time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC) }
	return i
}

func TestSubmitSavedRemotely(t *testing.T) {
	sink := &fakeSink{}
	q := &fakeQueue{}
	n := &fakeNotifier{}

	out, err := newIntake(sink, q, n).Submit(context.Background(), validRaw())
	require.NoError(t, err)

	assert.Equal(t, OutcomeSaved, out.Status)
	assert.Equal(t, "doc-1", out.ID)
	assert.Empty(t, q.entries, "no queue entry on direct success")

	require.Len(t, sink.created, 1)
	saved := sink.created[0]
	assert.Equal(t, models.StatusPending, saved.Status)
	assert.Equal(t, models.SourceWebsiteForm, saved.Source)
	assert.Equal(t, "2025-03-10T14:30:00Z", saved.Date)
	assert.Equal(t, time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC).UnixMilli(), saved.Timestamp)

	require.Len(t, n.seen, 1)
	assert.Equal(t, "Maria Silva", n.seen[0].Name)
}

func TestSubmitFallsBackToQueue(t *testing.T) {
	sink := &fakeSink{err: errors.New("connection refused")}
	q := &fakeQueue{}

	out, err := newIntake(sink, q, nil).Submit(context.Background(), validRaw())
	require.NoError(t, err, "degraded outcome is not a failure")

	assert.Equal(t, OutcomeQueued, out.Status)
	assert.Equal(t, "local_123", out.LocalID)
	assert.NotEmpty(t, out.WhatsAppURL)

	require.Len(t, q.entries, 1)
	sub := q.entries[0]
	assert.True(t, sub.NeedsSync)
	assert.Equal(t, "Maria Silva", sub.Name)
	assert.Equal(t, "(11) 99999-8888", sub.Phone)
	assert.Equal(t, "Redes e Wi-Fi", sub.Service)
	assert.Equal(t, models.StatusPending, sub.Status)
}

func TestSubmitInvalidHasNoSideEffects(t *testing.T) {
	sink := &fakeSink{}
	q := &fakeQueue{}

	in := validRaw()
	in.Phone = "123"
	_, err := newIntake(sink, q, nil).Submit(context.Background(), in)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, sink.created, "no remote write for invalid payload")
	assert.Empty(t, q.entries, "no queue entry for invalid payload")
}

func TestSubmitQueueFailureIsHard(t *testing.T) {
	sink := &fakeSink{err: errors.New("down")}
	q := &fakeQueue{err: errors.New("disk full")}

	_, err := newIntake(sink, q, nil).Submit(context.Background(), validRaw())
	require.Error(t, err)
	var verr *ValidationError
	assert.False(t, errors.As(err, &verr))
}

func TestWhatsAppURL(t *testing.T) {
	req := models.ServiceRequest{
		Name:    "Maria Silva",
		Phone:   "(11) 99999-8888",
		Service: "Outros",
		Message: "ajuda com notebook",
	}
	at := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	u := WhatsAppURL("5511939231112", req, at)

	assert.True(t, strings.HasPrefix(u, "https://wa.me/5511939231112?text="), u)
	assert.Contains(t, u, "Maria+Silva")
	assert.Contains(t, u, "10%2F03%2F2025")
	// omitted email renders the placeholder
	assert.Contains(t, u, "N%C3%A3o+informado")
}
