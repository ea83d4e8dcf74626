package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maxfurry/Hospital-Managment-Software/internal/model"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/repository/memory"
	"github.com/Maxfurry/Hospital-Managment-Software/pkg/logger"
	"github.com/Maxfurry/Hospital-Managment-Software/pkg/messaging"
	"github.com/Maxfurry/Hospital-Managment-Software/pkg/metrics"
)

type fakeBroker struct {
	mu        sync.Mutex
	published []messaging.Message
	channels  []string
	publishFn func(msg messaging.Message) error
}

func (b *fakeBroker) Publish(ctx context.Context, channel string, message interface{}) error {
	msg := message.(messaging.Message)
	if b.publishFn != nil {
		if err := b.publishFn(msg); err != nil {
			return err
		}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, msg)
	b.channels = append(b.channels, channel)
	return nil
}

func (b *fakeBroker) Close() error { return nil }

func testLogger() *logger.Logger {
	return logger.NewLogger(&logger.Config{Level: logger.DebugLevel, Format: "json", Output: &bytes.Buffer{}})
}

func testConfig() OutboxProcessorConfig {
	return OutboxProcessorConfig{
		Channel:       "hms.events",
		BatchSize:     10,
		PollInterval:  time.Second,
		RetryAttempts: 3,
		RetryDelay:    time.Millisecond,
	}
}

func seedEvent(t *testing.T, store *memory.Store, eventType string, payload interface{}) uuid.UUID {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	id := uuid.New()
	require.NoError(t, store.Outbox().Create(context.Background(), &model.OutboxEvent{
		ID:        id,
		EventType: eventType,
		Payload:   raw,
		Status:    model.OutboxStatusPending,
		CreatedAt: time.Now().UTC(),
	}))
	return id
}

func TestProcessBatch_PublishesAndMarksProcessed(t *testing.T) {
	store := memory.NewStore()
	first := seedEvent(t, store, model.EventAdmissionCreated, map[string]string{"room": "4"})
	seedEvent(t, store, model.EventTimelineCreated, map[string]string{"title": "Vitals"})

	broker := &fakeBroker{}
	p := NewOutboxProcessor(store, broker, testConfig(), testLogger(), metrics.NewNop())

	n, err := p.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.Len(t, broker.published, 2)
	assert.Equal(t, first, broker.published[0].ID)
	assert.Equal(t, model.EventAdmissionCreated, broker.published[0].Type)
	assert.JSONEq(t, `{"room":"4"}`, string(broker.published[0].Payload))
	assert.Equal(t, []string{"hms.events", "hms.events"}, broker.channels)

	pending, err := store.Outbox().GetPendingEvents(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestProcessBatch_RetriesThenSucceeds(t *testing.T) {
	store := memory.NewStore()
	seedEvent(t, store, model.EventAdmissionCreated, map[string]string{})

	calls := 0
	broker := &fakeBroker{publishFn: func(messaging.Message) error {
		calls++
		if calls < 3 {
			return errors.New("redis busy")
		}
		return nil
	}}
	p := NewOutboxProcessor(store, broker, testConfig(), testLogger(), metrics.NewNop())

	n, err := p.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 3, calls)
}

func TestProcessBatch_MarksFailedAfterRetries(t *testing.T) {
	store := memory.NewStore()
	seedEvent(t, store, model.EventAdmissionCreated, map[string]string{})

	calls := 0
	broker := &fakeBroker{publishFn: func(messaging.Message) error {
		calls++
		return errors.New("redis down")
	}}
	p := NewOutboxProcessor(store, broker, testConfig(), testLogger(), metrics.NewNop())
	handled := false
	p.On(model.EventAdmissionCreated, func(ctx context.Context, e *model.OutboxEvent) error {
		handled = true
		return nil
	})

	n, err := p.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 3, calls)
	assert.False(t, handled)

	pending, err := store.Outbox().GetPendingEvents(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestProcessBatch_RunsHandlersAfterPublish(t *testing.T) {
	store := memory.NewStore()
	seedEvent(t, store, model.EventEmployeeCreated, map[string]string{"email": "ada@hospital.io"})
	seedEvent(t, store, model.EventAdmissionCreated, map[string]string{})

	p := NewOutboxProcessor(store, &fakeBroker{}, testConfig(), testLogger(), metrics.NewNop())
	var seen []string
	p.On(model.EventEmployeeCreated, func(ctx context.Context, e *model.OutboxEvent) error {
		seen = append(seen, e.EventType)
		return errors.New("smtp unavailable")
	})

	n, err := p.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{model.EventEmployeeCreated}, seen)
}

func TestProcessBatch_Empty(t *testing.T) {
	p := NewOutboxProcessor(memory.NewStore(), &fakeBroker{}, testConfig(), testLogger(), metrics.NewNop())

	n, err := p.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestNewOutboxProcessor_RejectsBadConfig(t *testing.T) {
	cfg := testConfig()
	cfg.BatchSize = 0
	assert.Panics(t, func() {
		NewOutboxProcessor(memory.NewStore(), &fakeBroker{}, cfg, testLogger(), metrics.NewNop())
	})
}

func TestRetry_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	err := retry(ctx, 5, time.Hour, func() error {
		calls++
		cancel()
		return errors.New("fail")
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestAuditCleanupWorker_Cleanup(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Audit().Create(ctx, &model.AuditLog{ID: uuid.New(), CreatedAt: now.AddDate(0, 0, -40)}))
	require.NoError(t, store.Audit().Create(ctx, &model.AuditLog{ID: uuid.New(), CreatedAt: now.AddDate(0, 0, -10)}))

	w := NewAuditCleanupWorker(store.Audit(), 30, time.Hour, testLogger())
	w.now = func() time.Time { return now }

	rows, err := w.Cleanup(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, rows)
	assert.Equal(t, 1, store.Counts().AuditLogs)
}

func TestAuditCleanupWorker_DisabledReturnsImmediately(t *testing.T) {
	w := NewAuditCleanupWorker(memory.NewStore().Audit(), 0, time.Hour, testLogger())

	done := make(chan struct{})
	go func() {
		w.Start(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not return")
	}
}
