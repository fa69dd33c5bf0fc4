package audit

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"ziwei/pkg/requestcontext"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestPublisherStampsEventsFromContext(t *testing.T) {
	inbox := make(chan Event, 1)
	pub := NewPublisher(inbox, discardLogger())

	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)
	ctx = requestcontext.WithRequestID(ctx, "req-1")

	pub.Emit(ctx, Event{Action: ActionChartComputed, Subject: "1984-04-05:6:男:solar"})

	event := <-inbox
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, now, event.Timestamp)
	assert.Equal(t, "req-1", event.RequestID)
}

func TestPublisherDropsWhenInboxFull(t *testing.T) {
	inbox := make(chan Event) // unbuffered and never drained
	pub := NewPublisher(inbox, discardLogger())

	done := make(chan struct{})
	go func() {
		pub.Emit(context.Background(), Event{Action: ActionChartComputed})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Emit blocked on a full inbox")
	}
}

func TestWorkerAppendsUntilCanceled(t *testing.T) {
	store := NewInMemoryStore(10)
	inbox := make(chan Event, 4)
	worker := NewWorker(store, inbox, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- worker.Run(ctx) }()

	inbox <- Event{ID: "a", Action: ActionChartComputed}
	inbox <- Event{ID: "b", Action: ActionFeedbackSubmitted}

	require.Eventually(t, func() bool {
		events, err := store.List(context.Background())
		return err == nil && len(events) == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)
}

func TestInMemoryStoreBoundsRetention(t *testing.T) {
	store := NewInMemoryStore(2)
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.Append(context.Background(), Event{ID: id}))
	}
	events, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "b", events[0].ID)
	assert.Equal(t, "c", events[1].ID)
}

type fakeProducer struct {
	records []*kgo.Record
}

func (f *fakeProducer) ProduceSync(_ context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	f.records = append(f.records, rs...)
	results := make(kgo.ProduceResults, 0, len(rs))
	for _, r := range rs {
		results = append(results, kgo.ProduceResult{Record: r})
	}
	return results
}

func (f *fakeProducer) Close() {}

func TestKafkaStoreKeysRecordsByEventID(t *testing.T) {
	fake := &fakeProducer{}
	store := &KafkaStore{client: fake, topic: "ziwei.audit"}

	err := store.Append(context.Background(), Event{ID: "evt-1", Action: ActionChartComputed})
	require.NoError(t, err)
	require.Len(t, fake.records, 1)
	assert.Equal(t, "ziwei.audit", fake.records[0].Topic)
	assert.Equal(t, []byte("evt-1"), fake.records[0].Key)
	assert.Contains(t, string(fake.records[0].Value), ActionChartComputed)
}
