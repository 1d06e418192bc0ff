//go:build unit

package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"food-delivery-api/internal/infra/repository"
	"food-delivery-api/internal/pkg/clock"
	"food-delivery-api/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failedCall struct {
	id      int64
	reason  string
	retryAt time.Time
}

type fakeStore struct {
	jobs   []repository.NotificationJob
	limit  int
	sent   []int64
	failed []failedCall
}

func (s *fakeStore) ClaimDue(_ context.Context, _ time.Time, limit int) ([]repository.NotificationJob, error) {
	s.limit = limit
	return s.jobs, nil
}

func (s *fakeStore) MarkSent(_ context.Context, id int64, _ time.Time) error {
	s.sent = append(s.sent, id)
	return nil
}

func (s *fakeStore) MarkFailed(_ context.Context, id int64, lastError string, _ int, retryAt time.Time) error {
	s.failed = append(s.failed, failedCall{id: id, reason: lastError, retryAt: retryAt})
	return nil
}

type fakePublisher struct {
	keys []string
}

func (p *fakePublisher) Publish(_ context.Context, _ string, key, value []byte) error {
	p.keys = append(p.keys, string(key))
	return nil
}

func (p *fakePublisher) Close() error { return nil }

type flakyPublisher struct {
	fakePublisher
	fail func(value []byte) error
}

func (p *flakyPublisher) Publish(ctx context.Context, topic string, key, value []byte) error {
	if err := p.fail(value); err != nil {
		return err
	}
	return p.fakePublisher.Publish(ctx, topic, key, value)
}

func newTestRelay(store *fakeStore, pub Publisher, clk clock.Clock) *Relay {
	return &Relay{
		withTx: func(_ context.Context, fn func(store jobStore) error) error {
			return fn(store)
		},
		publisher: pub,
		clock:     clk,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		cfg:       config.NotifyConfig{Enabled: true, PollInterval: time.Second, BatchSize: 25, MaxAttempts: 5},
	}
}

func TestRelay_Drain(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clk := clock.NewMockClock(now)

	t.Run("全件送信成功", func(t *testing.T) {
		store := &fakeStore{jobs: []repository.NotificationJob{
			{ID: 1, Topic: "order-status", Payload: []byte(`{"orderId":"a"}`)},
			{ID: 2, Topic: "order-status", Payload: []byte(`{"orderId":"b"}`)},
		}}
		pub := &fakePublisher{}

		sent, err := newTestRelay(store, pub, clk).Drain(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 2, sent)
		assert.Equal(t, 25, store.limit)
		assert.Equal(t, []int64{1, 2}, store.sent)
		assert.Empty(t, store.failed)
		assert.Equal(t, []string{"a", "b"}, pub.keys)
	})

	t.Run("publish failure schedules a retry and keeps going", func(t *testing.T) {
		store := &fakeStore{jobs: []repository.NotificationJob{
			{ID: 1, Payload: []byte(`{"orderId":"a"}`), Attempts: 2},
			{ID: 2, Payload: []byte(`{"orderId":"b"}`)},
		}}
		pub := &flakyPublisher{fail: func(v []byte) error {
			if string(v) == `{"orderId":"a"}` {
				return errors.New("broker unavailable")
			}
			return nil
		}}

		sent, err := newTestRelay(store, pub, clk).Drain(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, sent)
		assert.Equal(t, []int64{2}, store.sent)
		require.Len(t, store.failed, 1)
		assert.Equal(t, int64(1), store.failed[0].id)
		assert.Equal(t, "broker unavailable", store.failed[0].reason)
		assert.Equal(t, now.Add(20*time.Second), store.failed[0].retryAt)
	})

	t.Run("空バッチ", func(t *testing.T) {
		store := &fakeStore{}
		sent, err := newTestRelay(store, &fakePublisher{}, clk).Drain(context.Background())
		require.NoError(t, err)
		assert.Zero(t, sent)
	})
}

func TestRetryDelay(t *testing.T) {
	testCases := []struct {
		attempts int
		want     time.Duration
	}{
		{0, 5 * time.Second},
		{1, 10 * time.Second},
		{3, 40 * time.Second},
		{20, maxRetryDelay},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, retryDelay(tc.attempts), "attempts=%d", tc.attempts)
	}
}

func TestJobKey(t *testing.T) {
	assert.Equal(t, []byte("abc"), jobKey(repository.NotificationJob{Payload: []byte(`{"orderId":"abc"}`)}))
	assert.Nil(t, jobKey(repository.NotificationJob{Payload: []byte(`not json`)}))
}

func TestRelay_StartDisabled(t *testing.T) {
	r := newTestRelay(&fakeStore{}, &fakePublisher{}, clock.NewMockClock(time.Now()))
	r.cfg.Enabled = false

	require.NoError(t, r.Start(context.Background()))
	require.NoError(t, r.Stop(context.Background()))
}
