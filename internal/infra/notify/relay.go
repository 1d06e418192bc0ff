package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"food-delivery-api/internal/infra/repository"
	"food-delivery-api/internal/pkg/clock"
	"food-delivery-api/internal/pkg/config"

	"github.com/jackc/pgx/v5"
)

const (
	baseRetryDelay = 5 * time.Second
	maxRetryDelay  = 10 * time.Minute
)

type jobStore interface {
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]repository.NotificationJob, error)
	MarkSent(ctx context.Context, id int64, at time.Time) error
	MarkFailed(ctx context.Context, id int64, lastError string, maxAttempts int, retryAt time.Time) error
}

type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Relay drains the outbox. Claimed rows stay locked until the batch commits,
// so several relays can run side by side without double publishing.
type Relay struct {
	withTx    func(ctx context.Context, fn func(store jobStore) error) error
	publisher Publisher
	clock     clock.Clock
	logger    *slog.Logger
	cfg       config.NotifyConfig

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewRelay(db TxBeginner, publisher Publisher, cfg config.NotifyConfig, clk clock.Clock, logger *slog.Logger) *Relay {
	return &Relay{
		withTx: func(ctx context.Context, fn func(store jobStore) error) error {
			tx, err := db.Begin(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = tx.Rollback(ctx) }()
			if err := fn(repository.NewNotificationRepository(tx)); err != nil {
				return err
			}
			return tx.Commit(ctx)
		},
		publisher: publisher,
		clock:     clk,
		logger:    logger,
		cfg:       cfg,
	}
}

func (r *Relay) Start(_ context.Context) error {
	if !r.cfg.Enabled {
		r.logger.Info("notification relay disabled")
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.run(ctx)
	}()
	r.logger.Info("notification relay started", "interval", r.cfg.PollInterval)
	return nil
}

func (r *Relay) Stop(ctx context.Context) error {
	if r.cancel != nil {
		r.cancel()
	}
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return r.publisher.Close()
}

func (r *Relay) run(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := r.Drain(ctx); err != nil && ctx.Err() == nil {
				r.logger.Error("notification relay batch failed", "error", err)
			}
		}
	}
}

// Drain publishes one batch and returns how many jobs were delivered.
func (r *Relay) Drain(ctx context.Context) (int, error) {
	sent := 0
	err := r.withTx(ctx, func(store jobStore) error {
		now := r.clock.Now()
		jobs, err := store.ClaimDue(ctx, now, r.cfg.BatchSize)
		if err != nil {
			return err
		}
		for _, j := range jobs {
			if perr := r.publisher.Publish(ctx, j.Topic, jobKey(j), j.Payload); perr != nil {
				r.logger.Warn("notification publish failed", "job_id", j.ID, "attempts", j.Attempts+1, "error", perr)
				if err := store.MarkFailed(ctx, j.ID, perr.Error(), r.cfg.MaxAttempts, now.Add(retryDelay(j.Attempts))); err != nil {
					return err
				}
				continue
			}
			if err := store.MarkSent(ctx, j.ID, now); err != nil {
				return err
			}
			sent++
		}
		return nil
	})
	return sent, err
}

// jobKey keeps every event of one order on the same partition.
func jobKey(j repository.NotificationJob) []byte {
	var ev struct {
		OrderID string `json:"orderId"`
	}
	if err := json.Unmarshal(j.Payload, &ev); err != nil || ev.OrderID == "" {
		return nil
	}
	return []byte(ev.OrderID)
}

// retryDelay doubles per attempt and is capped.
func retryDelay(attempts int) time.Duration {
	d := baseRetryDelay
	for i := 0; i < attempts && d < maxRetryDelay; i++ {
		d *= 2
	}
	if d > maxRetryDelay {
		d = maxRetryDelay
	}
	return d
}
