package repository

import (
	"context"
	"time"

	"food-delivery-api/internal/infra"
	"food-delivery-api/internal/infra/db"
)

const (
	JobStatusPending = "pending"
	JobStatusSent    = "sent"
	JobStatusFailed  = "failed"
)

type NotificationJob struct {
	ID       int64
	Kind     string
	Topic    string
	Payload  []byte
	Attempts int
}

type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(dbtx db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: dbtx}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO notification_jobs (kind, topic, payload, status, run_at)
		VALUES ($1, $2, $3, $4, $5)`,
		kind, topic, payload, JobStatusPending, runAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}

// ClaimDue locks up to limit due jobs. Rows locked by another relay are skipped.
func (r *NotificationRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]NotificationJob, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, kind, topic, payload, attempts
		FROM notification_jobs
		WHERE status = $1 AND run_at <= $2
		ORDER BY run_at, id
		LIMIT $3
		FOR UPDATE SKIP LOCKED`,
		JobStatusPending, now, limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim notification jobs", err)
	}
	defer rows.Close()

	var jobs []NotificationJob
	for rows.Next() {
		var j NotificationJob
		if err := rows.Scan(&j.ID, &j.Kind, &j.Topic, &j.Payload, &j.Attempts); err != nil {
			return nil, infra.WrapRepoErr("failed to scan notification job", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate notification jobs", err)
	}
	return jobs, nil
}

func (r *NotificationRepository) MarkSent(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE notification_jobs SET status = $2, sent_at = $3, attempts = attempts + 1 WHERE id = $1`,
		id, JobStatusSent, at,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to mark notification job sent", err)
	}
	return nil
}

// MarkFailed schedules a retry at retryAt, or gives up once maxAttempts is reached.
func (r *NotificationRepository) MarkFailed(ctx context.Context, id int64, lastError string, maxAttempts int, retryAt time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE notification_jobs SET
			attempts = attempts + 1,
			last_error = $2,
			run_at = $3,
			status = CASE WHEN attempts + 1 >= $4 THEN $5 ELSE status END
		WHERE id = $1`,
		id, lastError, retryAt, maxAttempts, JobStatusFailed,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to mark notification job failed", err)
	}
	return nil
}
