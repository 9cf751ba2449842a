package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/portfolio-backend/internal/model"
)

type ContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

// InsertBatch stores a batch of messages in one statement. Rows whose
// fingerprint and created_at already exist are skipped, so a requeued batch
// cannot create duplicates.
func (r *ContactRepository) InsertBatch(ctx context.Context, msgs []*model.ContactMessage) error {
	n := len(msgs)
	names := make([]string, 0, n)
	emails := make([]string, 0, n)
	subjects := make([]string, 0, n)
	bodies := make([]string, 0, n)
	fps := make([]string, 0, n)
	ips := make([]string, 0, n)
	createdAts := make([]time.Time, 0, n)

	for _, m := range msgs {
		names = append(names, m.Name)
		emails = append(emails, m.Email)
		subjects = append(subjects, m.Subject)
		bodies = append(bodies, m.Message)
		fps = append(fps, m.Fingerprint)
		ips = append(ips, m.ClientIP)
		createdAts = append(createdAts, m.CreatedAt)
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO contact_messages (name, email, subject, message, fingerprint, client_ip, created_at)
		SELECT u.name, u.email, u.subject, u.message, u.fingerprint, NULLIF(u.client_ip, ''), u.created_at
		FROM UNNEST(
			$1::text[],
			$2::text[],
			$3::text[],
			$4::text[],
			$5::text[],
			$6::text[],
			$7::timestamptz[]
		) AS u (name, email, subject, message, fingerprint, client_ip, created_at)
		ON CONFLICT (fingerprint, created_at) DO NOTHING`,
		names, emails, subjects, bodies, fps, ips, createdAts,
	)
	return err
}

// Insert stores a single message. Used as the fallback when a batch fails.
func (r *ContactRepository) Insert(ctx context.Context, m *model.ContactMessage) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO contact_messages (name, email, subject, message, fingerprint, client_ip, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)
		ON CONFLICT (fingerprint, created_at) DO UPDATE SET fingerprint = EXCLUDED.fingerprint
		RETURNING id`,
		m.Name, m.Email, m.Subject, m.Message, m.Fingerprint, m.ClientIP, m.CreatedAt,
	).Scan(&m.ID)
}

// ListRecent returns the newest messages first.
func (r *ContactRepository) ListRecent(ctx context.Context, limit int) ([]model.ContactMessage, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, subject, message, fingerprint, COALESCE(client_ip, ''), created_at
		FROM contact_messages
		ORDER BY created_at DESC, id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []model.ContactMessage
	for rows.Next() {
		var m model.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.Fingerprint, &m.ClientIP, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
