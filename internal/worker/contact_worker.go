package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/portfolio-backend/internal/config"
	"github.com/stemsi/portfolio-backend/internal/model"
	"github.com/stemsi/portfolio-backend/internal/repository"
)

const (
	ContactBatchSize    = 20
	ContactBatchTimeout = 2 * time.Second
	ContactPollTimeout  = 1 * time.Second
)

// contactStore is the part of the repository the worker needs.
type contactStore interface {
	InsertBatch(ctx context.Context, msgs []*model.ContactMessage) error
	Insert(ctx context.Context, m *model.ContactMessage) error
}

var _ contactStore = (*repository.ContactRepository)(nil)

// ContactWorker drains the contact queue into PostgreSQL in batches.
type ContactWorker struct {
	store contactStore
	rdb   *redis.Client
	log   zerolog.Logger
}

func NewContactWorker(repo *repository.ContactRepository, rdb *redis.Client, log zerolog.Logger) *ContactWorker {
	return &ContactWorker{
		store: repo,
		rdb:   rdb,
		log:   log.With().Str("component", "contact_worker").Logger(),
	}
}

// ----------------------------------------------------------------
// Worker loop with batching
// ----------------------------------------------------------------

func (w *ContactWorker) Start(ctx context.Context) {
	w.log.Info().Msg("ContactWorker started")

	batch := make([]*model.ContactMessage, 0, ContactBatchSize)
	lastFlush := time.Now()

	for {
		if len(batch) > 0 &&
			(len(batch) >= ContactBatchSize || time.Since(lastFlush) >= ContactBatchTimeout) {

			w.flushSafe(ctx, batch)
			batch = batch[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Flushing remaining batch...")
			w.flushSafe(context.Background(), batch)
			return

		default:
			item, err := w.rdb.BLPop(ctx, ContactPollTimeout, config.WorkerKey.PersistContactQueue).Result()
			if err != nil {
				if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			msg, err := decodeContact(item[1])
			if err != nil {
				w.log.Error().Err(err).Msg("Invalid contact payload")
				continue
			}

			batch = append(batch, msg)
		}
	}
}

func decodeContact(raw string) (*model.ContactMessage, error) {
	var m model.ContactMessage
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, err
	}
	if m.Fingerprint == "" || m.Email == "" {
		return nil, errors.New("missing fingerprint or email")
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	return &m, nil
}

// ----------------------------------------------------------------
// Batch insert with per-message fallback
// ----------------------------------------------------------------

func (w *ContactWorker) flushSafe(ctx context.Context, batch []*model.ContactMessage) {
	if len(batch) == 0 {
		return
	}

	err := w.store.InsertBatch(ctx, batch)
	if err == nil {
		w.log.Debug().Int("count", len(batch)).Msg("Contact batch persisted")
		return
	}
	w.log.Warn().Err(err).Msg("bulk contact insert failed, using fallback")

	for _, m := range batch {
		if err := w.store.Insert(ctx, m); err != nil {
			w.log.Error().Err(err).Str("fingerprint", m.Fingerprint).Msg("Insert failed, requeueing")
			w.requeue(ctx, m)
		}
	}
}

// requeue pushes a message back for the next batch. A message that cannot be
// requeued is logged in full so it can be recovered by hand.
func (w *ContactWorker) requeue(ctx context.Context, m *model.ContactMessage) {
	raw, err := json.Marshal(m)
	if err != nil {
		w.log.Error().Err(err).Str("fingerprint", m.Fingerprint).Msg("Encode for requeue failed, message dropped")
		return
	}
	if err := w.rdb.RPush(ctx, config.WorkerKey.PersistContactQueue, raw).Err(); err != nil {
		w.log.Error().Err(err).
			Str("fingerprint", m.Fingerprint).
			RawJSON("message", raw).
			Msg("Requeue failed, message dropped")
	}
}
