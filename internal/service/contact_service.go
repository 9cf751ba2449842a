package service

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/portfolio-backend/internal/config"
	"github.com/stemsi/portfolio-backend/internal/model"
	"golang.org/x/crypto/blake2b"
)

// ErrDuplicateSubmission is returned when the same message is sent twice
// within the dedupe window.
var ErrDuplicateSubmission = errors.New("duplicate contact submission")

// ContactService accepts contact form submissions and queues them for the
// contact worker to persist.
type ContactService struct {
	rdb    *redis.Client
	window time.Duration
	log    zerolog.Logger
	now    func() time.Time
}

func NewContactService(rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *ContactService {
	return &ContactService{
		rdb:    rdb,
		window: cfg.ContactDedupeWindow,
		log:    log.With().Str("component", "contact_service").Logger(),
		now:    time.Now,
	}
}

// NormalizeContact trims every field of a contact request.
func NormalizeContact(req model.ContactRequest) model.ContactRequest {
	return model.ContactRequest{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}
}

// Fingerprint identifies a submission by sender and content. Email case
// and surrounding whitespace do not change it.
func Fingerprint(req model.ContactRequest) string {
	req = NormalizeContact(req)
	sum := blake2b.Sum256([]byte(strings.ToLower(req.Email) + "\x00" + req.Subject + "\x00" + req.Message))
	return hex.EncodeToString(sum[:16])
}

// Submit records a validated contact request. The request must already have
// passed field validation.
func (s *ContactService) Submit(ctx context.Context, req model.ContactRequest, clientIP string) (*model.ContactMessage, error) {
	req = NormalizeContact(req)
	fp := Fingerprint(req)

	dedupeKey := config.CacheKey.ContactDedupeKey(fp)
	fresh, err := s.rdb.SetNX(ctx, dedupeKey, 1, s.window).Result()
	if err != nil {
		return nil, fmt.Errorf("dedupe contact: %w", err)
	}
	if !fresh {
		return nil, ErrDuplicateSubmission
	}

	msg := &model.ContactMessage{
		Name:        req.Name,
		Email:       req.Email,
		Subject:     req.Subject,
		Message:     req.Message,
		Fingerprint: fp,
		ClientIP:    clientIP,
		CreatedAt:   s.now().UTC(),
	}

	raw, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode contact: %w", err)
	}

	if err := s.rdb.RPush(ctx, config.WorkerKey.PersistContactQueue, raw).Err(); err != nil {
		// Let the visitor retry instead of hitting the dedupe guard.
		s.rdb.Del(ctx, dedupeKey)
		return nil, fmt.Errorf("queue contact: %w", err)
	}

	s.log.Info().
		Str("fingerprint", fp).
		Str("client_ip", clientIP).
		Msg("Contact message queued")

	return msg, nil
}
