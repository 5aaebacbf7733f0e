package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

// ConfirmService implements the two-step destructive-action guard: the
// caller first exchanges the shared passcode for a one-time token, then
// presents the token with the actual delete. Deliberately weak — this
// reproduces the original app's UX friction against accidental deletes
// and is not an authorization mechanism.

const confirmKeyPrefix = "riceweigh:confirm:"

type ConfirmService interface {
	// Confirm checks the passcode and mints a single-use token.
	Confirm(ctx context.Context, code string) (string, error)
	// Consume validates and burns a token. False means missing, wrong,
	// expired, or already used.
	Consume(ctx context.Context, token string) bool
}

type confirmService struct {
	codeHash string
	ttl      time.Duration
	rdb      *redis.Client

	// In-memory fallback when redis is absent (dev / unit tests).
	mu     sync.Mutex
	tokens map[string]time.Time
}

func NewConfirmService(codeHash string, ttl time.Duration, rdb *redis.Client) ConfirmService {
	return &confirmService{
		codeHash: codeHash,
		ttl:      ttl,
		rdb:      rdb,
		tokens:   make(map[string]time.Time),
	}
}

func (s *confirmService) Confirm(ctx context.Context, code string) (string, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(s.codeHash), []byte(code)); err != nil {
		return "", NewValidationError("code", "Mã xác nhận không đúng")
	}

	token := uuid.NewString()
	if s.rdb != nil {
		if err := s.rdb.Set(ctx, confirmKeyPrefix+token, "1", s.ttl).Err(); err != nil {
			return "", wrapPersistence("lưu mã xác nhận", err)
		}
		return token, nil
	}

	s.mu.Lock()
	s.tokens[token] = time.Now().Add(s.ttl)
	s.mu.Unlock()
	return token, nil
}

func (s *confirmService) Consume(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}
	if s.rdb != nil {
		n, err := s.rdb.Del(ctx, confirmKeyPrefix+token).Result()
		return err == nil && n > 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.tokens[token]
	if !ok {
		return false
	}
	delete(s.tokens, token)
	return time.Now().Before(exp)
}
