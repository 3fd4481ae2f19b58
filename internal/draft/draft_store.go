package draft

import (
	"context"
	"encoding/json"
	"time"

	"github.com/geraldDev01/onboarding-dashboard/internal/shared/contextutil"

	"go.uber.org/zap"
)

// Store persists one draft per browser profile. The profile comes from the
// context (contextutil.WithProfileID). Storage failures are logged and
// swallowed: a broken backend behaves like an empty one.
type Store interface {
	Save(ctx context.Context, d Draft)
	Load(ctx context.Context) (Draft, bool)
	Clear(ctx context.Context)
}

type store struct {
	kv     KV
	ttl    time.Duration
	logger *zap.Logger
}

func NewStore(kv KV, ttl time.Duration, logger ...*zap.Logger) Store {
	l := zap.L().Named("draft.store")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("draft.store")
	}
	return &store{kv: kv, ttl: ttl, logger: l}
}

func (s *store) Save(ctx context.Context, d Draft) {
	key := Key(contextutil.GetProfileID(ctx))
	log := contextutil.GetLogger(ctx, s.logger)

	raw, err := json.Marshal(d)
	if err != nil {
		log.Warn("failed to encode draft", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.kv.Set(ctx, key, string(raw), s.ttl); err != nil {
		log.Warn("failed to save draft", zap.String("key", key), zap.Error(err))
		return
	}
	log.Debug("draft saved", zap.String("key", key))
}

func (s *store) Load(ctx context.Context) (Draft, bool) {
	key := Key(contextutil.GetProfileID(ctx))
	log := contextutil.GetLogger(ctx, s.logger)

	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		log.Warn("failed to load draft", zap.String("key", key), zap.Error(err))
		return Draft{}, false
	}
	if !ok {
		return Draft{}, false
	}

	var d Draft
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		log.Warn("discarding corrupted draft", zap.String("key", key), zap.Error(err))
		return Draft{}, false
	}
	return d, true
}

func (s *store) Clear(ctx context.Context) {
	key := Key(contextutil.GetProfileID(ctx))
	if err := s.kv.Del(ctx, key); err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("failed to clear draft", zap.String("key", key), zap.Error(err))
	}
}
