package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"studio-booking/internal/data/entity"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const draftKeyPrefix = "checkout:draft:"

// DraftStore holds pending checkout drafts for the lifetime of one
// payment attempt. Drafts are keyed by the gateway checkout token so
// verification and materialization can recover them after the redirect
// round trip, without trusting client storage.
type DraftStore interface {
	Save(ctx context.Context, token string, draft *entity.CheckoutDraft, ttl time.Duration) error
	Get(ctx context.Context, token string) (*entity.CheckoutDraft, error)
	Delete(ctx context.Context, token string) error
}

// NewRedisClient connects to Redis from a URL and verifies connectivity
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

type redisDraftStore struct {
	client *redis.Client
	log    *zap.Logger
}

func NewDraftStore(client *redis.Client, log *zap.Logger) DraftStore {
	return &redisDraftStore{
		client: client,
		log:    log.With(zap.String("cache", "checkout_draft")),
	}
}

func (s *redisDraftStore) Save(ctx context.Context, token string, draft *entity.CheckoutDraft, ttl time.Duration) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("marshal checkout draft: %w", err)
	}

	if err := s.client.Set(ctx, draftKeyPrefix+token, payload, ttl).Err(); err != nil {
		s.log.Error("Failed to save checkout draft",
			zap.Error(err),
			zap.String("conversation_id", draft.ConversationID),
		)
		return fmt.Errorf("save checkout draft: %w", err)
	}

	return nil
}

func (s *redisDraftStore) Get(ctx context.Context, token string) (*entity.CheckoutDraft, error) {
	payload, err := s.client.Get(ctx, draftKeyPrefix+token).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		s.log.Error("Failed to get checkout draft", zap.Error(err))
		return nil, fmt.Errorf("get checkout draft: %w", err)
	}

	var draft entity.CheckoutDraft
	if err := json.Unmarshal(payload, &draft); err != nil {
		return nil, fmt.Errorf("unmarshal checkout draft: %w", err)
	}

	return &draft, nil
}

func (s *redisDraftStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, draftKeyPrefix+token).Err(); err != nil {
		s.log.Error("Failed to delete checkout draft", zap.Error(err))
		return fmt.Errorf("delete checkout draft: %w", err)
	}
	return nil
}
