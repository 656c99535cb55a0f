package knowledge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/swarmdesk/support-swarm/agent/contract"
)

const defaultRedisKey = "swarm:kb:documents"

type RedisConfig struct {
	Addr     string `envconfig:"ADDR" split_words:"true" required:"true"`
	Password string `envconfig:"PASSWORD" split_words:"true"`
	DB       int    `envconfig:"DB" split_words:"true" default:"0"`
	Key      string `envconfig:"KEY" split_words:"true" default:"swarm:kb:documents"`
}

// RedisStore keeps knowledge documents in a single Redis hash keyed by
// document id. The corpus is expected to stay small enough that fetching the
// hash per search is acceptable.
type RedisStore struct {
	rdb *redis.Client
	key string
}

func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, errors.New("redis addr is required")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	key := strings.TrimSpace(cfg.Key)
	if key == "" {
		key = defaultRedisKey
	}
	return &RedisStore{rdb: rdb, key: key}, nil
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

func (s *RedisStore) Add(ctx context.Context, id, content, source string) error {
	if strings.TrimSpace(id) == "" {
		return contract.ErrValidation
	}

	payload, err := json.Marshal(document{Content: content, Source: source})
	if err != nil {
		return fmt.Errorf("marshal document %s: %w", id, err)
	}
	if err := s.rdb.HSet(ctx, s.key, id, payload).Err(); err != nil {
		return fmt.Errorf("store document %s: %w", id, err)
	}
	return nil
}

func (s *RedisStore) Search(ctx context.Context, query string, limit int) ([]contract.Note, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	tokens := tokenize(query)
	if len(tokens) == 0 {
		return nil, nil
	}

	entries, err := s.rdb.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}

	type scored struct {
		note  contract.Note
		score int
		id    string
	}
	candidates := make([]scored, 0, len(entries))
	for id, raw := range entries {
		var doc document
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			continue
		}
		score := scoreContent(tokens, doc.Content)
		if score == 0 {
			continue
		}
		candidates = append(candidates, scored{
			note:  contract.Note{Source: doc.Source, Content: doc.Content},
			score: score,
			id:    id,
		})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].id < candidates[j].id
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	notes := make([]contract.Note, 0, len(candidates))
	for _, c := range candidates {
		notes = append(notes, c.note)
	}
	return notes, nil
}
