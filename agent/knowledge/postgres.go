package knowledge

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/swarmdesk/support-swarm/agent/contract"
)

// Candidate rows fetched per search before in-process ranking.
const postgresCandidateLimit = 100

type PostgresConfig struct {
	DSN string `envconfig:"DSN" split_words:"true" required:"true"`
}

// Document is the persisted knowledge row.
type Document struct {
	bun.BaseModel `bun:"table:support_documents,alias:d"`

	ID        string    `bun:"id,pk"`
	Content   string    `bun:"content,notnull"`
	Source    string    `bun:"source,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// PostgresStore persists knowledge documents in Postgres via bun.
type PostgresStore struct {
	db *bun.DB
}

func NewPostgresStore(cfg PostgresConfig) (*PostgresStore, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	return &PostgresStore{db: db}, nil
}

// Init creates the documents table when missing.
func (s *PostgresStore) Init(ctx context.Context) error {
	if _, err := s.db.NewCreateTable().Model((*Document)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("create support_documents table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) Add(ctx context.Context, id, content, source string) error {
	if strings.TrimSpace(id) == "" {
		return contract.ErrValidation
	}

	doc := &Document{ID: id, Content: content, Source: source}
	_, err := s.db.NewInsert().
		Model(doc).
		On("CONFLICT (id) DO UPDATE").
		Set("content = EXCLUDED.content").
		Set("source = EXCLUDED.source").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("upsert document %s: %w", id, err)
	}
	return nil
}

// Search fetches ILIKE candidates for each query token and ranks them
// in-process with the shared token-overlap score.
func (s *PostgresStore) Search(ctx context.Context, query string, limit int) ([]contract.Note, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	tokens := tokenize(query)
	if len(tokens) == 0 {
		return nil, nil
	}

	var docs []Document
	q := s.db.NewSelect().Model(&docs).Limit(postgresCandidateLimit)
	q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
		for _, tok := range tokens {
			q = q.WhereOr("content ILIKE ?", "%"+tok+"%")
		}
		return q
	})
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("search documents: %w", err)
	}

	type scored struct {
		note  contract.Note
		score int
		id    string
	}
	candidates := make([]scored, 0, len(docs))
	for _, doc := range docs {
		score := scoreContent(tokens, doc.Content)
		if score == 0 {
			continue
		}
		candidates = append(candidates, scored{
			note:  contract.Note{Source: doc.Source, Content: doc.Content},
			score: score,
			id:    doc.ID,
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
