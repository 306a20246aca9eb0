package dedup

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// DBPool is the subset of pgxpool.Pool used here, so tests can pass pgxmock.
type DBPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repository records which messages a consumer has already applied.
type Repository struct {
	db DBPool
}

func NewRepository(db DBPool) *Repository {
	return &Repository{db: db}
}

// MarkProcessed claims key for consumer. It reports false when the key was
// claimed before, meaning the message is a redelivery.
func (r *Repository) MarkProcessed(ctx context.Context, consumer, key string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO processed_messages (consumer_name, message_key, processed_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (consumer_name, message_key) DO NOTHING
	`, consumer, key)
	if err != nil {
		return false, fmt.Errorf("insert processed message: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
