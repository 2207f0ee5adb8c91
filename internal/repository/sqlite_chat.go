package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/lifeplan/internal/db"
	"github.com/alexanderramin/lifeplan/internal/domain"
)

// SQLiteChatMessageRepo implements ChatMessageRepo.
type SQLiteChatMessageRepo struct {
	db db.DBTX
}

func NewSQLiteChatMessageRepo(conn db.DBTX) *SQLiteChatMessageRepo {
	return &SQLiteChatMessageRepo{db: conn}
}

func (r *SQLiteChatMessageRepo) Create(ctx context.Context, m *domain.ChatMessage) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO chat_messages (id, role, text, source, created_at) VALUES (?, ?, ?, ?, ?)`,
		m.ID, string(m.Role), m.Text, string(m.Source), formatTimestamp(m.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting chat message: %w", err)
	}
	return nil
}

func (r *SQLiteChatMessageRepo) ListRecent(ctx context.Context, limit int) ([]*domain.ChatMessage, error) {
	// rowid breaks ties between messages stored in the same microsecond.
	query := `SELECT id, role, text, source, created_at FROM (
			SELECT rowid AS seq, id, role, text, source, created_at FROM chat_messages
			ORDER BY created_at DESC, rowid DESC LIMIT ?
		) ORDER BY created_at, seq`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing chat messages: %w", err)
	}
	defer rows.Close()

	var out []*domain.ChatMessage
	for rows.Next() {
		var (
			m                domain.ChatMessage
			role, source, ts string
		)
		if err := rows.Scan(&m.ID, &role, &m.Text, &source, &ts); err != nil {
			return nil, fmt.Errorf("scanning chat message: %w", err)
		}
		m.Role = domain.ChatRole(role)
		m.Source = domain.GenerationSource(source)
		if m.CreatedAt, err = parseTimestamp(ts); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (r *SQLiteChatMessageRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM chat_messages`); err != nil {
		return fmt.Errorf("clearing chat messages: %w", err)
	}
	return nil
}
