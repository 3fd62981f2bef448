package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/domain"
)

// CreateMessageParams are the inputs for a direct message.
type CreateMessageParams struct {
	SenderID    string
	ReceiverID  string
	Content     string
	MessageType string
	ImageURL    string
}

const messageColumns = `id, sender_id, receiver_id, content, message_type, image_url, is_read, created_at, updated_at`

// CreateMessage stores a direct message between two users.
func (s *Store) CreateMessage(ctx context.Context, p CreateMessageParams) (*domain.Message, error) {
	if p.MessageType == "" {
		p.MessageType = "text"
	}
	row := s.db.QueryRowContext(ctx,
		`INSERT INTO messages (id, sender_id, receiver_id, content, message_type, image_url, is_read)
         VALUES ($1, $2, $3, $4, $5, $6, FALSE)
         RETURNING `+messageColumns,
		uuid.New(), p.SenderID, p.ReceiverID, p.Content, p.MessageType, p.ImageURL,
	)
	msg, err := scanMessage(row)
	if err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	return msg, nil
}

// ListConversation returns all messages between two users in
// chronological order.
func (s *Store) ListConversation(ctx context.Context, userA, userB string) ([]domain.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+messageColumns+` FROM messages
         WHERE (sender_id = $1 AND receiver_id = $2)
            OR (sender_id = $2 AND receiver_id = $1)
         ORDER BY created_at ASC`,
		userA, userB)
	if err != nil {
		return nil, fmt.Errorf("list conversation: %w", err)
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("list conversation: %w", err)
		}
		messages = append(messages, *msg)
	}
	return messages, rows.Err()
}

// MarkMessageRead flags a message as read and returns it, so the caller
// can notify the sender.
func (s *Store) MarkMessageRead(ctx context.Context, messageID string) (*domain.Message, error) {
	row := s.db.QueryRowContext(ctx,
		`UPDATE messages SET is_read = TRUE, updated_at = NOW()
         WHERE id = $1
         RETURNING `+messageColumns,
		messageID,
	)
	msg, err := scanMessage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mark message read: %w", err)
	}
	return msg, nil
}

func scanMessage(row rowScanner) (*domain.Message, error) {
	var m domain.Message
	var imageURL sql.NullString
	err := row.Scan(
		&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.MessageType,
		&imageURL, &m.IsRead, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.ImageURL = imageURL.String
	return &m, nil
}
