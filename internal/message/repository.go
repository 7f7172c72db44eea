package message

import (
	"context"

	"fitnessmanager/internal/db"

	"github.com/jmoiron/sqlx"
)

const messageSelect = `
	SELECT m.id, m.sender_id, m.receiver_id, m.subject,
	       COALESCE(mc.text, '') AS body, COALESCE(mc.is_html, FALSE) AS is_html,
	       m.is_draft, m.sent_at, m.is_read, m.read_at, m.is_impression,
	       m.is_deleted_by_sender, m.is_deleted_by_recepient, m.created_at, m.updated_at
	FROM messages m
	LEFT JOIN message_contents mc ON mc.message_id = m.id
`

// inboxFilter matches messages delivered to $1 that neither side removed.
const inboxFilter = `
	WHERE m.receiver_id = $1
	  AND NOT m.is_draft AND m.sent_at IS NOT NULL
	  AND NOT m.is_deleted_by_sender AND NOT m.is_deleted_by_recepient
`

const sentFilter = `WHERE m.sender_id = $1 AND NOT m.is_deleted_by_sender`

const upsertContent = `
	INSERT INTO message_contents (message_id, text, is_html)
	VALUES ($1, $2, $3)
	ON CONFLICT (message_id) DO UPDATE
	SET text = EXCLUDED.text, is_html = EXCLUDED.is_html, updated_at = NOW()
`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, m *Message) (*Message, error) {
	var id int
	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO messages (sender_id, receiver_id, subject, is_draft, sent_at, is_impression)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`
		if err := tx.GetContext(ctx, &id, query,
			m.SenderID, m.ReceiverID, m.Subject, m.IsDraft, m.SentAt, m.IsImpression,
		); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx, upsertContent, id, m.Body, m.IsHTML)
		return err
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *repository) GetByID(ctx context.Context, id int) (*Message, error) {
	query := messageSelect + ` WHERE m.id = $1`

	var m Message
	if err := r.db.GetContext(ctx, &m, query, id); err != nil {
		if db.IsNoRows(err) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *repository) UpdateDraft(ctx context.Context, m *Message) error {
	return db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := db.ExecOne(ctx, tx, ErrMessageNotFound, `
			UPDATE messages
			SET subject = $1, receiver_id = $2, updated_at = NOW()
			WHERE id = $3 AND is_draft
		`, m.Subject, m.ReceiverID, m.ID)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, upsertContent, m.ID, m.Body, m.IsHTML)
		return err
	})
}

func (r *repository) MarkSent(ctx context.Context, id int) error {
	return db.ExecOne(ctx, r.db, ErrMessageNotFound, `
		UPDATE messages
		SET is_draft = FALSE, sent_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND is_draft
	`, id)
}

func (r *repository) MarkRead(ctx context.Context, id int, read bool) error {
	return db.ExecOne(ctx, r.db, ErrMessageNotFound, `
		UPDATE messages
		SET is_read = $2,
		    read_at = CASE WHEN $2 THEN COALESCE(read_at, NOW()) ELSE NULL END,
		    updated_at = NOW()
		WHERE id = $1
	`, id, read)
}

func (r *repository) SoftDelete(ctx context.Context, id int, bySender, byRecipient bool) error {
	return db.ExecOne(ctx, r.db, ErrMessageNotFound, `
		UPDATE messages
		SET is_deleted_by_sender = is_deleted_by_sender OR $2,
		    is_deleted_by_recepient = is_deleted_by_recepient OR $3,
		    updated_at = NOW()
		WHERE id = $1
	`, id, bySender, byRecipient)
}

func (r *repository) Inbox(ctx context.Context, receiverID, limit, offset int) ([]Message, int64, error) {
	return r.page(ctx, inboxFilter, "m.sent_at DESC, m.id DESC", receiverID, limit, offset)
}

func (r *repository) Sent(ctx context.Context, senderID, limit, offset int) ([]Message, int64, error) {
	return r.page(ctx, sentFilter, "m.created_at DESC, m.id DESC", senderID, limit, offset)
}

func (r *repository) page(ctx context.Context, filter, order string, customerID, limit, offset int) ([]Message, int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM messages m `+filter, customerID); err != nil {
		return nil, 0, err
	}

	messages := []Message{}
	query := messageSelect + filter + ` ORDER BY ` + order + ` LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &messages, query, customerID, limit, offset); err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

func (r *repository) UnreadCount(ctx context.Context, receiverID int) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM messages m ` + inboxFilter + ` AND NOT m.is_read`
	if err := r.db.GetContext(ctx, &count, query, receiverID); err != nil {
		return 0, err
	}
	return count, nil
}
