package message

import "context"

type Repository interface {
	Create(ctx context.Context, m *Message) (*Message, error)
	GetByID(ctx context.Context, id int) (*Message, error)
	UpdateDraft(ctx context.Context, m *Message) error
	MarkSent(ctx context.Context, id int) error
	MarkRead(ctx context.Context, id int, read bool) error
	SoftDelete(ctx context.Context, id int, bySender, byRecipient bool) error
	Inbox(ctx context.Context, receiverID, limit, offset int) ([]Message, int64, error)
	Sent(ctx context.Context, senderID, limit, offset int) ([]Message, int64, error)
	UnreadCount(ctx context.Context, receiverID int) (int, error)
}
