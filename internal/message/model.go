package message

import "time"

// Message is a private note between two customers. The body lives in
// message_contents and is joined in on read.
type Message struct {
	ID                   int        `db:"id" json:"id"`
	SenderID             int        `db:"sender_id" json:"sender"`
	ReceiverID           int        `db:"receiver_id" json:"receiver"`
	Subject              string     `db:"subject" json:"subject"`
	Body                 string     `db:"body" json:"body"`
	IsHTML               bool       `db:"is_html" json:"is_html"`
	IsDraft              bool       `db:"is_draft" json:"is_draft"`
	SentAt               *time.Time `db:"sent_at" json:"sent_at"`
	IsRead               bool       `db:"is_read" json:"is_read"`
	ReadAt               *time.Time `db:"read_at" json:"read_at"`
	IsImpression         bool       `db:"is_impression" json:"is_impression"`
	IsDeletedBySender    bool       `db:"is_deleted_by_sender" json:"is_deleted_by_sender"`
	IsDeletedByRecipient bool       `db:"is_deleted_by_recepient" json:"is_deleted_by_recepient"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updated_at"`
}

type CreateMessageRequest struct {
	ReceiverID   int    `json:"receiver" binding:"required,gt=0"`
	Subject      string `json:"subject" binding:"max=2048"`
	Body         string `json:"body"`
	IsHTML       bool   `json:"is_html"`
	IsImpression bool   `json:"is_impression"`
	// Send delivers the message immediately instead of saving a draft.
	Send bool `json:"send"`
}

// UpdateMessageRequest carries either the receiver's read flag or the
// sender's draft edits. Nil fields are left unchanged.
type UpdateMessageRequest struct {
	Subject    *string `json:"subject" binding:"omitempty,max=2048"`
	ReceiverID *int    `json:"receiver" binding:"omitempty,gt=0"`
	Body       *string `json:"body"`
	IsHTML     *bool   `json:"is_html"`
	IsRead     *bool   `json:"is_read"`
}

func (r UpdateMessageRequest) editsDraft() bool {
	return r.Subject != nil || r.ReceiverID != nil || r.Body != nil || r.IsHTML != nil
}

type UnreadCountResponse struct {
	UnreadMessages int `json:"unread_messages"`
}
