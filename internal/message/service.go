package message

import (
	"context"
	"time"

	"fitnessmanager/internal/access"
	"fitnessmanager/internal/api"
	"fitnessmanager/internal/logger"
	"fitnessmanager/internal/metrics"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

var (
	ErrMessageNotFound  = api.NotFound("message not found")
	ErrReceiverNotFound = api.Validation("receiver does not exist")
	ErrAlreadySent      = api.Conflict("message has already been sent")
	ErrNotSender        = api.Forbidden("only the sender can edit or send this message")
	ErrNotReceiver      = api.Forbidden("only the receiver can mark this message as read")
	ErrSentImmutable    = api.Forbidden("a sent message can no longer be edited")
)

type CustomerChecker interface {
	Exists(ctx context.Context, id int) (bool, error)
}

type Service interface {
	Create(ctx context.Context, caller access.Caller, req CreateMessageRequest) (*Message, error)
	Send(ctx context.Context, caller access.Caller, id int) (*Message, error)
	Get(ctx context.Context, caller access.Caller, id int) (*Message, error)
	Update(ctx context.Context, caller access.Caller, id int, req UpdateMessageRequest) (*Message, error)
	Delete(ctx context.Context, caller access.Caller, id int) error
	Inbox(ctx context.Context, caller access.Caller, page, pageSize int) (*api.Page[Message], error)
	Sent(ctx context.Context, caller access.Caller, page, pageSize int) (*api.Page[Message], error)
	UnreadCount(ctx context.Context, caller access.Caller) (int, error)
}

type service struct {
	repo      Repository
	customers CustomerChecker
	now       func() time.Time
}

func NewService(repo Repository, customers CustomerChecker) Service {
	return &service{
		repo:      repo,
		customers: customers,
		now:       time.Now,
	}
}

func (s *service) Create(ctx context.Context, caller access.Caller, req CreateMessageRequest) (*Message, error) {
	if err := s.checkReceiver(ctx, req.ReceiverID); err != nil {
		return nil, err
	}

	m := &Message{
		SenderID:     caller.CustomerID,
		ReceiverID:   req.ReceiverID,
		Subject:      req.Subject,
		Body:         cleanBody(req.Body, req.IsHTML),
		IsHTML:       req.IsHTML,
		IsImpression: req.IsImpression,
		IsDraft:      !req.Send,
	}
	if req.Send {
		now := s.now()
		m.SentAt = &now
	}

	created, err := s.repo.Create(ctx, m)
	if err != nil {
		return nil, err
	}

	if req.Send {
		s.sent(created)
	}
	return created, nil
}

func (s *service) Send(ctx context.Context, caller access.Caller, id int) (*Message, error) {
	m, err := s.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if m.SenderID != caller.CustomerID {
		return nil, ErrNotSender
	}
	if !m.IsDraft {
		return nil, ErrAlreadySent
	}

	if err := s.repo.MarkSent(ctx, id); err != nil {
		return nil, err
	}

	sent, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.sent(sent)
	return sent, nil
}

// Get returns a message to its sender, or to its receiver once sent. A side
// that deleted the message no longer sees it.
func (s *service) Get(ctx context.Context, caller access.Caller, id int) (*Message, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !visibleTo(m, caller.CustomerID) {
		return nil, ErrMessageNotFound
	}
	return m, nil
}

func visibleTo(m *Message, customerID int) bool {
	if m.SenderID == customerID && !m.IsDeletedBySender {
		return true
	}
	return m.ReceiverID == customerID && !m.IsDraft && !m.IsDeletedByRecipient
}

// Update applies the receiver's read flag or the sender's draft edits. A
// request mixing both must come from someone who is both sender and
// receiver.
func (s *service) Update(ctx context.Context, caller access.Caller, id int, req UpdateMessageRequest) (*Message, error) {
	m, err := s.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if req.IsRead != nil && (m.ReceiverID != caller.CustomerID || m.IsDraft) {
		return nil, ErrNotReceiver
	}
	if req.editsDraft() {
		if m.SenderID != caller.CustomerID {
			return nil, ErrNotSender
		}
		if !m.IsDraft {
			return nil, ErrSentImmutable
		}
	}

	if req.editsDraft() {
		if req.ReceiverID != nil && *req.ReceiverID != m.ReceiverID {
			if err := s.checkReceiver(ctx, *req.ReceiverID); err != nil {
				return nil, err
			}
			m.ReceiverID = *req.ReceiverID
		}
		if req.Subject != nil {
			m.Subject = *req.Subject
		}
		if req.Body != nil {
			m.Body = *req.Body
		}
		if req.IsHTML != nil {
			m.IsHTML = *req.IsHTML
		}
		m.Body = cleanBody(m.Body, m.IsHTML)
		if err := s.repo.UpdateDraft(ctx, m); err != nil {
			return nil, err
		}
	}

	if req.IsRead != nil {
		if err := s.repo.MarkRead(ctx, id, *req.IsRead); err != nil {
			return nil, err
		}
	}

	return s.repo.GetByID(ctx, id)
}

// Delete hides the message from the caller's side only.
func (s *service) Delete(ctx context.Context, caller access.Caller, id int) error {
	m, err := s.Get(ctx, caller, id)
	if err != nil {
		return err
	}

	bySender := m.SenderID == caller.CustomerID
	byRecipient := m.ReceiverID == caller.CustomerID && !m.IsDraft
	return s.repo.SoftDelete(ctx, id, bySender, byRecipient)
}

func (s *service) Inbox(ctx context.Context, caller access.Caller, page, pageSize int) (*api.Page[Message], error) {
	limit, offset := bounds(page, pageSize)
	messages, total, err := s.repo.Inbox(ctx, caller.CustomerID, limit, offset)
	if err != nil {
		return nil, err
	}
	return &api.Page[Message]{Items: messages, Total: total, Page: page, PageSize: limit}, nil
}

func (s *service) Sent(ctx context.Context, caller access.Caller, page, pageSize int) (*api.Page[Message], error) {
	limit, offset := bounds(page, pageSize)
	messages, total, err := s.repo.Sent(ctx, caller.CustomerID, limit, offset)
	if err != nil {
		return nil, err
	}
	return &api.Page[Message]{Items: messages, Total: total, Page: page, PageSize: limit}, nil
}

func (s *service) UnreadCount(ctx context.Context, caller access.Caller) (int, error) {
	return s.repo.UnreadCount(ctx, caller.CustomerID)
}

func (s *service) checkReceiver(ctx context.Context, id int) error {
	exists, err := s.customers.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrReceiverNotFound
	}
	return nil
}

func (s *service) sent(m *Message) {
	metrics.RecordMessageSent()
	logger.Debug("message sent", "message_id", m.ID, "sender_id", m.SenderID, "receiver_id", m.ReceiverID)
}

func bounds(page, pageSize int) (limit, offset int) {
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}
	if page < 1 {
		page = 1
	}
	return pageSize, (page - 1) * pageSize
}
