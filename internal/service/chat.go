package service

import (
	"context"
	"errors"

	"academyhub-backend/internal/domain"
	"academyhub-backend/internal/realtime"
	"academyhub-backend/internal/repository"

	"github.com/google/uuid"
)

// chatService persists writes and re-broadcasts them into relay rooms.
// The relay handle is an injected capability, never a package global.
type chatService struct {
	messages repository.MessageRepository
	friends  repository.FriendRequestRepository
	users    repository.UserRepository
	relay    realtime.Publisher
}

func NewChatService(messages repository.MessageRepository, friends repository.FriendRequestRepository, users repository.UserRepository, relay realtime.Publisher) ChatService {
	return &chatService{messages: messages, friends: friends, users: users, relay: relay}
}

func (s *chatService) SendMessage(ctx context.Context, senderID, channelID int32, body string) (*domain.Message, error) {
	if body == "" {
		return nil, domain.E(domain.CodeBadRequest, "message body is required")
	}
	if _, err := s.messages.GetChannelByID(ctx, channelID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.E(domain.CodeNotFound, "channel not found")
		}
		return nil, domain.Wrap(domain.CodeInternal, "failed to load channel", err)
	}

	msg := &domain.Message{
		ID:        uuid.NewString(),
		ChannelID: channelID,
		SenderID:  senderID,
		Body:      body,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, domain.Wrap(domain.CodeInternal, "failed to store message", err)
	}

	s.relay.Publish(realtime.ChannelRoom(channelID), realtime.Event{Type: "message", Payload: msg})
	return msg, nil
}

func (s *chatService) ListMessages(ctx context.Context, channelID int32, page, limit int32) ([]domain.Message, int32, error) {
	msgs, total, err := s.messages.ListByChannel(ctx, channelID, page, limit)
	if err != nil {
		return nil, 0, domain.Wrap(domain.CodeInternal, "failed to list messages", err)
	}
	return msgs, total, nil
}

func (s *chatService) SendFriendRequest(ctx context.Context, fromUserID, toUserID int32) (*domain.FriendRequest, error) {
	if fromUserID == toUserID {
		return nil, domain.E(domain.CodeBadRequest, "cannot send a friend request to yourself")
	}
	if _, err := s.users.GetByID(ctx, toUserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.E(domain.CodeNotFound, "user not found")
		}
		return nil, domain.Wrap(domain.CodeInternal, "failed to load user", err)
	}
	if _, err := s.friends.GetPendingBetween(ctx, fromUserID, toUserID); err == nil {
		return nil, domain.E(domain.CodeConflict, "a pending request already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, domain.Wrap(domain.CodeInternal, "failed to check existing request", err)
	}

	fr := &domain.FriendRequest{
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Status:     domain.FriendRequestStatusPending,
	}
	if err := s.friends.Create(ctx, fr); err != nil {
		return nil, domain.Wrap(domain.CodeInternal, "failed to create friend request", err)
	}

	s.relay.Publish(realtime.UserRoom(toUserID), realtime.Event{Type: "friend_request", Payload: fr})
	return fr, nil
}

func (s *chatService) RespondFriendRequest(ctx context.Context, userID, requestID int32, accept bool) (*domain.FriendRequest, error) {
	fr, err := s.friends.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.E(domain.CodeNotFound, "friend request not found")
		}
		return nil, domain.Wrap(domain.CodeInternal, "failed to load friend request", err)
	}
	if fr.ToUserID != userID {
		return nil, domain.E(domain.CodeForbidden, "not the recipient of this request")
	}
	if fr.Status != domain.FriendRequestStatusPending {
		return nil, domain.E(domain.CodeConflict, "request has already been answered")
	}

	if accept {
		fr.Status = domain.FriendRequestStatusAccepted
	} else {
		fr.Status = domain.FriendRequestStatusRejected
	}
	if err := s.friends.Update(ctx, fr); err != nil {
		return nil, domain.Wrap(domain.CodeInternal, "failed to update friend request", err)
	}

	s.relay.Publish(realtime.UserRoom(fr.FromUserID), realtime.Event{Type: "friend_request_answered", Payload: fr})
	return fr, nil
}

func (s *chatService) ListFriendRequests(ctx context.Context, userID int32) ([]domain.FriendRequest, error) {
	reqs, err := s.friends.ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.Wrap(domain.CodeInternal, "failed to list friend requests", err)
	}
	return reqs, nil
}
