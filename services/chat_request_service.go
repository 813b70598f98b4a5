package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"matrimony_server/models"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ChatRequestService manages the pending/accept/decline handshake that
// gates chat-room creation.
type ChatRequestService struct {
	Dynamo Store
}

// SendRequest creates a pending request at the deterministic pair id. The
// conditional write makes the at-most-one-pending guarantee hold even when
// two sends race: the second one loses with ErrAlreadyExists.
func (s *ChatRequestService) SendRequest(ctx context.Context, sender *models.User, receiverID string) (*models.ChatRequest, error) {
	if sender == nil || sender.UID == "" {
		return nil, ErrNotAuthenticated
	}
	if receiverID == "" || receiverID == sender.UID {
		return nil, fmt.Errorf("%w: invalid receiver", ErrValidation)
	}

	var receiver models.User
	if err := s.Dynamo.GetItem(ctx, models.UsersTable, StringKey("uid", receiverID), &receiver); err != nil {
		return nil, err
	}

	request := models.ChatRequest{
		RequestID:      models.PairID(sender.UID, receiverID),
		SenderID:       sender.UID,
		SenderName:     sender.Name,
		SenderPhotoURL: sender.PhotoURL,
		ReceiverID:     receiverID,
		ReceiverName:   receiver.Name,
		Status:         models.RequestStatusPending,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.Dynamo.PutItemIfAbsent(ctx, models.ChatRequestsTable, request, "requestId"); err != nil {
		if err == ErrAlreadyExists {
			log.Printf("⚠️ Chat request %s already pending", request.RequestID)
		}
		return nil, err
	}

	log.Printf("✅ Chat request sent: %s -> %s", sender.UID, receiverID)
	return &request, nil
}

// Accept creates the chat room at the request's id, seeded with both
// members and a denormalized snapshot of each party's current display
// name/photo, and deletes the request in the same transaction. Only the
// receiver may accept.
func (s *ChatRequestService) Accept(ctx context.Context, receiver *models.User, requestID string) (*models.Chat, error) {
	if receiver == nil || receiver.UID == "" {
		return nil, ErrNotAuthenticated
	}

	var request models.ChatRequest
	if err := s.Dynamo.GetItem(ctx, models.ChatRequestsTable, StringKey("requestId", requestID), &request); err != nil {
		return nil, err
	}
	if request.ReceiverID != receiver.UID {
		return nil, ErrForbidden
	}

	chat := models.Chat{
		ChatID: request.RequestID,
		Members: map[string]bool{
			request.SenderID:   true,
			request.ReceiverID: true,
		},
		MemberDetails: []models.MemberDetail{
			{UID: request.SenderID, Name: request.SenderName, PhotoURL: request.SenderPhotoURL},
			{UID: request.ReceiverID, Name: receiver.Name, PhotoURL: receiver.PhotoURL},
		},
		Typing:    map[string]bool{},
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	err := s.Dynamo.TransactPutDelete(ctx, models.ChatsTable, chat, models.ChatRequestsTable, StringKey("requestId", requestID))
	if err != nil {
		log.Printf("❌ Failed to accept request %s: %v", requestID, err)
		return nil, err
	}

	log.Printf("✅ Request %s accepted, chat created", requestID)
	return &chat, nil
}

// Decline deletes the request. No terminal state is kept and the sender is
// not notified beyond the pending record disappearing. Declining an absent
// request is a no-op.
func (s *ChatRequestService) Decline(ctx context.Context, requestID string) error {
	if err := s.Dynamo.DeleteItem(ctx, models.ChatRequestsTable, StringKey("requestId", requestID)); err != nil {
		log.Printf("❌ Failed to decline request %s: %v", requestID, err)
		return err
	}
	log.Printf("✅ Request %s declined", requestID)
	return nil
}

// ListPending returns the requests addressed to a user. Existence implies
// pending; the stored status field is vestigial.
func (s *ChatRequestService) ListPending(ctx context.Context, receiverID string) ([]models.ChatRequest, error) {
	var requests []models.ChatRequest
	err := s.Dynamo.ScanWithFilter(ctx, models.ChatRequestsTable, func(item map[string]types.AttributeValue) bool {
		return ExtractString(item, "receiverId") == receiverID
	}, &requests)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending requests: %w", err)
	}
	return requests, nil
}
