package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"matrimony_server/models"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// messageTimeLayout is fixed-width RFC3339 with nanoseconds so timestamps
// sort lexicographically. It is the message sort key: server-assigned,
// never the client clock.
const messageTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ChatService manages the message stream of accepted chats: append,
// typing presence, per-message reaction toggles and unsend.
type ChatService struct {
	Dynamo Store
}

func messageKey(chatID, createdAt string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"chatId":    &types.AttributeValueMemberS{Value: chatID},
		"createdAt": &types.AttributeValueMemberS{Value: createdAt},
	}
}

// GetChat retrieves a chat room by id
func (s *ChatService) GetChat(ctx context.Context, chatID string) (*models.Chat, error) {
	var chat models.Chat
	if err := s.Dynamo.GetItem(ctx, models.ChatsTable, StringKey("chatId", chatID), &chat); err != nil {
		return nil, err
	}
	return &chat, nil
}

// ListChats returns the chats a user is a member of, most recently active
// first. A chat with no messages yet sorts last.
func (s *ChatService) ListChats(ctx context.Context, userID string) ([]models.Chat, error) {
	var chats []models.Chat
	err := s.Dynamo.ScanWithFilter(ctx, models.ChatsTable, nil, &chats)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chats: %w", err)
	}

	var mine []models.Chat
	for _, chat := range chats {
		if chat.Members[userID] {
			mine = append(mine, chat)
		}
	}

	sort.SliceStable(mine, func(i, j int) bool {
		return mine[i].LastMessageTimestamp > mine[j].LastMessageTimestamp
	})
	return mine, nil
}

// GetMessages fetches messages for a chat sorted by createdAt ascending
func (s *ChatService) GetMessages(ctx context.Context, chatID string, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := s.Dynamo.QueryByPartition(ctx, models.MessagesTable, "chatId", chatID, int32(limit), true, &messages)
	if err != nil {
		log.Printf("❌ Error querying messages for chat %s: %v", chatID, err)
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}
	return messages, nil
}

// SendMessage appends a message and then refreshes the chat's preview
// fields. The append is conditional on the sort key being free: two sends
// landing in the same nanosecond collide instead of silently replacing one
// another, and the loser retries with a fresh timestamp. The preview write
// is independent: a failed one leaves the message in place and is only
// logged, since the preview is re-derived on the next send anyway.
func (s *ChatService) SendMessage(ctx context.Context, chatID, senderID, senderName, text string) (*models.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: message text is empty", ErrValidation)
	}

	chat, err := s.GetChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.Members[senderID] {
		return nil, ErrForbidden
	}

	message := models.Message{
		ChatID:     chatID,
		MessageID:  uuid.New().String(),
		SenderID:   senderID,
		SenderName: senderName,
		Text:       text,
	}
	for {
		message.CreatedAt = time.Now().UTC().Format(messageTimeLayout)
		err := s.Dynamo.PutItemIfAbsent(ctx, models.MessagesTable, message, "createdAt")
		if err == nil {
			break
		}
		if err != ErrAlreadyExists {
			log.Printf("❌ Failed to store message in chat %s: %v", chatID, err)
			return nil, fmt.Errorf("failed to store message: %w", err)
		}
		// Another send took the same nanosecond; try a fresh timestamp.
	}

	// Point write on the preview fields; sending also ends the sender's
	// typing state. A whole-document put here could revert a concurrent
	// writer's fields.
	err = s.Dynamo.UpdateItem(ctx, models.ChatsTable, StringKey("chatId", chatID),
		"SET lastMessage = :msg, lastMessageTimestamp = :ts REMOVE #typing.#uid",
		map[string]types.AttributeValue{
			":msg": &types.AttributeValueMemberS{Value: text},
			":ts":  &types.AttributeValueMemberS{Value: message.CreatedAt},
		},
		map[string]string{"#typing": "typing", "#uid": senderID})
	if err != nil {
		log.Printf("⚠️ Message stored but chat preview update failed for %s: %v", chatID, err)
	}

	log.Printf("✅ Message stored in chat %s", chatID)
	return &message, nil
}

// SetTyping records key-existence typing presence on the chat document via
// a per-key update expression, so concurrent typers and message sends never
// overwrite each other's fields. There is no server-side expiry: a client
// that disconnects mid-typing leaves its flag until another write clears
// it. Clients clear after 2s of inactivity or on send.
func (s *ChatService) SetTyping(ctx context.Context, chatID, userID string, isTyping bool) error {
	chat, err := s.GetChat(ctx, chatID)
	if err != nil {
		return err
	}
	if !chat.Members[userID] {
		return ErrForbidden
	}

	names := map[string]string{"#typing": "typing", "#uid": userID}
	if isTyping {
		return s.Dynamo.UpdateItem(ctx, models.ChatsTable, StringKey("chatId", chatID),
			"SET #typing.#uid = :typing",
			map[string]types.AttributeValue{":typing": &types.AttributeValueMemberBOOL{Value: true}},
			names)
	}
	return s.Dynamo.UpdateItem(ctx, models.ChatsTable, StringKey("chatId", chatID),
		"REMOVE #typing.#uid", nil, names)
}

// Unsend replaces the message text with the fixed placeholder, marks it
// unsent and clears reactions. Only the original sender may unsend; the
// transition is one-way and a second unsend is a no-op.
func (s *ChatService) Unsend(ctx context.Context, chatID, createdAt, senderID string) (*models.Message, error) {
	var message models.Message
	if err := s.Dynamo.GetItem(ctx, models.MessagesTable, messageKey(chatID, createdAt), &message); err != nil {
		return nil, err
	}
	if message.SenderID != senderID {
		return nil, ErrForbidden
	}
	if message.IsUnsent {
		return &message, nil
	}

	message.Text = models.UnsentMessageText
	message.IsUnsent = true
	message.Reactions = nil

	if err := s.Dynamo.PutItem(ctx, models.MessagesTable, message); err != nil {
		log.Printf("❌ Failed to unsend message in chat %s: %v", chatID, err)
		return nil, fmt.Errorf("failed to unsend message: %w", err)
	}

	log.Printf("✅ Message unsent in chat %s", chatID)
	return &message, nil
}

// ToggleReaction adds the user to the emoji's reactor set if absent, else
// removes them; an emptied set drops the emoji key entirely. This is a
// read-modify-write with no lock, so concurrent togglers can lose an
// update. Unsent messages keep their reactions cleared, so toggling them
// is a no-op.
func (s *ChatService) ToggleReaction(ctx context.Context, chatID, createdAt, emoji, userID string) (*models.Message, error) {
	if emoji == "" {
		return nil, fmt.Errorf("%w: emoji is required", ErrValidation)
	}

	var message models.Message
	if err := s.Dynamo.GetItem(ctx, models.MessagesTable, messageKey(chatID, createdAt), &message); err != nil {
		return nil, err
	}
	if message.IsUnsent {
		return &message, nil
	}

	reactors := message.Reactions[emoji]
	found := false
	next := make([]string, 0, len(reactors))
	for _, uid := range reactors {
		if uid == userID {
			found = true
			continue
		}
		next = append(next, uid)
	}
	if !found {
		next = append(next, userID)
	}

	if message.Reactions == nil {
		message.Reactions = map[string][]string{}
	}
	if len(next) == 0 {
		delete(message.Reactions, emoji)
	} else {
		message.Reactions[emoji] = next
	}
	if len(message.Reactions) == 0 {
		message.Reactions = nil
	}

	if err := s.Dynamo.PutItem(ctx, models.MessagesTable, message); err != nil {
		log.Printf("❌ Failed to toggle reaction in chat %s: %v", chatID, err)
		return nil, fmt.Errorf("failed to toggle reaction: %w", err)
	}
	return &message, nil
}
