package services

import (
	"context"
	"errors"
	"testing"

	"matrimony_server/models"
)

func seedUser(t *testing.T, store *fakeStore, uid, name string) *models.User {
	t.Helper()
	user := models.User{UID: uid, Name: name, Email: uid + "@example.com", Status: models.UserStatusActive}
	if err := store.PutItem(context.Background(), models.UsersTable, user); err != nil {
		t.Fatalf("failed to seed user %s: %v", uid, err)
	}
	return &user
}

func TestSendRequestUsesDeterministicPairID(t *testing.T) {
	store := newFakeStore()
	svc := &ChatRequestService{Dynamo: store}
	sender := seedUser(t, store, "alice", "Alice")
	seedUser(t, store, "bob", "Bob")

	request, err := svc.SendRequest(context.Background(), sender, "bob")
	if err != nil {
		t.Fatalf("send request failed: %v", err)
	}
	if request.RequestID != "alice_bob" {
		t.Fatalf("expected request id alice_bob, got %q", request.RequestID)
	}
	if request.Status != models.RequestStatusPending {
		t.Fatalf("expected pending status, got %q", request.Status)
	}
	if request.ReceiverName != "Bob" {
		t.Fatalf("expected receiver name snapshot, got %q", request.ReceiverName)
	}
}

func TestSendRequestDuplicateCollides(t *testing.T) {
	store := newFakeStore()
	svc := &ChatRequestService{Dynamo: store}
	sender := seedUser(t, store, "alice", "Alice")
	seedUser(t, store, "bob", "Bob")
	ctx := context.Background()

	if _, err := svc.SendRequest(ctx, sender, "bob"); err != nil {
		t.Fatalf("first send failed: %v", err)
	}
	if _, err := svc.SendRequest(ctx, sender, "bob"); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists on duplicate send, got %v", err)
	}
	if store.count(models.ChatRequestsTable) != 1 {
		t.Fatalf("expected exactly one stored request, got %d", store.count(models.ChatRequestsTable))
	}
}

func TestSendRequestValidation(t *testing.T) {
	store := newFakeStore()
	svc := &ChatRequestService{Dynamo: store}
	sender := seedUser(t, store, "alice", "Alice")
	ctx := context.Background()

	if _, err := svc.SendRequest(ctx, nil, "bob"); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated for nil sender, got %v", err)
	}
	if _, err := svc.SendRequest(ctx, sender, "alice"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for self-request, got %v", err)
	}
	if _, err := svc.SendRequest(ctx, sender, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown receiver, got %v", err)
	}
}

func TestAcceptCreatesChatAndConsumesRequest(t *testing.T) {
	store := newFakeStore()
	svc := &ChatRequestService{Dynamo: store}
	sender := seedUser(t, store, "alice", "Alice")
	receiver := seedUser(t, store, "bob", "Bob")
	ctx := context.Background()

	request, err := svc.SendRequest(ctx, sender, "bob")
	if err != nil {
		t.Fatalf("send request failed: %v", err)
	}

	chat, err := svc.Accept(ctx, receiver, request.RequestID)
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if chat.ChatID != request.RequestID {
		t.Fatalf("chat id should reuse the request id, got %q", chat.ChatID)
	}
	if !chat.Members["alice"] || !chat.Members["bob"] || len(chat.Members) != 2 {
		t.Fatalf("expected both members in chat, got %v", chat.Members)
	}
	if len(chat.MemberDetails) != 2 {
		t.Fatalf("expected two member detail snapshots, got %d", len(chat.MemberDetails))
	}
	if detail := chat.OtherMember("alice"); detail == nil || detail.Name != "Bob" {
		t.Fatalf("expected receiver snapshot, got %+v", detail)
	}

	if store.count(models.ChatRequestsTable) != 0 {
		t.Fatal("request should be deleted after accept")
	}
	if store.count(models.ChatsTable) != 1 {
		t.Fatalf("expected exactly one chat, got %d", store.count(models.ChatsTable))
	}

	// The request is consumed: a second accept and a late decline
	// must not produce a second chat or an error beyond not-found.
	if _, err := svc.Accept(ctx, receiver, request.RequestID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second accept, got %v", err)
	}
	if err := svc.Decline(ctx, request.RequestID); err != nil {
		t.Fatalf("late decline should be a no-op, got %v", err)
	}
	if store.count(models.ChatsTable) != 1 {
		t.Fatalf("still expected exactly one chat, got %d", store.count(models.ChatsTable))
	}
}

func TestAcceptOnlyByReceiver(t *testing.T) {
	store := newFakeStore()
	svc := &ChatRequestService{Dynamo: store}
	sender := seedUser(t, store, "alice", "Alice")
	seedUser(t, store, "bob", "Bob")
	intruder := seedUser(t, store, "carol", "Carol")
	ctx := context.Background()

	request, err := svc.SendRequest(ctx, sender, "bob")
	if err != nil {
		t.Fatalf("send request failed: %v", err)
	}

	if _, err := svc.Accept(ctx, intruder, request.RequestID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-receiver accept, got %v", err)
	}
	if _, err := svc.Accept(ctx, sender, request.RequestID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for sender accepting own request, got %v", err)
	}
	if store.count(models.ChatsTable) != 0 {
		t.Fatal("no chat should exist after rejected accepts")
	}
}

func TestDeclineRemovesRequestWithoutChat(t *testing.T) {
	store := newFakeStore()
	svc := &ChatRequestService{Dynamo: store}
	sender := seedUser(t, store, "alice", "Alice")
	seedUser(t, store, "bob", "Bob")
	ctx := context.Background()

	request, err := svc.SendRequest(ctx, sender, "bob")
	if err != nil {
		t.Fatalf("send request failed: %v", err)
	}

	if err := svc.Decline(ctx, request.RequestID); err != nil {
		t.Fatalf("decline failed: %v", err)
	}
	if store.count(models.ChatRequestsTable) != 0 {
		t.Fatal("request should be gone after decline")
	}
	if store.count(models.ChatsTable) != 0 {
		t.Fatal("decline must not create a chat")
	}

	// After the decline the pair id is free again.
	if _, err := svc.SendRequest(ctx, sender, "bob"); err != nil {
		t.Fatalf("re-send after decline failed: %v", err)
	}
}

func TestListPendingFiltersByReceiver(t *testing.T) {
	store := newFakeStore()
	svc := &ChatRequestService{Dynamo: store}
	alice := seedUser(t, store, "alice", "Alice")
	carol := seedUser(t, store, "carol", "Carol")
	seedUser(t, store, "bob", "Bob")
	ctx := context.Background()

	if _, err := svc.SendRequest(ctx, alice, "bob"); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if _, err := svc.SendRequest(ctx, carol, "bob"); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if _, err := svc.SendRequest(ctx, alice, "carol"); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	pending, err := svc.ListPending(ctx, "bob")
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending requests for bob, got %d", len(pending))
	}
	for _, r := range pending {
		if r.ReceiverID != "bob" {
			t.Fatalf("unexpected request for %s in bob's inbox", r.ReceiverID)
		}
	}
}
