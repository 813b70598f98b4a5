package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"matrimony_server/services"
)

// Broadcaster pushes events to the Socket.IO room of a chat. Satisfied by
// *socketio.Server; nil disables fan-out (tests, offline tooling).
type Broadcaster interface {
	BroadcastToRoom(namespace string, room, event string, args ...interface{}) bool
}

// ChatController handles the message stream endpoints and fans successful
// writes out to the chat's room.
type ChatController struct {
	Chats  *services.ChatService
	Socket Broadcaster
}

func NewChatController(chats *services.ChatService, socket Broadcaster) *ChatController {
	return &ChatController{Chats: chats, Socket: socket}
}

func (c *ChatController) broadcast(chatID, event string, payload interface{}) {
	if c.Socket != nil {
		c.Socket.BroadcastToRoom("/", chatID, event, payload)
	}
}

// HandleListChats returns the acting user's chats, most recent first
func (c *ChatController) HandleListChats(w http.ResponseWriter, r *http.Request) {
	uid := currentUserID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "You must be signed in to view chats.")
		return
	}

	chats, err := c.Chats.ListChats(r.Context(), uid)
	if err != nil {
		writeServiceError(w, "fetch chats", err)
		return
	}
	writeJSON(w, http.StatusOK, chats)
}

// HandleGetMessages fetches messages for a chat, oldest first
func (c *ChatController) HandleGetMessages(w http.ResponseWriter, r *http.Request) {
	chatID := r.URL.Query().Get("chatId")
	if chatID == "" {
		writeError(w, http.StatusBadRequest, "chatId is required")
		return
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 50
	}

	messages, err := c.Chats.GetMessages(r.Context(), chatID, limit)
	if err != nil {
		writeServiceError(w, "fetch messages", err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

// HandleSendMessage appends a message and broadcasts it to the room
func (c *ChatController) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	uid := currentUserID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "You must be signed in to send a message.")
		return
	}

	var payload struct {
		ChatID     string `json:"chatId"`
		SenderName string `json:"senderName"`
		Text       string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.ChatID == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields: chatId, text")
		return
	}

	message, err := c.Chats.SendMessage(r.Context(), payload.ChatID, uid, payload.SenderName, payload.Text)
	if err != nil {
		log.Printf("❌ Failed to send message: %v", err)
		writeServiceError(w, "send message", err)
		return
	}

	c.broadcast(payload.ChatID, "newMessage", message)
	writeJSON(w, http.StatusCreated, message)
}

// HandleTyping sets or clears the acting user's typing presence
func (c *ChatController) HandleTyping(w http.ResponseWriter, r *http.Request) {
	uid := currentUserID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "You must be signed in to update typing state.")
		return
	}

	var payload struct {
		ChatID   string `json:"chatId"`
		IsTyping bool   `json:"isTyping"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.ChatID == "" {
		writeError(w, http.StatusBadRequest, "Missing required field: chatId")
		return
	}

	if err := c.Chats.SetTyping(r.Context(), payload.ChatID, uid, payload.IsTyping); err != nil {
		writeServiceError(w, "update typing state", err)
		return
	}

	c.broadcast(payload.ChatID, "typing", map[string]interface{}{
		"chatId":   payload.ChatID,
		"userId":   uid,
		"isTyping": payload.IsTyping,
	})
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// HandleUnsend retracts a message for everyone
func (c *ChatController) HandleUnsend(w http.ResponseWriter, r *http.Request) {
	uid := currentUserID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "You must be signed in to unsend a message.")
		return
	}

	var payload struct {
		ChatID    string `json:"chatId"`
		CreatedAt string `json:"createdAt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.ChatID == "" || payload.CreatedAt == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields: chatId, createdAt")
		return
	}

	message, err := c.Chats.Unsend(r.Context(), payload.ChatID, payload.CreatedAt, uid)
	if err != nil {
		log.Printf("❌ Failed to unsend message: %v", err)
		writeServiceError(w, "unsend message", err)
		return
	}

	c.broadcast(payload.ChatID, "messageUpdated", message)
	writeJSON(w, http.StatusOK, message)
}

// HandleToggleReaction toggles the acting user's reaction on a message
func (c *ChatController) HandleToggleReaction(w http.ResponseWriter, r *http.Request) {
	uid := currentUserID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "You must be signed in to react to a message.")
		return
	}

	var payload struct {
		ChatID    string `json:"chatId"`
		CreatedAt string `json:"createdAt"`
		Emoji     string `json:"emoji"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.ChatID == "" || payload.CreatedAt == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields: chatId, createdAt, emoji")
		return
	}

	message, err := c.Chats.ToggleReaction(r.Context(), payload.ChatID, payload.CreatedAt, payload.Emoji, uid)
	if err != nil {
		writeServiceError(w, "react to message", err)
		return
	}

	c.broadcast(payload.ChatID, "messageUpdated", message)
	writeJSON(w, http.StatusOK, message)
}
