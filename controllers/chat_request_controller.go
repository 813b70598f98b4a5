package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"matrimony_server/services"
)

// ChatRequestController handles the chat handshake endpoints
type ChatRequestController struct {
	Requests *services.ChatRequestService
	Profiles *services.UserProfileService
}

func NewChatRequestController(requests *services.ChatRequestService, profiles *services.UserProfileService) *ChatRequestController {
	return &ChatRequestController{Requests: requests, Profiles: profiles}
}

// HandleSendRequest creates a pending chat request to another user
func (c *ChatRequestController) HandleSendRequest(w http.ResponseWriter, r *http.Request) {
	uid := currentUserID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "You must be signed in to send a chat request.")
		return
	}

	var payload struct {
		ReceiverID string `json:"receiverId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sender, err := c.Profiles.GetProfile(r.Context(), uid)
	if err != nil {
		writeServiceError(w, "send chat request", err)
		return
	}

	request, err := c.Requests.SendRequest(r.Context(), sender, payload.ReceiverID)
	if err != nil {
		if err == services.ErrAlreadyExists {
			writeError(w, http.StatusConflict, "Chat request already sent.")
			return
		}
		log.Printf("❌ Failed to send chat request: %v", err)
		writeServiceError(w, "send chat request", err)
		return
	}
	writeJSON(w, http.StatusCreated, request)
}

// HandleAccept consumes the request and answers with the created chat
func (c *ChatRequestController) HandleAccept(w http.ResponseWriter, r *http.Request) {
	uid := currentUserID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "You must be signed in to accept a chat request.")
		return
	}

	var payload struct {
		RequestID string `json:"requestId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.RequestID == "" {
		writeError(w, http.StatusBadRequest, "Missing required field: requestId")
		return
	}

	receiver, err := c.Profiles.GetProfile(r.Context(), uid)
	if err != nil {
		writeServiceError(w, "accept chat request", err)
		return
	}

	chat, err := c.Requests.Accept(r.Context(), receiver, payload.RequestID)
	if err != nil {
		log.Printf("❌ Failed to accept request %s: %v", payload.RequestID, err)
		writeServiceError(w, "accept chat request", err)
		return
	}
	writeJSON(w, http.StatusOK, chat)
}

// HandleDecline deletes the pending request
func (c *ChatRequestController) HandleDecline(w http.ResponseWriter, r *http.Request) {
	uid := currentUserID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "You must be signed in to decline a chat request.")
		return
	}

	var payload struct {
		RequestID string `json:"requestId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.RequestID == "" {
		writeError(w, http.StatusBadRequest, "Missing required field: requestId")
		return
	}

	if err := c.Requests.Decline(r.Context(), payload.RequestID); err != nil {
		writeServiceError(w, "decline chat request", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "Chat request declined"})
}

// HandleListPending returns the requests addressed to the acting user
func (c *ChatRequestController) HandleListPending(w http.ResponseWriter, r *http.Request) {
	uid := currentUserID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "You must be signed in to view chat requests.")
		return
	}

	requests, err := c.Requests.ListPending(r.Context(), uid)
	if err != nil {
		writeServiceError(w, "fetch chat requests", err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}
