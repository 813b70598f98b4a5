package routes

import (
	"matrimony_server/controllers"
	"matrimony_server/services"

	"github.com/gorilla/mux"
)

// RegisterChatRoutes sets up routes for chat-related operations under /api/chat
func RegisterChatRoutes(r *mux.Router, chats *services.ChatService, socket controllers.Broadcaster) {
	controller := controllers.NewChatController(chats, socket)

	chatRouter := r.PathPrefix("/api/chat").Subrouter()

	chatRouter.HandleFunc("/list", controller.HandleListChats).Methods("GET")
	chatRouter.HandleFunc("/messages", controller.HandleGetMessages).Methods("GET")
	chatRouter.HandleFunc("/message", controller.HandleSendMessage).Methods("POST")
	chatRouter.HandleFunc("/typing", controller.HandleTyping).Methods("POST")
	chatRouter.HandleFunc("/message/unsend", controller.HandleUnsend).Methods("PATCH")
	chatRouter.HandleFunc("/message/reaction", controller.HandleToggleReaction).Methods("PATCH")
}
