package routes

import (
	"matrimony_server/controllers"
	"matrimony_server/services"

	"github.com/gorilla/mux"
)

// RegisterChatRequestRoutes sets up the handshake routes under /api/chat-requests
func RegisterChatRequestRoutes(r *mux.Router, requests *services.ChatRequestService, profiles *services.UserProfileService) {
	controller := controllers.NewChatRequestController(requests, profiles)

	requestRouter := r.PathPrefix("/api/chat-requests").Subrouter()

	requestRouter.HandleFunc("", controller.HandleSendRequest).Methods("POST")
	requestRouter.HandleFunc("", controller.HandleListPending).Methods("GET")
	requestRouter.HandleFunc("/accept", controller.HandleAccept).Methods("POST")
	requestRouter.HandleFunc("/decline", controller.HandleDecline).Methods("POST")
}
