package routes

import (
	"matrimony_server/controllers"
	"matrimony_server/services"

	"github.com/gorilla/mux"
)

// RegisterMatchRoutes sets up the matching browser and interest routes
func RegisterMatchRoutes(r *mux.Router, matches *services.MatchService, memberships *services.MembershipService, profiles *services.UserProfileService) {
	controller := controllers.NewMatchController(matches, memberships, profiles)

	matchRouter := r.PathPrefix("/api/matches").Subrouter()

	matchRouter.HandleFunc("", controller.HandleGetMatches).Methods("GET")
	matchRouter.HandleFunc("/interest", controller.HandleSendInterest).Methods("POST")
	matchRouter.HandleFunc("/interests", controller.HandleListInterests).Methods("GET")
}
