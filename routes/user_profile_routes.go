package routes

import (
	"matrimony_server/controllers"
	"matrimony_server/services"

	"github.com/gorilla/mux"
)

// RegisterUserProfileRoutes sets up routes for registration, the wizard
// steps and derived profile state under /api/profile
func RegisterUserProfileRoutes(r *mux.Router, profiles *services.UserProfileService) {
	controller := controllers.NewUserProfileController(profiles)

	profileRouter := r.PathPrefix("/api/profile").Subrouter()

	profileRouter.HandleFunc("/register", controller.HandleRegister).Methods("POST")
	profileRouter.HandleFunc("/state", controller.HandleGetProfileState).Methods("GET")
	profileRouter.HandleFunc("/basic-info", controller.HandleSaveBasicInfo).Methods("PUT")
	profileRouter.HandleFunc("/personal-info", controller.HandleSavePersonalInfo).Methods("PUT")
	profileRouter.HandleFunc("/career-info", controller.HandleSaveCareerInfo).Methods("PUT")
	profileRouter.HandleFunc("/family-info", controller.HandleSaveFamilyInfo).Methods("PUT")
	profileRouter.HandleFunc("/photos", controller.HandleSavePhotos).Methods("PUT")
	profileRouter.HandleFunc("/{uid}", controller.HandleGetProfile).Methods("GET")
}
