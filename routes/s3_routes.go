package routes

import (
	"matrimony_server/controllers"

	"github.com/gorilla/mux"
)

// RegisterS3Routes sets up the presigned photo URL routes
func RegisterS3Routes(r *mux.Router) {
	s3Router := r.PathPrefix("/api/s3").Subrouter()

	s3Router.HandleFunc("/presigned-url", controllers.GeneratePresignedURL).Methods("POST")
	s3Router.HandleFunc("/read-url", controllers.GetPresignedReadURL).Methods("POST")
}
