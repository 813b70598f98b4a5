package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"matrimony_server/services"
)

// GeneratePresignedURL generates a presigned URL for photo uploads
func GeneratePresignedURL(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.FileName == "" || payload.FileType == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields: fileName, fileType")
		return
	}

	url, key, err := services.GenerateUploadURL(payload.FileName, payload.FileType)
	if err != nil {
		log.Printf("❌ Error generating pre-signed upload URL: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate upload URL. Please try again.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": url, "key": key})
}

// GetPresignedReadURL generates a presigned URL for reading a stored photo
func GetPresignedReadURL(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Key == "" {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	url, err := services.GenerateReadURL(payload.Key)
	if err != nil {
		log.Printf("❌ Error generating pre-signed read URL: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate read URL. Please try again.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
