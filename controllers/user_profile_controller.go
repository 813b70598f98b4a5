package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"matrimony_server/models"
	"matrimony_server/services"

	"github.com/gorilla/mux"
)

// UserProfileController handles registration, the wizard step writes and
// the derived profile state.
type UserProfileController struct {
	Profiles *services.UserProfileService
}

func NewUserProfileController(profiles *services.UserProfileService) *UserProfileController {
	return &UserProfileController{Profiles: profiles}
}

// HandleRegister creates a new user document
func (c *UserProfileController) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := c.Profiles.Register(r.Context(), user)
	if err != nil {
		log.Printf("❌ Registration failed: %v", err)
		writeServiceError(w, "register", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// HandleGetProfile fetches a user document by uid
func (c *UserProfileController) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["uid"]

	user, err := c.Profiles.GetProfile(r.Context(), uid)
	if err != nil {
		writeServiceError(w, "fetch profile", err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// HandleGetProfileState returns the derived completion/membership state of
// the acting user. It is recomputed from the stored snapshot on every call.
func (c *UserProfileController) HandleGetProfileState(w http.ResponseWriter, r *http.Request) {
	uid := currentUserID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "You must be signed in to view profile state.")
		return
	}

	state, err := c.Profiles.GetProfileState(r.Context(), uid)
	if err != nil {
		writeServiceError(w, "fetch profile state", err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// HandleSaveBasicInfo saves wizard step 1
func (c *UserProfileController) HandleSaveBasicInfo(w http.ResponseWriter, r *http.Request) {
	var info models.BasicInfo
	c.saveStep(w, r, "save basic info", &info, func(uid string) (*models.User, error) {
		return c.Profiles.SaveBasicInfo(r.Context(), uid, info)
	})
}

// HandleSavePersonalInfo saves wizard step 2
func (c *UserProfileController) HandleSavePersonalInfo(w http.ResponseWriter, r *http.Request) {
	var info models.PersonalInfo
	c.saveStep(w, r, "save personal info", &info, func(uid string) (*models.User, error) {
		return c.Profiles.SavePersonalInfo(r.Context(), uid, info)
	})
}

// HandleSaveCareerInfo saves wizard step 3
func (c *UserProfileController) HandleSaveCareerInfo(w http.ResponseWriter, r *http.Request) {
	var info models.CareerInfo
	c.saveStep(w, r, "save career info", &info, func(uid string) (*models.User, error) {
		return c.Profiles.SaveCareerInfo(r.Context(), uid, info)
	})
}

// HandleSaveFamilyInfo saves wizard step 4
func (c *UserProfileController) HandleSaveFamilyInfo(w http.ResponseWriter, r *http.Request) {
	var info models.FamilyInfo
	c.saveStep(w, r, "save family info", &info, func(uid string) (*models.User, error) {
		return c.Profiles.SaveFamilyInfo(r.Context(), uid, info)
	})
}

// HandleSavePhotos saves the photo URL list (wizard step 5)
func (c *UserProfileController) HandleSavePhotos(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Photos []string `json:"photos"`
	}
	c.saveStep(w, r, "save photos", &payload, func(uid string) (*models.User, error) {
		return c.Profiles.SavePhotos(r.Context(), uid, payload.Photos)
	})
}

func (c *UserProfileController) saveStep(w http.ResponseWriter, r *http.Request, action string, body interface{}, save func(uid string) (*models.User, error)) {
	uid := currentUserID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "You must be signed in to "+action+".")
		return
	}

	if err := json.NewDecoder(r.Body).Decode(body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := save(uid)
	if err != nil {
		log.Printf("❌ Failed to %s for %s: %v", action, uid, err)
		writeServiceError(w, action, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
