package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"matrimony_server/services"
)

// MatchController serves the matching browser and interest markers. Both
// sit behind the membership gate: an incomplete profile or lapsed plan gets
// an explicit prompt, never a silent empty result.
type MatchController struct {
	Matches     *services.MatchService
	Memberships *services.MembershipService
	Profiles    *services.UserProfileService
}

func NewMatchController(matches *services.MatchService, memberships *services.MembershipService, profiles *services.UserProfileService) *MatchController {
	return &MatchController{Matches: matches, Memberships: memberships, Profiles: profiles}
}

const gateMessage = "Please complete your profile and purchase a plan to view matches."

// HandleGetMatches returns candidate profiles for the acting user
func (c *MatchController) HandleGetMatches(w http.ResponseWriter, r *http.Request) {
	uid := currentUserID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "You must be signed in to view matches.")
		return
	}

	self, err := c.Profiles.GetProfile(r.Context(), uid)
	if err != nil {
		writeServiceError(w, "fetch matches", err)
		return
	}
	if !c.Memberships.CanAccessMatching(self) {
		writeError(w, http.StatusForbidden, gateMessage)
		return
	}

	query := r.URL.Query()
	filters := services.MatchFilters{
		City:       query.Get("city"),
		Religion:   query.Get("religion"),
		Manglik:    query.Get("manglik"),
		Occupation: query.Get("occupation"),
	}

	candidates, err := c.Matches.Candidates(r.Context(), self, filters)
	if err != nil {
		log.Printf("❌ Failed to fetch matches for %s: %v", uid, err)
		writeServiceError(w, "fetch matches", err)
		return
	}
	writeJSON(w, http.StatusOK, candidates)
}

// HandleSendInterest records the write-once interest marker
func (c *MatchController) HandleSendInterest(w http.ResponseWriter, r *http.Request) {
	uid := currentUserID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "You must be signed in to send an interest.")
		return
	}

	var payload struct {
		ReceiverID string `json:"receiverId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.ReceiverID == "" {
		writeError(w, http.StatusBadRequest, "Missing required field: receiverId")
		return
	}

	self, err := c.Profiles.GetProfile(r.Context(), uid)
	if err != nil {
		writeServiceError(w, "send interest", err)
		return
	}
	if !c.Memberships.CanAccessMatching(self) {
		writeError(w, http.StatusForbidden, gateMessage)
		return
	}

	interest, err := c.Matches.SendInterest(r.Context(), self, payload.ReceiverID)
	if err != nil {
		if err == services.ErrAlreadyExists {
			writeError(w, http.StatusConflict, "Interest already sent.")
			return
		}
		log.Printf("❌ Failed to send interest: %v", err)
		writeServiceError(w, "send interest", err)
		return
	}
	writeJSON(w, http.StatusCreated, interest)
}

// HandleListInterests returns the acting user's sent and received markers
func (c *MatchController) HandleListInterests(w http.ResponseWriter, r *http.Request) {
	uid := currentUserID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "You must be signed in to view interests.")
		return
	}

	sent, received, err := c.Matches.ListInterests(r.Context(), uid)
	if err != nil {
		writeServiceError(w, "fetch interests", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sent":     sent,
		"received": received,
	})
}
