package services

import (
	"math"
	"time"

	"matrimony_server/models"
)

// Step is one entry of the fixed profile-completion checklist
type Step struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// ProfileState is the derived view the dashboard and the membership gate
// consume: completion percentage, per-step status, and whether a paid
// membership is currently active.
type ProfileState struct {
	Progress      int    `json:"progress"`
	Steps         []Step `json:"steps"`
	HasMembership bool   `json:"hasMembership"`
}

var checklistSteps = []Step{
	{ID: models.StepBasicInfo, Title: "Basic Information", Description: "Name, DOB, Gender, etc."},
	{ID: models.StepPersonalInfo, Title: "Personal Information", Description: "Contact, ID, Address, etc."},
	{ID: models.StepCareerInfo, Title: "Career Details", Description: "Occupation, Income, etc."},
	{ID: models.StepFamilyInfo, Title: "Family & Lifestyle", Description: "Family type, Occupations, etc."},
	{ID: models.StepPhotos, Title: "Upload Photos", Description: "Add photos to your profile."},
}

// ComputeProfileState derives the profile state from a user document.
// A nil user (signed out, or not yet created) yields the zero state rather
// than an error. The result is recomputed from the snapshot on every call;
// nothing is cached.
func ComputeProfileState(user *models.User) ProfileState {
	return ComputeProfileStateAt(user, time.Now())
}

// ComputeProfileStateAt is ComputeProfileState with an explicit evaluation
// time. A membership whose expiry equals now is already expired.
func ComputeProfileStateAt(user *models.User, now time.Time) ProfileState {
	steps := make([]Step, len(checklistSteps))
	copy(steps, checklistSteps)

	if user == nil {
		return ProfileState{Progress: 0, Steps: steps, HasMembership: false}
	}

	completed := 0
	for i := range steps {
		if user.Progress[steps[i].ID] {
			steps[i].Completed = true
			completed++
		}
	}

	progress := int(math.Round(float64(completed) / float64(len(steps)) * 100))

	hasMembership := false
	if user.Membership != nil {
		if expiry, err := time.Parse(time.RFC3339, user.Membership.ExpiryDate); err == nil {
			hasMembership = expiry.After(now)
		}
	}

	return ProfileState{Progress: progress, Steps: steps, HasMembership: hasMembership}
}

// IsProfileComplete reports whether all checklist steps are done
func IsProfileComplete(user *models.User) bool {
	if user == nil {
		return false
	}
	for _, step := range checklistSteps {
		if !user.Progress[step.ID] {
			return false
		}
	}
	return true
}
