package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"matrimony_server/models"
)

type UserProfileService struct {
	Dynamo Store
}

// Register creates the user document. Step 1 is seeded complete (the
// registration form covers basic info); the remaining wizard steps start
// false and are flipped by their own save operations.
func (ups *UserProfileService) Register(ctx context.Context, user models.User) (*models.User, error) {
	if user.UID == "" || strings.TrimSpace(user.Name) == "" || strings.TrimSpace(user.Email) == "" {
		return nil, fmt.Errorf("%w: uid, name and email are required", ErrValidation)
	}

	user.Progress = map[string]bool{
		models.StepBasicInfo:    true,
		models.StepPersonalInfo: false,
		models.StepCareerInfo:   false,
		models.StepFamilyInfo:   false,
		models.StepPhotos:       false,
	}
	user.Status = models.UserStatusActive
	user.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	if err := ups.Dynamo.PutItemIfAbsent(ctx, models.UsersTable, user, "uid"); err != nil {
		log.Printf("❌ Failed to register user %s: %v", user.UID, err)
		return nil, err
	}

	log.Printf("✅ Registered user %s (%s)", user.UID, user.Email)
	return &user, nil
}

// GetProfile retrieves a user document by uid
func (ups *UserProfileService) GetProfile(ctx context.Context, uid string) (*models.User, error) {
	var user models.User
	if err := ups.Dynamo.GetItem(ctx, models.UsersTable, StringKey("uid", uid), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetProfileState derives completion and membership for a user. An absent
// document is not an error here: the caller gets the zero state.
func (ups *UserProfileService) GetProfileState(ctx context.Context, uid string) (ProfileState, error) {
	user, err := ups.GetProfile(ctx, uid)
	if err != nil {
		if err == ErrNotFound {
			return ComputeProfileState(nil), nil
		}
		return ProfileState{}, err
	}
	return ComputeProfileState(user), nil
}

// SaveBasicInfo merges the section and marks step 1 complete
func (ups *UserProfileService) SaveBasicInfo(ctx context.Context, uid string, info models.BasicInfo) (*models.User, error) {
	return ups.saveSection(ctx, uid, models.StepBasicInfo, func(u *models.User) {
		u.BasicInfo = &info
	})
}

// SavePersonalInfo merges the section and marks step 2 complete
func (ups *UserProfileService) SavePersonalInfo(ctx context.Context, uid string, info models.PersonalInfo) (*models.User, error) {
	return ups.saveSection(ctx, uid, models.StepPersonalInfo, func(u *models.User) {
		u.PersonalInfo = &info
	})
}

// SaveCareerInfo merges the section and marks step 3 complete
func (ups *UserProfileService) SaveCareerInfo(ctx context.Context, uid string, info models.CareerInfo) (*models.User, error) {
	return ups.saveSection(ctx, uid, models.StepCareerInfo, func(u *models.User) {
		u.CareerInfo = &info
	})
}

// SaveFamilyInfo merges the section and marks step 4 complete
func (ups *UserProfileService) SaveFamilyInfo(ctx context.Context, uid string, info models.FamilyInfo) (*models.User, error) {
	return ups.saveSection(ctx, uid, models.StepFamilyInfo, func(u *models.User) {
		u.FamilyInfo = &info
	})
}

// SavePhotos stores the photo URL list and marks step 5 complete. The step
// only counts once an actual upload exists, so an empty list is rejected
// rather than completing the profile with zero photos. The first photo
// doubles as the display photoURL.
func (ups *UserProfileService) SavePhotos(ctx context.Context, uid string, photos []string) (*models.User, error) {
	if len(photos) == 0 {
		return nil, fmt.Errorf("%w: at least one photo is required", ErrValidation)
	}
	if len(photos) > models.MaxProfilePhotos {
		return nil, fmt.Errorf("%w: at most %d photos allowed", ErrValidation, models.MaxProfilePhotos)
	}
	return ups.saveSection(ctx, uid, models.StepPhotos, func(u *models.User) {
		u.Photos = photos
		u.PhotoURL = photos[0]
	})
}

// saveSection loads the document, applies the mutation, flips the step's
// progress flag and writes the document back. A wizard step only ever sets
// its own flag true, so progress never decreases.
func (ups *UserProfileService) saveSection(ctx context.Context, uid, stepID string, mutate func(*models.User)) (*models.User, error) {
	user, err := ups.GetProfile(ctx, uid)
	if err != nil {
		return nil, err
	}

	mutate(user)
	if user.Progress == nil {
		user.Progress = map[string]bool{}
	}
	user.Progress[stepID] = true

	if err := ups.Dynamo.PutItem(ctx, models.UsersTable, *user); err != nil {
		log.Printf("❌ Failed to save step %s for user %s: %v", stepID, uid, err)
		return nil, err
	}

	log.Printf("✅ Saved step %s for user %s", stepID, uid)
	return user, nil
}
