package services

import (
	"context"
	"testing"
	"time"

	"matrimony_server/models"
)

func TestComputeProfileStateNilUser(t *testing.T) {
	state := ComputeProfileState(nil)
	if state.Progress != 0 {
		t.Fatalf("expected progress 0 for nil user, got %d", state.Progress)
	}
	if state.HasMembership {
		t.Fatal("nil user must not have membership")
	}
	if len(state.Steps) != 5 {
		t.Fatalf("expected 5 checklist steps, got %d", len(state.Steps))
	}
	for _, step := range state.Steps {
		if step.Completed {
			t.Fatalf("step %s should not be completed for nil user", step.ID)
		}
	}
}

func TestProgressIsTwentyPerCompletedStep(t *testing.T) {
	user := &models.User{UID: "u1", Progress: map[string]bool{}}

	steps := []string{
		models.StepBasicInfo,
		models.StepPersonalInfo,
		models.StepCareerInfo,
		models.StepFamilyInfo,
		models.StepPhotos,
	}

	previous := 0
	for i, stepID := range steps {
		user.Progress[stepID] = true
		state := ComputeProfileState(user)
		want := (i + 1) * 20
		if state.Progress != want {
			t.Fatalf("after %d steps: expected progress %d, got %d", i+1, want, state.Progress)
		}
		if state.Progress < previous {
			t.Fatalf("progress decreased from %d to %d", previous, state.Progress)
		}
		previous = state.Progress
	}
}

func TestMembershipExpiryBoundaryIsExclusive(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		expiry time.Time
		want   bool
	}{
		{"expires exactly now", now, false},
		{"expires one second from now", now.Add(time.Second), true},
		{"expired yesterday", now.AddDate(0, 0, -1), false},
		{"expires in six months", now.AddDate(0, 6, 0), true},
	}

	for _, tc := range cases {
		user := &models.User{
			UID: "u1",
			Membership: &models.Membership{
				Plan:       "Silver",
				ExpiryDate: tc.expiry.Format(time.RFC3339),
			},
		}
		state := ComputeProfileStateAt(user, now)
		if state.HasMembership != tc.want {
			t.Errorf("%s: hasMembership = %v, want %v", tc.name, state.HasMembership, tc.want)
		}
	}
}

func TestMembershipAbsentOrUnparseable(t *testing.T) {
	state := ComputeProfileState(&models.User{UID: "u1"})
	if state.HasMembership {
		t.Fatal("user without membership field must not have membership")
	}

	state = ComputeProfileState(&models.User{
		UID:        "u1",
		Membership: &models.Membership{Plan: "Silver", ExpiryDate: "not-a-date"},
	})
	if state.HasMembership {
		t.Fatal("unparseable expiry must count as no membership")
	}
}

func TestRegisterSeedsStepOneOnly(t *testing.T) {
	store := newFakeStore()
	svc := &UserProfileService{Dynamo: store}

	user, err := svc.Register(context.Background(), models.User{
		UID: "u1", Name: "Asha", Email: "asha@example.com",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Status != models.UserStatusActive {
		t.Fatalf("expected status active, got %q", user.Status)
	}

	state, err := svc.GetProfileState(context.Background(), "u1")
	if err != nil {
		t.Fatalf("get profile state failed: %v", err)
	}
	if state.Progress != 20 {
		t.Fatalf("freshly registered user: expected progress 20, got %d", state.Progress)
	}
	if state.HasMembership {
		t.Fatal("freshly registered user must not have membership")
	}
	for _, step := range state.Steps {
		want := step.ID == models.StepBasicInfo
		if step.Completed != want {
			t.Fatalf("step %s completed = %v, want %v", step.ID, step.Completed, want)
		}
	}
}

func TestRegisterValidatesAndRejectsDuplicates(t *testing.T) {
	store := newFakeStore()
	svc := &UserProfileService{Dynamo: store}

	if _, err := svc.Register(context.Background(), models.User{UID: "u1", Name: " ", Email: "a@b.c"}); err == nil {
		t.Fatal("expected validation error for blank name")
	}

	if _, err := svc.Register(context.Background(), models.User{UID: "u1", Name: "Asha", Email: "a@b.c"}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), models.User{UID: "u1", Name: "Asha", Email: "a@b.c"}); err != ErrAlreadyExists {
		t.Fatalf("expected ErrAlreadyExists on duplicate register, got %v", err)
	}
}

func TestProfileStateForUnknownUserIsZero(t *testing.T) {
	svc := &UserProfileService{Dynamo: newFakeStore()}

	state, err := svc.GetProfileState(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("expected zero state for unknown user, got error %v", err)
	}
	if state.Progress != 0 || state.HasMembership {
		t.Fatalf("expected zero state, got %+v", state)
	}
}

func TestSaveSectionsAdvanceProgress(t *testing.T) {
	store := newFakeStore()
	svc := &UserProfileService{Dynamo: store}
	ctx := context.Background()

	if _, err := svc.Register(ctx, models.User{UID: "u1", Name: "Asha", Email: "a@b.c"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.SavePersonalInfo(ctx, "u1", models.PersonalInfo{BirthPlace: "Pune"}); err != nil {
		t.Fatalf("save personal info failed: %v", err)
	}
	if _, err := svc.SaveCareerInfo(ctx, "u1", models.CareerInfo{Occupation: "Engineer"}); err != nil {
		t.Fatalf("save career info failed: %v", err)
	}
	if _, err := svc.SaveFamilyInfo(ctx, "u1", models.FamilyInfo{FamilyType: "Nuclear"}); err != nil {
		t.Fatalf("save family info failed: %v", err)
	}
	user, err := svc.SavePhotos(ctx, "u1", []string{"https://cdn/p1.jpg", "https://cdn/p2.jpg"})
	if err != nil {
		t.Fatalf("save photos failed: %v", err)
	}

	if user.PhotoURL != "https://cdn/p1.jpg" {
		t.Fatalf("first photo should become display photo, got %q", user.PhotoURL)
	}

	state := ComputeProfileState(user)
	if state.Progress != 100 {
		t.Fatalf("expected progress 100 after all sections, got %d", state.Progress)
	}
	if !IsProfileComplete(user) {
		t.Fatal("expected profile to be complete")
	}
}

func TestSavePhotosEnforcesLimit(t *testing.T) {
	store := newFakeStore()
	svc := &UserProfileService{Dynamo: store}
	ctx := context.Background()

	if _, err := svc.Register(ctx, models.User{UID: "u1", Name: "Asha", Email: "a@b.c"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	tooMany := make([]string, models.MaxProfilePhotos+1)
	for i := range tooMany {
		tooMany[i] = "https://cdn/p.jpg"
	}
	if _, err := svc.SavePhotos(ctx, "u1", tooMany); err == nil {
		t.Fatalf("expected validation error for %d photos", len(tooMany))
	}
}

func TestSavePhotosRequiresAtLeastOne(t *testing.T) {
	store := newFakeStore()
	svc := &UserProfileService{Dynamo: store}
	ctx := context.Background()

	if _, err := svc.Register(ctx, models.User{UID: "u1", Name: "Asha", Email: "a@b.c"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.SavePhotos(ctx, "u1", nil); err == nil {
		t.Fatal("expected validation error for empty photo list")
	}
	if _, err := svc.SavePhotos(ctx, "u1", []string{}); err == nil {
		t.Fatal("expected validation error for empty photo list")
	}

	// The rejected save must not mark the photos step complete.
	state, err := svc.GetProfileState(ctx, "u1")
	if err != nil {
		t.Fatalf("get profile state failed: %v", err)
	}
	if state.Progress != 20 {
		t.Fatalf("rejected photo save must not advance progress, got %d", state.Progress)
	}
}
