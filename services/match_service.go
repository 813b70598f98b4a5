package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"matrimony_server/models"
)

// MatchFilters is an unordered conjunction of optional equality predicates.
// An empty field matches everything.
type MatchFilters struct {
	City       string `json:"city,omitempty"`
	Religion   string `json:"religion,omitempty"`
	Manglik    string `json:"manglik,omitempty"`
	Occupation string `json:"occupation,omitempty"`
}

// MatchService runs the matching browser: the pure candidate predicate over
// the full user list, plus the write-once interest markers.
type MatchService struct {
	Dynamo Store
}

// complementGender maps Male<->Female. Any other or absent value has no
// complement, so such a profile matches nothing; that narrowing is the
// documented behaviour, not an accident to paper over.
func complementGender(gender string) string {
	switch gender {
	case "Male":
		return "Female"
	case "Female":
		return "Male"
	default:
		return ""
	}
}

// MatchesFilters evaluates the candidate predicate for one profile
func MatchesFilters(self *models.User, candidate *models.User, filters MatchFilters) bool {
	if self == nil || candidate == nil || candidate.UID == "" || candidate.UID == self.UID {
		return false
	}
	if candidate.EffectiveStatus() != models.UserStatusActive {
		return false
	}

	target := ""
	if self.BasicInfo != nil {
		target = complementGender(self.BasicInfo.Gender)
	}
	if target == "" {
		return false
	}
	if candidate.BasicInfo == nil || candidate.BasicInfo.Gender != target {
		return false
	}

	if filters.City != "" && (candidate.PersonalInfo == nil || candidate.PersonalInfo.BirthPlace != filters.City) {
		return false
	}
	if filters.Religion != "" && candidate.BasicInfo.Religion != filters.Religion {
		return false
	}
	if filters.Manglik != "" && (candidate.CareerInfo == nil || candidate.CareerInfo.Manglik != filters.Manglik) {
		return false
	}
	if filters.Occupation != "" && (candidate.CareerInfo == nil || candidate.CareerInfo.Occupation != filters.Occupation) {
		return false
	}
	return true
}

// Candidates scans the user list and applies the predicate. No ranking:
// results keep the store's enumeration order.
func (s *MatchService) Candidates(ctx context.Context, self *models.User, filters MatchFilters) ([]models.User, error) {
	if self == nil || self.UID == "" {
		return nil, ErrNotAuthenticated
	}

	var users []models.User
	if err := s.Dynamo.ScanWithFilter(ctx, models.UsersTable, nil, &users); err != nil {
		return nil, fmt.Errorf("failed to fetch profiles: %w", err)
	}

	var candidates []models.User
	for i := range users {
		if MatchesFilters(self, &users[i], filters) {
			candidates = append(candidates, users[i])
		}
	}
	return candidates, nil
}

// SendInterest writes the presence-only interest marker at the
// deterministic pair id. A second send for the same ordered pair collides
// and surfaces as already sent.
func (s *MatchService) SendInterest(ctx context.Context, sender *models.User, receiverID string) (*models.Interest, error) {
	if sender == nil || sender.UID == "" {
		return nil, ErrNotAuthenticated
	}
	if receiverID == "" || receiverID == sender.UID {
		return nil, fmt.Errorf("%w: invalid receiver", ErrValidation)
	}

	var receiver models.User
	if err := s.Dynamo.GetItem(ctx, models.UsersTable, StringKey("uid", receiverID), &receiver); err != nil {
		return nil, err
	}

	interest := models.Interest{
		InterestID:   models.PairID(sender.UID, receiverID),
		SenderID:     sender.UID,
		SenderName:   sender.Name,
		ReceiverID:   receiverID,
		ReceiverName: receiver.Name,
		Status:       models.RequestStatusPending,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.Dynamo.PutItemIfAbsent(ctx, models.InterestsTable, interest, "interestId"); err != nil {
		if err == ErrAlreadyExists {
			log.Printf("⚠️ Interest %s already sent", interest.InterestID)
		}
		return nil, err
	}

	log.Printf("✅ Interest sent: %s -> %s", sender.UID, receiverID)
	return &interest, nil
}

// ListInterests returns the markers a user has sent and received
func (s *MatchService) ListInterests(ctx context.Context, uid string) (sent, received []models.Interest, err error) {
	var all []models.Interest
	if err := s.Dynamo.ScanWithFilter(ctx, models.InterestsTable, nil, &all); err != nil {
		return nil, nil, fmt.Errorf("failed to fetch interests: %w", err)
	}

	for _, interest := range all {
		switch uid {
		case interest.SenderID:
			sent = append(sent, interest)
		case interest.ReceiverID:
			received = append(received, interest)
		}
	}
	return sent, received, nil
}
