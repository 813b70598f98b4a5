package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"matrimony_server/models"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// MembershipService combines profile completion and membership state into
// the gate that authorizes matching and interest-sending, and carries the
// admin-mediated payment/plan transitions.
type MembershipService struct {
	Dynamo Store
}

// CanAccessMatching is the gate: complete profile AND active membership.
// Callers must surface a failing gate as a prompt, never a silent no-op.
func (ms *MembershipService) CanAccessMatching(user *models.User) bool {
	if user == nil {
		return false
	}
	state := ComputeProfileState(user)
	return state.Progress == 100 && state.HasMembership
}

// SubmitPayment records a Pending payment for a catalog plan. The manual
// bank/UPI transfer is verified by an admin afterwards.
func (ms *MembershipService) SubmitPayment(ctx context.Context, uid, planName, utr, bankName, upiID string) (*models.User, error) {
	plan, ok := models.LookupPlan(planName)
	if !ok {
		return nil, fmt.Errorf("%w: unknown plan %q", ErrNotFound, planName)
	}

	user, err := ms.getUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	user.Payment = &models.Payment{
		PlanName:      plan.Name,
		PlanPrice:     plan.Price,
		PaymentStatus: models.PaymentStatusPending,
		TransactionID: uuid.New().String(),
		UTR:           utr,
		BankName:      bankName,
		UpiID:         upiID,
		PaymentDate:   time.Now().UTC().Format(time.RFC3339),
	}

	if err := ms.Dynamo.PutItem(ctx, models.UsersTable, *user); err != nil {
		log.Printf("❌ Failed to submit payment for %s: %v", uid, err)
		return nil, err
	}

	log.Printf("✅ Payment submitted for %s (%s)", uid, plan.Name)
	return user, nil
}

// ApprovePayment turns a Pending payment into an active membership. The
// plan is looked up in the catalog at approval time, so feature-list edits
// between purchase and approval win. Expiry is now plus the plan duration.
func (ms *MembershipService) ApprovePayment(ctx context.Context, uid string) (*models.User, error) {
	user, err := ms.getUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	if user.Payment == nil || user.Payment.PaymentStatus != models.PaymentStatusPending {
		return nil, fmt.Errorf("%w: no pending payment for user %s", ErrValidation, uid)
	}

	plan, ok := models.LookupPlan(user.Payment.PlanName)
	if !ok {
		return nil, fmt.Errorf("%w: plan %q not in catalog", ErrNotFound, user.Payment.PlanName)
	}

	expiry := time.Now().UTC().AddDate(0, plan.DurationMonths, 0)
	user.Payment.PaymentStatus = models.PaymentStatusSuccess
	user.Membership = &models.Membership{
		Plan:       plan.Name,
		ExpiryDate: expiry.Format(time.RFC3339),
		Features:   plan.Features,
	}

	if err := ms.Dynamo.PutItem(ctx, models.UsersTable, *user); err != nil {
		log.Printf("❌ Failed to approve payment for %s: %v", uid, err)
		return nil, err
	}

	log.Printf("✅ Payment approved for %s: %s until %s", uid, plan.Name, user.Membership.ExpiryDate)
	return user, nil
}

// RejectPayment marks the pending payment Rejected; the user may retry
func (ms *MembershipService) RejectPayment(ctx context.Context, uid string) (*models.User, error) {
	user, err := ms.getUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	if user.Payment == nil {
		return nil, fmt.Errorf("%w: no payment for user %s", ErrValidation, uid)
	}

	user.Payment.PaymentStatus = models.PaymentStatusRejected
	if err := ms.Dynamo.PutItem(ctx, models.UsersTable, *user); err != nil {
		return nil, err
	}

	log.Printf("✅ Payment rejected for %s", uid)
	return user, nil
}

// CancelPlan hard-resets a user's plan: status cancelled, membership and
// payment removed. This is not an expiry.
func (ms *MembershipService) CancelPlan(ctx context.Context, uid string) (*models.User, error) {
	return ms.resetPlan(ctx, uid, models.UserStatusCancelled)
}

// Reactivate returns a cancelled user to the free tier: status active,
// membership and payment removed (not restored to the previous plan).
func (ms *MembershipService) Reactivate(ctx context.Context, uid string) (*models.User, error) {
	return ms.resetPlan(ctx, uid, models.UserStatusActive)
}

// BlockUser excludes a user from matching regardless of membership
func (ms *MembershipService) BlockUser(ctx context.Context, uid string) (*models.User, error) {
	user, err := ms.getUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	user.Status = models.UserStatusBlocked
	if err := ms.Dynamo.PutItem(ctx, models.UsersTable, *user); err != nil {
		return nil, err
	}
	log.Printf("✅ User %s blocked", uid)
	return user, nil
}

// DeleteUser removes the user document permanently
func (ms *MembershipService) DeleteUser(ctx context.Context, uid string) error {
	if err := ms.Dynamo.DeleteItem(ctx, models.UsersTable, StringKey("uid", uid)); err != nil {
		return err
	}
	log.Printf("✅ User %s deleted", uid)
	return nil
}

// ListUsersByStatus returns users with the given effective status. An empty
// stored status counts as active.
func (ms *MembershipService) ListUsersByStatus(ctx context.Context, status string) ([]models.User, error) {
	var users []models.User
	err := ms.Dynamo.ScanWithFilter(ctx, models.UsersTable, func(item map[string]types.AttributeValue) bool {
		s := ExtractString(item, "status")
		if s == "" {
			s = models.UserStatusActive
		}
		return s == status
	}, &users)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// ListPendingPayments returns users awaiting payment verification
func (ms *MembershipService) ListPendingPayments(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := ms.Dynamo.ScanWithFilter(ctx, models.UsersTable, nil, &users)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	var pending []models.User
	for _, u := range users {
		if u.Payment != nil && u.Payment.PaymentStatus == models.PaymentStatusPending {
			pending = append(pending, u)
		}
	}
	return pending, nil
}

// ListActivePlans returns users whose membership is currently active
func (ms *MembershipService) ListActivePlans(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := ms.Dynamo.ScanWithFilter(ctx, models.UsersTable, nil, &users)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	now := time.Now()
	var active []models.User
	for i := range users {
		state := ComputeProfileStateAt(&users[i], now)
		if state.HasMembership && users[i].EffectiveStatus() == models.UserStatusActive {
			active = append(active, users[i])
		}
	}
	return active, nil
}

func (ms *MembershipService) getUser(ctx context.Context, uid string) (*models.User, error) {
	var user models.User
	if err := ms.Dynamo.GetItem(ctx, models.UsersTable, StringKey("uid", uid), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (ms *MembershipService) resetPlan(ctx context.Context, uid, status string) (*models.User, error) {
	user, err := ms.getUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	user.Status = status
	user.Membership = nil
	user.Payment = nil

	if err := ms.Dynamo.PutItem(ctx, models.UsersTable, *user); err != nil {
		log.Printf("❌ Failed to set status %s for %s: %v", status, uid, err)
		return nil, err
	}

	log.Printf("✅ User %s status set to %s, plan reset", uid, status)
	return user, nil
}
