package controllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"matrimony_server/models"
	"matrimony_server/services"

	"github.com/gorilla/mux"
)

// MembershipController handles the payment flow and the admin back-office
// transitions on user documents.
type MembershipController struct {
	Memberships *services.MembershipService
}

func NewMembershipController(memberships *services.MembershipService) *MembershipController {
	return &MembershipController{Memberships: memberships}
}

// HandleSubmitPayment records a pending payment for the acting user
func (c *MembershipController) HandleSubmitPayment(w http.ResponseWriter, r *http.Request) {
	uid := currentUserID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "You must be signed in to submit a payment.")
		return
	}

	var payload struct {
		PlanName string `json:"planName"`
		UTR      string `json:"utr"`
		BankName string `json:"bankName"`
		UpiID    string `json:"upiId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.PlanName == "" {
		writeError(w, http.StatusBadRequest, "Missing required field: planName")
		return
	}

	user, err := c.Memberships.SubmitPayment(r.Context(), uid, payload.PlanName, payload.UTR, payload.BankName, payload.UpiID)
	if err != nil {
		log.Printf("❌ Failed to submit payment for %s: %v", uid, err)
		writeServiceError(w, "submit payment", err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// HandleApprovePayment activates the membership for a user's pending payment
func (c *MembershipController) HandleApprovePayment(w http.ResponseWriter, r *http.Request) {
	c.adminUserAction(w, r, "approve payment", c.Memberships.ApprovePayment)
}

// HandleRejectPayment marks a pending payment as rejected
func (c *MembershipController) HandleRejectPayment(w http.ResponseWriter, r *http.Request) {
	c.adminUserAction(w, r, "reject payment", c.Memberships.RejectPayment)
}

// HandleCancelPlan cancels a user's plan and resets membership and payment
func (c *MembershipController) HandleCancelPlan(w http.ResponseWriter, r *http.Request) {
	c.adminUserAction(w, r, "cancel plan", c.Memberships.CancelPlan)
}

// HandleReactivate returns a cancelled user to the free tier
func (c *MembershipController) HandleReactivate(w http.ResponseWriter, r *http.Request) {
	c.adminUserAction(w, r, "reactivate user", c.Memberships.Reactivate)
}

// HandleBlockUser blocks a user from matching
func (c *MembershipController) HandleBlockUser(w http.ResponseWriter, r *http.Request) {
	c.adminUserAction(w, r, "block user", c.Memberships.BlockUser)
}

// HandleDeleteUser removes a user document permanently
func (c *MembershipController) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["uid"]
	if err := c.Memberships.DeleteUser(r.Context(), uid); err != nil {
		writeServiceError(w, "delete user", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "User deleted", "uid": uid})
}

// HandleListUsersByStatus lists users with the given status
func (c *MembershipController) HandleListUsersByStatus(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = models.UserStatusActive
	}

	users, err := c.Memberships.ListUsersByStatus(r.Context(), status)
	if err != nil {
		writeServiceError(w, "list users", err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// HandleListPendingPayments lists users awaiting payment verification
func (c *MembershipController) HandleListPendingPayments(w http.ResponseWriter, r *http.Request) {
	users, err := c.Memberships.ListPendingPayments(r.Context())
	if err != nil {
		writeServiceError(w, "list pending payments", err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// HandleListActivePlans lists users with a currently active membership
func (c *MembershipController) HandleListActivePlans(w http.ResponseWriter, r *http.Request) {
	users, err := c.Memberships.ListActivePlans(r.Context())
	if err != nil {
		writeServiceError(w, "list active plans", err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (c *MembershipController) adminUserAction(w http.ResponseWriter, r *http.Request, action string, fn func(ctx context.Context, uid string) (*models.User, error)) {
	uid := mux.Vars(r)["uid"]
	if uid == "" {
		writeError(w, http.StatusBadRequest, "Missing required field: uid")
		return
	}

	user, err := fn(r.Context(), uid)
	if err != nil {
		log.Printf("❌ Failed to %s for %s: %v", action, uid, err)
		writeServiceError(w, action, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
