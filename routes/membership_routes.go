package routes

import (
	"matrimony_server/controllers"
	"matrimony_server/services"

	"github.com/gorilla/mux"
)

// RegisterMembershipRoutes sets up the payment flow and the admin
// back-office routes. The admin prefix is organizational; admin access
// control is enforced at the gateway in front of this service.
func RegisterMembershipRoutes(r *mux.Router, memberships *services.MembershipService) {
	controller := controllers.NewMembershipController(memberships)

	paymentRouter := r.PathPrefix("/api/payment").Subrouter()
	paymentRouter.HandleFunc("", controller.HandleSubmitPayment).Methods("POST")

	adminRouter := r.PathPrefix("/api/admin").Subrouter()
	adminRouter.HandleFunc("/users", controller.HandleListUsersByStatus).Methods("GET")
	adminRouter.HandleFunc("/payments/pending", controller.HandleListPendingPayments).Methods("GET")
	adminRouter.HandleFunc("/plans/active", controller.HandleListActivePlans).Methods("GET")
	adminRouter.HandleFunc("/users/{uid}/approve-payment", controller.HandleApprovePayment).Methods("POST")
	adminRouter.HandleFunc("/users/{uid}/reject-payment", controller.HandleRejectPayment).Methods("POST")
	adminRouter.HandleFunc("/users/{uid}/cancel-plan", controller.HandleCancelPlan).Methods("POST")
	adminRouter.HandleFunc("/users/{uid}/reactivate", controller.HandleReactivate).Methods("POST")
	adminRouter.HandleFunc("/users/{uid}/block", controller.HandleBlockUser).Methods("POST")
	adminRouter.HandleFunc("/users/{uid}", controller.HandleDeleteUser).Methods("DELETE")
}
