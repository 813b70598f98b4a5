package models

// ✅ User account statuses
const (
	UserStatusActive    = "active"
	UserStatusBlocked   = "blocked"
	UserStatusCancelled = "cancelled"
)

// ✅ Payment statuses
const (
	PaymentStatusPending  = "Pending"
	PaymentStatusSuccess  = "Success"
	PaymentStatusRejected = "Rejected"
)

// ✅ Chat request status (accept/decline delete the record, so only
// pending is ever stored)
const RequestStatusPending = "pending"

// ✅ Profile completion checklist step ids
const (
	StepBasicInfo    = "1"
	StepPersonalInfo = "2"
	StepCareerInfo   = "3"
	StepFamilyInfo   = "4"
	StepPhotos       = "5"
)

// MaxProfilePhotos caps the photo list on a user document
const MaxProfilePhotos = 5

// UnsentMessageText replaces the body of a message once it is unsent
const UnsentMessageText = "This message was unsent"
