package models

// BasicInfo holds the identity fields collected by the first wizard step
type BasicInfo struct {
	Gender       string `dynamodbav:"gender,omitempty" json:"gender,omitempty"`
	Religion     string `dynamodbav:"religion,omitempty" json:"religion,omitempty"`
	MotherTongue string `dynamodbav:"motherTongue,omitempty" json:"motherTongue,omitempty"`
	Caste        string `dynamodbav:"caste,omitempty" json:"caste,omitempty"`
	DOB          string `dynamodbav:"dob,omitempty" json:"dob,omitempty"`
}

type PersonalInfo struct {
	BirthPlace string `dynamodbav:"birthPlace,omitempty" json:"birthPlace,omitempty"`
	Phone      string `dynamodbav:"phone,omitempty" json:"phone,omitempty"`
	Address    string `dynamodbav:"address,omitempty" json:"address,omitempty"`
	Height     string `dynamodbav:"height,omitempty" json:"height,omitempty"`
	MaritalSts string `dynamodbav:"maritalStatus,omitempty" json:"maritalStatus,omitempty"`
}

type CareerInfo struct {
	Occupation string `dynamodbav:"occupation,omitempty" json:"occupation,omitempty"`
	Salary     string `dynamodbav:"salary,omitempty" json:"salary,omitempty"`
	Manglik    string `dynamodbav:"manglik,omitempty" json:"manglik,omitempty"`
}

type FamilyInfo struct {
	FamilyType       string `dynamodbav:"familyType,omitempty" json:"familyType,omitempty"`
	FatherOccupation string `dynamodbav:"fatherOccupation,omitempty" json:"fatherOccupation,omitempty"`
	MotherOccupation string `dynamodbav:"motherOccupation,omitempty" json:"motherOccupation,omitempty"`
	Siblings         string `dynamodbav:"siblings,omitempty" json:"siblings,omitempty"`
}

// Membership is present only for users with an approved plan.
// ExpiryDate is RFC3339; the membership counts as active strictly before it.
type Membership struct {
	Plan       string   `dynamodbav:"plan" json:"plan"`
	ExpiryDate string   `dynamodbav:"expiryDate" json:"expiryDate"`
	Features   []string `dynamodbav:"features,omitempty" json:"features,omitempty"`
}

// Payment records a manually verified bank/UPI transfer for a plan
type Payment struct {
	PlanName      string `dynamodbav:"planName" json:"planName"`
	PlanPrice     int    `dynamodbav:"planPrice" json:"planPrice"`
	PaymentStatus string `dynamodbav:"paymentStatus" json:"paymentStatus"` // Pending, Success, Rejected
	TransactionID string `dynamodbav:"transactionId,omitempty" json:"transactionId,omitempty"`
	UTR           string `dynamodbav:"utr,omitempty" json:"utr,omitempty"`
	BankName      string `dynamodbav:"bankName,omitempty" json:"bankName,omitempty"`
	UpiID         string `dynamodbav:"upiId,omitempty" json:"upiId,omitempty"`
	PaymentDate   string `dynamodbav:"paymentDate,omitempty" json:"paymentDate,omitempty"`
}

// User is the root aggregate: wizard sections, photos, progress checklist,
// membership and payment state all live on the one document.
type User struct {
	UID          string          `dynamodbav:"uid" json:"uid"`
	Name         string          `dynamodbav:"name" json:"name"`
	Email        string          `dynamodbav:"email" json:"email"`
	PhotoURL     string          `dynamodbav:"photoURL,omitempty" json:"photoURL,omitempty"`
	BasicInfo    *BasicInfo      `dynamodbav:"basicInfo,omitempty" json:"basicInfo,omitempty"`
	PersonalInfo *PersonalInfo   `dynamodbav:"personalInfo,omitempty" json:"personalInfo,omitempty"`
	CareerInfo   *CareerInfo     `dynamodbav:"careerInfo,omitempty" json:"careerInfo,omitempty"`
	FamilyInfo   *FamilyInfo     `dynamodbav:"familyInfo,omitempty" json:"familyInfo,omitempty"`
	Expectations string          `dynamodbav:"expectations,omitempty" json:"expectations,omitempty"`
	Photos       []string        `dynamodbav:"photos,omitempty" json:"photos,omitempty"`
	Progress     map[string]bool `dynamodbav:"progress,omitempty" json:"progress,omitempty"`
	Membership   *Membership     `dynamodbav:"membership,omitempty" json:"membership,omitempty"`
	Payment      *Payment        `dynamodbav:"payment,omitempty" json:"payment,omitempty"`
	Status       string          `dynamodbav:"status,omitempty" json:"status,omitempty"` // empty means active
	CreatedAt    string          `dynamodbav:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// EffectiveStatus treats a missing status field as active
func (u *User) EffectiveStatus() string {
	if u.Status == "" {
		return UserStatusActive
	}
	return u.Status
}

// UsersTable is the DynamoDB table name for user documents
const UsersTable = "Users"
