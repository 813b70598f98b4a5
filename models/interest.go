package models

// Interest is a write-once "I'm interested" marker, distinct from a chat
// request. Keyed by the deterministic pair id; there is no accept/reject
// transition, presence alone is the signal.
type Interest struct {
	InterestID   string `dynamodbav:"interestId" json:"interestId"`
	SenderID     string `dynamodbav:"senderId" json:"senderId"`
	SenderName   string `dynamodbav:"senderName" json:"senderName"`
	ReceiverID   string `dynamodbav:"receiverId" json:"receiverId"`
	ReceiverName string `dynamodbav:"receiverName" json:"receiverName"`
	Status       string `dynamodbav:"status" json:"status"`
	CreatedAt    string `dynamodbav:"createdAt" json:"createdAt"`
}

// InterestsTable is the DynamoDB table name for interest markers
const InterestsTable = "Interests"
