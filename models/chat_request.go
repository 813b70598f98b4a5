package models

// ChatRequest is the pending half of the chat handshake. The record id is
// the deterministic pair key senderId_receiverId, so an ordered pair can
// have at most one pending request. Accepting or declining deletes the
// record; no terminal state is ever persisted.
type ChatRequest struct {
	RequestID      string `dynamodbav:"requestId" json:"requestId"`
	SenderID       string `dynamodbav:"senderId" json:"senderId"`
	SenderName     string `dynamodbav:"senderName" json:"senderName"`
	SenderPhotoURL string `dynamodbav:"senderPhotoURL,omitempty" json:"senderPhotoURL,omitempty"`
	ReceiverID     string `dynamodbav:"receiverId" json:"receiverId"`
	ReceiverName   string `dynamodbav:"receiverName,omitempty" json:"receiverName,omitempty"`
	Status         string `dynamodbav:"status" json:"status"`
	CreatedAt      string `dynamodbav:"createdAt" json:"createdAt"`
}

// PairID builds the deterministic record key for an ordered sender/receiver pair
func PairID(senderID, receiverID string) string {
	return senderID + "_" + receiverID
}

// ChatRequestsTable is the DynamoDB table name for pending chat requests
const ChatRequestsTable = "ChatRequests"
