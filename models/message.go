package models

// Message belongs to a chat. ChatID is the partition key and CreatedAt the
// sort key: a server-assigned RFC3339Nano timestamp, so ordering is by
// creation time and keys never collide. Reactions maps an emoji to the set
// of reactor uids; an emoji with no reactors is removed rather than stored
// empty. Once IsUnsent flips true the text is the fixed placeholder and
// reactions stay cleared.
type Message struct {
	ChatID     string              `dynamodbav:"chatId" json:"chatId"`
	CreatedAt  string              `dynamodbav:"createdAt" json:"createdAt"`
	MessageID  string              `dynamodbav:"messageId" json:"messageId"`
	SenderID   string              `dynamodbav:"senderId" json:"senderId"`
	SenderName string              `dynamodbav:"senderName,omitempty" json:"senderName,omitempty"`
	Text       string              `dynamodbav:"text" json:"text"`
	IsUnsent   bool                `dynamodbav:"isUnsent" json:"isUnsent"`
	Reactions  map[string][]string `dynamodbav:"reactions,omitempty" json:"reactions,omitempty"`
}

// MessagesTable is the DynamoDB table name for chat messages
const MessagesTable = "Messages"
