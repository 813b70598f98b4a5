package models

// MemberDetail is a display snapshot captured when the chat is created.
// It is never refreshed: a later profile rename does not reach old chats.
type MemberDetail struct {
	UID      string `dynamodbav:"uid" json:"uid"`
	Name     string `dynamodbav:"name" json:"name"`
	PhotoURL string `dynamodbav:"photoURL,omitempty" json:"photoURL,omitempty"`
}

// Chat is one accepted pair. ChatID reuses the deterministic key of the
// originating request, so a pair can have at most one room. Members is an
// existence map (uid -> true) used as the listing filter; Typing is the
// same pattern for ephemeral presence and carries no TTL. Typing is seeded
// as an empty map at creation and mutated only through per-key update
// expressions, so the attribute must always be present on the document.
type Chat struct {
	ChatID               string          `dynamodbav:"chatId" json:"chatId"`
	Members              map[string]bool `dynamodbav:"members" json:"members"`
	MemberDetails        []MemberDetail  `dynamodbav:"memberDetails" json:"memberDetails"`
	LastMessage          string          `dynamodbav:"lastMessage,omitempty" json:"lastMessage,omitempty"`
	LastMessageTimestamp string          `dynamodbav:"lastMessageTimestamp,omitempty" json:"lastMessageTimestamp,omitempty"`
	Typing               map[string]bool `dynamodbav:"typing" json:"typing,omitempty"`
	CreatedAt            string          `dynamodbav:"createdAt" json:"createdAt"`
}

// OtherMember returns the snapshot of the member that is not uid
func (c *Chat) OtherMember(uid string) *MemberDetail {
	for i := range c.MemberDetails {
		if c.MemberDetails[i].UID != uid {
			return &c.MemberDetails[i]
		}
	}
	return nil
}

// ChatsTable is the DynamoDB table name for chat rooms
const ChatsTable = "Chats"
