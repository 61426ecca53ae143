package models

// Conversation roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationTurn is one message in the session transcript. Turns are
// append-only; order carries the prior intent.
type ConversationTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// BookingDetails is the slot set accumulated across a conversation.
// A nil field means the slot is still unknown.
type BookingDetails struct {
	NumberOfGuests  *int    `json:"numberOfGuests"`
	Date            *string `json:"date"` // "YYYY-MM-DD"
	Time            *string `json:"time"` // 24-hour "HH:MM"
	Cuisine         *string `json:"cuisine"`
	SpecialRequests *string `json:"specialRequests"`
}

// ExtractionResult is the structured output the extraction model is asked to
// produce for each turn.
type ExtractionResult struct {
	Reply          string         `json:"reply"`
	BookingDetails BookingDetails `json:"bookingDetails"`
	MissingFields  []string       `json:"missingFields"`
	IsComplete     bool           `json:"isComplete"`
}

// ChatRequest is the payload for POST /api/bookings/chat.
type ChatRequest struct {
	SessionID string             `json:"sessionId,omitempty"`
	UserText  string             `json:"userText"`
	History   []ConversationTurn `json:"history"`
}

// ChatResponse is returned for every turn, including fallback turns.
type ChatResponse struct {
	SessionID      string         `json:"sessionId,omitempty"`
	Reply          string         `json:"reply"`
	IsComplete     bool           `json:"isComplete"`
	BookingDetails BookingDetails `json:"bookingDetails"`
	MissingFields  []string       `json:"missingFields,omitempty"`
	BookingID      string         `json:"bookingId,omitempty"`
}
