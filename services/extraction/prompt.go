// File: services/extraction/prompt.go
package extraction

import (
	"fmt"
	"strings"
	"time"

	"flavortable/models"
)

const promptTemplate = `You are a restaurant booking assistant for "%s".
Current Date: %s.

GOAL: Build a "Booking State" by merging the ENTIRE Conversation History.

CRITICAL RULES:
1. ANALYZE HISTORY FIRST: Look for previously mentioned fields (Date, Guests, Cuisine).
2. MERGE, DON'T RESET: If the user said "Tomorrow" in the past, and says "6 PM" now, the Result MUST have BOTH Date and Time.
3. NEVER overwrite a non-null field with null unless the user explicitly cancels it.
4. "numberOfGuests" is a number (e.g., 2).
5. "time" must be 24-hour format (HH:MM).

Return JSON ONLY. Use this structure:
{
    "reply": "Conversational response asking for the next missing field",
    "bookingDetails": {
        "numberOfGuests": number | null,
        "date": "YYYY-MM-DD" | null,
        "time": "HH:MM" | null,
        "cuisine": string | null,
        "specialRequests": string | null
    },
    "missingFields": ["list", "of", "null", "fields"],
    "isComplete": boolean (true ONLY if guests, date, and time are known)
}`

// BuildPrompt assembles the full instruction for one turn: system rules, the
// transcript so far, and the new user input.
func BuildPrompt(restaurantName string, history []models.ConversationTurn, userText string) string {
	system := fmt.Sprintf(promptTemplate, restaurantName, time.Now().Format("2006-01-02"))

	var historyText strings.Builder
	for _, turn := range history {
		speaker := "Assistant"
		if turn.Role == models.RoleUser {
			speaker = "User"
		}
		historyText.WriteString(speaker + ": " + turn.Content + "\n")
	}

	return fmt.Sprintf("%s\n\n=== CONVERSATION HISTORY ===\n%s\n=== NEW USER INPUT ===\nUser: %s",
		system, historyText.String(), userText)
}
