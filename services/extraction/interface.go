// File: services/extraction/interface.go
package extraction

import (
	"context"
	"errors"

	"flavortable/models"
)

// ErrUnavailable marks any extraction failure: the upstream call failed, or
// the response could not be parsed into an ExtractionResult. Callers degrade
// to a conversational fallback instead of surfacing it.
var ErrUnavailable = errors.New("extraction unavailable")

// Extractor proposes a candidate slot set for one conversation turn. The full
// turn history is passed as context so the model can merge on its side too;
// the server-side merge never trusts it to have done so. Implementations are
// fallible and non-deterministic.
type Extractor interface {
	ProcessTurn(ctx context.Context, history []models.ConversationTurn, userText string) (*models.ExtractionResult, error)
}
