// File: services/dialogue/orchestrator.go
package dialogue

import (
	"context"
	"sync"

	"flavortable/models"
	"flavortable/services/extraction"
	"flavortable/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const fallbackReply = "I'm having trouble connecting right now. Could you say that again in a moment?"

// Service is the per-turn entry point of the booking conversation.
type Service interface {
	HandleTurn(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error)
}

// sessionLocks serializes turns within one session. Merging depends on the
// prior slot state being current, so two concurrent turns on the same session
// would race; distinct sessions proceed in parallel.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (s *sessionLocks) get(sessionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.locks == nil {
		s.locks = make(map[string]*sync.Mutex)
	}
	lock, exists := s.locks[sessionID]
	if !exists {
		lock = &sync.Mutex{}
		s.locks[sessionID] = lock
	}
	return lock
}

// DefaultDialogueService wires extraction, merge and finalize into the
// Collecting -> Finalizing -> (Confirmed | Conflict) turn cycle.
type DefaultDialogueService struct {
	Extractor extraction.Extractor
	Sessions  *SessionStore
	Finalizer *BookingFinalizer

	turnLocks sessionLocks
}

// HandleTurn processes one user turn. Collaborator failures short of a
// storage write are converted into a conversational reply with the slot state
// unchanged; only a persistence failure after a clear conflict check
// propagates as an error.
func (s *DefaultDialogueService) HandleTurn(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	logger := utils.GetLogger()
	utils.ChatTurnsTotal.Inc()

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	lock := s.turnLocks.get(sessionID)
	lock.Lock()
	defer lock.Unlock()

	prior, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		// The extractor sees the full history, so a lost session degrades
		// to replay-from-history rather than killing the turn.
		logger.Warn("session state unavailable, replaying from history",
			zap.String("sessionID", sessionID), zap.Error(err))
		prior = models.BookingDetails{}
	}

	result, err := s.Extractor.ProcessTurn(ctx, req.History, req.UserText)
	if err != nil {
		utils.ExtractionFailuresTotal.Inc()
		logger.Warn("extraction failed, sending fallback reply",
			zap.String("sessionID", sessionID), zap.Error(err))
		return &models.ChatResponse{
			SessionID:      sessionID,
			Reply:          fallbackReply,
			IsComplete:     false,
			BookingDetails: prior,
			MissingFields:  MissingFields(prior),
		}, nil
	}

	merged := Merge(prior, result.BookingDetails)

	// Persist the merged state before finalizing: if the storage write
	// fails, the caller can retry the same completed slot set.
	if err := s.Sessions.Set(ctx, sessionID, merged); err != nil {
		logger.Warn("session save failed", zap.String("sessionID", sessionID), zap.Error(err))
	}

	if !IsComplete(merged) {
		return &models.ChatResponse{
			SessionID:      sessionID,
			Reply:          result.Reply,
			IsComplete:     false,
			BookingDetails: merged,
			MissingFields:  MissingFields(merged),
		}, nil
	}

	outcome, err := s.Finalizer.Finalize(ctx, merged)
	if err != nil {
		return nil, err
	}

	if !outcome.Confirmed {
		// Conflict: keep everything the user already gave except the
		// contested time, and go back to collecting.
		retained := merged
		retained.Time = nil
		if err := s.Sessions.Set(ctx, sessionID, retained); err != nil {
			logger.Warn("session save failed after conflict",
				zap.String("sessionID", sessionID), zap.Error(err))
		}
		return &models.ChatResponse{
			SessionID:      sessionID,
			Reply:          outcome.Reply,
			IsComplete:     false,
			BookingDetails: retained,
			MissingFields:  outcome.MissingFields,
		}, nil
	}

	// Confirmed is terminal for this session; a fresh booking needs a fresh
	// session, so the stored slots are intentionally left as-is.
	return &models.ChatResponse{
		SessionID:      sessionID,
		Reply:          outcome.Reply,
		IsComplete:     true,
		BookingDetails: merged,
		BookingID:      outcome.Booking.ID,
	}, nil
}
