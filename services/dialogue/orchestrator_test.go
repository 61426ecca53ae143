package dialogue

import (
	"context"
	"testing"
	"time"

	"flavortable/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExtractor replays scripted results, one per turn.
type fakeExtractor struct {
	results []*models.ExtractionResult
	err     error
	calls   int
}

func (f *fakeExtractor) ProcessTurn(ctx context.Context, history []models.ConversationTurn, userText string) (*models.ExtractionResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.calls >= len(f.results) {
		panic("fakeExtractor: more turns than scripted results")
	}
	result := f.results[f.calls]
	f.calls++
	return result, nil
}

func newTestService(t *testing.T, extractor *fakeExtractor, repo *fakeBookingRepo, weatherSvc *fakeWeather) *DefaultDialogueService {
	if repo == nil {
		repo = newFakeBookingRepo()
	}
	if weatherSvc == nil {
		weatherSvc = &fakeWeather{}
	}
	return &DefaultDialogueService{
		Extractor: extractor,
		Sessions:  newTestSessionStore(t),
		Finalizer: &BookingFinalizer{Repo: repo, Weather: weatherSvc},
	}
}

func tomorrow() string {
	return time.Now().AddDate(0, 0, 1).Format("2006-01-02")
}

func TestHandleTurn_TwoTurnBooking(t *testing.T) {
	date := tomorrow()
	extractor := &fakeExtractor{
		results: []*models.ExtractionResult{
			{
				Reply:          "What time would you like to come in?",
				BookingDetails: models.BookingDetails{NumberOfGuests: intPtr(4), Date: strPtr(date)},
				MissingFields:  []string{"time"},
			},
			{
				BookingDetails: models.BookingDetails{Time: strPtr("19:00")},
				IsComplete:     true,
			},
		},
	}
	repo := newFakeBookingRepo()
	weatherSvc := &fakeWeather{snapshot: &models.WeatherSnapshot{TemperatureCelsius: 18, Condition: models.ConditionClear, Description: "clear sky"}}
	svc := newTestService(t, extractor, repo, weatherSvc)
	ctx := context.Background()

	// Turn 1: partial slots, clarifying reply passed through verbatim.
	first, err := svc.HandleTurn(ctx, models.ChatRequest{UserText: "Book a table for 4 tomorrow"})
	require.NoError(t, err)
	assert.False(t, first.IsComplete)
	assert.Equal(t, "What time would you like to come in?", first.Reply)
	assert.Equal(t, 4, *first.BookingDetails.NumberOfGuests)
	assert.Equal(t, date, *first.BookingDetails.Date)
	assert.Nil(t, first.BookingDetails.Time)
	assert.Equal(t, []string{"time"}, first.MissingFields)
	require.NotEmpty(t, first.SessionID)

	// Turn 2: the missing time arrives; slots from turn 1 are not repeated.
	second, err := svc.HandleTurn(ctx, models.ChatRequest{
		SessionID: first.SessionID,
		UserText:  "7 PM",
		History: []models.ConversationTurn{
			{Role: models.RoleUser, Content: "Book a table for 4 tomorrow"},
			{Role: models.RoleAssistant, Content: first.Reply},
		},
	})
	require.NoError(t, err)
	assert.True(t, second.IsComplete)
	assert.Contains(t, second.Reply, "Booking confirmed for 4 people on "+date+" at 19:00.")
	assert.Contains(t, second.Reply, "outdoor")
	assert.NotEmpty(t, second.BookingID)

	require.Len(t, repo.created, 1)
	assert.Equal(t, models.SeatingOutdoor, repo.created[0].SeatingArea)
}

func TestHandleTurn_ConflictKeepsEverythingButTime(t *testing.T) {
	date := tomorrow()
	extractor := &fakeExtractor{
		results: []*models.ExtractionResult{
			{
				BookingDetails: models.BookingDetails{
					NumberOfGuests: intPtr(4),
					Date:           strPtr(date),
					Time:           strPtr("19:00"),
				},
				IsComplete: true,
			},
		},
	}
	repo := newFakeBookingRepo()
	repo.seed(date, "19:00")
	svc := newTestService(t, extractor, repo, nil)
	ctx := context.Background()

	resp, err := svc.HandleTurn(ctx, models.ChatRequest{UserText: "4 people tomorrow at 7pm"})
	require.NoError(t, err)

	assert.False(t, resp.IsComplete)
	assert.Contains(t, resp.Reply, "19:00")
	assert.Equal(t, []string{"time"}, resp.MissingFields)
	assert.Equal(t, 4, *resp.BookingDetails.NumberOfGuests)
	assert.Equal(t, date, *resp.BookingDetails.Date)
	assert.Nil(t, resp.BookingDetails.Time)
	assert.Empty(t, repo.created)

	// The session state also dropped only the time, so the user need not
	// repeat the rest.
	stored, err := svc.Sessions.Get(ctx, resp.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 4, *stored.NumberOfGuests)
	assert.Equal(t, date, *stored.Date)
	assert.Nil(t, stored.Time)
}

func TestHandleTurn_ExtractionFailureFallsBack(t *testing.T) {
	svc := newTestService(t, &fakeExtractor{err: assert.AnError}, nil, nil)
	ctx := context.Background()

	// Seed some prior state to prove it survives the failed turn.
	require.NoError(t, svc.Sessions.Set(ctx, "sess-1", models.BookingDetails{NumberOfGuests: intPtr(4)}))

	resp, err := svc.HandleTurn(ctx, models.ChatRequest{SessionID: "sess-1", UserText: "tomorrow at 7"})
	require.NoError(t, err, "extraction failures must not surface as hard errors")

	assert.False(t, resp.IsComplete)
	assert.Equal(t, fallbackReply, resp.Reply)
	assert.Equal(t, 4, *resp.BookingDetails.NumberOfGuests)

	stored, err := svc.Sessions.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 4, *stored.NumberOfGuests)
}

func TestHandleTurn_AssignsSessionID(t *testing.T) {
	extractor := &fakeExtractor{
		results: []*models.ExtractionResult{
			{Reply: "How many guests?", BookingDetails: models.BookingDetails{}},
		},
	}
	svc := newTestService(t, extractor, nil, nil)

	resp, err := svc.HandleTurn(context.Background(), models.ChatRequest{UserText: "hi"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.SessionID)
}

func TestHandleTurn_PersistenceFailureSurfacesAndKeepsSlots(t *testing.T) {
	date := tomorrow()
	extractor := &fakeExtractor{
		results: []*models.ExtractionResult{
			{
				BookingDetails: models.BookingDetails{
					NumberOfGuests: intPtr(4),
					Date:           strPtr(date),
					Time:           strPtr("19:00"),
				},
				IsComplete: true,
			},
		},
	}
	repo := newFakeBookingRepo()
	repo.createErr = assert.AnError
	svc := newTestService(t, extractor, repo, nil)
	ctx := context.Background()

	resp, err := svc.HandleTurn(ctx, models.ChatRequest{SessionID: "sess-1", UserText: "4 tomorrow 7pm"})
	assert.Error(t, err)
	assert.Nil(t, resp)

	// Merged slots were saved before the finalize attempt, so a retry of
	// the same completed slot set is possible.
	stored, getErr := svc.Sessions.Get(ctx, "sess-1")
	require.NoError(t, getErr)
	assert.Equal(t, 4, *stored.NumberOfGuests)
	assert.Equal(t, "19:00", *stored.Time)
}
