package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	bookingRepo "flavortable/database/repository/booking"
	"flavortable/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ==========================
// Test Fakes
// ==========================

type fakeDialogue struct {
	resp *models.ChatResponse
	err  error
}

func (f *fakeDialogue) HandleTurn(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	return f.resp, f.err
}

type fakeRepo struct {
	bookings  []models.Booking
	cancelErr error
}

func (r *fakeRepo) Create(ctx context.Context, booking models.Booking) (string, error) {
	return booking.ID, nil
}

func (r *fakeRepo) FindByDateTime(ctx context.Context, date, timeOfDay string) (*models.Booking, error) {
	return nil, nil
}

func (r *fakeRepo) GetAll(ctx context.Context) ([]models.Booking, error) { return r.bookings, nil }

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	for i := range r.bookings {
		if r.bookings[i].ID == id {
			return &r.bookings[i], nil
		}
	}
	return nil, bookingRepo.ErrNotFound
}

func (r *fakeRepo) GetConfirmedByDate(ctx context.Context, date string) ([]models.Booking, error) {
	return nil, nil
}

func (r *fakeRepo) CancelByID(ctx context.Context, id string) error { return r.cancelErr }

func (r *fakeRepo) EnsureIndexes() error { return nil }

func newTestRouter(h *BookingHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/bookings")
	api.POST("/chat", h.Chat)
	api.GET("", h.GetAllBookings)
	api.GET("/:id", h.GetBookingByID)
	api.DELETE("/:id", h.CancelBooking)
	return r
}

func newTestHandler(dialogueSvc *fakeDialogue, repo *fakeRepo) *BookingHandler {
	if repo == nil {
		repo = &fakeRepo{}
	}
	return NewBookingHandler(dialogueSvc, repo, zap.NewNop())
}

// ==========================
// Chat Endpoint Tests
// ==========================

func TestChat_ReturnsDialogueResponse(t *testing.T) {
	guests := 4
	dialogueSvc := &fakeDialogue{
		resp: &models.ChatResponse{
			SessionID:      "sess-1",
			Reply:          "What time works for you?",
			IsComplete:     false,
			BookingDetails: models.BookingDetails{NumberOfGuests: &guests},
			MissingFields:  []string{"date", "time"},
		},
	}
	router := newTestRouter(newTestHandler(dialogueSvc, nil))

	body, _ := json.Marshal(models.ChatRequest{UserText: "table for 4"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "What time works for you?", resp.Reply)
	assert.False(t, resp.IsComplete)
	assert.Equal(t, 4, *resp.BookingDetails.NumberOfGuests)
	assert.Equal(t, []string{"date", "time"}, resp.MissingFields)
}

func TestChat_MissingUserTextIsBadRequest(t *testing.T) {
	router := newTestRouter(newTestHandler(&fakeDialogue{}, nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings/chat", bytes.NewReader([]byte(`{"history":[]}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChat_PersistenceFailureIsServerError(t *testing.T) {
	dialogueSvc := &fakeDialogue{err: assert.AnError}
	router := newTestRouter(newTestHandler(dialogueSvc, nil))

	body, _ := json.Marshal(models.ChatRequest{UserText: "4 tomorrow at 7"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// ==========================
// CRUD Endpoint Tests
// ==========================

func TestGetAllBookings(t *testing.T) {
	repo := &fakeRepo{bookings: []models.Booking{
		{ID: "b-1", Date: "2024-05-01", Time: "19:00", NumberOfGuests: 4},
		{ID: "b-2", Date: "2024-05-02", Time: "20:00", NumberOfGuests: 2},
	}}
	router := newTestRouter(newTestHandler(&fakeDialogue{}, repo))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/bookings", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var bookings []models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bookings))
	assert.Len(t, bookings, 2)
}

func TestGetAllBookings_EmptyIsEmptyArray(t *testing.T) {
	router := newTestRouter(newTestHandler(&fakeDialogue{}, &fakeRepo{}))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/bookings", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestGetBookingByID_NotFound(t *testing.T) {
	router := newTestRouter(newTestHandler(&fakeDialogue{}, &fakeRepo{}))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/bookings/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetBookingByID_Found(t *testing.T) {
	repo := &fakeRepo{bookings: []models.Booking{{ID: "b-1", NumberOfGuests: 4}}}
	router := newTestRouter(newTestHandler(&fakeDialogue{}, repo))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/bookings/b-1", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var booking models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booking))
	assert.Equal(t, "b-1", booking.ID)
}

func TestCancelBooking(t *testing.T) {
	router := newTestRouter(newTestHandler(&fakeDialogue{}, &fakeRepo{}))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/bookings/b-1", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cancelled")
}

func TestCancelBooking_NotFound(t *testing.T) {
	router := newTestRouter(newTestHandler(&fakeDialogue{}, &fakeRepo{cancelErr: bookingRepo.ErrNotFound}))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/bookings/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
