package handlers

import (
	"errors"
	"net/http"

	bookingRepo "flavortable/database/repository/booking"
	"flavortable/models"
	"flavortable/services/dialogue"
	"flavortable/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the conversational endpoint and the admin CRUD
// surface over persisted bookings.
type BookingHandler struct {
	Dialogue dialogue.Service
	Repo     bookingRepo.BookingRepository
	Logger   *zap.Logger
}

func NewBookingHandler(dialogueSvc dialogue.Service, repo bookingRepo.BookingRepository, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{
		Dialogue: dialogueSvc,
		Repo:     repo,
		Logger:   logger,
	}
}

// Chat handles one conversation turn. Collaborator failures short of a
// storage write come back as HTTP 200 with a conversational fallback so the
// session keeps going; only a failed persist is a server error.
func (h *BookingHandler) Chat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.UserText == "" {
		utils.JSONError(c, http.StatusBadRequest, "userText is required", "")
		return
	}

	resp, err := h.Dialogue.HandleTurn(c.Request.Context(), req)
	if err != nil {
		h.Logger.Error("turn processing failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to process booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetAllBookings returns every booking, newest first.
func (h *BookingHandler) GetAllBookings(c *gin.Context) {
	bookings, err := h.Repo.GetAll(c.Request.Context())
	if err != nil {
		h.Logger.Error("listing bookings failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to list bookings", err.Error())
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBookingByID returns a single booking.
func (h *BookingHandler) GetBookingByID(c *gin.Context) {
	id := c.Param("id")
	booking, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "booking not found", "")
			return
		}
		h.Logger.Error("fetching booking failed", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, booking)
}

// CancelBooking transitions a booking to cancelled, freeing its time slot.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id := c.Param("id")
	if err := h.Repo.CancelByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "booking not found", "")
			return
		}
		h.Logger.Error("cancelling booking failed", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to cancel booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled successfully"})
}
