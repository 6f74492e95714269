package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/petcrm/internal/dto"
	"github.com/BruksfildServices01/petcrm/internal/httperr"
	"github.com/BruksfildServices01/petcrm/internal/httpresp"
	"github.com/BruksfildServices01/petcrm/internal/middleware"
	bookinguc "github.com/BruksfildServices01/petcrm/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	create  *bookinguc.CreateBooking
	confirm *bookinguc.ConfirmBooking
	cancel  *bookinguc.CancelBooking
	list    *bookinguc.ListBookings
}

func NewBookingHandler(
	create *bookinguc.CreateBooking,
	confirm *bookinguc.ConfirmBooking,
	cancel *bookinguc.CancelBooking,
	list *bookinguc.ListBookings,
) *BookingHandler {
	return &BookingHandler{
		create:  create,
		confirm: confirm,
		cancel:  cancel,
		list:    list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	SlotID  uint   `json:"slot_id" binding:"required"`
	PetID   uint   `json:"pet_id" binding:"required"`
	TutorID uint   `json:"tutor_id"`
	Notes   string `json:"notes"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "slot_id and pet_id are required.")
		return
	}

	b, err := h.create.Execute(c.Request.Context(), bookinguc.CreateBookingInput{
		Actor:   middleware.ActorFrom(c),
		SlotID:  req.SlotID,
		PetID:   req.PetID,
		TutorID: req.TutorID,
		Notes:   req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err, "booking_create_failed")
		return
	}

	httpresp.Created(c, dto.NewBookingListDTO(*b))
}

// ======================================================
// CONFIRM / REJECT / CANCEL
// ======================================================

func (h *BookingHandler) Confirm(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	b, err := h.confirm.Execute(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		httperr.FromError(c, err, "booking_confirm_failed")
		return
	}

	httpresp.OK(c, dto.NewBookingListDTO(*b))
}

// Reject is the staff wording for cancelling a request.
func (h *BookingHandler) Reject(c *gin.Context) {
	h.Cancel(c)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req CancelBookingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, "invalid_request", "Invalid body.")
			return
		}
	}

	b, err := h.cancel.Execute(c.Request.Context(), bookinguc.CancelBookingInput{
		Actor:     middleware.ActorFrom(c),
		BookingID: id,
		Reason:    req.Reason,
	})
	if err != nil {
		httperr.FromError(c, err, "booking_cancel_failed")
		return
	}

	httpresp.OK(c, dto.NewBookingListDTO(*b))
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	a, businessID, ok := businessScope(c)
	if !ok {
		return
	}

	petID, ok := optionalUint(c, "pet_id")
	if !ok {
		return
	}
	tutorID, ok := optionalUint(c, "tutor_id")
	if !ok {
		return
	}

	days := 0
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			httperr.BadRequest(c, "invalid_days", "days must be a positive number.")
			return
		}
		days = n
	}

	bookings, err := h.list.Execute(c.Request.Context(), bookinguc.ListBookingsInput{
		Actor:      a,
		BusinessID: businessID,
		PetID:      petID,
		TutorID:    tutorID,
		Status:     c.Query("status"),
		Days:       days,
	})
	if err != nil {
		httperr.FromError(c, err, "booking_list_failed")
		return
	}

	httpresp.List(c, dto.NewBookingList(bookings))
}
