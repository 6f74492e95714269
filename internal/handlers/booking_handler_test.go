package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/petcrm/internal/domain/actor"
	"github.com/BruksfildServices01/petcrm/internal/dto"
	"github.com/BruksfildServices01/petcrm/internal/httperr"
	"github.com/BruksfildServices01/petcrm/internal/httpresp"
	"github.com/BruksfildServices01/petcrm/internal/models"
	bookinguc "github.com/BruksfildServices01/petcrm/internal/usecase/booking"
)

func (e *env) bookingRouter(a actor.Actor) *gin.Engine {
	h := NewBookingHandler(
		bookinguc.NewCreateBooking(e.store, nil, testNow),
		bookinguc.NewConfirmBooking(e.store, nil, nil, testNow),
		bookinguc.NewCancelBooking(e.store, nil, nil, testNow),
		bookinguc.NewListBookings(e.store, testNow),
	)

	r := gin.New()
	api := r.Group("/api", withActor(a))
	api.GET("/bookings", h.List)
	api.POST("/bookings", h.Create)
	api.POST("/bookings/:id/confirm", h.Confirm)
	api.POST("/bookings/:id/reject", h.Reject)
	api.POST("/bookings/:id/cancel", h.Cancel)
	return r
}

func TestBookingHandler_Lifecycle(t *testing.T) {
	e := newEnv(1)
	asTutor := e.bookingRouter(e.tutorActor)
	asStaff := e.bookingRouter(e.staff)

	w := serve(asTutor, http.MethodPost, "/api/bookings", gin.H{"slot_id": e.slot.ID, "pet_id": e.rex.ID, "notes": "shy"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[dto.BookingListDTO](t, w)
	assert.Equal(t, "pending", created.Status)
	assert.Equal(t, "Rex", created.PetName)
	assert.Equal(t, "2026-05-11", created.Date)

	w = serve(asTutor, http.MethodPost, "/api/bookings", gin.H{"slot_id": e.slot.ID, "pet_id": e.rex.ID})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[errorBody](t, w)
	assert.Equal(t, httperr.CodeDuplicateBooking, body.Code)
	assert.Equal(t, "Pet already has a booking for this slot", body.Message)

	w = serve(asTutor, http.MethodPost, fmt.Sprintf("/api/bookings/%d/confirm", created.ID), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(asStaff, http.MethodPost, fmt.Sprintf("/api/bookings/%d/confirm", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "confirmed", decode[dto.BookingListDTO](t, w).Status)

	w = serve(asStaff, http.MethodPost, fmt.Sprintf("/api/bookings/%d/confirm", created.ID), nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body = decode[errorBody](t, w)
	assert.Equal(t, httperr.CodeInvalidState, body.Code)
	assert.Equal(t, "Only pending bookings can be confirmed. Current status: confirmed", body.Message)

	w = serve(asTutor, http.MethodPost, fmt.Sprintf("/api/bookings/%d/cancel", created.ID), gin.H{"reason": "vet visit"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	cancelled := decode[dto.BookingListDTO](t, w)
	assert.Equal(t, "cancelled", cancelled.Status)
	assert.Equal(t, "vet visit", cancelled.CancelReason)

	slot, err := e.store.GetSlot(t.Context(), e.slot.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, slot.BookedCount)
}

func TestBookingHandler_SlotFull(t *testing.T) {
	e := newEnv(1)
	asStaff := e.bookingRouter(e.staff)

	mia := e.store.AddPet(models.Pet{BusinessID: e.biz.ID, Name: "Mia"}, e.tutor.ID)

	var ids []uint
	for _, pet := range []models.Pet{e.rex, mia} {
		w := serve(asStaff, http.MethodPost, "/api/bookings", gin.H{"slot_id": e.slot.ID, "pet_id": pet.ID, "tutor_id": e.tutor.ID})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		ids = append(ids, decode[dto.BookingListDTO](t, w).ID)
	}

	w := serve(asStaff, http.MethodPost, fmt.Sprintf("/api/bookings/%d/confirm", ids[0]), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(asStaff, http.MethodPost, fmt.Sprintf("/api/bookings/%d/confirm", ids[1]), nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[errorBody](t, w)
	assert.Equal(t, httperr.CodeSlotFull, body.Code)
	assert.Equal(t, "Slot is already fully booked", body.Message)

	w = serve(asStaff, http.MethodPost, fmt.Sprintf("/api/bookings/%d/reject", ids[1]), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cancelled", decode[dto.BookingListDTO](t, w).Status)

	w = serve(asStaff, http.MethodGet, "/api/bookings?status=confirmed", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[httpresp.ListResponse[dto.BookingListDTO]](t, w)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, ids[0], list.Data[0].ID)
}

func TestBookingHandler_BadRequests(t *testing.T) {
	e := newEnv(2)
	asStaff := e.bookingRouter(e.staff)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{"missing fields", http.MethodPost, "/api/bookings", gin.H{"notes": "x"}, http.StatusBadRequest, "invalid_request"},
		{"staff without tutor", http.MethodPost, "/api/bookings", gin.H{"slot_id": e.slot.ID, "pet_id": e.rex.ID}, http.StatusBadRequest, httperr.CodeTutorRequired},
		{"unknown pet", http.MethodPost, "/api/bookings", gin.H{"slot_id": e.slot.ID, "pet_id": 9999, "tutor_id": e.tutor.ID}, http.StatusNotFound, httperr.CodePetNotFound},
		{"bad id", http.MethodPost, "/api/bookings/abc/confirm", nil, http.StatusBadRequest, "invalid_id"},
		{"unknown booking", http.MethodPost, "/api/bookings/9999/confirm", nil, http.StatusNotFound, httperr.CodeBookingNotFound},
		{"unknown status", http.MethodGet, "/api/bookings?status=bogus", nil, http.StatusBadRequest, httperr.CodeInvalidStatus},
		{"bad days", http.MethodGet, "/api/bookings?status=upcoming&days=x", nil, http.StatusBadRequest, "invalid_days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(asStaff, tt.method, tt.path, tt.body)
			require.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Equal(t, tt.code, decode[errorBody](t, w).Code)
		})
	}
}

func TestBookingHandler_AdminNeedsBusiness(t *testing.T) {
	e := newEnv(1)
	asAdmin := e.bookingRouter(actor.Admin{UserID: 1})

	w := serve(asAdmin, http.MethodGet, "/api/bookings", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, httperr.CodeBusinessNeeded, decode[errorBody](t, w).Code)

	w = serve(asAdmin, http.MethodGet, fmt.Sprintf("/api/bookings?business_id=%d", e.biz.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
