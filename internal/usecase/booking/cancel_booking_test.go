package booking

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/petcrm/internal/domain/actor"
	"github.com/BruksfildServices01/petcrm/internal/httperr"
)

func TestCancelBooking_Confirmed(t *testing.T) {
	f := newFixture(t, 2)
	ctx := context.Background()
	b := f.book(t, f.pet, f.tutor)

	_, err := f.confirm().Execute(ctx, f.staff, b.ID)
	require.NoError(t, err)

	got, err := f.cancel().Execute(ctx, CancelBookingInput{Actor: f.staff, BookingID: b.ID, Reason: "vet visit"})
	require.NoError(t, err)

	assert.Equal(t, "cancelled", got.Status)
	assert.Equal(t, "vet visit", got.CancelReason)
	require.NotNil(t, got.CancelledAt)
	assert.Equal(t, 0, f.slotNow(t).BookedCount)
	assert.Equal(t, 2, f.cache.invalidated(f.biz.ID))
}

func TestCancelBooking_PendingKeepsCounter(t *testing.T) {
	f := newFixture(t, 2)
	ctx := context.Background()

	b1 := f.book(t, f.pet, f.tutor)
	pet2, tutor2 := f.addPet("Mia")
	b2 := f.book(t, pet2, tutor2)
	_, err := f.confirm().Execute(ctx, f.staff, b2.ID)
	require.NoError(t, err)

	_, err = f.cancel().Execute(ctx, CancelBookingInput{Actor: f.tutorActor, BookingID: b1.ID})
	require.NoError(t, err)

	assert.Equal(t, 1, f.slotNow(t).BookedCount)
}

func TestCancelBooking_Terminal(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()
	b := f.book(t, f.pet, f.tutor)

	_, err := f.cancel().Execute(ctx, CancelBookingInput{Actor: f.staff, BookingID: b.ID})
	require.NoError(t, err)

	_, err = f.cancel().Execute(ctx, CancelBookingInput{Actor: f.staff, BookingID: b.ID})
	assert.EqualError(t, err, "Only pending or confirmed bookings can be cancelled. Current status: cancelled")

	_, err = f.confirm().Execute(ctx, f.staff, b.ID)
	assert.EqualError(t, err, "Only pending bookings can be confirmed. Current status: cancelled")
}

func TestCancelBooking_Ownership(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()
	b := f.book(t, f.pet, f.tutor)

	_, stranger := f.addPet("Mia")
	_, err := f.cancel().Execute(ctx, CancelBookingInput{
		Actor:     actor.Tutor{UserID: 77, TutorID: stranger.ID, BusinessID: f.biz.ID},
		BookingID: b.ID,
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeBookingNotFound))

	_, err = f.cancel().Execute(ctx, CancelBookingInput{
		Actor:     actor.Staff{UserID: 78, BusinessID: f.other.ID},
		BookingID: b.ID,
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeBookingNotFound))
}

func TestCancelBooking_ReasonTruncated(t *testing.T) {
	f := newFixture(t, 1)
	b := f.book(t, f.pet, f.tutor)

	got, err := f.cancel().Execute(context.Background(), CancelBookingInput{
		Actor:     f.staff,
		BookingID: b.ID,
		Reason:    strings.Repeat("x", 300),
	})
	require.NoError(t, err)
	assert.Len(t, got.CancelReason, maxReasonLength)
}

func TestBookingLifecycle_FreesSpotForOthers(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()

	b1 := f.book(t, f.pet, f.tutor)
	_, err := f.confirm().Execute(ctx, f.staff, b1.ID)
	require.NoError(t, err)

	pet2, tutor2 := f.addPet("Mia")
	_, err = f.create().Execute(ctx, CreateBookingInput{Actor: f.staff, SlotID: f.slot.ID, PetID: pet2.ID, TutorID: tutor2.ID})
	assert.EqualError(t, err, "Slot is already fully booked")

	_, err = f.cancel().Execute(ctx, CancelBookingInput{Actor: f.tutorActor, BookingID: b1.ID})
	require.NoError(t, err)

	b2 := f.book(t, pet2, tutor2)
	_, err = f.confirm().Execute(ctx, f.staff, b2.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, f.slotNow(t).BookedCount)
}
