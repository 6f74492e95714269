package booking

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/petcrm/internal/domain/actor"
	"github.com/BruksfildServices01/petcrm/internal/httperr"
)

func TestConfirmBooking_TakesSpot(t *testing.T) {
	f := newFixture(t, 2)
	b := f.book(t, f.pet, f.tutor)

	got, err := f.confirm().Execute(context.Background(), f.staff, b.ID)
	require.NoError(t, err)

	assert.Equal(t, "confirmed", got.Status)
	require.NotNil(t, got.ConfirmedAt)
	assert.Equal(t, fixedNow(), *got.ConfirmedAt)
	assert.Equal(t, f.staff.UserID, *got.ConfirmedByID)
	assert.Equal(t, 1, f.slotNow(t).BookedCount)
	assert.Equal(t, 1, f.cache.invalidated(f.biz.ID))
}

func TestConfirmBooking_Twice(t *testing.T) {
	f := newFixture(t, 2)
	b := f.book(t, f.pet, f.tutor)
	ctx := context.Background()

	_, err := f.confirm().Execute(ctx, f.staff, b.ID)
	require.NoError(t, err)

	_, err = f.confirm().Execute(ctx, f.staff, b.ID)
	assert.EqualError(t, err, "Only pending bookings can be confirmed. Current status: confirmed")
	assert.Equal(t, 1, f.slotNow(t).BookedCount)
}

func TestConfirmBooking_Full(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()

	b1 := f.book(t, f.pet, f.tutor)
	pet2, tutor2 := f.addPet("Mia")
	b2 := f.book(t, pet2, tutor2)

	_, err := f.confirm().Execute(ctx, f.staff, b1.ID)
	require.NoError(t, err)

	_, err = f.confirm().Execute(ctx, f.staff, b2.ID)
	assert.EqualError(t, err, "Slot is already fully booked")

	still, err := f.store.GetBooking(ctx, b2.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", still.Status)
	assert.Equal(t, 1, f.slotNow(t).BookedCount)
}

func TestConfirmBooking_Authorization(t *testing.T) {
	f := newFixture(t, 1)
	b := f.book(t, f.pet, f.tutor)
	ctx := context.Background()

	_, err := f.confirm().Execute(ctx, f.tutorActor, b.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))

	_, err = f.confirm().Execute(ctx, actor.Staff{UserID: 50, BusinessID: f.other.ID}, b.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeBookingNotFound))

	_, err = f.confirm().Execute(ctx, f.staff, 12345)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeBookingNotFound))

	_, err = f.confirm().Execute(ctx, actor.Admin{UserID: 1}, b.ID)
	assert.NoError(t, err)
}

func TestConfirmBooking_ConcurrentLastSpot(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()

	b1 := f.book(t, f.pet, f.tutor)
	pet2, tutor2 := f.addPet("Mia")
	b2 := f.book(t, pet2, tutor2)

	uc := f.confirm()
	errs := make([]error, 2)

	var wg sync.WaitGroup
	for i, id := range []uint{b1.ID, b2.ID} {
		wg.Add(1)
		go func(i int, id uint) {
			defer wg.Done()
			_, errs[i] = uc.Execute(ctx, f.staff, id)
		}(i, id)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotFull))
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, f.slotNow(t).BookedCount)
}

func TestConfirmBooking_ManyConcurrent(t *testing.T) {
	f := newFixture(t, 3)
	ctx := context.Background()

	var ids []uint
	for _, name := range []string{"A", "B", "C", "D", "E", "F"} {
		pet, tutor := f.addPet(name)
		ids = append(ids, f.book(t, pet, tutor).ID)
	}

	uc := f.confirm()
	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for _, id := range ids {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			if _, err := uc.Execute(ctx, f.staff, id); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}(id)
	}
	wg.Wait()

	assert.Equal(t, 3, ok)
	slot := f.slotNow(t)
	assert.Equal(t, 3, slot.BookedCount)
	assert.LessOrEqual(t, slot.BookedCount, slot.MaxCapacity)
}
