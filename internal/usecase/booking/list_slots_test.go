package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/petcrm/internal/domain/actor"
	domain "github.com/BruksfildServices01/petcrm/internal/domain/booking"
	"github.com/BruksfildServices01/petcrm/internal/httperr"
	"github.com/BruksfildServices01/petcrm/internal/models"
)

func TestListSlots_Views(t *testing.T) {
	f := newFixture(t, 2)
	ctx := context.Background()

	f.store.AddSlot(models.ServiceSlot{
		BusinessID: f.biz.ID, ServiceID: f.service.ID, Date: today.AddDate(0, 0, 1),
		StartTime: "14:00", EndTime: "18:00", MaxCapacity: 1, BookedCount: 1, IsAvailable: true,
	})

	uc := NewListSlots(f.store, nil)
	views, err := uc.Execute(ctx, ListSlotsInput{
		Actor: f.tutorActor, BusinessID: f.biz.ID, From: today, To: today.AddDate(0, 0, 7),
	})
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, 2, views[0].AvailableSpots)
	assert.False(t, views[0].IsFullyBooked)
	assert.Equal(t, 0, views[1].AvailableSpots)
	assert.True(t, views[1].IsFullyBooked)

	open, err := uc.Execute(ctx, ListSlotsInput{
		Actor: f.tutorActor, BusinessID: f.biz.ID, From: today, To: today.AddDate(0, 0, 7), OnlyAvailable: true,
	})
	require.NoError(t, err)
	assert.Len(t, open, 1)
}

func TestListSlots_CachedUntilConfirm(t *testing.T) {
	f := newFixture(t, 2)
	ctx := context.Background()
	uc := NewListSlots(f.store, f.cache)
	in := ListSlotsInput{Actor: f.staff, BusinessID: f.biz.ID, From: today, To: today.AddDate(0, 0, 7)}

	first, err := uc.Execute(ctx, in)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 2, first[0].AvailableSpots)

	b := f.book(t, f.pet, f.tutor)
	_, err = f.confirm().Execute(ctx, f.staff, b.ID)
	require.NoError(t, err)

	second, err := uc.Execute(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 1, second[0].AvailableSpots)
	assert.Equal(t, 1, second[0].BookedCount)
}

// racingRepo runs after once the inner listing has been read, standing in
// for a change that commits while the listing is still being built.
type racingRepo struct {
	domain.Repository
	after func()
}

func (r *racingRepo) ListSlots(ctx context.Context, f domain.SlotFilter) ([]models.ServiceSlot, error) {
	slots, err := r.Repository.ListSlots(ctx, f)
	if r.after != nil {
		r.after()
		r.after = nil
	}
	return slots, err
}

func TestListSlots_ConfirmDuringReadIsNotCached(t *testing.T) {
	f := newFixture(t, 2)
	ctx := context.Background()
	b := f.book(t, f.pet, f.tutor)

	repo := &racingRepo{Repository: f.store}
	repo.after = func() {
		_, err := f.confirm().Execute(ctx, f.staff, b.ID)
		require.NoError(t, err)
	}
	uc := NewListSlots(repo, f.cache)
	in := ListSlotsInput{Actor: f.staff, BusinessID: f.biz.ID, From: today, To: today.AddDate(0, 0, 7)}

	stale, err := uc.Execute(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 2, stale[0].AvailableSpots)
	assert.Equal(t, 1, f.cache.invalidated(f.biz.ID))

	fresh, err := uc.Execute(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 1, fresh[0].AvailableSpots)
	assert.Equal(t, 1, fresh[0].BookedCount)
}

func TestListSlots_Rejections(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()
	uc := NewListSlots(f.store, nil)

	_, err := uc.Execute(ctx, ListSlotsInput{Actor: f.staff, BusinessID: f.biz.ID, From: today, To: today.AddDate(0, 0, -1)})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidRange))

	_, err = uc.Execute(ctx, ListSlotsInput{Actor: f.staff, BusinessID: f.biz.ID, From: today, To: today.AddDate(2, 0, 0)})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidRange))

	_, err = uc.Execute(ctx, ListSlotsInput{Actor: actor.Tutor{BusinessID: f.other.ID}, BusinessID: f.biz.ID, From: today, To: today})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))
}
