package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/petcrm/internal/domain/actor"
	"github.com/BruksfildServices01/petcrm/internal/httperr"
	"github.com/BruksfildServices01/petcrm/internal/models"
)

func TestSetSlotAvailability(t *testing.T) {
	f := newFixture(t, 2)
	ctx := context.Background()
	uc := NewSetSlotAvailability(f.store, f.cache, nil)

	slot, err := uc.Execute(ctx, f.staff, f.slot.ID, false)
	require.NoError(t, err)
	assert.False(t, slot.IsAvailable)
	assert.Equal(t, 1, f.cache.invalidated(f.biz.ID))

	_, err = f.create().Execute(ctx, CreateBookingInput{Actor: f.tutorActor, SlotID: f.slot.ID, PetID: f.pet.ID})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotUnavailable))

	_, err = uc.Execute(ctx, f.tutorActor, f.slot.ID, true)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))

	_, err = uc.Execute(ctx, actor.Staff{BusinessID: f.other.ID}, f.slot.ID, true)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotNotFound))
}

func TestGenerateSlots_Idempotent(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()
	f.store.AddService(models.Service{Type: "grooming"})
	f.store.AddService(models.Service{Type: "other"})

	uc := NewGenerateSlots(f.store, f.cache, nil, fixedNow)

	created, err := uc.Execute(ctx, f.staff, f.biz.ID, 3)
	require.NoError(t, err)
	// (2 daycare + 4 grooming) x 3 days, minus the fixture's 08:00 daycare slot tomorrow
	assert.Equal(t, 17, created)
	assert.Equal(t, 1, f.cache.invalidated(f.biz.ID))

	created, err = uc.Execute(ctx, f.staff, f.biz.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Equal(t, 1, f.cache.invalidated(f.biz.ID))

	kept := f.slotNow(t)
	assert.Equal(t, 1, kept.MaxCapacity)

	_, err = uc.Execute(ctx, f.tutorActor, f.biz.ID, 3)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))
}
