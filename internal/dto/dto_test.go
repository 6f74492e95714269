package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/petcrm/internal/models"
)

func TestNewBookingListDTO(t *testing.T) {
	b := models.ServiceBooking{
		ID:     1,
		Status: "confirmed",
		PetID:  2,
		Slot: &models.ServiceSlot{
			Date:      time.Date(2026, 5, 11, 0, 0, 0, 0, time.UTC),
			StartTime: "08:00",
			EndTime:   "12:00",
			Service:   &models.Service{Type: "daycare"},
		},
		Pet:   &models.Pet{Name: "Rex"},
		Tutor: &models.Tutor{Name: "Bia"},
	}

	d := NewBookingListDTO(b)

	assert.Equal(t, "2026-05-11", d.Date)
	assert.Equal(t, "daycare", d.Service)
	assert.Equal(t, "Rex", d.PetName)
	assert.Equal(t, "Bia", d.TutorName)

	bare := NewBookingListDTO(models.ServiceBooking{ID: 3})
	assert.Empty(t, bare.Date)
}

func TestGroupByDate(t *testing.T) {
	items := []BookingListDTO{
		{ID: 1, Date: "2026-05-11"},
		{ID: 2, Date: "2026-05-12"},
		{ID: 3, Date: "2026-05-11"},
	}

	groups := GroupByDate(items, func(b BookingListDTO) string { return b.Date })

	require.Len(t, groups, 2)
	assert.Equal(t, "2026-05-11", groups[0].Date)
	assert.Equal(t, []uint{1, 3}, []uint{groups[0].Items[0].ID, groups[0].Items[1].ID})
	assert.Equal(t, "2026-05-12", groups[1].Date)

	assert.Empty(t, GroupByDate(nil, func(b BookingListDTO) string { return b.Date }))
}

func TestGroupBookingsByPet(t *testing.T) {
	items := []BookingListDTO{
		{ID: 1, PetID: 7, Date: "2026-05-11"},
		{ID: 2, PetID: 8, Date: "2026-05-11"},
		{ID: 3, PetID: 7, Date: "2026-05-13"},
	}

	out := GroupBookingsByPet(items)

	require.Len(t, out, 2)
	assert.Len(t, out[7], 2)
	assert.Len(t, out[8], 1)
}
