package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/petcrm/internal/domain"
	"github.com/BruksfildServices01/petcrm/internal/domain/actor"
	bookingdomain "github.com/BruksfildServices01/petcrm/internal/domain/booking"
	"github.com/BruksfildServices01/petcrm/internal/httperr"
	"github.com/BruksfildServices01/petcrm/internal/infra/memory"
	"github.com/BruksfildServices01/petcrm/internal/models"
	bookinguc "github.com/BruksfildServices01/petcrm/internal/usecase/booking"
	feeduc "github.com/BruksfildServices01/petcrm/internal/usecase/feed"
)

func TestDashboards(t *testing.T) {
	ctx := context.Background()
	now := func() time.Time { return time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC) }

	s := memory.New()
	biz := s.AddBusiness(models.Business{Name: "Happy Paws", Timezone: "UTC"})
	s.AddService(models.Service{Type: "daycare"})

	staffUser := s.AddUser(models.User{Name: "Ana", BusinessID: &biz.ID, Role: models.RoleStaff})
	tutorUser := s.AddUser(models.User{Name: "Bia", BusinessID: &biz.ID, Role: models.RoleTutor})
	bia := s.AddTutor(models.Tutor{BusinessID: biz.ID, UserID: &tutorUser.ID, Name: "Bia"})
	caio := s.AddTutor(models.Tutor{BusinessID: biz.ID, Name: "Caio"})

	rex := s.AddPet(models.Pet{BusinessID: biz.ID, Name: "Rex"}, bia.ID)
	mia := s.AddPet(models.Pet{BusinessID: biz.ID, Name: "Mia"}, caio.ID)

	_, err := s.SaveCheckIn(ctx, &models.CheckIn{PetID: rex.ID, IsPresent: true})
	require.NoError(t, err)

	s.AddWoof(models.Woof{BusinessID: biz.ID, PetID: rex.ID, Message: "Nap time", Visibility: models.VisibilityPublic, CreatedAt: now()})
	s.AddWoof(models.Woof{BusinessID: biz.ID, PetID: mia.ID, Message: "Vet note", Visibility: models.VisibilityPrivate, CreatedAt: now()})

	staff := actor.Staff{UserID: staffUser.ID, BusinessID: biz.ID}
	tutor := actor.Tutor{UserID: tutorUser.ID, TutorID: bia.ID, BusinessID: biz.ID}

	list := bookinguc.NewListBookings(s, now)
	d := New(
		s, s,
		feeduc.NewGetFeed(s, 20),
		bookinguc.NewListSlots(s, nil),
		list,
		bookinguc.NewGenerateSlots(s, nil, nil, now),
		2,
		now,
	)

	tv, err := d.Tutor(ctx, tutor)
	require.NoError(t, err)
	require.Len(t, tv.Pets, 1)
	assert.Equal(t, "Rex", tv.Pets[0].Name)
	assert.Equal(t, 1, tv.Feed.Total)
	require.Len(t, tv.Slots, 2)
	assert.Equal(t, "2026-06-01", tv.Slots[0].Date)
	assert.Len(t, tv.Slots[0].Items, 2)
	assert.Empty(t, tv.Bookings)

	_, err = bookinguc.NewCreateBooking(s, nil, now).Execute(ctx, bookinguc.CreateBookingInput{
		Actor:  tutor,
		SlotID: tv.Slots[1].Items[0].ID,
		PetID:  rex.ID,
	})
	require.NoError(t, err)

	t.Run("staff", func(t *testing.T) {
		sv, err := d.Staff(ctx, staff, biz.ID)
		require.NoError(t, err)

		require.Len(t, sv.Pets, 2)
		assert.Equal(t, 1, sv.InHouseCount)
		assert.InDelta(t, 50.0, sv.OccupancyPct, 0.001)
		assert.Len(t, sv.PendingBookings, 1)
		require.Len(t, sv.RecentWoofs, 1)
		assert.Equal(t, "Nap time", sv.RecentWoofs[0].Message)
		require.Len(t, sv.PetBookings[rex.ID], 1)
		assert.Equal(t, "2026-06-02", sv.PetBookings[rex.ID][0].Date)
		assert.Empty(t, sv.PetBookings[mia.ID])
	})

	t.Run("tutor sees own booking", func(t *testing.T) {
		tv, err := d.Tutor(ctx, tutor)
		require.NoError(t, err)
		require.Len(t, tv.Bookings, 1)
		assert.Equal(t, "pending", tv.Bookings[0].Items[0].Status)
	})

	t.Run("tutor cannot open staff view", func(t *testing.T) {
		_, err := d.Staff(ctx, tutor, biz.ID)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))
	})
}

type brokenBusinesses struct {
	bookingdomain.Repository
	err error
}

func (r brokenBusinesses) GetBusiness(ctx context.Context, id uint) (*models.Business, error) {
	return nil, r.err
}

func TestDashboards_BusinessLookupErrors(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	staff := actor.Staff{UserID: 1, BusinessID: 7}

	newDashboard := func(repo bookingdomain.Repository) *Dashboard {
		return New(repo, s, nil, nil, nil, nil, 1, nil)
	}

	_, err := newDashboard(brokenBusinesses{s, domain.ErrNotFound}).Staff(ctx, staff, 7)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeBusinessNotFound))

	outage := errors.New("connection refused")
	_, err = newDashboard(brokenBusinesses{s, outage}).Staff(ctx, staff, 7)
	assert.ErrorIs(t, err, outage)
	assert.False(t, httperr.IsBusiness(err, httperr.CodeBusinessNotFound))
}
