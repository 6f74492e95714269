// Package dashboard composes the staff and tutor landing views from the
// booking, feed and pet use cases.
package dashboard

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/petcrm/internal/domain"
	"github.com/BruksfildServices01/petcrm/internal/domain/actor"
	bookingdomain "github.com/BruksfildServices01/petcrm/internal/domain/booking"
	feeddomain "github.com/BruksfildServices01/petcrm/internal/domain/feed"
	petdomain "github.com/BruksfildServices01/petcrm/internal/domain/pet"
	"github.com/BruksfildServices01/petcrm/internal/dto"
	"github.com/BruksfildServices01/petcrm/internal/httperr"
	"github.com/BruksfildServices01/petcrm/internal/models"
	"github.com/BruksfildServices01/petcrm/internal/timezone"
	bookinguc "github.com/BruksfildServices01/petcrm/internal/usecase/booking"
	feeduc "github.com/BruksfildServices01/petcrm/internal/usecase/feed"
)

const RecentWoofsLimit = 10

type StaffView struct {
	Business        models.Business                             `json:"business"`
	Pets            []petdomain.Status                          `json:"pets"`
	InHouseCount    int                                         `json:"in_house_count"`
	OccupancyPct    float64                                     `json:"occupancy_pct"`
	PendingBookings []dto.BookingListDTO                        `json:"pending_bookings"`
	RecentWoofs     []feeddomain.Item                           `json:"recent_woofs"`
	PetBookings     map[uint][]dto.DayGroup[dto.BookingListDTO] `json:"pet_bookings"`
}

type TutorView struct {
	Business models.Business                    `json:"business"`
	Pets     []models.Pet                       `json:"pets"`
	Feed     feeddomain.Page                    `json:"feed"`
	Slots    []dto.DayGroup[bookinguc.SlotView] `json:"slots"`
	Bookings []dto.DayGroup[dto.BookingListDTO] `json:"bookings"`
}

type Dashboard struct {
	bookings bookingdomain.Repository
	pets     petdomain.Repository
	feed     *feeduc.GetFeed
	slots    *bookinguc.ListSlots
	list     *bookinguc.ListBookings
	generate *bookinguc.GenerateSlots
	horizon  int
	now      func() time.Time
}

func New(
	bookings bookingdomain.Repository,
	pets petdomain.Repository,
	feed *feeduc.GetFeed,
	slots *bookinguc.ListSlots,
	list *bookinguc.ListBookings,
	generate *bookinguc.GenerateSlots,
	horizon int,
	now func() time.Time,
) *Dashboard {
	if horizon <= 0 {
		horizon = bookinguc.DefaultHorizonDays
	}
	if now == nil {
		now = time.Now
	}
	return &Dashboard{
		bookings: bookings,
		pets:     pets,
		feed:     feed,
		slots:    slots,
		list:     list,
		generate: generate,
		horizon:  horizon,
		now:      now,
	}
}

func (d *Dashboard) business(ctx context.Context, id uint) (*models.Business, error) {
	biz, err := d.bookings.GetBusiness(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.Reject(httperr.CodeBusinessNotFound, "Business not found")
	}
	if err != nil {
		return nil, err
	}
	return biz, nil
}

// ======================================================
// STAFF
// ======================================================

func (d *Dashboard) Staff(
	ctx context.Context,
	a actor.Actor,
	businessID uint,
) (*StaffView, error) {

	if !actor.CanManageBusiness(a, businessID) {
		return nil, httperr.Reject(httperr.CodeForbidden, "Only staff can open this dashboard")
	}

	biz, err := d.business(ctx, businessID)
	if err != nil {
		return nil, err
	}

	pets, err := d.pets.ListPets(ctx, petdomain.Filter{BusinessID: businessID})
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(pets))
	for _, p := range pets {
		ids = append(ids, p.ID)
	}
	checkIns, err := d.pets.ListCheckIns(ctx, ids)
	if err != nil {
		return nil, err
	}

	statuses := petdomain.Statuses(pets, checkIns)
	inHouse := petdomain.InHouse(statuses)

	pending, err := d.list.Execute(ctx, bookinguc.ListBookingsInput{
		Actor:      a,
		BusinessID: businessID,
		Status:     string(bookingdomain.StatusPending),
	})
	if err != nil {
		return nil, err
	}

	active, err := d.list.Execute(ctx, bookinguc.ListBookingsInput{
		Actor:      a,
		BusinessID: businessID,
		Status:     bookinguc.FilterActive,
	})
	if err != nil {
		return nil, err
	}

	recent, err := d.feed.RecentPublic(ctx, businessID, RecentWoofsLimit)
	if err != nil {
		return nil, err
	}

	return &StaffView{
		Business:        *biz,
		Pets:            statuses,
		InHouseCount:    inHouse,
		OccupancyPct:    petdomain.OccupancyPct(inHouse, len(statuses)),
		PendingBookings: dto.NewBookingList(pending),
		RecentWoofs:     recent,
		PetBookings:     dto.GroupBookingsByPet(dto.NewBookingList(active)),
	}, nil
}

// ======================================================
// TUTOR
// ======================================================

// Tutor makes sure the default slots exist for the horizon before listing
// them.
func (d *Dashboard) Tutor(
	ctx context.Context,
	t actor.Tutor,
) (*TutorView, error) {

	biz, err := d.business(ctx, t.BusinessID)
	if err != nil {
		return nil, err
	}

	tutorID := t.TutorID
	pets, err := d.pets.ListPets(ctx, petdomain.Filter{BusinessID: t.BusinessID, TutorID: &tutorID})
	if err != nil {
		return nil, err
	}

	page, err := d.feed.Page(ctx, t, t.BusinessID, 1)
	if err != nil {
		return nil, err
	}

	if _, err := d.generate.Ensure(ctx, t.BusinessID, d.horizon); err != nil {
		return nil, err
	}

	from := timezone.DateOf(d.now(), biz.Timezone)
	slots, err := d.slots.Execute(ctx, bookinguc.ListSlotsInput{
		Actor:         t,
		BusinessID:    t.BusinessID,
		From:          from,
		To:            from.AddDate(0, 0, d.horizon),
		OnlyAvailable: true,
	})
	if err != nil {
		return nil, err
	}

	bookings, err := d.list.Execute(ctx, bookinguc.ListBookingsInput{
		Actor:      t,
		BusinessID: t.BusinessID,
		Status:     bookinguc.FilterUpcoming,
		Days:       d.horizon,
	})
	if err != nil {
		return nil, err
	}

	return &TutorView{
		Business: *biz,
		Pets:     pets,
		Feed:     page,
		Slots: dto.GroupByDate(slots, func(s bookinguc.SlotView) string {
			return s.Date.Format(timezone.DateLayout)
		}),
		Bookings: dto.GroupByDate(dto.NewBookingList(bookings), func(b dto.BookingListDTO) string {
			return b.Date
		}),
	}, nil
}
