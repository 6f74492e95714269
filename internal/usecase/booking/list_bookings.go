package booking

import (
	"context"

	"github.com/BruksfildServices01/petcrm/internal/domain/actor"
	domain "github.com/BruksfildServices01/petcrm/internal/domain/booking"
	"github.com/BruksfildServices01/petcrm/internal/httperr"
	"github.com/BruksfildServices01/petcrm/internal/models"
	"github.com/BruksfildServices01/petcrm/internal/timezone"
)

const (
	FilterUpcoming = "upcoming"
	FilterActive   = "active"

	DefaultUpcomingDays = 30
)

type ListBookingsInput struct {
	Actor      actor.Actor
	BusinessID uint
	PetID      *uint
	TutorID    *uint

	// Status is empty, a booking status, "active" (pending or confirmed),
	// or "upcoming" (active bookings from today through Days ahead).
	Status string
	Days   int
}

type ListBookings struct {
	repo domain.Repository
	now  Clock
}

func NewListBookings(
	repo domain.Repository,
	now Clock,
) *ListBookings {
	return &ListBookings{
		repo: repo,
		now:  orNow(now),
	}
}

func (uc *ListBookings) Execute(
	ctx context.Context,
	in ListBookingsInput,
) ([]models.ServiceBooking, error) {

	if !actor.CanSeeBusiness(in.Actor, in.BusinessID) {
		return nil, errForbidden("Not allowed to see this business")
	}

	f := domain.BookingFilter{
		BusinessID: in.BusinessID,
		PetID:      in.PetID,
		TutorID:    in.TutorID,
	}

	// tutors only ever see their own bookings
	if t, ok := in.Actor.(actor.Tutor); ok {
		id := t.TutorID
		f.TutorID = &id
	}

	switch s := domain.Status(in.Status); {
	case in.Status == "":
	case in.Status == FilterActive:
		f.Statuses = domain.ActiveStatuses()
	case in.Status == FilterUpcoming:
		biz, err := uc.repo.GetBusiness(ctx, in.BusinessID)
		if err != nil {
			return nil, notFound(err, httperr.CodeBusinessNotFound, "Business not found")
		}

		days := in.Days
		if days <= 0 {
			days = DefaultUpcomingDays
		}
		from := timezone.DateOf(uc.now(), biz.Timezone)
		to := from.AddDate(0, 0, days)

		f.Statuses = domain.ActiveStatuses()
		f.From = &from
		f.To = &to
	case s.Valid():
		f.Statuses = []string{in.Status}
	default:
		return nil, httperr.Reject(httperr.CodeInvalidStatus, "Unknown booking status filter: %s", in.Status)
	}

	return uc.repo.ListBookings(ctx, f)
}
