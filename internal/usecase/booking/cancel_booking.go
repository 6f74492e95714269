package booking

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/petcrm/internal/audit"
	"github.com/BruksfildServices01/petcrm/internal/domain/actor"
	domain "github.com/BruksfildServices01/petcrm/internal/domain/booking"
	"github.com/BruksfildServices01/petcrm/internal/httperr"
	"github.com/BruksfildServices01/petcrm/internal/models"
)

const maxReasonLength = 255

type CancelBookingInput struct {
	Actor     actor.Actor
	BookingID uint
	Reason    string
}

type CancelBooking struct {
	repo  domain.Repository
	cache SlotCache
	audit *audit.Dispatcher
	now   Clock
}

func NewCancelBooking(
	repo domain.Repository,
	cache SlotCache,
	audit *audit.Dispatcher,
	now Clock,
) *CancelBooking {
	return &CancelBooking{
		repo:  repo,
		cache: cache,
		audit: audit,
		now:   orNow(now),
	}
}

func canCancel(a actor.Actor, b *models.ServiceBooking) bool {
	if t, ok := a.(actor.Tutor); ok {
		return t.BusinessID == b.BusinessID && t.TutorID == b.TutorID
	}
	return actor.CanManageBusiness(a, b.BusinessID)
}

// Execute cancels a pending or confirmed booking. Staff use it to reject
// requests; tutors may cancel their own bookings.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	in CancelBookingInput,
) (*models.ServiceBooking, error) {

	reason := strings.TrimSpace(in.Reason)
	if r := []rune(reason); len(r) > maxReasonLength {
		reason = string(r[:maxReasonLength])
	}

	var (
		businessID uint
		released   bool
	)

	var saved *models.ServiceBooking

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		b, err := tx.LockBooking(ctx, in.BookingID)
		if err != nil {
			return notFound(err, httperr.CodeBookingNotFound, "Booking not found")
		}
		if !canCancel(in.Actor, b) {
			return errBookingNotFound()
		}

		slot, err := tx.LockSlot(ctx, b.SlotID)
		if err != nil {
			return notFound(err, httperr.CodeSlotNotFound, "Slot not found")
		}

		released, err = domain.Cancel(b, slot, reason, uc.now())
		if err != nil {
			return err
		}

		if err := tx.SaveBooking(ctx, b); err != nil {
			return err
		}
		if released {
			if err := tx.SaveSlot(ctx, slot); err != nil {
				return err
			}
		}

		b.Slot = slot
		businessID, saved = b.BusinessID, b
		return nil
	})
	if err != nil {
		return nil, err
	}

	if released {
		invalidate(ctx, uc.cache, businessID)
	}

	dispatch(uc.audit, audit.Event{
		BusinessID: businessID,
		UserID:     userRef(in.Actor),
		Action:     "booking_cancelled",
		Entity:     "service_booking",
		EntityID:   &in.BookingID,
		Metadata: map[string]any{
			"actor":  actor.Kind(in.Actor),
			"reason": reason,
		},
	})

	return reload(ctx, uc.repo, saved), nil
}
