package booking

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/petcrm/internal/audit"
	"github.com/BruksfildServices01/petcrm/internal/domain"
	"github.com/BruksfildServices01/petcrm/internal/domain/actor"
	bookingdomain "github.com/BruksfildServices01/petcrm/internal/domain/booking"
	"github.com/BruksfildServices01/petcrm/internal/httperr"
	"github.com/BruksfildServices01/petcrm/internal/logger"
	"github.com/BruksfildServices01/petcrm/internal/models"
)

// SlotCache is the read-through cache for slot listings. Get and Set take
// the version returned by Version so a listing is stored under the version
// it was read against.
type SlotCache interface {
	Version(ctx context.Context, businessID uint) (string, error)
	Get(ctx context.Context, businessID uint, version, key string, dst any) (bool, error)
	Set(ctx context.Context, businessID uint, version, key string, v any) error
	Invalidate(ctx context.Context, businessID uint) error
}

type Clock func() time.Time

func orNow(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}

func notFound(err error, code, message string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.Reject(code, "%s", message)
	}
	return err
}

func errForbidden(message string) error {
	return httperr.Reject(httperr.CodeForbidden, "%s", message)
}

func errBookingNotFound() error {
	return httperr.Reject(httperr.CodeBookingNotFound, "Booking not found")
}

func errSlotNotFound() error {
	return httperr.Reject(httperr.CodeSlotNotFound, "Slot not found")
}

func isStaffOrAdmin(a actor.Actor) bool {
	switch a.(type) {
	case actor.Staff, actor.Admin:
		return true
	}
	return false
}

func userRef(a actor.Actor) *uint {
	id := actor.UserIDOf(a)
	if id == 0 {
		return nil
	}
	return &id
}

func invalidate(ctx context.Context, cache SlotCache, businessID uint) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, businessID); err != nil {
		logger.ErrorLogger.WithError(err).
			WithField("business_id", businessID).
			Warn("slot cache invalidation failed")
	}
}

// reload reads the booking back with its relations after commit. The change
// is already committed, so a failed read falls back to the saved row.
func reload(ctx context.Context, repo bookingdomain.Repository, saved *models.ServiceBooking) *models.ServiceBooking {
	b, err := repo.GetBooking(ctx, saved.ID)
	if err != nil {
		logger.ErrorLogger.WithError(err).
			WithField("booking_id", saved.ID).
			Warn("booking reload after commit failed")
		return saved
	}
	return b
}

func dispatch(d *audit.Dispatcher, ev audit.Event) {
	d.Dispatch(ev)
}
