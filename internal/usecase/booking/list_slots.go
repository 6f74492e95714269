package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/BruksfildServices01/petcrm/internal/domain/actor"
	domain "github.com/BruksfildServices01/petcrm/internal/domain/booking"
	"github.com/BruksfildServices01/petcrm/internal/httperr"
	"github.com/BruksfildServices01/petcrm/internal/logger"
	"github.com/BruksfildServices01/petcrm/internal/models"
	"github.com/BruksfildServices01/petcrm/internal/timezone"
)

const maxSlotRangeDays = 366

type ListSlotsInput struct {
	Actor         actor.Actor
	BusinessID    uint
	From          time.Time
	To            time.Time
	ServiceID     *uint
	OnlyAvailable bool
}

// SlotView is a slot with its derived availability.
type SlotView struct {
	models.ServiceSlot
	AvailableSpots int  `json:"available_spots"`
	IsFullyBooked  bool `json:"is_fully_booked"`
}

func NewSlotView(s models.ServiceSlot) SlotView {
	return SlotView{
		ServiceSlot:    s,
		AvailableSpots: domain.AvailableSpots(&s),
		IsFullyBooked:  domain.IsFullyBooked(&s),
	}
}

type ListSlots struct {
	repo  domain.Repository
	cache SlotCache
}

func NewListSlots(
	repo domain.Repository,
	cache SlotCache,
) *ListSlots {
	return &ListSlots{
		repo:  repo,
		cache: cache,
	}
}

func slotCacheKey(in ListSlotsInput) string {
	svc := uint(0)
	if in.ServiceID != nil {
		svc = *in.ServiceID
	}
	return fmt.Sprintf("%s:%s:%d:%t",
		in.From.Format(timezone.DateLayout),
		in.To.Format(timezone.DateLayout),
		svc,
		in.OnlyAvailable,
	)
}

// Execute lists the slots of one business in an inclusive date range,
// ordered by date and start time.
func (uc *ListSlots) Execute(
	ctx context.Context,
	in ListSlotsInput,
) ([]SlotView, error) {

	if !actor.CanSeeBusiness(in.Actor, in.BusinessID) {
		return nil, errForbidden("Not allowed to see this business")
	}
	if in.To.Before(in.From) {
		return nil, httperr.Reject(httperr.CodeInvalidRange, "End date must not be before start date")
	}
	if in.To.Sub(in.From) > maxSlotRangeDays*24*time.Hour {
		return nil, httperr.Reject(httperr.CodeInvalidRange, "Date range must be at most %d days", maxSlotRangeDays)
	}

	key := slotCacheKey(in)

	// version stays empty when the cache is off or unreachable; Get and Set
	// are no-ops then.
	var version string
	if uc.cache != nil {
		v, err := uc.cache.Version(ctx, in.BusinessID)
		if err != nil {
			logger.ErrorLogger.WithError(err).Warn("slot cache version read failed")
		}
		version = v

		var cached []SlotView
		hit, err := uc.cache.Get(ctx, in.BusinessID, version, key, &cached)
		if err != nil {
			logger.ErrorLogger.WithError(err).Warn("slot cache read failed")
		}
		if hit {
			return cached, nil
		}
	}

	slots, err := uc.repo.ListSlots(ctx, domain.SlotFilter{
		BusinessID:    in.BusinessID,
		From:          in.From,
		To:            in.To,
		ServiceID:     in.ServiceID,
		OnlyAvailable: in.OnlyAvailable,
	})
	if err != nil {
		return nil, err
	}

	views := make([]SlotView, 0, len(slots))
	for _, s := range slots {
		views = append(views, NewSlotView(s))
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, in.BusinessID, version, key, views); err != nil {
			logger.ErrorLogger.WithError(err).Warn("slot cache write failed")
		}
	}

	return views, nil
}
