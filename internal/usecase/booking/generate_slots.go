package booking

import (
	"context"

	"github.com/BruksfildServices01/petcrm/internal/audit"
	"github.com/BruksfildServices01/petcrm/internal/domain/actor"
	domain "github.com/BruksfildServices01/petcrm/internal/domain/booking"
	"github.com/BruksfildServices01/petcrm/internal/httperr"
	"github.com/BruksfildServices01/petcrm/internal/timezone"
)

const DefaultHorizonDays = 30

type GenerateSlots struct {
	repo  domain.Repository
	cache SlotCache
	audit *audit.Dispatcher
	now   Clock
}

func NewGenerateSlots(
	repo domain.Repository,
	cache SlotCache,
	audit *audit.Dispatcher,
	now Clock,
) *GenerateSlots {
	return &GenerateSlots{
		repo:  repo,
		cache: cache,
		audit: audit,
		now:   orNow(now),
	}
}

// Execute is the staff-facing entry point.
func (uc *GenerateSlots) Execute(
	ctx context.Context,
	a actor.Actor,
	businessID uint,
	days int,
) (int, error) {

	if !actor.CanManageBusiness(a, businessID) {
		return 0, errForbidden("Only staff can generate slots")
	}

	created, err := uc.Ensure(ctx, businessID, days)
	if err != nil {
		return 0, err
	}

	dispatch(uc.audit, audit.Event{
		BusinessID: businessID,
		UserID:     userRef(a),
		Action:     "slots_generated",
		Entity:     "service_slot",
		Metadata:   map[string]any{"created": created, "days": days},
	})

	return created, nil
}

// Ensure creates the default slots for today and the following days-1
// days, skipping windows that already have a slot. It returns how many
// slots were created.
func (uc *GenerateSlots) Ensure(
	ctx context.Context,
	businessID uint,
	days int,
) (int, error) {

	if days <= 0 {
		days = DefaultHorizonDays
	}

	biz, err := uc.repo.GetBusiness(ctx, businessID)
	if err != nil {
		return 0, notFound(err, httperr.CodeBusinessNotFound, "Business not found")
	}

	services, err := uc.repo.ListServices(ctx)
	if err != nil {
		return 0, err
	}

	from := timezone.DateOf(uc.now(), biz.Timezone)
	plan := domain.PlanSlots(businessID, services, from, days)

	created := 0
	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		for i := range plan {
			ok, err := tx.EnsureSlot(ctx, &plan[i])
			if err != nil {
				return err
			}
			if ok {
				created++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if created > 0 {
		invalidate(ctx, uc.cache, businessID)
	}
	return created, nil
}
