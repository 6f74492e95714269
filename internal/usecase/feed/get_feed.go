package feed

import (
	"context"
	"time"

	"github.com/BruksfildServices01/petcrm/internal/domain/actor"
	feeddomain "github.com/BruksfildServices01/petcrm/internal/domain/feed"
	"github.com/BruksfildServices01/petcrm/internal/httperr"
)

type GetFeed struct {
	repo     feeddomain.Repository
	pageSize int
}

func NewGetFeed(
	repo feeddomain.Repository,
	pageSize int,
) *GetFeed {
	if pageSize <= 0 {
		pageSize = feeddomain.DefaultPageSize
	}
	return &GetFeed{
		repo:     repo,
		pageSize: pageSize,
	}
}

// items merges what the actor may read: every post of the business for
// staff, or the tutor's own pets plus broadcasts for tutors.
func (uc *GetFeed) items(
	ctx context.Context,
	a actor.Actor,
	businessID uint,
) ([]feeddomain.Item, error) {

	if !actor.CanSeeBusiness(a, businessID) {
		return nil, httperr.Reject(httperr.CodeForbidden, "Not allowed to see this feed")
	}

	filter := feeddomain.PetWoofFilter{BusinessID: businessID}

	if t, ok := a.(actor.Tutor); ok {
		ids, err := uc.repo.ListTutorPetIDs(ctx, t.TutorID)
		if err != nil {
			return nil, err
		}
		if ids == nil {
			ids = []uint{}
		}
		filter.PetIDs = ids
	}

	global, err := uc.repo.ListGlobalWoofs(ctx, businessID)
	if err != nil {
		return nil, err
	}

	pets, err := uc.repo.ListPetWoofs(ctx, filter)
	if err != nil {
		return nil, err
	}

	return feeddomain.Merge(global, pets), nil
}

func (uc *GetFeed) Page(
	ctx context.Context,
	a actor.Actor,
	businessID uint,
	page int,
) (feeddomain.Page, error) {

	items, err := uc.items(ctx, a, businessID)
	if err != nil {
		return feeddomain.Page{}, err
	}
	return feeddomain.Paginate(items, page, uc.pageSize), nil
}

// Since returns every visible item created strictly after since, newest
// first. Used for polling.
func (uc *GetFeed) Since(
	ctx context.Context,
	a actor.Actor,
	businessID uint,
	since time.Time,
) ([]feeddomain.Item, error) {

	items, err := uc.items(ctx, a, businessID)
	if err != nil {
		return nil, err
	}
	return feeddomain.Since(items, since), nil
}

// RecentPublic lists the latest public pet posts of a business.
func (uc *GetFeed) RecentPublic(
	ctx context.Context,
	businessID uint,
	limit int,
) ([]feeddomain.Item, error) {

	woofs, err := uc.repo.ListPetWoofs(ctx, feeddomain.PetWoofFilter{
		BusinessID: businessID,
		PublicOnly: true,
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}
	return feeddomain.Merge(nil, woofs), nil
}
