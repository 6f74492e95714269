package feed

import (
	"context"

	"github.com/BruksfildServices01/petcrm/internal/domain/actor"
	feeddomain "github.com/BruksfildServices01/petcrm/internal/domain/feed"
	"github.com/BruksfildServices01/petcrm/internal/models"
)

type Thread struct {
	Post    models.Woof   `json:"post"`
	Replies []models.Woof `json:"replies"`
}

type GetThread struct {
	repo feeddomain.Repository
}

func NewGetThread(repo feeddomain.Repository) *GetThread {
	return &GetThread{repo: repo}
}

// Execute returns the top-level post and its replies. Asking for a reply
// returns the thread it belongs to.
func (uc *GetThread) Execute(
	ctx context.Context,
	a actor.Actor,
	woofID uint,
) (*Thread, error) {

	w, err := uc.repo.GetWoof(ctx, woofID)
	if err != nil {
		return nil, lookup(err, errWoofNotFound)
	}
	if w.ParentID != nil {
		if w, err = uc.repo.GetWoof(ctx, *w.ParentID); err != nil {
			return nil, lookup(err, errWoofNotFound)
		}
	}

	pet, err := uc.repo.GetPet(ctx, w.PetID)
	if err != nil {
		return nil, lookup(err, errWoofNotFound)
	}
	ok, err := canSeePet(ctx, uc.repo, a, pet)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errWoofNotFound()
	}

	replies, err := uc.repo.ListReplies(ctx, w.ID)
	if err != nil {
		return nil, err
	}
	if replies == nil {
		replies = []models.Woof{}
	}

	return &Thread{Post: *w, Replies: replies}, nil
}
