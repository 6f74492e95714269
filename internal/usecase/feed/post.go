package feed

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/petcrm/internal/domain/actor"
	feeddomain "github.com/BruksfildServices01/petcrm/internal/domain/feed"
	"github.com/BruksfildServices01/petcrm/internal/httperr"
	"github.com/BruksfildServices01/petcrm/internal/logger"
	"github.com/BruksfildServices01/petcrm/internal/models"
)

// ======================================================
// Pet post
// ======================================================

type PostWoofInput struct {
	Actor      actor.Actor
	PetID      uint
	Message    string
	Visibility string
}

type PostWoof struct {
	repo feeddomain.Repository
	now  Clock
}

func NewPostWoof(repo feeddomain.Repository, now Clock) *PostWoof {
	return &PostWoof{repo: repo, now: orNow(now)}
}

// Execute posts a top-level woof on a pet's feed. Only staff and admins
// post; tutors take part through replies.
func (uc *PostWoof) Execute(ctx context.Context, in PostWoofInput) (*models.Woof, error) {
	if _, ok := in.Actor.(actor.Tutor); ok || in.Actor == nil {
		return nil, httperr.Reject(httperr.CodeForbidden, "Only staff can post to a pet's feed")
	}

	msg, err := feeddomain.ValidateMessage(in.Message)
	if err != nil {
		return nil, err
	}
	visibility, err := feeddomain.NormalizeVisibility(in.Visibility)
	if err != nil {
		return nil, err
	}

	pet, err := uc.repo.GetPet(ctx, in.PetID)
	if err != nil {
		return nil, lookup(err, errPetNotFound)
	}
	if !actor.CanManageBusiness(in.Actor, pet.BusinessID) {
		return nil, errPetNotFound()
	}

	w := &models.Woof{
		BusinessID: pet.BusinessID,
		PetID:      pet.ID,
		Message:    msg,
		Visibility: visibility,
		CreatedAt:  uc.now(),
	}
	author(in.Actor, w)

	if err := uc.repo.CreateWoof(ctx, w); err != nil {
		return nil, err
	}

	logger.InfoLogger.WithFields(logrus.Fields{
		"woof_id": w.ID,
		"pet_id":  w.PetID,
		"actor":   actor.Kind(in.Actor),
	}).Info("woof posted")

	return w, nil
}

// ======================================================
// Reply
// ======================================================

type PostReplyInput struct {
	Actor    actor.Actor
	ParentID uint
	Message  string
}

type PostReply struct {
	repo feeddomain.Repository
	now  Clock
}

func NewPostReply(repo feeddomain.Repository, now Clock) *PostReply {
	return &PostReply{repo: repo, now: orNow(now)}
}

// Execute adds a reply under a top-level post. Replies inherit the pet and
// visibility of their parent.
func (uc *PostReply) Execute(ctx context.Context, in PostReplyInput) (*models.Woof, error) {
	msg, err := feeddomain.ValidateMessage(in.Message)
	if err != nil {
		return nil, err
	}

	parent, err := uc.repo.GetWoof(ctx, in.ParentID)
	if err != nil {
		return nil, lookup(err, errWoofNotFound)
	}

	pet, err := uc.repo.GetPet(ctx, parent.PetID)
	if err != nil {
		return nil, lookup(err, errWoofNotFound)
	}
	ok, err := canSeePet(ctx, uc.repo, in.Actor, pet)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errWoofNotFound()
	}

	if err := feeddomain.CanReplyTo(parent); err != nil {
		return nil, err
	}

	reply := &models.Woof{
		BusinessID: parent.BusinessID,
		PetID:      parent.PetID,
		ParentID:   &parent.ID,
		Message:    msg,
		Visibility: parent.Visibility,
		CreatedAt:  uc.now(),
	}
	author(in.Actor, reply)

	if err := uc.repo.CreateWoof(ctx, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

// ======================================================
// Business broadcast
// ======================================================

type PostGlobalWoofInput struct {
	Actor      actor.Actor
	BusinessID uint
	Message    string
}

type PostGlobalWoof struct {
	repo feeddomain.Repository
	now  Clock
}

func NewPostGlobalWoof(repo feeddomain.Repository, now Clock) *PostGlobalWoof {
	return &PostGlobalWoof{repo: repo, now: orNow(now)}
}

func (uc *PostGlobalWoof) Execute(ctx context.Context, in PostGlobalWoofInput) (*models.GlobalWoof, error) {
	if !actor.CanManageBusiness(in.Actor, in.BusinessID) {
		return nil, httperr.Reject(httperr.CodeForbidden, "Only staff can post business updates")
	}

	msg, err := feeddomain.ValidateMessage(in.Message)
	if err != nil {
		return nil, err
	}

	gw := &models.GlobalWoof{
		BusinessID: in.BusinessID,
		StaffID:    actor.UserIDOf(in.Actor),
		Message:    msg,
		CreatedAt:  uc.now(),
	}
	if err := uc.repo.CreateGlobalWoof(ctx, gw); err != nil {
		return nil, err
	}
	return gw, nil
}
