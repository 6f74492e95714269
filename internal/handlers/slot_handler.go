package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/petcrm/internal/domain/booking"
	"github.com/BruksfildServices01/petcrm/internal/httperr"
	"github.com/BruksfildServices01/petcrm/internal/httpresp"
	"github.com/BruksfildServices01/petcrm/internal/middleware"
	bookinguc "github.com/BruksfildServices01/petcrm/internal/usecase/booking"
)

type SlotHandler struct {
	repo     domain.Repository
	list     *bookinguc.ListSlots
	toggle   *bookinguc.SetSlotAvailability
	generate *bookinguc.GenerateSlots
	horizon  int
	now      func() time.Time
}

func NewSlotHandler(
	repo domain.Repository,
	list *bookinguc.ListSlots,
	toggle *bookinguc.SetSlotAvailability,
	generate *bookinguc.GenerateSlots,
	horizon int,
) *SlotHandler {
	return &SlotHandler{
		repo:     repo,
		list:     list,
		toggle:   toggle,
		generate: generate,
		horizon:  horizon,
		now:      time.Now,
	}
}

type SetAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

type GenerateSlotsRequest struct {
	Days int `json:"days"`
}

// ======================================================
// LIST
// ======================================================

func (h *SlotHandler) List(c *gin.Context) {
	a, businessID, ok := businessScope(c)
	if !ok {
		return
	}

	biz, err := h.repo.GetBusiness(c.Request.Context(), businessID)
	if err != nil {
		httperr.NotFound(c, httperr.CodeBusinessNotFound, "Business not found")
		return
	}

	from, to, ok := dateRange(c, biz.Timezone, h.horizon, h.now())
	if !ok {
		return
	}

	serviceID, ok := optionalUint(c, "service_id")
	if !ok {
		return
	}

	views, err := h.list.Execute(c.Request.Context(), bookinguc.ListSlotsInput{
		Actor:         a,
		BusinessID:    businessID,
		From:          from,
		To:            to,
		ServiceID:     serviceID,
		OnlyAvailable: c.Query("available") == "true" || c.Query("available") == "1",
	})
	if err != nil {
		httperr.FromError(c, err, "slot_list_failed")
		return
	}

	httpresp.List(c, views)
}

func (h *SlotHandler) Services(c *gin.Context) {
	services, err := h.repo.ListServices(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err, "service_list_failed")
		return
	}
	httpresp.List(c, services)
}

// ======================================================
// STAFF
// ======================================================

func (h *SlotHandler) SetAvailability(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "is_available is required.")
		return
	}

	slot, err := h.toggle.Execute(c.Request.Context(), middleware.ActorFrom(c), id, *req.IsAvailable)
	if err != nil {
		httperr.FromError(c, err, "slot_update_failed")
		return
	}

	httpresp.OK(c, bookinguc.NewSlotView(*slot))
}

func (h *SlotHandler) Generate(c *gin.Context) {
	a, businessID, ok := businessScope(c)
	if !ok {
		return
	}

	var req GenerateSlotsRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, "invalid_request", "Invalid body.")
			return
		}
	}
	if req.Days <= 0 {
		req.Days = h.horizon
	}

	created, err := h.generate.Execute(c.Request.Context(), a, businessID, req.Days)
	if err != nil {
		httperr.FromError(c, err, "slot_generate_failed")
		return
	}

	httpresp.OK(c, gin.H{"created": created, "days": req.Days})
}
