package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/petcrm/internal/domain/actor"
	"github.com/BruksfildServices01/petcrm/internal/httperr"
	"github.com/BruksfildServices01/petcrm/internal/httpresp"
	"github.com/BruksfildServices01/petcrm/internal/usecase/dashboard"
)

type DashboardHandler struct {
	dashboard *dashboard.Dashboard
}

func NewDashboardHandler(d *dashboard.Dashboard) *DashboardHandler {
	return &DashboardHandler{dashboard: d}
}

// Get serves the tutor view to tutors and the staff view to everyone else.
func (h *DashboardHandler) Get(c *gin.Context) {
	a, businessID, ok := businessScope(c)
	if !ok {
		return
	}

	if t, isTutor := a.(actor.Tutor); isTutor {
		view, err := h.dashboard.Tutor(c.Request.Context(), t)
		if err != nil {
			httperr.FromError(c, err, "dashboard_failed")
			return
		}
		httpresp.OK(c, view)
		return
	}

	view, err := h.dashboard.Staff(c.Request.Context(), a, businessID)
	if err != nil {
		httperr.FromError(c, err, "dashboard_failed")
		return
	}
	httpresp.OK(c, view)
}
