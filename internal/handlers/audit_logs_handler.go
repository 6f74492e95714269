package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/petcrm/internal/audit"
	"github.com/BruksfildServices01/petcrm/internal/httperr"
	"github.com/BruksfildServices01/petcrm/internal/httpresp"
	"github.com/BruksfildServices01/petcrm/internal/models"
	"github.com/BruksfildServices01/petcrm/internal/timezone"
)

type auditLister interface {
	List(ctx context.Context, q audit.Query) ([]models.AuditLog, int64, error)
}

type AuditLogsHandler struct {
	logs auditLister
}

func NewAuditLogsHandler(logs auditLister) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs}
}

// GET /api/staff/audit-logs?action&entity&from&to&page&limit
func (h *AuditLogsHandler) List(c *gin.Context) {
	_, businessID, ok := businessScope(c)
	if !ok {
		return
	}

	q := audit.Query{
		BusinessID: businessID,
		Action:     c.Query("action"),
		Entity:     c.Query("entity"),
	}
	q.Page, _ = strconv.Atoi(c.Query("page"))
	q.Limit, _ = strconv.Atoi(c.Query("limit"))

	var err error
	if q.From, err = optionalDate(c.Query("from")); err != nil {
		httperr.BadRequest(c, "invalid_from", "from must be YYYY-MM-DD.")
		return
	}
	if q.To, err = optionalDate(c.Query("to")); err != nil {
		httperr.BadRequest(c, "invalid_to", "to must be YYYY-MM-DD.")
		return
	}

	q.Normalize()
	logs, total, err := h.logs.List(c.Request.Context(), q)
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "Could not list audit logs.")
		return
	}

	httpresp.Paged(c, logs, q.Page, q.Limit, total)
}

func optionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := timezone.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
