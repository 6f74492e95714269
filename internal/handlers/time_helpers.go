package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/petcrm/internal/domain/actor"
	"github.com/BruksfildServices01/petcrm/internal/httperr"
	"github.com/BruksfildServices01/petcrm/internal/middleware"
	"github.com/BruksfildServices01/petcrm/internal/timezone"
)

// --------------------------------------------------
// Request scope
// --------------------------------------------------

// businessScope resolves the business of the request. Admins pass it as
// ?business_id=.
func businessScope(c *gin.Context) (actor.Actor, uint, bool) {
	a := middleware.ActorFrom(c)

	var requested uint
	if v := c.Query("business_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			requested = uint(id)
		}
	}

	businessID, ok := actor.ResolveBusiness(a, requested)
	if !ok {
		httperr.BadRequest(c, httperr.CodeBusinessNeeded, "business_id is required")
		return nil, 0, false
	}
	return a, businessID, true
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return 0, false
	}
	return uint(id), true
}

func optionalUint(c *gin.Context, key string) (*uint, bool) {
	v := c.Query(key)
	if v == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_"+key, "Invalid "+key+".")
		return nil, false
	}
	out := uint(id)
	return &out, true
}

// --------------------------------------------------
// Dates
// --------------------------------------------------

// dateRange reads ?from=&to= (YYYY-MM-DD). Missing bounds default to today
// and today + horizon days in tz.
func dateRange(c *gin.Context, tz string, horizon int, now time.Time) (time.Time, time.Time, bool) {
	from := timezone.DateOf(now, tz)
	to := from.AddDate(0, 0, horizon)

	if v := c.Query("from"); v != "" {
		d, err := timezone.ParseDate(v)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Dates must use YYYY-MM-DD.")
			return time.Time{}, time.Time{}, false
		}
		from = d
	}
	if v := c.Query("to"); v != "" {
		d, err := timezone.ParseDate(v)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Dates must use YYYY-MM-DD.")
			return time.Time{}, time.Time{}, false
		}
		to = d
	}
	return from, to, true
}
