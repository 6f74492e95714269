package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/petcrm/internal/httperr"
	"github.com/BruksfildServices01/petcrm/internal/httpresp"
	"github.com/BruksfildServices01/petcrm/internal/middleware"
	feeduc "github.com/BruksfildServices01/petcrm/internal/usecase/feed"
)

type FeedHandler struct {
	feed   *feeduc.GetFeed
	thread *feeduc.GetThread
	woof   *feeduc.PostWoof
	reply  *feeduc.PostReply
	global *feeduc.PostGlobalWoof
}

func NewFeedHandler(
	feed *feeduc.GetFeed,
	thread *feeduc.GetThread,
	woof *feeduc.PostWoof,
	reply *feeduc.PostReply,
	global *feeduc.PostGlobalWoof,
) *FeedHandler {
	return &FeedHandler{
		feed:   feed,
		thread: thread,
		woof:   woof,
		reply:  reply,
		global: global,
	}
}

type PostWoofRequest struct {
	PetID      uint   `json:"pet_id" binding:"required"`
	Message    string `json:"message"`
	Visibility string `json:"visibility"`
}

type MessageRequest struct {
	Message string `json:"message"`
}

// Feed serves one page, or with ?since= (RFC 3339) every newer item.
func (h *FeedHandler) Feed(c *gin.Context) {
	a, businessID, ok := businessScope(c)
	if !ok {
		return
	}

	if v := c.Query("since"); v != "" {
		since, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			httperr.BadRequest(c, "invalid_since", "since must be an RFC 3339 timestamp.")
			return
		}

		items, err := h.feed.Since(c.Request.Context(), a, businessID, since)
		if err != nil {
			httperr.FromError(c, err, "feed_failed")
			return
		}
		httpresp.OK(c, gin.H{"items": items})
		return
	}

	page := 1
	if v := c.Query("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			httperr.BadRequest(c, "invalid_page", "page must be a positive integer.")
			return
		}
		page = n
	}

	p, err := h.feed.Page(c.Request.Context(), a, businessID, page)
	if err != nil {
		httperr.FromError(c, err, "feed_failed")
		return
	}
	httpresp.OK(c, p)
}

func (h *FeedHandler) Thread(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	th, err := h.thread.Execute(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		httperr.FromError(c, err, "thread_failed")
		return
	}
	httpresp.OK(c, th)
}

func (h *FeedHandler) PostWoof(c *gin.Context) {
	var req PostWoofRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "pet_id is required.")
		return
	}

	w, err := h.woof.Execute(c.Request.Context(), feeduc.PostWoofInput{
		Actor:      middleware.ActorFrom(c),
		PetID:      req.PetID,
		Message:    req.Message,
		Visibility: req.Visibility,
	})
	if err != nil {
		httperr.FromError(c, err, "woof_failed")
		return
	}
	httpresp.Created(c, w)
}

func (h *FeedHandler) PostReply(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid body.")
		return
	}

	w, err := h.reply.Execute(c.Request.Context(), feeduc.PostReplyInput{
		Actor:    middleware.ActorFrom(c),
		ParentID: id,
		Message:  req.Message,
	})
	if err != nil {
		httperr.FromError(c, err, "reply_failed")
		return
	}
	httpresp.Created(c, w)
}

func (h *FeedHandler) PostGlobalWoof(c *gin.Context) {
	a, businessID, ok := businessScope(c)
	if !ok {
		return
	}

	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid body.")
		return
	}

	gw, err := h.global.Execute(c.Request.Context(), feeduc.PostGlobalWoofInput{
		Actor:      a,
		BusinessID: businessID,
		Message:    req.Message,
	})
	if err != nil {
		httperr.FromError(c, err, "global_woof_failed")
		return
	}
	httpresp.Created(c, gw)
}
