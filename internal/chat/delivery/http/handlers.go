package http

import (
	"encoding/json"
	"net/http"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"

	"exam-prep-assistant/internal/chat"
	"exam-prep-assistant/pkg/response"
)

// Stream godoc
// @Summary     Stream a chat turn
// @Description Runs one user turn and streams server-sent events. Each event's data is a JSON object:
// @Description {"type":"token","data":"..."}, {"type":"quiz_json","data":"..."}, {"type":"stream_end"} or {"type":"error","data":"..."}.
// @Tags        Chat
// @Accept      json
// @Produce     text/event-stream
// @Param       body body streamReq true "User query and thread id"
// @Success     200 {string} string "SSE stream"
// @Failure     400 {object} response.Resp "Bad Request"
// @Router      /chat/stream [POST]
func (h *handler) Stream(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processStreamReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	c.Header("Content-Type", sse.ContentType)
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	sink := func(e chat.StreamEvent) {
		payload, mErr := json.Marshal(e)
		if mErr != nil {
			h.l.Errorf(ctx, "marshal stream event: %v", mErr)
			return
		}
		c.Render(-1, sse.Event{Data: string(payload)})
		c.Writer.Flush()
	}

	// The error was already delivered to the client as an SSE event.
	_ = h.uc.StreamTurn(ctx, req.toInput(), sink)
}

// GetThread godoc
// @Summary     Get thread history
// @Description Returns the stored messages of a conversation thread.
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Param       thread_id path string true "Thread ID"
// @Success     200 {object} threadResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /chat/threads/{thread_id} [GET]
func (h *handler) GetThread(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.processThreadIDReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	conv, err := h.uc.GetThread(ctx, id)
	if err != nil {
		h.l.Errorf(ctx, "uc.GetThread: %v", err)
		h.writeError(c, err)
		return
	}

	response.OK(c, h.newThreadResp(conv))
}

// DeleteThread godoc
// @Summary     Delete a thread
// @Description Forgets the stored conversation of a thread.
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Param       thread_id path string true "Thread ID"
// @Success     200 {object} response.Resp "OK"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /chat/threads/{thread_id} [DELETE]
func (h *handler) DeleteThread(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.processThreadIDReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	if err := h.uc.DeleteThread(ctx, id); err != nil {
		h.l.Errorf(ctx, "uc.DeleteThread: %v", err)
		h.writeError(c, err)
		return
	}

	response.OK(c, nil)
}
