package http

import (
	"strings"

	"github.com/gin-gonic/gin"

	"exam-prep-assistant/internal/chat"
)

// processStreamReq binds and validates the stream request body.
func (h *handler) processStreamReq(c *gin.Context) (streamReq, error) {
	var req streamReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}

// processThreadIDReq reads the thread id URI param.
func (h *handler) processThreadIDReq(c *gin.Context) (string, error) {
	id := strings.TrimSpace(c.Param("thread_id"))
	if id == "" {
		return "", chat.ErrEmptyThreadID
	}
	return id, nil
}
