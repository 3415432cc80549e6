package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"exam-prep-assistant/internal/chat"
	"exam-prep-assistant/pkg/response"
)

// writeError translates use-case errors into envelope responses.
func (h *handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, chat.ErrThreadNotFound):
		response.NotFound(c, err)
	case errors.Is(err, chat.ErrEmptyThreadID), errors.Is(err, chat.ErrEmptyQuery):
		response.Error(c, err, nil)
	default:
		response.InternalError(c, err)
	}
}
