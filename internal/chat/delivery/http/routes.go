package http

import (
	"exam-prep-assistant/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes maps HTTP verbs and paths to handler methods.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	rg.POST("/stream", mw.TraceID(), h.Stream)

	threads := rg.Group("/threads")
	{
		threads.GET("/:thread_id", mw.TraceID(), h.GetThread)
		threads.DELETE("/:thread_id", mw.TraceID(), h.DeleteThread)
	}
}
