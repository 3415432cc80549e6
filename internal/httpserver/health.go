package httpserver

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"exam-prep-assistant/pkg/response"
)

// Health response constants (single source for version and service identity).
const (
	HealthVersion = "1.0.0"
	ServiceName   = "exam-prep-assistant"

	readyTimeout = 2 * time.Second
)

type healthResp struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
	Tools   *bool  `json:"tools_enabled,omitempty"`
}

func (srv HTTPServer) newHealthResp(status string) healthResp {
	return healthResp{Status: status, Service: ServiceName, Version: HealthVersion}
}

// healthCheck reports the process is serving and whether the search tool is compiled in.
// @Summary Health Check
// @Description Check if the API is healthy
// @Tags Health
// @Produce json
// @Success 200 {object} healthResp "API is healthy"
// @Router /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	resp := srv.newHealthResp("healthy")
	if srv.toolsEnabled != nil {
		enabled := srv.toolsEnabled()
		resp.Tools = &enabled
	}
	response.OK(c, resp)
}

// readyCheck runs the readiness check, which pings the checkpoint backend when it is remote.
// @Summary Readiness Check
// @Description Check if the API and its conversation store can serve traffic
// @Tags Health
// @Produce json
// @Success 200 {object} healthResp "API is ready"
// @Failure 503 {object} response.Resp "A dependency is unreachable"
// @Router /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	if srv.readiness != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
		defer cancel()
		if err := srv.readiness(ctx); err != nil {
			srv.l.Warnf(ctx, "readiness check failed: %v", err)
			response.ServiceUnavailable(c, srv.newHealthResp("not ready"), err)
			return
		}
	}
	response.OK(c, srv.newHealthResp("ready"))
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Description Check if the API is alive
// @Tags Health
// @Produce json
// @Success 200 {object} healthResp "API is alive"
// @Router /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, srv.newHealthResp("alive"))
}
