package httpserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	chatHTTP "exam-prep-assistant/internal/chat/delivery/http"
	"exam-prep-assistant/internal/middleware"
	"exam-prep-assistant/internal/model"
)

// RootStatus is the body of GET /.
const RootStatus = "Chatbot API is running"

func (srv HTTPServer) mapHandlers() error {
	mw := middleware.New(srv.l, srv.allowedOrigins)

	srv.registerMiddlewares(mw)
	srv.registerSystemRoutes()

	if err := srv.registerDomainRoutes(mw); err != nil {
		return err
	}

	return nil
}

func (srv HTTPServer) registerMiddlewares(mw middleware.Middleware) {
	srv.gin.Use(gin.Recovery())
	srv.gin.Use(mw.CORS(), mw.TraceID(), mw.RequestLog())

	ctx := context.Background()
	if srv.environment == string(model.EnvironmentProduction) {
		srv.l.Infof(ctx, "CORS mode: production, origins: %v", srv.allowedOrigins)
	} else {
		srv.l.Infof(ctx, "CORS mode: %s, origins: %v", srv.environment, srv.allowedOrigins)
	}
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/", srv.rootCheck)
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/metrics", gin.WrapH(promhttp.HandlerFor(srv.gatherer, promhttp.HandlerOpts{})))

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes registers all domain routes.
func (srv HTTPServer) registerDomainRoutes(mw middleware.Middleware) error {
	ctx := context.Background()

	h := chatHTTP.New(srv.l, srv.chatUC)
	chatHTTP.RegisterRoutes(srv.gin.Group("/chat"), h, mw)
	srv.l.Infof(ctx, "Chat routes registered at /chat/stream and /chat/threads/:thread_id")

	return nil
}

// rootCheck handles GET /
// @Summary Root status
// @Description Reports that the chatbot API is up
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "API is running"
// @Router / [get]
func (srv HTTPServer) rootCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": RootStatus})
}
