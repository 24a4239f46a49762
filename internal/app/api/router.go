package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Apurer/souvenir-registry/internal/app/registry"
	manufacturerhandlers "github.com/Apurer/souvenir-registry/internal/domains/manufacturers/adapters/http/handlers"
	manufacturerports "github.com/Apurer/souvenir-registry/internal/domains/manufacturers/ports"
	souvenirhandlers "github.com/Apurer/souvenir-registry/internal/domains/souvenirs/adapters/http/handlers"
	apierrors "github.com/Apurer/souvenir-registry/internal/shared/errors"
)

// NewRouter mounts the /v1 API, /healthz and, when gatherer is non-nil, /metrics.
func NewRouter(serviceName string, reg *registry.Registry, workflows manufacturerports.WorkflowOrchestrator, gatherer prometheus.Gatherer) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware(serviceName))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	responder := apierrors.NewChainedResponder("", manufacturerhandlers.ProblemFor, souvenirhandlers.ProblemFor)
	v1 := router.Group("/v1")
	manufacturerhandlers.NewManufacturerAPI(reg.Manufacturers, reg.Souvenirs, workflows, responder).Register(v1)
	souvenirhandlers.NewSouvenirAPI(reg.Souvenirs, responder).Register(v1)
	return router
}
