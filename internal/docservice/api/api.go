// Package api exposes the document service over HTTP with gin.
// Handlers bind and validate the request shape, delegate to the
// service and map taxonomy errors to status codes.
package api

import (
	"context"

	"docuhub/internal/docservice/service"
	"docuhub/internal/errs"
	"docuhub/pkg/logger"

	"github.com/gin-gonic/gin"
)

// HealthCheck probes one backing dependency.
type HealthCheck func(ctx context.Context) error

// API provides the HTTP handlers of the document service.
type API struct {
	service *service.DocumentService
	health  map[string]HealthCheck
	log     *logger.Logger
}

// NewAPI creates the handler set. health maps a dependency name to
// its probe, reported per-dependency by /healthz.
func NewAPI(svc *service.DocumentService, health map[string]HealthCheck, log *logger.Logger) *API {
	return &API{service: svc, health: health, log: log}
}

// fail writes a taxonomy error with its mapped status code.
func (a *API) fail(c *gin.Context, err error) {
	status := errs.HTTPStatus(err)
	if status >= 500 {
		a.log.WithError(err).Error("Request failed")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
