package geocode

import (
	apphttp "rentalsearch/internal/http"
	"rentalsearch/platform/config"
	"rentalsearch/platform/logger"
)

// Module wires the geocoding HTTP routes.
type Module struct {
	service *Service
	handler *Handler
}

func NewModule(cfg config.GeocodeConfig, log *logger.Logger) *Module {
	svc := NewService(cfg, log)
	h := NewHandler(svc)
	return &Module{service: svc, handler: h}
}

// Service returns the geocoder for use by other modules.
func (m *Module) Service() *Service {
	return m.service
}

func (m *Module) Name() string {
	return "geocode"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/geocode")
	group.GET("/search", m.handler.Search)
	group.GET("/reverse", m.handler.Reverse)
}

var _ apphttp.Module = (*Module)(nil)
