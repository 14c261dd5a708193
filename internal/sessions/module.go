// Package sessions exposes in-memory rental search sessions over HTTP.
package sessions

import (
	goval "github.com/go-playground/validator/v10"

	apphttp "rentalsearch/internal/http"
	"rentalsearch/internal/search"
	"rentalsearch/internal/sessions/handler"
	"rentalsearch/internal/sessions/repository"
	"rentalsearch/internal/sessions/service"
	"rentalsearch/platform/config"
	"rentalsearch/platform/logger"
	"rentalsearch/platform/validator"
)

type Module struct {
	registry *repository.Registry
	handler  *handler.Handler
}

// NewModule wires the session registry, service and handler. geocoder may
// be nil.
func NewModule(gateway search.Gateway, geocoder service.Geocoder, cfg config.SessionConfig, val *validator.Validator, log *logger.Logger) (*Module, error) {
	if err := val.RegisterValidation("ordertype", validOrderType); err != nil {
		return nil, err
	}

	registry := repository.New(cfg.GetSessionTTL(), log)
	svc := service.New(registry, gateway, geocoder, cfg.GetDefaultRadiusMiles(), log)
	h := handler.New(svc, val)

	return &Module{registry: registry, handler: h}, nil
}

func (m *Module) Name() string {
	return "sessions"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/sessions")
	m.handler.RegisterRoutes(group)
}

// Close stops the idle session sweeper.
func (m *Module) Close() {
	m.registry.Close()
}

func validOrderType(fl goval.FieldLevel) bool {
	_, err := search.ParseOrderType(fl.Field().String())
	return err == nil
}

var _ apphttp.Module = (*Module)(nil)
