package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rentalsearch/internal/sessions/service"
	"rentalsearch/internal/sessions/transport"
	"rentalsearch/platform/httpkit"
	"rentalsearch/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidSessionID = "invalid session id"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.DELETE("/:id", h.Delete)
	rg.PUT("/:id/center", h.SetCenter)
	rg.PUT("/:id/radius", h.SetRadius)
	rg.PUT("/:id/dates", h.SetDates)
	rg.PUT("/:id/order", h.SetOrder)
	rg.PUT("/:id/filter", h.SetFilter)
	rg.DELETE("/:id/filter", h.ClearFilter)
	rg.GET("/:id/results", h.Results)
	rg.GET("/:id/providers", h.Providers)
}

func (h *Handler) Create(c *gin.Context) {
	httpkit.Created(c, h.svc.Create(c.Request.Context()))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	result, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if httpkit.HandleError(c, h.svc.Delete(c.Request.Context(), id)) {
		return
	}
	httpkit.NoContent(c)
}

func (h *Handler) SetCenter(c *gin.Context) {
	var req transport.CenterRequest
	id, ok := h.bind(c, &req)
	if !ok {
		return
	}
	result, err := h.svc.SetCenter(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) SetRadius(c *gin.Context) {
	var req transport.RadiusRequest
	id, ok := h.bind(c, &req)
	if !ok {
		return
	}
	result, err := h.svc.SetRadius(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) SetDates(c *gin.Context) {
	var req transport.DatesRequest
	id, ok := h.bind(c, &req)
	if !ok {
		return
	}
	result, err := h.svc.SetDates(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) SetOrder(c *gin.Context) {
	var req transport.OrderRequest
	id, ok := h.bind(c, &req)
	if !ok {
		return
	}
	result, err := h.svc.SetOrder(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) SetFilter(c *gin.Context) {
	var req transport.FilterRequest
	id, ok := h.bind(c, &req)
	if !ok {
		return
	}
	result, err := h.svc.SetFilter(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) ClearFilter(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	result, err := h.svc.ClearFilter(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) Results(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	result, err := h.svc.Results(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) Providers(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	result, err := h.svc.Providers(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// bind parses the session id and a validated JSON body into req.
func (h *Handler) bind(c *gin.Context, req interface{}) (uuid.UUID, bool) {
	id, ok := parseID(c)
	if !ok {
		return uuid.Nil, false
	}
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return uuid.Nil, false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Describe(err))
		return uuid.Nil, false
	}
	return id, true
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidSessionID, nil)
		return uuid.Nil, false
	}
	return id, true
}
