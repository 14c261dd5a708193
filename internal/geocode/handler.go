package geocode

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rentalsearch/internal/geo"
	"rentalsearch/platform/httpkit"
)

// Handler exposes the geocoding endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Search handles GET /api/v1/geocode/search?q=...
func (h *Handler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "query 'q' is required (min 3 chars)", nil)
		return
	}

	results, err := h.svc.Search(c.Request.Context(), req.Query)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, results)
}

// Reverse handles GET /api/v1/geocode/reverse?lat=...&lon=...
func (h *Handler) Reverse(c *gin.Context) {
	var req ReverseRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "'lat' and 'lon' must be valid coordinates", nil)
		return
	}

	place, err := h.svc.Reverse(c.Request.Context(), geo.Coordinate{Latitude: *req.Latitude, Longitude: *req.Longitude})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, place)
}
