package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wallblue4/tustockya-backend/internal/service"
)

type LocationsHandler struct{ svc service.LocationService }

func NewLocationsHandler(svc service.LocationService) *LocationsHandler {
	return &LocationsHandler{svc: svc}
}

// List godoc
// @Summary      Active stores and warehouses
// @Tags         locations
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.LocationResponse
// @Router       /v1/locations [get]
func (h *LocationsHandler) List(c *gin.Context) {
	resp, err := h.svc.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
