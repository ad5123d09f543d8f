package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wallblue4/tustockya-backend/internal/apierror"
	"github.com/wallblue4/tustockya-backend/internal/dto"
	"github.com/wallblue4/tustockya-backend/internal/service"
)

type InventoryHandler struct{ svc service.LedgerService }

func NewInventoryHandler(svc service.LedgerService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// Availability godoc
// @Summary      Availability of a reference at the caller's location
// @Description  Per-size stock and display quantities plus prices, enriched with catalog data when the catalog service answers.
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        reference path string true "Reference code"
// @Success      200 {object} dto.AvailabilityResponse
// @Router       /v1/inventory/{reference} [get]
func (h *InventoryHandler) Availability(c *gin.Context) {
	locationID, ok := actorLocationID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Availability(c.Request.Context(), c.Param("reference"), locationID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// OtherLocations godoc
// @Summary      Availability of a reference at every other location
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        reference path string true "Reference code"
// @Success      200 {object} dto.OtherLocationsResponse
// @Router       /v1/inventory/{reference}/other-locations [get]
func (h *InventoryHandler) OtherLocations(c *gin.Context) {
	locationID, ok := actorLocationID(c)
	if !ok {
		return
	}
	resp, err := h.svc.OtherLocations(c.Request.Context(), c.Param("reference"), locationID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AdjustStock godoc
// @Summary      Manual stock adjustment
// @Description  Administrator correction with a mandatory reason; decrements still refuse to go below zero.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.AdjustStockRequest true "Adjustment detail"
// @Success      200 {object} dto.StockMovementResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/inventory/adjust [post]
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	var req dto.AdjustStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AdjustStock(c.Request.Context(), actorID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ShiftDisplay godoc
// @Summary      Move units between stockroom and display shelf
// @Tags         inventory
// @Accept       json
// @Security     BearerAuth
// @Param        body body dto.DisplayShiftRequest true "Shift detail"
// @Success      204
// @Failure      409 {object} apierror.APIError
// @Router       /v1/inventory/display-shift [post]
func (h *InventoryHandler) ShiftDisplay(c *gin.Context) {
	var req dto.DisplayShiftRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ShiftDisplay(c.Request.Context(), actorID(c), req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Movements godoc
// @Summary      Audit trail for an inventory key
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        reference   path  string true  "Reference code"
// @Param        location_id query string true  "Location UUID"
// @Param        size        query string true  "Size"
// @Param        limit       query int    false "Max entries (default 100)"
// @Success      200 {object} dto.StockMovementListResponse
// @Router       /v1/inventory/{reference}/movements [get]
func (h *InventoryHandler) Movements(c *gin.Context) {
	locationID, err := uuid.Parse(c.Query("location_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid location_id"))
		return
	}
	size := c.Query("size")
	if size == "" {
		c.JSON(http.StatusBadRequest, apierror.New("size is required"))
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	resp, err := h.svc.Movements(c.Request.Context(), c.Param("reference"), locationID, size, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
