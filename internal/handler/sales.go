package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wallblue4/tustockya-backend/internal/dto"
	"github.com/wallblue4/tustockya-backend/internal/service"
)

type SalesHandler struct{ svc service.SaleService }

func NewSalesHandler(svc service.SaleService) *SalesHandler { return &SalesHandler{svc: svc} }

// CreateSale godoc
// @Summary      Register a sale
// @Description  Registers a multi-item, multi-payment sale. Immediate sales debit stock atomically; deferred sales wait for confirmation.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateSaleRequest true "Sale detail"
// @Success      201  {object} dto.SaleResponse
// @Failure      400  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/sales [post]
func (h *SalesHandler) CreateSale(c *gin.Context) {
	var req dto.CreateSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	locationID, ok := actorLocationID(c)
	if !ok {
		return
	}
	resp, err := h.svc.CreateSale(c.Request.Context(), actorID(c), locationID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ConfirmSale godoc
// @Summary      Settle a pending sale
// @Description  Confirms (debiting stock) or rejects a sale awaiting confirmation. Both outcomes are terminal.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ConfirmSaleRequest true "Confirmation decision"
// @Success      200  {object} dto.SaleResponse
// @Failure      404  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/sales/confirm [post]
func (h *SalesHandler) ConfirmSale(c *gin.Context) {
	var req dto.ConfirmSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ConfirmSale(c.Request.Context(), actorID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TodaySales godoc
// @Summary      Today's sales for the current seller
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.SaleListResponse
// @Router       /v1/sales/today [get]
func (h *SalesHandler) TodaySales(c *gin.Context) {
	resp, err := h.svc.TodaySales(c.Request.Context(), actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PendingConfirmations godoc
// @Summary      Sales awaiting confirmation at the caller's location
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.SaleListResponse
// @Router       /v1/sales/pending [get]
func (h *SalesHandler) PendingConfirmations(c *gin.Context) {
	locationID, ok := actorLocationID(c)
	if !ok {
		return
	}
	resp, err := h.svc.PendingConfirmations(c.Request.Context(), locationID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
