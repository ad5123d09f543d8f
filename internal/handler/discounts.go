package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wallblue4/tustockya-backend/internal/dto"
	"github.com/wallblue4/tustockya-backend/internal/service"
)

type DiscountsHandler struct{ svc service.DiscountService }

func NewDiscountsHandler(svc service.DiscountService) *DiscountsHandler {
	return &DiscountsHandler{svc: svc}
}

// Request godoc
// @Summary      Request a discount
// @Description  Opens a pending discount request; amount is capped by configuration.
// @Tags         discounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RequestDiscountRequest true "Discount detail"
// @Success      201  {object} dto.DiscountResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/discounts [post]
func (h *DiscountsHandler) Request(c *gin.Context) {
	var req dto.RequestDiscountRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Request(c.Request.Context(), actorID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Review godoc
// @Summary      Review a discount request
// @Description  Approves or rejects a pending request. Settled requests cannot be re-reviewed.
// @Tags         discounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ReviewDiscountRequest true "Review decision"
// @Success      200  {object} dto.DiscountResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/discounts/review [post]
func (h *DiscountsHandler) Review(c *gin.Context) {
	var req dto.ReviewDiscountRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Review(c.Request.Context(), actorID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MyRequests godoc
// @Summary      The caller's discount requests with a summary
// @Tags         discounts
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.DiscountListResponse
// @Router       /v1/discounts/mine [get]
func (h *DiscountsHandler) MyRequests(c *gin.Context) {
	resp, err := h.svc.MyRequests(c.Request.Context(), actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Pending godoc
// @Summary      Discount requests awaiting review
// @Tags         discounts
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.DiscountListResponse
// @Router       /v1/discounts/pending [get]
func (h *DiscountsHandler) Pending(c *gin.Context) {
	resp, err := h.svc.Pending(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
