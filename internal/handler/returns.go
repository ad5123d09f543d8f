package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wallblue4/tustockya-backend/internal/dto"
	"github.com/wallblue4/tustockya-backend/internal/service"
)

type ReturnsHandler struct{ svc service.ReturnService }

func NewReturnsHandler(svc service.ReturnService) *ReturnsHandler {
	return &ReturnsHandler{svc: svc}
}

// CreateReturn godoc
// @Summary      Request a return
// @Description  Opens a return of a delivered transfer; locations are swapped from the original.
// @Tags         returns
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateReturnRequest true "Return detail"
// @Success      201  {object} dto.ShipmentResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/returns [post]
func (h *ReturnsHandler) CreateReturn(c *gin.Context) {
	var req dto.CreateReturnRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateReturn(c.Request.Context(), actorID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Accept godoc
// @Summary      Accept a return (store pick)
// @Tags         returns
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Return UUID"
// @Success      200 {object} dto.ShipmentResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/returns/{id}/accept [post]
func (h *ReturnsHandler) Accept(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Accept(c.Request.Context(), actorID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// StartTransit godoc
// @Summary      Mark a return picked up
// @Tags         returns
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Return UUID"
// @Success      200 {object} dto.ShipmentResponse
// @Router       /v1/returns/{id}/transit [post]
func (h *ReturnsHandler) StartTransit(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.StartTransit(c.Request.Context(), actorID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Deliver godoc
// @Summary      Mark a return delivered
// @Description  Credits the destination and notifies the original requester.
// @Tags         returns
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Return UUID"
// @Success      200 {object} dto.ShipmentResponse
// @Router       /v1/returns/{id}/deliver [post]
func (h *ReturnsHandler) Deliver(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Deliver(c.Request.Context(), actorID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cancel godoc
// @Summary      Cancel a return
// @Tags         returns
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Return UUID"
// @Success      200 {object} dto.ShipmentResponse
// @Router       /v1/returns/{id}/cancel [post]
func (h *ReturnsHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Cancel(c.Request.Context(), actorID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MyReturns godoc
// @Summary      The caller's return requests
// @Tags         returns
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.ShipmentListResponse
// @Router       /v1/returns/mine [get]
func (h *ReturnsHandler) MyReturns(c *gin.Context) {
	resp, err := h.svc.MyReturns(c.Request.Context(), actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
