package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wallblue4/tustockya-backend/internal/apierror"
	"github.com/wallblue4/tustockya-backend/internal/dto"
	"github.com/wallblue4/tustockya-backend/internal/service"
)

type TransfersHandler struct{ svc service.TransferService }

func NewTransfersHandler(svc service.TransferService) *TransfersHandler {
	return &TransfersHandler{svc: svc}
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return uuid.Nil, false
	}
	return id, true
}

// CreateRequest godoc
// @Summary      Request a transfer
// @Description  Opens a pending transfer of units from another location to the caller's location.
// @Tags         transfers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateTransferRequest true "Transfer detail"
// @Success      201  {object} dto.ShipmentResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/transfers [post]
func (h *TransfersHandler) CreateRequest(c *gin.Context) {
	var req dto.CreateTransferRequest
	if !bindAndValidate(c, &req) {
		return
	}
	locationID, ok := actorLocationID(c)
	if !ok {
		return
	}
	resp, err := h.svc.CreateRequest(c.Request.Context(), actorID(c), locationID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Accept godoc
// @Summary      Accept a transfer (warehouse pick)
// @Description  Confirms the pick and debits the source stock. Fails with 409 when stock is insufficient.
// @Tags         transfers
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Transfer UUID"
// @Success      200 {object} dto.ShipmentResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/transfers/{id}/accept [post]
func (h *TransfersHandler) Accept(c *gin.Context) {
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
// @Summary      Mark a transfer picked up
// @Tags         transfers
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Transfer UUID"
// @Success      200 {object} dto.ShipmentResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/transfers/{id}/transit [post]
func (h *TransfersHandler) StartTransit(c *gin.Context) {
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
// @Summary      Mark a transfer delivered
// @Description  Credits the destination stock in the same transaction as the status change.
// @Tags         transfers
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Transfer UUID"
// @Success      200 {object} dto.ShipmentResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/transfers/{id}/deliver [post]
func (h *TransfersHandler) Deliver(c *gin.Context) {
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
// @Summary      Cancel a transfer
// @Description  Legal from pending or accepted. Cancelling an accepted transfer credits the source back.
// @Tags         transfers
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Transfer UUID"
// @Success      200 {object} dto.ShipmentResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/transfers/{id}/cancel [post]
func (h *TransfersHandler) Cancel(c *gin.Context) {
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

// MyRequests godoc
// @Summary      The caller's transfer requests with a status summary
// @Tags         transfers
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.ShipmentListResponse
// @Router       /v1/transfers/mine [get]
func (h *TransfersHandler) MyRequests(c *gin.Context) {
	resp, err := h.svc.MyRequests(c.Request.Context(), actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PendingForKeeper godoc
// @Summary      Transfers awaiting warehouse action
// @Tags         transfers
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.ShipmentListResponse
// @Router       /v1/transfers/pending [get]
func (h *TransfersHandler) PendingForKeeper(c *gin.Context) {
	resp, err := h.svc.PendingForKeeper(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AssignedToCourier godoc
// @Summary      Shipments currently assigned to the calling courier
// @Tags         transfers
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.ShipmentListResponse
// @Router       /v1/transfers/assigned [get]
func (h *TransfersHandler) AssignedToCourier(c *gin.Context) {
	resp, err := h.svc.AssignedToCourier(c.Request.Context(), actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
