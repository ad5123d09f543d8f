package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wallblue4/tustockya-backend/internal/service"
)

type DashboardHandler struct{ svc service.DashboardService }

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// SellerDashboard godoc
// @Summary      Seller day-at-a-glance
// @Description  Today's sales totals, transfer status counts, discount decisions, unread return notices and expenses.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.DashboardResponse
// @Router       /v1/dashboard [get]
func (h *DashboardHandler) SellerDashboard(c *gin.Context) {
	resp, err := h.svc.SellerDashboard(c.Request.Context(), actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
