package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wallblue4/tustockya-backend/internal/dto"
	"github.com/wallblue4/tustockya-backend/internal/service"
)

type ExpensesHandler struct{ svc service.ExpenseService }

func NewExpensesHandler(svc service.ExpenseService) *ExpensesHandler {
	return &ExpensesHandler{svc: svc}
}

// Create godoc
// @Summary      Record an expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateExpenseRequest true "Expense detail"
// @Success      201 {object} dto.ExpenseResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/expenses [post]
func (h *ExpensesHandler) Create(c *gin.Context) {
	var req dto.CreateExpenseRequest
	if !bindAndValidate(c, &req) {
		return
	}
	locationID, ok := actorLocationID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), actorID(c), locationID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Today godoc
// @Summary      The caller's expenses for today
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.ExpenseListResponse
// @Router       /v1/expenses/today [get]
func (h *ExpensesHandler) Today(c *gin.Context) {
	resp, err := h.svc.Today(c.Request.Context(), actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
