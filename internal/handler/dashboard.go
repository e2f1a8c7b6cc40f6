package handler

import (
	"net/http"

	"repairs/internal/dto"
	"repairs/internal/resource"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// DashboardView is the home screen: the server's analytics plus the billing
// and stock figures the UI shows next to them. Sections other than Stats are
// omitted when their call fails.
type DashboardView struct {
	Stats         dto.DashboardStats  `json:"stats"`
	Profit        decimal.Decimal     `json:"profit"`
	Payments      *dto.PaymentSummary `json:"payments,omitempty"`
	Expenses      *dto.ExpenseStats   `json:"expenses,omitempty"`
	LowStockCount *int                `json:"lowStockCount,omitempty"`
}

type DashboardHandler struct {
	set    *resource.Set
	tokens TokenSource
}

func NewDashboardHandler(set *resource.Set, tokens TokenSource) *DashboardHandler {
	return &DashboardHandler{set: set, tokens: tokens}
}

// Get godoc
// @Summary Dashboard figures
// @Tags dashboard
// @Produce json
// @Success 200 {object} DashboardView
// @Failure 502 {object} apierror.APIError
// @Router /v1/dashboard [get]
func (h *DashboardHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	token := h.tokens.AccessToken()

	stats, err := h.set.Dashboard.Stats(ctx, token).Unwrap()
	if err != nil {
		upstreamFailure(c, err)
		return
	}
	view := DashboardView{Stats: stats, Profit: stats.Profit()}

	if summary, err := h.set.Payments.Summary(ctx, token).Unwrap(); err == nil {
		view.Payments = &summary
	} else {
		log.Warn().Err(err).Msg("dashboard: payment summary unavailable")
	}
	if expenses, err := h.set.Expenses.Stats(ctx, token).Unwrap(); err == nil {
		view.Expenses = &expenses
	} else {
		log.Warn().Err(err).Msg("dashboard: expense stats unavailable")
	}
	if low, err := h.set.Products.LowStock(ctx, token).Unwrap(); err == nil {
		n := len(low)
		view.LowStockCount = &n
	} else {
		log.Warn().Err(err).Msg("dashboard: low stock unavailable")
	}

	c.JSON(http.StatusOK, view)
}
