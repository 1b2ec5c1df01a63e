package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/kalshme/kalshme/internal/domain"
)

// PortfolioService defines the methods that the portfolio handler requires.
type PortfolioService interface {
	GetPositions(ctx context.Context) ([]domain.PositionWithMarket, error)
	GetSettlements(ctx context.Context) ([]domain.SettlementWithMarket, error)
	GetExecutedOrders(ctx context.Context, limit int) ([]domain.Order, error)
}

// PortfolioHandler serves the account portfolio endpoints.
type PortfolioHandler struct {
	portfolio PortfolioService
	logger    *slog.Logger
}

// NewPortfolioHandler creates a PortfolioHandler with the given service and logger.
func NewPortfolioHandler(portfolio PortfolioService, logger *slog.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		portfolio: portfolio,
		logger:    logHandler(logger, "portfolio"),
	}
}

// listPositionsResponse wraps the list positions response.
type listPositionsResponse struct {
	Positions []domain.PositionWithMarket `json:"positions"`
}

// ListPositions returns the account's non-zero positions with market details.
// GET /api/kalshi/positions
func (h *PortfolioHandler) ListPositions(w http.ResponseWriter, r *http.Request) {
	positions, err := h.portfolio.GetPositions(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "handler: list positions failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to fetch positions")
		return
	}

	if positions == nil {
		positions = []domain.PositionWithMarket{}
	}

	writeJSON(w, http.StatusOK, listPositionsResponse{Positions: positions})
}

// listSettlementsResponse wraps the list settlements response.
type listSettlementsResponse struct {
	Settlements []domain.SettlementWithMarket `json:"settlements"`
}

// ListSettlements returns the account's settlements with market details.
// GET /api/kalshi/settlements
func (h *PortfolioHandler) ListSettlements(w http.ResponseWriter, r *http.Request) {
	settlements, err := h.portfolio.GetSettlements(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "handler: list settlements failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to fetch settlements")
		return
	}

	if settlements == nil {
		settlements = []domain.SettlementWithMarket{}
	}

	writeJSON(w, http.StatusOK, listSettlementsResponse{Settlements: settlements})
}

// listOrdersResponse wraps the list orders response.
type listOrdersResponse struct {
	Orders []domain.Order `json:"orders"`
}

// ListOrders returns the account's executed orders, most recent first as the
// exchange delivers them.
// GET /api/kalshi/orders?limit=100
func (h *PortfolioHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, 100, 1000)

	orders, err := h.portfolio.GetExecutedOrders(r.Context(), limit)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "handler: list orders failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to fetch orders")
		return
	}

	if orders == nil {
		orders = []domain.Order{}
	}

	writeJSON(w, http.StatusOK, listOrdersResponse{Orders: orders})
}
