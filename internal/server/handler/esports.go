package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/kalshme/kalshme/internal/domain"
	"github.com/kalshme/kalshme/internal/service"
)

// invalidLeagueMsg is the response body for a missing or unknown league
// query parameter. Kept stable; dashboard clients match on it.
const invalidLeagueMsg = "Invalid league. Must be one of: LEC, LCS, LPL, LCK"

// EsportsService defines the methods that the esports handler requires.
type EsportsService interface {
	GetLeagueMarkets(ctx context.Context, lg domain.League) (service.LeagueMarkets, error)
	GetLeagueEvents(ctx context.Context, lg domain.League) (service.LeagueEvents, error)
}

// EsportsHandler serves the LoL esports market endpoints.
type EsportsHandler struct {
	esports EsportsService
	logger  *slog.Logger
}

// NewEsportsHandler creates an EsportsHandler with the given service and logger.
func NewEsportsHandler(esports EsportsService, logger *slog.Logger) *EsportsHandler {
	return &EsportsHandler{
		esports: esports,
		logger:  logHandler(logger, "esports"),
	}
}

// LeagueMarkets returns the open markets for one league.
// GET /api/kalshi/lol-esports?league={LEC|LCS|LPL|LCK}
func (h *EsportsHandler) LeagueMarkets(w http.ResponseWriter, r *http.Request) {
	lg, err := domain.ParseLeague(r.URL.Query().Get("league"))
	if err != nil {
		writeError(w, http.StatusBadRequest, invalidLeagueMsg)
		return
	}

	resp, err := h.esports.GetLeagueMarkets(r.Context(), lg)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "handler: league markets failed",
			slog.String("league", string(lg)),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to fetch markets")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// LeagueEvents returns the league's markets grouped by event.
// GET /api/kalshi/lol-esports/events?league={LEC|LCS|LPL|LCK}
func (h *EsportsHandler) LeagueEvents(w http.ResponseWriter, r *http.Request) {
	lg, err := domain.ParseLeague(r.URL.Query().Get("league"))
	if err != nil {
		writeError(w, http.StatusBadRequest, invalidLeagueMsg)
		return
	}

	resp, err := h.esports.GetLeagueEvents(r.Context(), lg)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "handler: league events failed",
			slog.String("league", string(lg)),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to fetch markets")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
