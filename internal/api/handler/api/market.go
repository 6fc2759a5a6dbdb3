package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/newthinker/stratix/internal/api/response"
	"github.com/newthinker/stratix/internal/core"
	"github.com/newthinker/stratix/internal/marketdata"
)

const defaultHistoryDays = 365

// MarketHandler serves quotes, OHLC history and news.
type MarketHandler struct {
	provider marketdata.Provider
}

// NewMarketHandler creates a new market data handler.
func NewMarketHandler(provider marketdata.Provider) *MarketHandler {
	return &MarketHandler{provider: provider}
}

// Tickers returns the tradable universe.
func (h *MarketHandler) Tickers(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, marketdata.Universe)
}

// Quote returns the latest quote for {symbol}.
func (h *MarketHandler) Quote(w http.ResponseWriter, r *http.Request) {
	quote, err := h.provider.FetchQuote(r.Context(), r.PathValue("symbol"))
	if err != nil {
		response.DomainError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, quote)
}

// OHLC returns daily candles for {symbol}. The optional "days" query
// parameter bounds the window, defaulting to one year.
func (h *MarketHandler) OHLC(w http.ResponseWriter, r *http.Request) {
	days := defaultHistoryDays
	if v := r.URL.Query().Get("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			response.Error(w, http.StatusBadRequest,
				core.WrapError(core.ErrInvalidRequest, errors.New("days must be a positive integer")))
			return
		}
		days = parsed
	}

	end := time.Now()
	start := end.AddDate(0, 0, -days)
	bars, err := h.provider.FetchHistory(r.Context(), r.PathValue("symbol"), start, end, "1d")
	if err != nil {
		response.DomainError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, bars)
}

// News returns recent headlines for {symbol}.
func (h *MarketHandler) News(w http.ResponseWriter, r *http.Request) {
	news, err := h.provider.FetchNews(r.Context(), r.PathValue("symbol"))
	if err != nil {
		response.DomainError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, news)
}
