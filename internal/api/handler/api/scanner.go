package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/newthinker/stratix/internal/api/middleware"
	"github.com/newthinker/stratix/internal/api/response"
	"github.com/newthinker/stratix/internal/core"
	"github.com/newthinker/stratix/internal/metrics"
	"github.com/newthinker/stratix/internal/scanner"
)

// ScannerHandler runs market scans for the session's profile.
type ScannerHandler struct {
	scanner *scanner.Scanner
	metrics *metrics.Registry
}

// NewScannerHandler creates a new scanner handler.
func NewScannerHandler(s *scanner.Scanner, reg *metrics.Registry) *ScannerHandler {
	return &ScannerHandler{scanner: s, metrics: reg}
}

// Filters returns the advanced filter catalog with level requirements.
func (h *ScannerHandler) Filters(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, scanner.AdvancedFilters())
}

// Scan runs a scan. Advanced filters above the profile's level are
// reported as locked, not applied.
func (h *ScannerHandler) Scan(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.ProfileFrom(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, core.ErrSessionNotFound)
		return
	}

	var req scanner.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, core.WrapError(core.ErrInvalidRequest, err))
		return
	}

	start := time.Now()
	resp, err := h.scanner.Scan(r.Context(), &p, req)
	if err != nil {
		response.DomainError(w, err)
		return
	}
	if h.metrics != nil {
		h.metrics.RecordScan(time.Since(start).Seconds())
		for _, locked := range resp.Locked {
			h.metrics.RecordGateDenial("scanner:" + locked.Name)
		}
	}

	response.JSON(w, http.StatusOK, resp)
}
