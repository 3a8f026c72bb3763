// Package transport provides HTTP handlers for the audit domain.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pendergraft/sentinel/internal/audit/domain"
)

// Service defines the audit service interface for HTTP transport.
type Service interface {
	Audit(ctx context.Context, address string) (*domain.RiskAssessment, error)
}

// Handler handles HTTP requests for audits.
type Handler struct {
	svc Service
}

// NewHandler creates a new audit HTTP handler.
func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers the audit routes on a chi router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/audit", h.handleAudit)
}

func (h *Handler) handleAudit(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read request body", "")
		return
	}

	var req domain.AuditRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON", "")
		return
	}
	if strings.TrimSpace(req.ContractAddress) == "" {
		writeError(w, http.StatusBadRequest, "Address is required", "")
		return
	}

	assessment, err := h.svc.Audit(r.Context(), req.ContractAddress)
	switch {
	case errors.Is(err, domain.ErrInvalidAddress):
		writeError(w, http.StatusBadRequest, "Invalid contract address", err.Error())
	case errors.Is(err, domain.ErrModelInvocation) && assessment != nil:
		// Infrastructure failure, but the payload stays renderable.
		writeJSON(w, http.StatusInternalServerError, assessment)
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Audit failed", "")
	default:
		// Soft failures (unverified, provider error, misconfiguration) are
		// 200s: the payload shape is the contract, the status is advisory.
		writeJSON(w, http.StatusOK, assessment)
	}
}

// Helper functions

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := map[string]any{"error": message}
	if details != "" {
		resp["details"] = details
	}
	json.NewEncoder(w).Encode(resp)
}
