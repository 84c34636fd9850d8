package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/patungan-app/backend/internal/service"
	"github.com/patungan-app/backend/internal/storage"
)

// Handler exposes the session service over HTTP.
type Handler struct {
	svc *service.SessionService
}

// NewHandler creates a new Handler backed by the given service.
func NewHandler(svc *service.SessionService) *Handler {
	return &Handler{svc: svc}
}

// CreateSession handles POST /api/sessions.
func (h *Handler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	view, err := h.svc.CreateSession(c.Request.Context(), req.Receipt.toDomain(), req.People)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sessionResponse(view))
}

// ListSessions handles GET /api/sessions.
func (h *Handler) ListSessions(c *gin.Context) {
	sessions, err := h.svc.ListSessions(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	summaries := make([]SessionSummary, len(sessions))
	for i, session := range sessions {
		summaries[i] = sessionSummary(session)
	}
	c.JSON(http.StatusOK, summaries)
}

// GetSession handles GET /api/sessions/:id.
func (h *Handler) GetSession(c *gin.Context) {
	view, err := h.svc.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse(view))
}

// UpdateReceipt handles PUT /api/sessions/:id/receipt.
func (h *Handler) UpdateReceipt(c *gin.Context) {
	var req ReceiptPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	view, err := h.svc.UpdateReceipt(c.Request.Context(), c.Param("id"), req.toDomain())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse(view))
}

// UpdatePeople handles PUT /api/sessions/:id/people.
func (h *Handler) UpdatePeople(c *gin.Context) {
	var req PeopleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	view, err := h.svc.UpdatePeople(c.Request.Context(), c.Param("id"), req.People)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse(view))
}

// SetAssignments handles PUT /api/sessions/:id/assignments.
func (h *Handler) SetAssignments(c *gin.Context) {
	var req AssignmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	view, err := h.svc.SetAssignments(c.Request.Context(), c.Param("id"), req.Assignments)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse(view))
}

// ToggleAssignment handles POST /api/sessions/:id/assignments/toggle.
func (h *Handler) ToggleAssignment(c *gin.Context) {
	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	view, err := h.svc.ToggleAssignment(c.Request.Context(), c.Param("id"), req.ItemID, req.PersonID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse(view))
}

// Summary handles GET /api/sessions/:id/summary.
func (h *Handler) Summary(c *gin.Context) {
	summary, err := h.svc.Summary(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, SummaryResponse{
		Stats:               StatsResponse(summary.Stats),
		PaymentInstructions: summary.PaymentInstructions,
		Export:              summary.Export,
	})
}

// Finalize handles POST /api/sessions/:id/finalize.
func (h *Handler) Finalize(c *gin.Context) {
	payload, err := h.svc.Finalize(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

// DeleteSession handles DELETE /api/sessions/:id.
func (h *Handler) DeleteSession(c *gin.Context) {
	if err := h.svc.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// writeError maps service errors onto HTTP statuses. Validation failures
// carry their full error list in the response body.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrIncompleteAssignment):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		if verr, ok := service.AsValidationError(err); ok {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: verr.Errors})
			return
		}
		slog.Error("Request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
