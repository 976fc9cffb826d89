package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"spottive/internal/infrastructure/storage/postgres"
)

// AuditHandler exposes the audit trail to the back office.
type AuditHandler struct {
	audit *postgres.Audit
}

// NewAuditHandler creates the audit handler.
func NewAuditHandler(audit *postgres.Audit) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// auditView is one audit entry with its snapshot inlined.
type auditView struct {
	postgres.AuditEntry
	State json.RawMessage `json:"state,omitempty"`
}

// List serves GET /audit?entityType=&limit=.
func (h *AuditHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	entries, err := h.audit.ListRecent(c.Request.Context(), c.Query("entityType"), limit)
	if err != nil {
		fail(c, err)
		return
	}

	views := make([]auditView, 0, len(entries))
	for _, entry := range entries {
		view := auditView{AuditEntry: entry}
		if state, err := h.audit.DecodeSnapshot(entry); err == nil {
			view.State = state
		}
		views = append(views, view)
	}
	c.JSON(http.StatusOK, gin.H{"items": views, "totalCount": len(views)})
}
