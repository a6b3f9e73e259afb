package handler

import (
	appbrewing "github.com/brewhouse/backend/internal/application/brewing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// IssueHandler handles ingredient issuance API endpoints
type IssueHandler struct {
	BaseHandler
	issueService *appbrewing.IssueService
}

// NewIssueHandler creates a new IssueHandler
func NewIssueHandler(issueService *appbrewing.IssueService) *IssueHandler {
	return &IssueHandler{issueService: issueService}
}

// GetIssuancePlan returns the required/issued/missing reconciliation for a batch
func (h *IssueHandler) GetIssuancePlan(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	batchID, err := uuid.Parse(c.Param("batchId"))
	if err != nil {
		h.BadRequest(c, "Invalid batch ID format")
		return
	}

	plan, err := h.issueService.GetIssuancePlan(c.Request.Context(), tenantID, batchID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, plan)
}

// Create builds a draft issue document covering the missing quantities of a batch
func (h *IssueHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	batchID, err := uuid.Parse(c.Param("batchId"))
	if err != nil {
		h.BadRequest(c, "Invalid batch ID format")
		return
	}

	issue, err := h.issueService.CreateIssue(c.Request.Context(), tenantID, batchID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, issue)
}

// Refill recomputes the lines of a draft document against the current shortfall
func (h *IssueHandler) Refill(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	issueID, err := uuid.Parse(c.Param("issueId"))
	if err != nil {
		h.BadRequest(c, "Invalid issue ID format")
		return
	}

	var req appbrewing.RefillIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	issue, err := h.issueService.RefillIssue(c.Request.Context(), tenantID, issueID, req.BatchID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, issue)
}

// Confirm posts a draft document, creating stock movements
func (h *IssueHandler) Confirm(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	issueID, err := uuid.Parse(c.Param("issueId"))
	if err != nil {
		h.BadRequest(c, "Invalid issue ID format")
		return
	}

	issue, err := h.issueService.ConfirmIssue(c.Request.Context(), tenantID, issueID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, issue)
}

// Cancel voids a draft document
func (h *IssueHandler) Cancel(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	issueID, err := uuid.Parse(c.Param("issueId"))
	if err != nil {
		h.BadRequest(c, "Invalid issue ID format")
		return
	}

	issue, err := h.issueService.CancelIssue(c.Request.Context(), tenantID, issueID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, issue)
}

// Get returns a single stock document with its lines
func (h *IssueHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	issueID, err := uuid.Parse(c.Param("issueId"))
	if err != nil {
		h.BadRequest(c, "Invalid issue ID format")
		return
	}

	issue, err := h.issueService.GetIssue(c.Request.Context(), tenantID, issueID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, issue)
}
