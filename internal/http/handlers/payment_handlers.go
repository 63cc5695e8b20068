package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kiangasgaryishere/Booka-frontendd/domain"
	"github.com/kiangasgaryishere/Booka-frontendd/internal/http/middleware"
)

// PaymentHandlers serves the plans, payment history and subscription surface.
type PaymentHandlers struct {
	paymentSvc domain.PaymentService
	audit      domain.AuditLogger
}

// NewPaymentHandlers creates new payment handlers
func NewPaymentHandlers(paymentSvc domain.PaymentService, audit domain.AuditLogger) *PaymentHandlers {
	return &PaymentHandlers{
		paymentSvc: paymentSvc,
		audit:      audit,
	}
}

// PurchaseRequest carries the plan selection from the upgrade screen.
type PurchaseRequest struct {
	PlanID       string              `json:"plan_id" binding:"required"`
	BillingCycle domain.BillingCycle `json:"billing_cycle" binding:"omitempty,oneof=monthly yearly"`
}

// Plans handles listing the premium tiers.
func (h *PaymentHandlers) Plans(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"plans": h.paymentSvc.Plans()}})
}

// Transactions handles listing the caller's payment history, newest first.
func (h *PaymentHandlers) Transactions(c *gin.Context) {
	profileID := c.GetString(middleware.CtxProfileID)

	transactions, err := h.paymentSvc.Transactions(c.Request.Context(), profileID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load transactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"transactions": transactions}})
}

// ExportTransactions handles the CSV download of the payment history.
func (h *PaymentHandlers) ExportTransactions(c *gin.Context) {
	profileID := c.GetString(middleware.CtxProfileID)

	csvData, err := h.paymentSvc.ExportCSV(c.Request.Context(), profileID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export transactions"})
		return
	}

	h.audit.LogEvent(domain.NewAuditEvent(domain.TransactionsExportsEvent, profileID))
	c.Header("Content-Disposition", `attachment; filename="transactions.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", csvData)
}

// Subscription handles reading the current subscription state.
func (h *PaymentHandlers) Subscription(c *gin.Context) {
	profileID := c.GetString(middleware.CtxProfileID)

	sub, err := h.paymentSvc.Subscription(c.Request.Context(), profileID)
	if err != nil {
		if errors.Is(err, domain.ErrSubscriptionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No subscription"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscription"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"subscription": sub}})
}

// Purchase handles buying a plan. Duplicate submissions while a purchase is
// resolving are rejected.
func (h *PaymentHandlers) Purchase(c *gin.Context) {
	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profileID := c.GetString(middleware.CtxProfileID)
	sub, err := h.paymentSvc.Purchase(c.Request.Context(), profileID, req.PlanID, req.BillingCycle)
	if err != nil {
		h.audit.LogEvent(domain.NewAuditEvent(domain.PurchaseEvent, profileID).WithError(err))
		switch {
		case errors.Is(err, domain.ErrPlanNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		case errors.Is(err, domain.ErrPurchaseInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": "A purchase is already being processed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Purchase failed"})
		}
		return
	}

	h.audit.LogEvent(domain.NewAuditEvent(domain.PurchaseEvent, profileID))
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"subscription": sub}})
}

// Cancel handles cancelling the current subscription.
func (h *PaymentHandlers) Cancel(c *gin.Context) {
	profileID := c.GetString(middleware.CtxProfileID)

	sub, err := h.paymentSvc.Cancel(c.Request.Context(), profileID)
	if err != nil {
		if errors.Is(err, domain.ErrSubscriptionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No subscription"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cancellation failed"})
		return
	}

	h.audit.LogEvent(domain.NewAuditEvent(domain.SubscriptionCancelEvent, profileID))
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"subscription": sub}})
}
