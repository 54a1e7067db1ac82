package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/ledger"
	"kakeibo/internal/services"
)

// PurchaseHandler handles purchase-related requests.
type PurchaseHandler struct {
	purchaseService services.PurchaseServicer
	auditService    services.AuditServicer
}

// NewPurchaseHandler creates a new PurchaseHandler.
func NewPurchaseHandler(purchaseService services.PurchaseServicer, auditService services.AuditServicer) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService, auditService: auditService}
}

// PurchaseRequest is the request payload for creating or updating a purchase.
// Fields are nested under "purchase".
type PurchaseRequest struct {
	Purchase *services.PurchaseParams `json:"purchase" binding:"required"`
}

// ListPurchases returns purchases matching the query filters with their summary
// @Summary     List purchases
// @Description List purchases newest first, optionally narrowed to a year, a month of a year and/or a category, together with the summary of the returned purchases
// @Tags        purchases
// @Produce     json
// @Param       year     query int    false "Calendar year"
// @Param       month    query int    false "Month (1-12), only applied together with year"
// @Param       category query string false "Exact category"
// @Success     200 {object} ledger.Result
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /purchases [get]
func (h *PurchaseHandler) ListPurchases(c *gin.Context) {
	filter := ledger.ParseFilter(c.Query("year"), c.Query("month"), c.Query("category"))

	result, err := h.purchaseService.ListPurchases(c.Request.Context(), filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetPurchase returns a single purchase
// @Summary     Get a purchase
// @Tags        purchases
// @Produce     json
// @Param       id path string true "Purchase ID"
// @Success     200 {object} models.Purchase
// @Failure     404 {object} ErrorResponse "Purchase not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /purchases/{id} [get]
func (h *PurchaseHandler) GetPurchase(c *gin.Context) {
	purchase, err := h.purchaseService.GetPurchaseByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, purchase)
}

// CreatePurchase records a new purchase
// @Summary     Create a purchase
// @Tags        purchases
// @Accept      json
// @Produce     json
// @Param       request body PurchaseRequest true "Purchase details"
// @Success     201 {object} models.Purchase "Purchase created"
// @Failure     400 {object} ErrorResponse "Malformed request body"
// @Failure     422 {object} ErrorResponse "Validation failed"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /purchases [post]
func (h *PurchaseHandler) CreatePurchase(c *gin.Context) {
	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	purchase, err := h.purchaseService.CreatePurchase(c.Request.Context(), *req.Purchase)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_PURCHASE", "purchase", purchase.ID, c.ClientIP(),
		map[string]any{"amount": purchase.Amount.String(), "category": purchase.Category, "date": purchase.Date.String()})

	c.JSON(http.StatusCreated, purchase)
}

// UpdatePurchase changes the given fields of a purchase
// @Summary     Update a purchase
// @Description Partially update a purchase; omitted fields keep their value. PUT is accepted as an alias.
// @Tags        purchases
// @Accept      json
// @Produce     json
// @Param       id      path string          true "Purchase ID"
// @Param       request body PurchaseRequest true "Fields to change"
// @Success     200 {object} models.Purchase
// @Failure     400 {object} ErrorResponse "Malformed request body"
// @Failure     404 {object} ErrorResponse "Purchase not found"
// @Failure     422 {object} ErrorResponse "Validation failed"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /purchases/{id} [patch]
func (h *PurchaseHandler) UpdatePurchase(c *gin.Context) {
	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	purchase, err := h.purchaseService.UpdatePurchase(c.Request.Context(), c.Param("id"), *req.Purchase)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_PURCHASE", "purchase", purchase.ID, c.ClientIP(), changedFields(*req.Purchase))

	c.JSON(http.StatusOK, purchase)
}

// DeletePurchase permanently removes a purchase
// @Summary     Delete a purchase
// @Tags        purchases
// @Param       id path string true "Purchase ID"
// @Success     204 "Purchase deleted"
// @Failure     404 {object} ErrorResponse "Purchase not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /purchases/{id} [delete]
func (h *PurchaseHandler) DeletePurchase(c *gin.Context) {
	id := c.Param("id")
	if err := h.purchaseService.DeletePurchase(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_PURCHASE", "purchase", id, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}

func changedFields(p services.PurchaseParams) map[string]any {
	changes := map[string]any{}
	if p.Name != nil {
		changes["name"] = *p.Name
	}
	if p.Amount != nil {
		changes["amount"] = p.Amount.String()
	}
	if p.Category != nil {
		changes["category"] = *p.Category
	}
	if p.Date != nil {
		changes["date"] = p.Date.String()
	}
	if p.Description != nil {
		changes["description"] = *p.Description
	}
	return changes
}
