package handler

import (
	financeapp "github.com/ceodigitcare/fastflow01-sub002/internal/application/finance"
	"github.com/gin-gonic/gin"
)

// TransactionHandler handles income and expense postings
type TransactionHandler struct {
	BaseHandler
	txnService *financeapp.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(txnService *financeapp.TransactionService) *TransactionHandler {
	return &TransactionHandler{txnService: txnService}
}

// Create godoc
// @Summary      Record a transaction
// @Description  Post income or expense against an account. Amounts are in minor units.
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        request body financeapp.CreateTransactionRequest true "Transaction"
// @Success      201 {object} dto.Response{data=financeapp.TransactionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /finance/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	var req financeapp.CreateTransactionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	txn, err := h.txnService.Create(c.Request.Context(), storeID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, txn)
}

// GetByID godoc
// @Summary      Get a transaction
// @Tags         finance
// @Produce      json
// @Param        id path string true "Transaction ID" format(uuid)
// @Success      200 {object} dto.Response{data=financeapp.TransactionResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /finance/transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "transaction")
	if !ok {
		return
	}

	txn, err := h.txnService.GetByID(c.Request.Context(), storeID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, txn)
}

// List godoc
// @Summary      List transactions
// @Tags         finance
// @Produce      json
// @Param        search query string false "Search description or reference"
// @Param        account_id query string false "Account ID" format(uuid)
// @Param        type query string false "Type" Enums(income, expense)
// @Param        from query string false "From date (YYYY-MM-DD)"
// @Param        to query string false "To date (YYYY-MM-DD)"
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        order_dir query string false "Sort direction by date" Enums(asc, desc)
// @Success      200 {object} dto.Response{data=[]financeapp.TransactionResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /finance/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	var filter financeapp.TransactionListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	txns, total, err := h.txnService.List(c.Request.Context(), storeID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	p, size := page(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, txns, total, p, size)
}

// Update godoc
// @Summary      Update a transaction
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        id path string true "Transaction ID" format(uuid)
// @Param        request body financeapp.UpdateTransactionRequest true "Changed fields"
// @Success      200 {object} dto.Response{data=financeapp.TransactionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /finance/transactions/{id} [put]
func (h *TransactionHandler) Update(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "transaction")
	if !ok {
		return
	}
	var req financeapp.UpdateTransactionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	txn, err := h.txnService.Update(c.Request.Context(), storeID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, txn)
}

// Delete godoc
// @Summary      Delete a transaction
// @Tags         finance
// @Param        id path string true "Transaction ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /finance/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "transaction")
	if !ok {
		return
	}

	if err := h.txnService.Delete(c.Request.Context(), storeID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
