package handler

import (
	financeapp "github.com/ceodigitcare/fastflow01-sub002/internal/application/finance"
	printapp "github.com/ceodigitcare/fastflow01-sub002/internal/application/printing"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/finance"
	"github.com/ceodigitcare/fastflow01-sub002/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// DocumentHandler handles invoices or bills. One instance serves one kind.
type DocumentHandler struct {
	BaseHandler
	kind         finance.DocumentKind
	docService   *financeapp.DocumentService
	printService *printapp.PrintService
}

// NewDocumentHandler creates a DocumentHandler for the given kind
func NewDocumentHandler(kind finance.DocumentKind, docService *financeapp.DocumentService, printService *printapp.PrintService) *DocumentHandler {
	return &DocumentHandler{kind: kind, docService: docService, printService: printService}
}

// Kind returns the document kind served by the handler
func (h *DocumentHandler) Kind() finance.DocumentKind {
	return h.kind
}

// Create godoc
// @Summary      Create a document
// @Description  Create a draft invoice or bill. An empty number is allocated from the store prefix.
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        request body financeapp.CreateDocumentRequest true "Document"
// @Success      201 {object} dto.Response{data=financeapp.DocumentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /finance/invoices [post]
// @Router       /finance/bills [post]
func (h *DocumentHandler) Create(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	var req financeapp.CreateDocumentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	doc, err := h.docService.Create(c.Request.Context(), storeID, h.kind, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, doc)
}

// GetByID godoc
// @Summary      Get a document
// @Tags         documents
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Success      200 {object} dto.Response{data=financeapp.DocumentResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /finance/invoices/{id} [get]
// @Router       /finance/bills/{id} [get]
func (h *DocumentHandler) GetByID(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "document")
	if !ok {
		return
	}

	doc, err := h.docService.GetByID(c.Request.Context(), storeID, h.kind, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

// List godoc
// @Summary      List documents
// @Tags         documents
// @Produce      json
// @Param        search query string false "Search by number or notes"
// @Param        status query string false "Status" Enums(draft, sent, paid, overdue, cancelled)
// @Param        contact_id query string false "Contact ID" format(uuid)
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        order_by query string false "Sort field"
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} dto.Response{data=[]financeapp.DocumentListItem,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /finance/invoices [get]
// @Router       /finance/bills [get]
func (h *DocumentHandler) List(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	var filter financeapp.DocumentListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	docs, total, err := h.docService.List(c.Request.Context(), storeID, h.kind, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	p, size := page(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, docs, total, p, size)
}

// Delete godoc
// @Summary      Delete a document
// @Description  Only draft and cancelled documents can be deleted
// @Tags         documents
// @Param        id path string true "Document ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /finance/invoices/{id} [delete]
// @Router       /finance/bills/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "document")
	if !ok {
		return
	}

	if err := h.docService.Delete(c.Request.Context(), storeID, h.kind, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AddItem godoc
// @Summary      Add a line item
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Param        request body financeapp.LineItemRequest true "Line item"
// @Success      200 {object} dto.Response{data=financeapp.DocumentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /finance/invoices/{id}/items [post]
// @Router       /finance/bills/{id}/items [post]
func (h *DocumentHandler) AddItem(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "document")
	if !ok {
		return
	}
	var req financeapp.LineItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	doc, err := h.docService.AddItem(c.Request.Context(), storeID, h.kind, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

// UpdateItem godoc
// @Summary      Replace a line item
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Param        item_id path string true "Line item ID" format(uuid)
// @Param        request body financeapp.LineItemRequest true "Line item"
// @Success      200 {object} dto.Response{data=financeapp.DocumentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /finance/invoices/{id}/items/{item_id} [put]
// @Router       /finance/bills/{id}/items/{item_id} [put]
func (h *DocumentHandler) UpdateItem(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "document")
	if !ok {
		return
	}
	itemID, ok := h.pathID(c, "item_id", "line item")
	if !ok {
		return
	}
	var req financeapp.LineItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	doc, err := h.docService.UpdateItem(c.Request.Context(), storeID, h.kind, id, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

// RemoveItem godoc
// @Summary      Remove a line item
// @Tags         documents
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Param        item_id path string true "Line item ID" format(uuid)
// @Success      200 {object} dto.Response{data=financeapp.DocumentResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /finance/invoices/{id}/items/{item_id} [delete]
// @Router       /finance/bills/{id}/items/{item_id} [delete]
func (h *DocumentHandler) RemoveItem(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "document")
	if !ok {
		return
	}
	itemID, ok := h.pathID(c, "item_id", "line item")
	if !ok {
		return
	}

	doc, err := h.docService.RemoveItem(c.Request.Context(), storeID, h.kind, id, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

// SetAdjustment godoc
// @Summary      Set the transport cost
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Param        request body financeapp.AdjustmentRequest true "Adjustment"
// @Success      200 {object} dto.Response{data=financeapp.DocumentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /finance/invoices/{id}/adjustment [put]
// @Router       /finance/bills/{id}/adjustment [put]
func (h *DocumentHandler) SetAdjustment(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "document")
	if !ok {
		return
	}
	var req financeapp.AdjustmentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	doc, err := h.docService.SetTransportCost(c.Request.Context(), storeID, h.kind, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

// RecordPayment godoc
// @Summary      Record a payment
// @Description  Adds to the payment received. A fully paid document moves to paid.
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Param        request body financeapp.PaymentRequest true "Payment"
// @Success      200 {object} dto.Response{data=financeapp.DocumentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /finance/invoices/{id}/payments [post]
// @Router       /finance/bills/{id}/payments [post]
func (h *DocumentHandler) RecordPayment(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "document")
	if !ok {
		return
	}
	var req financeapp.PaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	doc, err := h.docService.RecordPayment(c.Request.Context(), storeID, h.kind, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

// ChangeStatus godoc
// @Summary      Change the status
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Param        request body financeapp.StatusRequest true "Status"
// @Success      200 {object} dto.Response{data=financeapp.DocumentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /finance/invoices/{id}/status [put]
// @Router       /finance/bills/{id}/status [put]
func (h *DocumentHandler) ChangeStatus(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "document")
	if !ok {
		return
	}
	var req financeapp.StatusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	doc, err := h.docService.ChangeStatus(c.Request.Context(), storeID, h.kind, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

// Submit godoc
// @Summary      Submit a document
// @Description  Validate a draft and send it. Repeating an Idempotency-Key returns 409.
// @Tags         documents
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Param        Idempotency-Key header string false "Client generated key"
// @Success      200 {object} dto.Response{data=financeapp.DocumentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /finance/invoices/{id}/submit [post]
// @Router       /finance/bills/{id}/submit [post]
func (h *DocumentHandler) Submit(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "document")
	if !ok {
		return
	}
	key, ok := middleware.GetIdempotencyKey(c)
	if !ok {
		h.BadRequest(c, "Idempotency-Key header is too long")
		return
	}

	doc, err := h.docService.Submit(c.Request.Context(), storeID, h.kind, id, key)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

// Print godoc
// @Summary      Print a document
// @Description  Render the document as HTML or PDF. With archive=true the report is stored and a link is returned.
// @Tags         documents
// @Produce      html
// @Produce      application/pdf
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Param        format query string false "Output format" Enums(html, pdf)
// @Param        archive query bool false "Store the report and return a link"
// @Success      200 {object} dto.Response{data=printapp.PrintResult}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /finance/invoices/{id}/print [get]
// @Router       /finance/bills/{id}/print [get]
func (h *DocumentHandler) Print(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "document")
	if !ok {
		return
	}
	format, archive, ok := h.printOptions(c)
	if !ok {
		return
	}

	result, err := h.printService.PrintDocument(c.Request.Context(), storeID, h.kind, id, format, archive)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.writeReport(c, result)
}

// BatchPrint godoc
// @Summary      Print several documents
// @Description  Render up to 50 documents concurrently. Reports are archived when storage is configured.
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        request body printapp.BatchPrintRequest true "Documents"
// @Success      200 {object} dto.Response{data=[]printapp.PrintResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /finance/invoices/print [post]
// @Router       /finance/bills/print [post]
func (h *DocumentHandler) BatchPrint(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	var req printapp.BatchPrintRequest
	if !h.bindJSON(c, &req) {
		return
	}
	format, err := printapp.ParseFormat(req.Format)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	results, err := h.printService.PrintDocuments(c.Request.Context(), storeID, h.kind, req.IDs, format)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, results)
}
