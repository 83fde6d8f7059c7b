package handler

import (
	financeapp "github.com/ceodigitcare/fastflow01-sub002/internal/application/finance"
	printapp "github.com/ceodigitcare/fastflow01-sub002/internal/application/printing"
	"github.com/gin-gonic/gin"
)

// AccountCodeQuery asks for the display code of an account number
type AccountCodeQuery struct {
	Category string `form:"category" binding:"required"`
	ID       uint64 `form:"id"`
}

// AccountHandler handles the chart of accounts
type AccountHandler struct {
	BaseHandler
	accountService *financeapp.AccountService
	printService   *printapp.PrintService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService *financeapp.AccountService, printService *printapp.PrintService) *AccountHandler {
	return &AccountHandler{accountService: accountService, printService: printService}
}

// Create godoc
// @Summary      Create an account
// @Description  Create a ledger account with the next free number of the store
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        request body financeapp.CreateAccountRequest true "Account"
// @Success      201 {object} dto.Response{data=financeapp.AccountResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /finance/accounts [post]
func (h *AccountHandler) Create(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	var req financeapp.CreateAccountRequest
	if !h.bindJSON(c, &req) {
		return
	}

	account, err := h.accountService.Create(c.Request.Context(), storeID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, account)
}

// GetByID godoc
// @Summary      Get an account
// @Tags         accounts
// @Produce      json
// @Param        id path string true "Account ID" format(uuid)
// @Success      200 {object} dto.Response{data=financeapp.AccountResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /finance/accounts/{id} [get]
func (h *AccountHandler) GetByID(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "account")
	if !ok {
		return
	}

	account, err := h.accountService.GetByID(c.Request.Context(), storeID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

// List godoc
// @Summary      List accounts
// @Tags         accounts
// @Produce      json
// @Param        search query string false "Search by name"
// @Param        category query string false "Category" Enums(asset, liability, equity, income, expense)
// @Param        active_only query bool false "Only active accounts"
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]financeapp.AccountResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /finance/accounts [get]
func (h *AccountHandler) List(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	var filter financeapp.AccountListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	accounts, total, err := h.accountService.List(c.Request.Context(), storeID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	p, size := page(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, accounts, total, p, size)
}

// Update godoc
// @Summary      Update an account
// @Description  Rename, re-parent, or toggle an account. The category and number never change.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        id path string true "Account ID" format(uuid)
// @Param        request body financeapp.UpdateAccountRequest true "Changed fields"
// @Success      200 {object} dto.Response{data=financeapp.AccountResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /finance/accounts/{id} [put]
func (h *AccountHandler) Update(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "account")
	if !ok {
		return
	}
	var req financeapp.UpdateAccountRequest
	if !h.bindJSON(c, &req) {
		return
	}

	account, err := h.accountService.Update(c.Request.Context(), storeID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

// Delete godoc
// @Summary      Delete an account
// @Description  Accounts with children or transactions cannot be deleted
// @Tags         accounts
// @Param        id path string true "Account ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /finance/accounts/{id} [delete]
func (h *AccountHandler) Delete(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "account")
	if !ok {
		return
	}

	if err := h.accountService.Delete(c.Request.Context(), storeID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Chart godoc
// @Summary      Chart of accounts
// @Description  Visible rows of the account tree. Category rows are always shown; accounts appear under expanded parents.
// @Tags         accounts
// @Produce      json
// @Param        expanded query []string false "Expanded row keys" collectionFormat(multi)
// @Param        expand_all query bool false "Expand every row"
// @Success      200 {object} dto.Response{data=financeapp.ChartResponse}
// @Security     BearerAuth
// @Router       /finance/accounts/chart [get]
func (h *AccountHandler) Chart(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	var req financeapp.ChartRequest
	if !h.bindQuery(c, &req) {
		return
	}

	chart, err := h.accountService.Chart(c.Request.Context(), storeID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, chart)
}

// PrintChart godoc
// @Summary      Print the chart of accounts
// @Description  Render every account as HTML or PDF. With archive=true the report is stored and a link is returned.
// @Tags         accounts
// @Produce      html
// @Produce      application/pdf
// @Produce      json
// @Param        format query string false "Output format" Enums(html, pdf)
// @Param        archive query bool false "Store the report and return a link"
// @Success      200 {object} dto.Response{data=printapp.PrintResult}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /finance/accounts/chart/print [get]
func (h *AccountHandler) PrintChart(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	format, archive, ok := h.printOptions(c)
	if !ok {
		return
	}

	result, err := h.printService.PrintChart(c.Request.Context(), storeID, format, archive)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.writeReport(c, result)
}

// Code godoc
// @Summary      Preview an account code
// @Description  Display code for a category and account number, e.g. A-0001
// @Tags         accounts
// @Produce      json
// @Param        category query string true "Category"
// @Param        id query int false "Account number"
// @Success      200 {object} dto.Response{data=financeapp.AccountCodeResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /finance/accounts/code [get]
func (h *AccountHandler) Code(c *gin.Context) {
	var query AccountCodeQuery
	if !h.bindQuery(c, &query) {
		return
	}
	h.Success(c, h.accountService.Code(query.Category, query.ID))
}
