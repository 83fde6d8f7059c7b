package handler

import (
	financeapp "github.com/ceodigitcare/fastflow01-sub002/internal/application/finance"
	settingsapp "github.com/ceodigitcare/fastflow01-sub002/internal/application/settings"
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

// ConvertQuery is an amount to read as money
type ConvertQuery struct {
	Amount string `form:"amount"`
}

// CalculatorHandler evaluates documents under edit without saving them
type CalculatorHandler struct {
	BaseHandler
	calculator *financeapp.CalculatorService
	settings   *settingsapp.SettingsService
	tag        language.Tag
}

// NewCalculatorHandler creates a CalculatorHandler. tag selects the display locale.
func NewCalculatorHandler(calculator *financeapp.CalculatorService, settings *settingsapp.SettingsService, tag language.Tag) *CalculatorHandler {
	return &CalculatorHandler{calculator: calculator, settings: settings, tag: tag}
}

// Calculate godoc
// @Summary      Calculate a document
// @Description  Replay editor events over an empty document and return totals and field errors
// @Tags         calculator
// @Accept       json
// @Produce      json
// @Param        request body financeapp.CalculateRequest true "Editor events"
// @Success      200 {object} dto.Response{data=financeapp.CalculateResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /finance/calculate [post]
func (h *CalculatorHandler) Calculate(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	var req financeapp.CalculateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.calculator.Calculate(c.Request.Context(), storeID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Convert godoc
// @Summary      Read an amount
// @Description  Show how an amount string is stored and displayed in the store currency
// @Tags         calculator
// @Produce      json
// @Param        amount query string false "Amount, e.g. 12.5"
// @Success      200 {object} dto.Response{data=financeapp.ConvertResponse}
// @Security     BearerAuth
// @Router       /finance/convert [get]
func (h *CalculatorHandler) Convert(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	var query ConvertQuery
	if !h.bindQuery(c, &query) {
		return
	}

	current, err := h.settings.Current(c.Request.Context(), storeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, h.calculator.Convert(query.Amount, current.Currency, h.tag))
}
