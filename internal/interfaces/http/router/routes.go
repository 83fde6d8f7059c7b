package router

import (
	"github.com/ceodigitcare/fastflow01-sub002/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
)

// Handlers are the API handlers mounted by NewAPIGroups
type Handlers struct {
	Products     *handler.ProductHandler
	Contacts     *handler.ContactHandler
	Accounts     *handler.AccountHandler
	Transactions *handler.TransactionHandler
	Invoices     *handler.DocumentHandler
	Bills        *handler.DocumentHandler
	Calculator   *handler.CalculatorHandler
	Settings     *handler.SettingsHandler
	System       *handler.SystemHandler
}

// NewAPIGroups builds the route groups of the API. settingsGuard protects
// settings updates and may be nil.
func NewAPIGroups(h Handlers, settingsGuard gin.HandlerFunc) []RouteRegistrar {
	system := NewDomainGroup("system", "/system").
		GET("/ping", h.System.Ping)

	catalog := NewDomainGroup("catalog", "/catalog")
	catalog.Group("products", "/products").
		POST("", h.Products.Create).
		GET("", h.Products.List).
		GET("/:id", h.Products.GetByID).
		PUT("/:id", h.Products.Update).
		DELETE("/:id", h.Products.Delete)

	partners := NewDomainGroup("partners", "/partners")
	partners.Group("contacts", "/contacts").
		POST("", h.Contacts.Create).
		GET("", h.Contacts.List).
		GET("/:id", h.Contacts.GetByID).
		PUT("/:id", h.Contacts.Update).
		DELETE("/:id", h.Contacts.Delete)

	finance := NewDomainGroup("finance", "/finance").
		POST("/calculate", h.Calculator.Calculate).
		GET("/convert", h.Calculator.Convert)

	finance.Group("accounts", "/accounts").
		POST("", h.Accounts.Create).
		GET("", h.Accounts.List).
		GET("/chart", h.Accounts.Chart).
		GET("/chart/print", h.Accounts.PrintChart).
		GET("/code", h.Accounts.Code).
		GET("/:id", h.Accounts.GetByID).
		PUT("/:id", h.Accounts.Update).
		DELETE("/:id", h.Accounts.Delete)

	finance.Group("transactions", "/transactions").
		POST("", h.Transactions.Create).
		GET("", h.Transactions.List).
		GET("/:id", h.Transactions.GetByID).
		PUT("/:id", h.Transactions.Update).
		DELETE("/:id", h.Transactions.Delete)

	documentRoutes(finance.Group("invoices", "/invoices"), h.Invoices)
	documentRoutes(finance.Group("bills", "/bills"), h.Bills)

	settingsUpdate := []gin.HandlerFunc{h.Settings.Update}
	if settingsGuard != nil {
		settingsUpdate = append([]gin.HandlerFunc{settingsGuard}, settingsUpdate...)
	}
	settings := NewDomainGroup("settings", "/settings").
		GET("", h.Settings.Get).
		PUT("", settingsUpdate...).
		GET("/pwa/manifest.json", h.Settings.Manifest)

	return []RouteRegistrar{system, catalog, partners, finance, settings}
}

func documentRoutes(g *DomainGroup, h *handler.DocumentHandler) {
	g.POST("", h.Create).
		GET("", h.List).
		POST("/print", h.BatchPrint).
		GET("/:id", h.GetByID).
		DELETE("/:id", h.Delete).
		POST("/:id/items", h.AddItem).
		PUT("/:id/items/:item_id", h.UpdateItem).
		DELETE("/:id/items/:item_id", h.RemoveItem).
		PUT("/:id/adjustment", h.SetAdjustment).
		POST("/:id/payments", h.RecordPayment).
		PUT("/:id/status", h.ChangeStatus).
		POST("/:id/submit", h.Submit).
		GET("/:id/print", h.Print)
}
