package handler

import (
	partnerapp "github.com/ceodigitcare/fastflow01-sub002/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// ContactHandler handles customer and vendor endpoints
type ContactHandler struct {
	BaseHandler
	contactService *partnerapp.ContactService
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(contactService *partnerapp.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Create godoc
// @Summary      Create a contact
// @Description  Create a customer or vendor
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.CreateContactRequest true "Contact"
// @Success      201 {object} dto.Response{data=partnerapp.ContactResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /partners/contacts [post]
func (h *ContactHandler) Create(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	var req partnerapp.CreateContactRequest
	if !h.bindJSON(c, &req) {
		return
	}

	contact, err := h.contactService.Create(c.Request.Context(), storeID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, contact)
}

// GetByID godoc
// @Summary      Get a contact
// @Tags         partners
// @Produce      json
// @Param        id path string true "Contact ID" format(uuid)
// @Success      200 {object} dto.Response{data=partnerapp.ContactResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /partners/contacts/{id} [get]
func (h *ContactHandler) GetByID(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "contact")
	if !ok {
		return
	}

	contact, err := h.contactService.GetByID(c.Request.Context(), storeID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contact)
}

// List godoc
// @Summary      List contacts
// @Tags         partners
// @Produce      json
// @Param        search query string false "Search by name, email or phone"
// @Param        kind query string false "Kind" Enums(customer, vendor)
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        order_by query string false "Sort field"
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} dto.Response{data=[]partnerapp.ContactResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /partners/contacts [get]
func (h *ContactHandler) List(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	var filter partnerapp.ContactListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	contacts, total, err := h.contactService.List(c.Request.Context(), storeID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	p, size := page(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, contacts, total, p, size)
}

// Update godoc
// @Summary      Update a contact
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        id path string true "Contact ID" format(uuid)
// @Param        request body partnerapp.UpdateContactRequest true "Changed fields"
// @Success      200 {object} dto.Response{data=partnerapp.ContactResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /partners/contacts/{id} [put]
func (h *ContactHandler) Update(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "contact")
	if !ok {
		return
	}
	var req partnerapp.UpdateContactRequest
	if !h.bindJSON(c, &req) {
		return
	}

	contact, err := h.contactService.Update(c.Request.Context(), storeID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contact)
}

// Delete godoc
// @Summary      Delete a contact
// @Tags         partners
// @Param        id path string true "Contact ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /partners/contacts/{id} [delete]
func (h *ContactHandler) Delete(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "contact")
	if !ok {
		return
	}

	if err := h.contactService.Delete(c.Request.Context(), storeID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
