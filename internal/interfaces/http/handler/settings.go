package handler

import (
	"net/http"

	settingsapp "github.com/ceodigitcare/fastflow01-sub002/internal/application/settings"
	"github.com/gin-gonic/gin"
)

// SettingsHandler handles per-store settings
type SettingsHandler struct {
	BaseHandler
	settingsService *settingsapp.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *settingsapp.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get godoc
// @Summary      Get store settings
// @Description  Returns defaults when the store has never saved settings
// @Tags         settings
// @Produce      json
// @Success      200 {object} dto.Response{data=settingsapp.SettingsResponse}
// @Security     BearerAuth
// @Router       /settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}

	current, err := h.settingsService.Get(c.Request.Context(), storeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, current)
}

// Update godoc
// @Summary      Update store settings
// @Description  Replace the settings of the store. Requires the owner or admin role.
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        request body settingsapp.UpdateSettingsRequest true "Settings"
// @Success      200 {object} dto.Response{data=settingsapp.SettingsResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	var req settingsapp.UpdateSettingsRequest
	if !h.bindJSON(c, &req) {
		return
	}

	updated, err := h.settingsService.Update(c.Request.Context(), storeID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, updated)
}

// Manifest godoc
// @Summary      PWA manifest
// @Description  Web app manifest of the store, served only while the PWA is enabled
// @Tags         settings
// @Produce      json
// @Success      200 {object} settings.Manifest
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /settings/pwa/manifest.json [get]
func (h *SettingsHandler) Manifest(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}

	manifest, err := h.settingsService.Manifest(c.Request.Context(), storeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Type", "application/manifest+json")
	c.JSON(http.StatusOK, manifest)
}
