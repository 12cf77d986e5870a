package controllers

import (
	"log/slog"
	"net/http"

	"joiny/internal/delivery/http/helpers"
	"joiny/internal/domain"
)

type ThemeController struct {
	Logger  *slog.Logger
	Service domain.ThemeService
}

func NewThemeController(logger *slog.Logger, svc domain.ThemeService) *ThemeController {
	return &ThemeController{Logger: logger, Service: svc}
}

// ListThemes godoc
// @Summary List themes
// @Tags themes
// @Produce json
// @Success 200 {object} helpers.APIResponse{data=[]domain.Theme}
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /themes/ [get]
func (c *ThemeController) ListThemes(w http.ResponseWriter, r *http.Request) {
	themes, err := c.Service.ListThemes(r.Context())
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, themes)
}

// GetTheme godoc
// @Summary Get a theme
// @Tags themes
// @Produce json
// @Param id path int true "Theme ID"
// @Success 200 {object} helpers.APIResponse{data=domain.Theme}
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /themes/{id}/ [get]
func (c *ThemeController) GetTheme(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	theme, err := c.Service.GetTheme(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, theme)
}
