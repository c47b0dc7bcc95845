package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dogbook/internal/service"
)

// AgeHandler serves the age reference data.
type AgeHandler struct {
	ageService service.AgeService
}

// NewAgeHandler creates an age handler.
func NewAgeHandler(ageService service.AgeService) *AgeHandler {
	return &AgeHandler{ageService: ageService}
}

// ListAges godoc
// @Summary List dog age categories
// @Tags ages
// @Produce json
// @Success 200 {array} model.Age
// @Router /ages/all [get]
func (h *AgeHandler) ListAges(c echo.Context) error {
	ages, err := h.ageService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ages)
}
