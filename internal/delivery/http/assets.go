package http

import (
	"errors"
	"net/http"

	"strategy-backtest/internal/repository"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupAssets(base *echo.Group) {
	assetGroup := base.Group("/assets")
	assetGroup.GET("", h.listAssets)
	assetGroup.GET("/:symbol/prices", h.getAssetPrices)
}

func (h *HttpAPIHandler) listAssets(c echo.Context) error {
	ctx := c.Request().Context()

	assets, err := h.service.AssetService.List(ctx, c.QueryParam("type"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to list assets"})
	}

	return c.JSON(http.StatusOK, assets)
}

func (h *HttpAPIHandler) getAssetPrices(c echo.Context) error {
	ctx := c.Request().Context()
	symbol := c.Param("symbol")

	prices, err := h.service.AssetService.GetPrices(ctx, symbol)
	if err != nil {
		if errors.Is(err, repository.ErrAssetNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "unknown symbol: " + symbol})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load prices"})
	}

	return c.JSON(http.StatusOK, prices)
}
