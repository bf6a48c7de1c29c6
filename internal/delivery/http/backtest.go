package http

import (
	"errors"
	"net/http"

	"strategy-backtest/internal/dto"
	"strategy-backtest/internal/repository"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupBacktest(base *echo.Group) {
	backtestGroup := base.Group("/backtest")
	backtestGroup.POST("", h.runBacktest)
	backtestGroup.POST("/analyze", h.analyzeStrategy)
	backtestGroup.GET("/history", h.backtestHistory)
}

func (h *HttpAPIHandler) runBacktest(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.BacktestRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	result, err := h.service.BacktestService.RunBacktest(ctx, *req)
	if err != nil {
		if errors.Is(err, repository.ErrAssetNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "unknown symbol: " + req.Symbol})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to run backtest"})
	}

	return c.JSON(http.StatusOK, result)
}

func (h *HttpAPIHandler) analyzeStrategy(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.BacktestRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	result, err := h.service.BacktestService.AnalyzeStrategy(ctx, *req)
	if err != nil {
		if errors.Is(err, repository.ErrAssetNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "unknown symbol: " + req.Symbol})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to analyze strategy"})
	}

	return c.JSON(http.StatusOK, result)
}

func (h *HttpAPIHandler) backtestHistory(c echo.Context) error {
	ctx := c.Request().Context()

	runs, err := h.service.BacktestService.History(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to list backtest history"})
	}

	return c.JSON(http.StatusOK, runs)
}
