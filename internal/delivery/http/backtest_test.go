package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"strategy-backtest/internal/dto"
	"strategy-backtest/internal/engine"
	"strategy-backtest/internal/repository"
	"strategy-backtest/internal/service"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBacktestService struct {
	resp *dto.BacktestResponse
	err  error
}

func (s *stubBacktestService) RunBacktest(_ context.Context, _ dto.BacktestRequest) (*dto.BacktestResponse, error) {
	return s.resp, s.err
}

func (s *stubBacktestService) AnalyzeStrategy(_ context.Context, _ dto.BacktestRequest) (*dto.AnalyzeResponse, error) {
	return nil, s.err
}

func (s *stubBacktestService) History(_ context.Context) ([]dto.BacktestRunSummary, error) {
	return []dto.BacktestRunSummary{}, s.err
}

func newTestHandler(stub *stubBacktestService) *echo.Echo {
	e := echo.New()
	handler := NewHttpAPIHandler(context.Background(), e, goValidator.New(), &service.Service{
		BacktestService: stub,
	})
	handler.SetupRoutes()
	return e
}

const validBody = `{
	"symbol": "DEMO",
	"threshold_min": 4,
	"threshold_max": 6,
	"lookback_period": 7,
	"direction": "down",
	"analysis_horizon": 3
}`

func TestRunBacktest_OK(t *testing.T) {
	stub := &stubBacktestService{resp: &dto.BacktestResponse{
		Symbol: "DEMO",
		Bars:   20,
		Result: engine.BacktestResult{TotalTrades: 2, WinRate: 50, Trades: []engine.Trade{}},
	}}
	e := newTestHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/backtest", strings.NewReader(validBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_trades":2`)
}

func TestRunBacktest_ValidationRejectsBadDirection(t *testing.T) {
	e := newTestHandler(&stubBacktestService{})

	body := strings.Replace(validBody, `"down"`, `"sideways"`, 1)
	req := httptest.NewRequest(http.MethodPost, "/api/backtest", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRunBacktest_ValidationRejectsInvertedThresholds(t *testing.T) {
	e := newTestHandler(&stubBacktestService{})

	body := strings.Replace(validBody, `"threshold_min": 4`, `"threshold_min": 10`, 1)
	req := httptest.NewRequest(http.MethodPost, "/api/backtest", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRunBacktest_UnknownSymbolMapsTo404(t *testing.T) {
	e := newTestHandler(&stubBacktestService{err: repository.ErrAssetNotFound})

	req := httptest.NewRequest(http.MethodPost, "/api/backtest", strings.NewReader(validBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
