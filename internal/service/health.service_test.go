package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"stocksvc/internal/domain"
	mock_repository "stocksvc/internal/repository/mocks"
)

func Test_healthServiceHandler_CheckPriceSource(t *testing.T) {
	t.Run("healthy on first probe day", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		priceRepository := mock_repository.NewMockPriceRepository(ctrl)

		priceRepository.EXPECT().
			GetOHLC(gomock.Any(), "AAPL", testDate).
			Return(testSnapshot(), nil)

		svc := NewHealthService(priceRepository, nil, fixedClock{now: testNow})
		result := svc.CheckPriceSource(context.Background())
		require.True(t, result.Healthy)
		require.Equal(t, "ok", result.Detail)
	})

	t.Run("walks past a day with no data", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		priceRepository := mock_repository.NewMockPriceRepository(ctrl)

		previousDate := time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)

		priceRepository.EXPECT().
			GetOHLC(gomock.Any(), "AAPL", testDate).
			Return(nil, &domain.UpstreamError{
				Source: "polygon",
				Reason: domain.FailureHTTPError,
				Err:    errors.New("status 404"),
			})
		priceRepository.EXPECT().
			GetOHLC(gomock.Any(), "AAPL", previousDate).
			Return(testSnapshot(), nil)

		svc := NewHealthService(priceRepository, nil, fixedClock{now: testNow})
		result := svc.CheckPriceSource(context.Background())
		require.True(t, result.Healthy)
		require.Equal(t, "ok", result.Detail)
	})

	t.Run("unauthorized fails immediately without walking back", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		priceRepository := mock_repository.NewMockPriceRepository(ctrl)

		priceRepository.EXPECT().
			GetOHLC(gomock.Any(), "AAPL", testDate).
			Return(nil, &domain.UpstreamError{
				Source: "polygon",
				Reason: domain.FailureUnauthorized,
				Err:    errors.New("status 401"),
			}).
			Times(1)

		svc := NewHealthService(priceRepository, nil, fixedClock{now: testNow})
		result := svc.CheckPriceSource(context.Background())
		require.False(t, result.Healthy)
		require.Equal(t, "unauthorized", result.Detail)
	})

	t.Run("no data anywhere in the window still counts as up", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		priceRepository := mock_repository.NewMockPriceRepository(ctrl)

		priceRepository.EXPECT().
			GetOHLC(gomock.Any(), "AAPL", gomock.Any()).
			Return(nil, &domain.UpstreamError{
				Source: "polygon",
				Reason: domain.FailureHTTPError,
				Err:    errors.New("status 404"),
			}).
			Times(probeLookback)

		svc := NewHealthService(priceRepository, nil, fixedClock{now: testNow})
		result := svc.CheckPriceSource(context.Background())
		require.True(t, result.Healthy)
		require.Equal(t, "ok_no_data", result.Detail)
	})
}

func Test_healthServiceHandler_CheckPerformanceSource(t *testing.T) {
	t.Run("full report is ok", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		performanceRepository := mock_repository.NewMockPerformanceRepository(ctrl)

		performanceRepository.EXPECT().
			GetReport(gomock.Any(), "AAPL").
			Return(testReport(), nil)

		svc := NewHealthService(nil, performanceRepository, fixedClock{now: testNow})
		result := svc.CheckPerformanceSource(context.Background())
		require.True(t, result.Healthy)
		require.Equal(t, "ok", result.Detail)
	})

	t.Run("reachable but empty modules is ok_basic", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		performanceRepository := mock_repository.NewMockPerformanceRepository(ctrl)

		performanceRepository.EXPECT().
			GetReport(gomock.Any(), "AAPL").
			Return(&domain.PerformanceReport{CompanyName: "Apple Inc."}, nil)

		svc := NewHealthService(nil, performanceRepository, fixedClock{now: testNow})
		result := svc.CheckPerformanceSource(context.Background())
		require.True(t, result.Healthy)
		require.Equal(t, "ok_basic", result.Detail)
	})

	t.Run("blocked scrape is unhealthy with the reason", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		performanceRepository := mock_repository.NewMockPerformanceRepository(ctrl)

		performanceRepository.EXPECT().
			GetReport(gomock.Any(), "AAPL").
			Return(nil, &domain.UpstreamError{
				Source: "marketwatch",
				Reason: domain.FailureBlocked,
				Err:    errors.New("status 403"),
			})

		svc := NewHealthService(nil, performanceRepository, fixedClock{now: testNow})
		result := svc.CheckPerformanceSource(context.Background())
		require.False(t, result.Healthy)
		require.Equal(t, "scrape_blocked", result.Detail)
	})
}
