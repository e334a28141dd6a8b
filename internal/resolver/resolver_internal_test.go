package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/UnknownOlympus/hermes/internal/metrics"
	"github.com/UnknownOlympus/hermes/internal/models"
	"github.com/UnknownOlympus/hermes/test/mocks"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const reference = "131 Martinsville Rd, Basking Ridge, NJ 07920"

func newTestResolver(t *testing.T, workers int) (*BatchResolver, *mocks.Provider) {
	t.Helper()

	mockProvider := mocks.NewProvider(t)
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	appMetrics := metrics.NewMetrics(prometheus.NewRegistry())

	return NewBatchResolver(logger, mockProvider, "google", appMetrics, workers), mockProvider
}

func candidateList(addresses ...string) []models.Candidate {
	candidates := make([]models.Candidate, len(addresses))
	for i, addr := range addresses {
		candidates[i] = models.Candidate{Address: addr, Position: i}
	}
	return candidates
}

func TestResolveBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("results keep input order under concurrency", func(t *testing.T) {
		service, mockProvider := newTestResolver(t, 4)

		addresses := make([]string, 8)
		for i := range addresses {
			addresses[i] = fmt.Sprintf("%d Main St, Anytown, NJ", i+1)
			leg := &models.Leg{DurationMinutes: float64(10 + i), DistanceMiles: float64(i + 1)}
			mockProvider.On("Route", mock.Anything, reference, addresses[i]).Return(leg, nil).Once()
		}

		results, err := service.ResolveBatch(ctx, reference, candidateList(addresses...), 60)

		require.NoError(t, err)
		require.Len(t, results, len(addresses))
		for i, res := range results {
			assert.Equal(t, addresses[i], res.Address)
			assert.Equal(t, i, res.Position)
			require.NotNil(t, res.Leg)
			assert.InEpsilon(t, float64(10+i), res.Leg.DurationMinutes, 0.001)
		}
		mockProvider.AssertExpectations(t)
	})

	t.Run("one failing candidate does not abort the batch", func(t *testing.T) {
		service, mockProvider := newTestResolver(t, 2)
		candidates := candidateList("1 First St", "2 Second St", "3 Third St")

		mockProvider.On("Route", mock.Anything, reference, "1 First St").
			Return(&models.Leg{DurationMinutes: 12, DistanceMiles: 4}, nil).Once()
		mockProvider.On("Route", mock.Anything, reference, "2 Second St").
			Return(nil, assert.AnError).Once()
		mockProvider.On("Route", mock.Anything, reference, "3 Third St").
			Return(&models.Leg{DurationMinutes: 45, DistanceMiles: 30}, nil).Once()

		results, err := service.ResolveBatch(ctx, reference, candidates, 20)

		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, models.StatusWithinRange, results[0].Status)
		assert.Equal(t, models.StatusError, results[1].Status)
		assert.NotEmpty(t, results[1].ErrorDetail)
		assert.Nil(t, results[1].Leg)
		assert.Equal(t, models.StatusOutOfRange, results[2].Status)
		mockProvider.AssertExpectations(t)
	})

	t.Run("drive time equal to threshold is within range", func(t *testing.T) {
		service, mockProvider := newTestResolver(t, 1)
		candidates := candidateList("41 Mt Horeb Rd, Warren, NJ 07059")

		mockProvider.On("Route", mock.Anything, reference, candidates[0].Address).
			Return(&models.Leg{DurationMinutes: 20.0, DistanceMiles: 8}, nil).Once()

		results, err := service.ResolveBatch(ctx, reference, candidates, 20)

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, models.StatusWithinRange, results[0].Status)
		mockProvider.AssertExpectations(t)
	})

	t.Run("invalid reference fails before any candidate work", func(t *testing.T) {
		service, mockProvider := newTestResolver(t, 2)

		_, err := service.ResolveBatch(ctx, "   ", candidateList("1 First St"), 20)

		require.Error(t, err)
		mockProvider.AssertNotCalled(t, "Route")
	})

	t.Run("invalid threshold fails before any candidate work", func(t *testing.T) {
		service, mockProvider := newTestResolver(t, 2)

		_, err := service.ResolveBatch(ctx, reference, candidateList("1 First St"), 0)

		require.ErrorIs(t, err, ErrInvalidThreshold)
		mockProvider.AssertNotCalled(t, "Route")
	})

	t.Run("empty candidate list yields empty results", func(t *testing.T) {
		service, mockProvider := newTestResolver(t, 2)

		results, err := service.ResolveBatch(ctx, reference, nil, 20)

		require.NoError(t, err)
		assert.Empty(t, results)
		mockProvider.AssertNotCalled(t, "Route")
	})

	t.Run("progress reports one result per candidate", func(t *testing.T) {
		service, mockProvider := newTestResolver(t, 3)
		candidates := candidateList("1 First St", "2 Second St", "3 Third St", "4 Fourth St")

		for _, cand := range candidates {
			mockProvider.On("Route", mock.Anything, reference, cand.Address).
				Return(&models.Leg{DurationMinutes: 10, DistanceMiles: 3}, nil).Once()
		}

		var mu sync.Mutex
		seen := make(map[string]int)
		progress := func(res models.RouteResult) {
			mu.Lock()
			defer mu.Unlock()
			seen[res.Address]++
		}

		results, err := service.ResolveBatch(ctx, reference, candidates, 20, WithProgress(progress))

		require.NoError(t, err)
		require.Len(t, results, len(candidates))
		require.Len(t, seen, len(candidates))
		for _, count := range seen {
			assert.Equal(t, 1, count)
		}
		mockProvider.AssertExpectations(t)
	})

	t.Run("all candidates failing surfaces a batch error", func(t *testing.T) {
		service, mockProvider := newTestResolver(t, 2)
		candidates := candidateList("1 First St", "2 Second St")

		mockProvider.On("Route", mock.Anything, reference, mock.Anything).
			Return(nil, assert.AnError).Twice()

		results, err := service.ResolveBatch(ctx, reference, candidates, 20)

		require.ErrorIs(t, err, ErrAllCandidatesFailed)
		require.Len(t, results, 2)
		for _, res := range results {
			assert.Equal(t, models.StatusError, res.Status)
		}
		mockProvider.AssertExpectations(t)
	})

	t.Run("cancelled run still yields one result per candidate", func(t *testing.T) {
		service, mockProvider := newTestResolver(t, 2)
		candidates := candidateList("1 First St", "2 Second St", "3 Third St")

		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		// Depending on scheduling a job may still reach a worker before the
		// dispatcher observes cancellation; those calls fail with the context error.
		mockProvider.On("Route", mock.Anything, reference, mock.Anything).
			Return(nil, context.Canceled).Maybe()

		results, err := service.ResolveBatch(cancelled, reference, candidates, 20)

		require.ErrorIs(t, err, ErrAllCandidatesFailed)
		require.Len(t, results, len(candidates))
		for i, res := range results {
			assert.Equal(t, candidates[i].Address, res.Address)
			assert.Equal(t, models.StatusError, res.Status)
		}
	})
}
