package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/UnknownOlympus/hermes/internal/metrics"
	"github.com/UnknownOlympus/hermes/internal/models"
	"github.com/UnknownOlympus/hermes/internal/routing"
	"github.com/UnknownOlympus/hermes/internal/validate"
)

// ErrInvalidThreshold is returned when the drive-time threshold is not a positive number.
var ErrInvalidThreshold = errors.New("threshold must be a positive number of minutes")

// ErrAllCandidatesFailed is returned alongside the full result set when every
// candidate in a non-empty batch failed to resolve.
var ErrAllCandidatesFailed = errors.New("no candidate could be resolved")

// BatchResolver resolves one reference address against many candidates,
// classifying each drive time against a threshold. Candidates are processed by
// a bounded worker pool; failures are isolated per candidate and the output
// order always matches the input order.
type BatchResolver struct {
	log          *slog.Logger     // Logger for logging resolver activities
	provider     routing.Provider // Routing provider for external drive-time lookups
	providerName string           // Name of the provider for metrics labeling
	metrics      *metrics.Metrics // Metrics for tracking resolver performance
	numWorkers   int              // Number of concurrent workers for processing
}

// Option configures a single batch run.
type Option func(*runOptions)

type runOptions struct {
	progress func(models.RouteResult)
}

// WithProgress registers a callback invoked once per candidate as soon as its
// result is produced. Results arrive in completion order, not input order; the
// callback is never invoked concurrently with itself.
func WithProgress(fn func(models.RouteResult)) Option {
	return func(o *runOptions) { o.progress = fn }
}

// NewBatchResolver creates a new instance of BatchResolver.
func NewBatchResolver(
	log *slog.Logger,
	provider routing.Provider,
	providerName string,
	metrics *metrics.Metrics,
	numWorkers int,
) *BatchResolver {
	if numWorkers < 1 {
		numWorkers = 1
	}

	return &BatchResolver{
		log:          log,
		provider:     provider,
		providerName: providerName,
		metrics:      metrics,
		numWorkers:   numWorkers,
	}
}

type job struct {
	idx  int
	cand models.Candidate
}

// ResolveBatch resolves every candidate against the reference address and
// returns exactly one RouteResult per candidate, in input order. An invalid
// reference or threshold fails the batch before any candidate work starts.
// Per-candidate failures degrade only that result to StatusError. Cancelling
// the context stops dispatching new candidates; already-produced results stay
// valid and undispatched candidates are reported as errors.
func (br *BatchResolver) ResolveBatch(
	ctx context.Context,
	reference string,
	candidates []models.Candidate,
	thresholdMinutes float64,
	opts ...Option,
) ([]models.RouteResult, error) {
	var opt runOptions
	for _, o := range opts {
		o(&opt)
	}

	ref, err := validate.Address(reference)
	if err != nil {
		return nil, fmt.Errorf("invalid reference address: %w", err)
	}
	if thresholdMinutes <= 0 {
		return nil, ErrInvalidThreshold
	}
	if len(candidates) == 0 {
		return []models.RouteResult{}, nil
	}

	br.metrics.BatchesTotal.Inc()
	br.log.InfoContext(ctx, "Starting batch resolution",
		"candidates", len(candidates),
		"threshold_minutes", thresholdMinutes,
		"num_workers", br.numWorkers,
	)

	results := make([]models.RouteResult, len(candidates))
	jobs := make(chan job)

	var wgr sync.WaitGroup
	var progressMu sync.Mutex

	emit := func(res models.RouteResult) {
		if opt.progress == nil {
			return
		}
		progressMu.Lock()
		defer progressMu.Unlock()
		opt.progress(res)
	}

	for i := 1; i <= br.numWorkers; i++ {
		wgr.Add(1)
		go br.worker(ctx, i, &wgr, ref, thresholdMinutes, jobs, results, emit)
	}

dispatch:
	for i, cand := range candidates {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- job{idx: i, cand: cand}:
		}
	}
	close(jobs)

	wgr.Wait()

	errored := 0
	for i := range results {
		if results[i].Status == "" {
			// Never dispatched: the run was cancelled before this candidate.
			results[i] = models.RouteResult{
				Address:     candidates[i].Address,
				Position:    candidates[i].Position,
				Status:      models.StatusError,
				ErrorDetail: "batch cancelled before resolution",
			}
			br.metrics.CandidatesProcessed.WithLabelValues(statusLabel(models.StatusError)).Inc()
		}
		if results[i].Status == models.StatusError {
			errored++
		}
	}

	br.log.InfoContext(ctx, "Batch resolution finished",
		"candidates", len(results), "errored", errored)

	if errored == len(results) {
		return results, ErrAllCandidatesFailed
	}

	return results, nil
}

// worker resolves jobs from the channel. It measures provider latency, records
// per-status metrics and writes each result into its input slot so the caller
// sees results in input order regardless of completion order.
func (br *BatchResolver) worker(
	ctx context.Context,
	idx int,
	wg *sync.WaitGroup,
	reference string,
	threshold float64,
	jobs <-chan job,
	results []models.RouteResult,
	emit func(models.RouteResult),
) {
	defer wg.Done()
	for jb := range jobs {
		br.metrics.ActiveWorkers.Inc()
		br.log.DebugContext(ctx, "Resolving candidate",
			"worker", idx, "position", jb.cand.Position, "address", jb.cand.Address)

		startTime := time.Now()
		leg, err := br.provider.Route(ctx, reference, jb.cand.Address)
		duration := time.Since(startTime).Seconds()
		br.metrics.RequestSeconds.WithLabelValues(br.providerName).Observe(duration)

		result := models.RouteResult{Address: jb.cand.Address, Position: jb.cand.Position}

		if err != nil {
			br.log.ErrorContext(ctx, "Failed to resolve candidate",
				"worker", idx, "address", jb.cand.Address, "error", err)
			br.metrics.APIErrors.Inc()
			result.Status = models.StatusError
			result.ErrorDetail = err.Error()
		} else {
			result.Leg = leg
			if leg.DurationMinutes <= threshold {
				result.Status = models.StatusWithinRange
			} else {
				result.Status = models.StatusOutOfRange
			}
			br.log.DebugContext(ctx, "Worker resolved candidate",
				"worker", idx,
				"address", jb.cand.Address,
				"minutes", leg.DurationMinutes,
				"status", string(result.Status),
			)
		}

		br.metrics.CandidatesProcessed.WithLabelValues(statusLabel(result.Status)).Inc()
		results[jb.idx] = result
		emit(result)

		br.metrics.ActiveWorkers.Dec()
	}
}

func statusLabel(s models.Status) string {
	switch s {
	case models.StatusWithinRange:
		return "within_range"
	case models.StatusOutOfRange:
		return "out_of_range"
	default:
		return "error"
	}
}
