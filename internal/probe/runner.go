package probe

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/launchboard/internal/domain/model"
	"github.com/okian/launchboard/pkg/logger"
)

// Run executes a complete probe against config.BaseURL. It returns an error
// wrapping ErrViolations when any view invariant fails.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Named("probe")

	log.Info(ctx, "starting launchboard probe",
		logger.String("baseURL", config.BaseURL),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout),
		logger.Bool("verbose", config.Verbose))

	client := newHTTPClient(config.BaseURL, config.Timeout)
	defer func() {
		stats.Requests = client.requests.Load()
		stats.Failed = client.failed.Load()
		stats.EndTime = time.Now()
		stats.Duration = stats.EndTime.Sub(stats.StartTime)
	}()

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client); err != nil {
		return stats, err
	}

	// Step 2: Read the controls and the widest view
	cs, err := client.controls(ctx)
	if err != nil {
		return stats, fmt.Errorf("controls retrieval failed: %w", err)
	}
	full, err := client.correlation(ctx, Case{Site: model.AllSites, Min: cs.Payload.Min, Max: cs.Payload.Max})
	if err != nil {
		return stats, fmt.Errorf("baseline retrieval failed: %w", err)
	}
	baseline := newBaseline(full)
	violations := verifyControls(cs, baseline)

	// Step 3: Expand the controls into jobs
	jobs, err := generateJobs(ctx, cs)
	if err != nil {
		return stats, err
	}
	stats.Cases = len(jobs)

	// Step 4: Sweep concurrently
	violations = append(violations, sweep(ctx, config, client, jobs, baseline)...)
	if err := ctx.Err(); err != nil {
		return stats, fmt.Errorf("probe interrupted: %w", err)
	}

	stats.Violations = len(violations)
	for _, v := range violations {
		log.Error(ctx, "invariant violated", logger.String("violation", v.describe()))
	}
	displayFinalStats(ctx, stats, client)

	if len(violations) > 0 {
		return stats, fmt.Errorf("%w: %d of %d checks", ErrViolations, len(violations), len(jobs))
	}
	log.Info(ctx, "probe completed successfully")
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient) error {
	resp, err := client.Get(ctx, "/healthz", nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	_ = resp.Body.Close()

	if resp.StatusCode != StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}
	return nil
}

// sweep runs every job on a worker pool and collects the violations.
func sweep(ctx context.Context, config *Config, client *HTTPClient, jobs []job, b *Baseline) []Violation {
	workers := max(config.Workers, 1)
	jobChan := make(chan job, workers*WorkerChannelMultiplier)

	var (
		mu         sync.Mutex
		violations []Violation
		wg         sync.WaitGroup
	)
	record := func(vs ...Violation) {
		if len(vs) == 0 {
			return
		}
		mu.Lock()
		violations = append(violations, vs...)
		mu.Unlock()
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobChan {
				if ctx.Err() != nil {
					return
				}
				record(runJob(ctx, client, j, b)...)
			}
		}()
	}

	go func() {
		defer close(jobChan)
		for _, j := range jobs {
			select {
			case <-ctx.Done():
				return
			case jobChan <- j:
			}
		}
	}()

	wg.Wait()
	return violations
}

// runJob fetches one view and verifies it.
func runJob(ctx context.Context, client *HTTPClient, j job, b *Baseline) []Violation {
	switch j.kind {
	case checkDistribution:
		view, err := client.distribution(ctx, j.tc.Site)
		if err != nil {
			return []Violation{{Check: j.kind.String() + ".request", Case: j.tc, Detail: err.Error()}}
		}
		return verifyDistribution(j.tc, view, b)
	default:
		view, err := client.correlation(ctx, j.tc)
		if err != nil {
			return []Violation{{Check: j.kind.String() + ".request", Case: j.tc, Detail: err.Error()}}
		}
		return verifyCorrelation(j.tc, view, b)
	}
}

// displayFinalStats logs the final probe statistics.
func displayFinalStats(ctx context.Context, stats *Stats, client *HTTPClient) {
	elapsed := time.Since(stats.StartTime)
	var perSecond float64
	if elapsed > 0 {
		perSecond = float64(client.requests.Load()) / elapsed.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("cases", stats.Cases),
		logger.Int("requests", int(client.requests.Load())),
		logger.Int("failedRequests", int(client.failed.Load())),
		logger.Int("violations", stats.Violations),
		logger.Duration("duration", elapsed),
		logger.Float64("requestsPerSecond", perSecond))
}
