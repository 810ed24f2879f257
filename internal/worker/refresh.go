package worker

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/api/middleware"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/api/models"
)

// StationHealth is the slice of the station service the sweep needs: it
// enumerates stations and re-derives one station's status.
type StationHealth interface {
	List(ctx context.Context) ([]models.Station, error)
	RefreshStatus(ctx context.Context, stationID int64) (*models.StationHealth, error)
}

// RefreshJob periodically re-derives every station's status from live
// inventory data.
type RefreshJob struct {
	config   SweepConfig
	logger   zerolog.Logger
	stations StationHealth
	metrics  *middleware.SweepMetrics
}

// RefreshJobConfig holds configuration for creating a RefreshJob.
type RefreshJobConfig struct {
	Config   SweepConfig
	Logger   zerolog.Logger
	Stations StationHealth

	// Metrics is optional; nil disables sweep metrics.
	Metrics *middleware.SweepMetrics
}

// NewRefreshJob creates a new refresh job processor.
func NewRefreshJob(cfg RefreshJobConfig) *RefreshJob {
	config := cfg.Config
	if config.Interval <= 0 {
		config = DefaultSweepConfig()
	}
	if config.Concurrency <= 0 {
		config.Concurrency = DefaultSweepConfig().Concurrency
	}

	return &RefreshJob{
		config:   config,
		logger:   cfg.Logger.With().Str("component", "refresh_job").Logger(),
		stations: cfg.Stations,
		metrics:  cfg.Metrics,
	}
}

// StatusChange records one station status transition applied by a sweep.
type StatusChange struct {
	StationID int64
	From      string
	To        string
}

// SweepResult contains the result of one sweep over all stations.
type SweepResult struct {
	StartTime     time.Time
	Duration      time.Duration
	Total         int
	Refreshed     int
	Failed        int
	StatusChanges []StatusChange

	// Err is set when the sweep could not run at all.
	Err error
}

// Run executes one sweep over all stations.
func (j *RefreshJob) Run(ctx context.Context) *SweepResult {
	start := time.Now()
	result := &SweepResult{StartTime: start}

	stations, err := j.stations.List(ctx)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		j.logger.Error().Err(err).Msg("sweep aborted, station listing failed")
		j.recordSweep(result)
		return result
	}
	result.Total = len(stations)

	stationsChan := make(chan models.Station, len(stations))
	resultsChan := make(chan stationResult, len(stations))

	var wg sync.WaitGroup
	for i := 0; i < j.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			j.refreshWorker(ctx, stationsChan, resultsChan)
		}()
	}

	for _, st := range stations {
		stationsChan <- st
	}
	close(stationsChan)

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	for sr := range resultsChan {
		if sr.err != nil {
			result.Failed++
			j.logger.Warn().
				Err(sr.err).
				Int64("station_id", sr.stationID).
				Msg("station refresh failed")
			continue
		}
		result.Refreshed++
		if sr.change != nil {
			result.StatusChanges = append(result.StatusChanges, *sr.change)
		}
	}

	result.Duration = time.Since(start)
	j.recordSweep(result)

	j.logger.Info().
		Dur("duration", result.Duration).
		Int("total", result.Total).
		Int("refreshed", result.Refreshed).
		Int("failed", result.Failed).
		Int("status_changes", len(result.StatusChanges)).
		Msg("status sweep completed")

	return result
}

type stationResult struct {
	stationID int64
	change    *StatusChange
	err       error
}

func (j *RefreshJob) refreshWorker(ctx context.Context, stations <-chan models.Station, results chan<- stationResult) {
	for st := range stations {
		select {
		case <-ctx.Done():
			return
		default:
			results <- j.refreshStation(ctx, st)
		}
	}
}

func (j *RefreshJob) refreshStation(ctx context.Context, st models.Station) stationResult {
	stationCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	health, err := j.stations.RefreshStatus(stationCtx, st.StationID)
	if err != nil {
		return stationResult{stationID: st.StationID, err: err}
	}

	if health.Status == st.Status {
		return stationResult{stationID: st.StationID}
	}

	change := &StatusChange{StationID: st.StationID, From: st.Status, To: health.Status}
	j.logger.Info().
		Int64("station_id", st.StationID).
		Str("from", change.From).
		Str("to", change.To).
		Msg("station status transitioned")
	return stationResult{stationID: st.StationID, change: change}
}

func (j *RefreshJob) recordSweep(result *SweepResult) {
	if j.metrics == nil {
		return
	}
	j.metrics.RecordSweep(result.Duration, result.Err)
	for _, change := range result.StatusChanges {
		j.metrics.RecordStatusChange(change.From, change.To)
	}
}

// Start runs sweeps until the context is cancelled. Failed sweeps back off
// exponentially instead of hammering the database at the full interval.
func (j *RefreshJob) Start(ctx context.Context) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = time.Second
	bo.MaxInterval = j.config.Interval
	bo.MaxElapsedTime = 0

	j.logger.Info().
		Dur("interval", j.config.Interval).
		Int("concurrency", j.config.Concurrency).
		Msg("refresh worker started")

	for {
		result := j.Run(ctx)

		delay := j.config.Interval
		if result.Err != nil {
			delay = bo.NextBackOff()
		} else {
			bo.Reset()
		}

		select {
		case <-ctx.Done():
			j.logger.Info().Msg("refresh worker stopped")
			return
		case <-time.After(delay):
		}
	}
}
