package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/gofiber/fiber/v2/log"

	"github.com/i474232898/zipcode-weather/internal/store"
	"github.com/i474232898/zipcode-weather/internal/weather"
)

// Looker is the part of weather.Service the probe needs.
type Looker interface {
	Lookup(ctx context.Context, postalCode string) (weather.DisplayForecast, error)
}

// Recorder stores probe outcomes.
type Recorder interface {
	Save(r store.ProbeResult)
}

// Scheduler periodically runs an end-to-end lookup for a fixed zip code and
// records whether the upstream chain is healthy.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   Looker
	recorder  Recorder
	zipcode   string
	interval  time.Duration
	timeout   time.Duration
}

// New creates a new Scheduler.
func New(zipcode string, interval time.Duration, service Looker, recorder Recorder) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		service:   service,
		recorder:  recorder,
		zipcode:   zipcode,
		interval:  interval,
		timeout:   30 * time.Second,
	}
}

// Start schedules the probe job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.zipcode == "" {
		log.Info("scheduler: no probe zip code configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(s.RunOnce)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce performs a single probe and records the result.
func (s *Scheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	_, err := s.service.Lookup(ctx, s.zipcode)

	result := store.ProbeResult{
		Timestamp: start.UTC(),
		Zipcode:   s.zipcode,
		OK:        err == nil,
		LatencyMS: time.Since(start).Milliseconds(),
	}
	if err != nil {
		result.Error = err.Error()
		log.Warnf("scheduler: probe failed for %s: %v", s.zipcode, err)
	} else {
		log.Debugf("scheduler: probe ok for %s in %dms", s.zipcode, result.LatencyMS)
	}

	s.recorder.Save(result)
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
