package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/i474232898/metoffice-forecast/internal/config"
	"github.com/i474232898/metoffice-forecast/internal/units"
	"github.com/i474232898/metoffice-forecast/internal/weather"
)

// Fetcher fetches and converts a forecast. *datahub.Client implements it.
type Fetcher interface {
	Forecast(ctx context.Context, g weather.Granularity, lat units.Latitude, lon units.Longitude) (any, error)
}

// Scheduler periodically fetches forecasts for the watched locations and logs
// a summary of each. Nothing is stored.
type Scheduler struct {
	scheduler   *gocron.Scheduler
	fetcher     Fetcher
	locations   []config.Location
	granularity weather.Granularity
	interval    time.Duration
	timeout     time.Duration
	logger      *zap.Logger
}

func New(locations []config.Location, g weather.Granularity, interval time.Duration, fetcher Fetcher, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler:   s,
		fetcher:     fetcher,
		locations:   locations,
		granularity: g,
		interval:    interval,
		timeout:     30 * time.Second,
		logger:      logger.Named("scheduler"),
	}
}

// Start schedules the periodic job and starts the underlying scheduler. The
// first run happens immediately.
func (s *Scheduler) Start() error {
	if len(s.locations) == 0 {
		s.logger.Info("no locations configured; nothing to schedule")
		return nil
	}

	interval := s.interval
	if interval < time.Minute {
		interval = time.Hour
	}

	_, err := s.scheduler.Every(interval).Do(s.RunOnce, context.Background())
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce fetches every location in turn. It returns the number of locations
// without a fresh forecast: failed fetches plus any left unfetched when ctx
// ends.
func (s *Scheduler) RunOnce(ctx context.Context) int {
	s.logger.Info("running forecast fetch job",
		zap.String("granularity", s.granularity.String()),
		zap.Int("locations", len(s.locations)))

	failed := 0
	for i, loc := range s.locations {
		if err := ctx.Err(); err != nil {
			skipped := len(s.locations) - i
			s.logger.Warn("forecast fetch job canceled",
				zap.Int("failed", failed), zap.Int("skipped", skipped), zap.Error(err))
			return failed + skipped
		}
		if err := s.fetch(ctx, loc); err != nil {
			failed++
			s.logger.Warn("fetch failed", zap.String("location", loc.Key()), zap.Error(err))
		}
	}

	s.logger.Info("completed forecast fetch job", zap.Int("failed", failed))
	return failed
}

func (s *Scheduler) fetch(ctx context.Context, loc config.Location) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	f, err := s.fetcher.Forecast(ctx, s.granularity, loc.Latitude, loc.Longitude)
	if err != nil {
		return err
	}

	fields := append([]zap.Field{zap.String("location", loc.Key())}, summarize(f)...)
	s.logger.Info("forecast fetched", fields...)
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

func summarize(f any) []zap.Field {
	switch f := f.(type) {
	case *weather.Forecast[weather.Hourly]:
		fields := envelope(f.LocationName, f.PredictionsMadeAt, len(f.Predictions))
		if len(f.Predictions) > 0 {
			p := f.Predictions[0]
			fields = append(fields,
				zap.Time("first", p.Time),
				zap.Stringer("conditions", p.Conditions),
				zap.Stringer("temperature", p.Temperature))
		}
		return fields
	case *weather.Forecast[weather.ThreeHourly]:
		fields := envelope(f.LocationName, f.PredictionsMadeAt, len(f.Predictions))
		if len(f.Predictions) > 0 {
			p := f.Predictions[0]
			fields = append(fields,
				zap.Time("first", p.Time),
				zap.Stringer("conditions", p.Conditions),
				zap.Stringer("temperature_max", p.TemperatureMaximum))
		}
		return fields
	case *weather.Forecast[weather.Daily]:
		fields := envelope(f.LocationName, f.PredictionsMadeAt, len(f.Predictions))
		if len(f.Predictions) > 0 {
			p := f.Predictions[0]
			fields = append(fields,
				zap.Time("first", p.Time),
				zap.Stringer("night_conditions", p.Night.Conditions))
		}
		return fields
	default:
		return []zap.Field{zap.String("forecast", fmt.Sprintf("%T", f))}
	}
}

func envelope(name string, run time.Time, n int) []zap.Field {
	return []zap.Field{
		zap.String("name", name),
		zap.Time("model_run", run),
		zap.Int("predictions", n),
	}
}
