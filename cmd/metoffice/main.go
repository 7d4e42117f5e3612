// Command metoffice prints Met Office DataHub site-specific forecasts.
//
//	metoffice -lat 50.727 -lon -3.474 -granularity daily
//	metoffice -city Exeter -country GB
//	metoffice -file payload.json -granularity hourly
//	metoffice -url -lat 50.727 -lon -3.474
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/i474232898/metoffice-forecast/internal/config"
	"github.com/i474232898/metoffice-forecast/internal/datahub"
	"github.com/i474232898/metoffice-forecast/internal/display"
	"github.com/i474232898/metoffice-forecast/internal/locate"
	"github.com/i474232898/metoffice-forecast/internal/logging"
	"github.com/i474232898/metoffice-forecast/internal/weather"
)

var errUsage = errors.New("usage")

type options struct {
	lat, lon      float64
	hasPoint      bool
	city, country string
	granularity   weather.Granularity
	file          string
	urlOnly       bool
	asJSON        bool
	temperature   display.TemperatureFormat
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("metoffice", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		opts        options
		granularity string
	)
	fs.Float64Var(&opts.lat, "lat", 0, "latitude in degrees north")
	fs.Float64Var(&opts.lon, "lon", 0, "longitude in degrees east")
	fs.StringVar(&opts.city, "city", "", "city to look up instead of -lat/-lon")
	fs.StringVar(&opts.country, "country", "", "country of -city")
	fs.StringVar(&granularity, "granularity", weather.GranularityThreeHourly.String(), "hourly, three-hourly or daily")
	fs.StringVar(&opts.file, "file", "", "parse a saved DataHub payload instead of fetching")
	fs.BoolVar(&opts.urlOnly, "url", false, "print the request URL and exit")
	fs.BoolVar(&opts.asJSON, "json", false, "print JSON instead of a table")
	fs.IntVar(&opts.temperature.Precision, "precision", display.DefaultTemperatureFormat.Precision, "temperature decimal places")
	fs.BoolVar(&opts.temperature.Sign, "sign", false, "always print the temperature sign")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	opts.temperature.Width = display.DefaultTemperatureFormat.Width

	g, err := weather.ParseGranularity(granularity)
	if err != nil {
		return opts, err
	}
	opts.granularity = g

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["lat"] != set["lon"] {
		return opts, fmt.Errorf("%w: -lat and -lon must be given together", errUsage)
	}
	opts.hasPoint = set["lat"]

	if opts.file == "" && !opts.hasPoint && opts.city == "" {
		return opts, fmt.Errorf("%w: give -lat/-lon, -city/-country or -file", errUsage)
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	if opts.file != "" {
		data, err := os.ReadFile(opts.file)
		if err != nil {
			return err
		}
		f, err := weather.ParseAs(opts.granularity, data)
		if err != nil {
			return err
		}
		return render(stdout, f, opts)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	point, err := resolve(ctx, opts, cfg)
	if err != nil {
		return err
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	if opts.urlOnly {
		u := client.URL(opts.granularity, point.Latitude, point.Longitude)
		_, err := fmt.Fprintln(stdout, u.String())
		return err
	}

	f, err := client.Forecast(ctx, opts.granularity, point.Latitude, point.Longitude)
	if err != nil {
		return err
	}
	return render(stdout, f, opts)
}

func resolve(ctx context.Context, opts options, cfg *config.AppConfig) (locate.Point, error) {
	if opts.hasPoint {
		return locate.FromDegrees(opts.lat, opts.lon)
	}
	return locate.NewGeocoderResolver(cfg.GeocoderAPIKey).Resolve(ctx, opts.city, opts.country)
}

func newClient(cfg *config.AppConfig) (*datahub.Client, error) {
	zl, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return datahub.New(datahub.Options{
		APIKey:         cfg.DataHubAPIKey,
		BaseURL:        cfg.DataHubBaseURL,
		Timeout:        cfg.HTTPTimeout,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		Logger:         zl.Named("datahub"),
	})
}

func render(w io.Writer, f any, opts options) error {
	if opts.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(f)
	}
	switch f := f.(type) {
	case *weather.Forecast[weather.Hourly]:
		return display.WriteHourly(w, f, opts.temperature)
	case *weather.Forecast[weather.ThreeHourly]:
		return display.WriteThreeHourly(w, f, opts.temperature)
	case *weather.Forecast[weather.Daily]:
		return display.WriteDaily(w, f, opts.temperature)
	default:
		return fmt.Errorf("cannot display %T", f)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
