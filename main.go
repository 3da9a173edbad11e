package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"fmiopen/internal/config"
	"fmiopen/internal/logging"
	"fmiopen/pkg/fmi"
	"fmiopen/pkg/fmi/properties"
	"fmiopen/pkg/fmi/stations"
	"fmiopen/pkg/fmi/storedqueries"
)

// Build metadata - injected at build time
var (
	BuildVersion = "dev"
	BuildCommit  = "unknown"
)

var (
	queryName  = flag.String("query", "", "data query: weather, radiation, airquality, weather-forecast, radiation-forecast, airquality-forecast")
	fmisid     = flag.Int("fmisid", 0, "station fmisid (0 uses the domain default)")
	startStr   = flag.String("start", "", "start time, RFC 3339 (empty uses the domain default window)")
	endStr     = flag.String("end", "", "end time, RFC 3339")
	resolution = flag.Duration("resolution", 0, "time resolution (0 means 1h)")
	paramList  = flag.String("parameters", "", "comma-separated parameters (empty uses the service default set)")
	strict     = flag.Bool("strict", false, "treat an empty result as an error")

	catalogName = flag.String("catalog", "", "catalog search: stations, queries, properties")
	pattern     = flag.String("pattern", "", "catalog search pattern (regexp, case-insensitive)")
	kind        = flag.String("kind", "", "station kind filter: weather, radiation, airquality")
	scope       = flag.String("scope", "all", "property scope: all, observations, forecasts")

	configPath = flag.String("config", "", "YAML config file")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogJSON)
	slog.SetDefault(logger)
	logger.Debug("starting", "version", BuildVersion, "commit", BuildCommit)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpClient := &http.Client{Timeout: cfg.Timeout}

	switch {
	case *queryName != "" && *catalogName != "":
		fmt.Fprintln(os.Stderr, "use either -query or -catalog, not both")
		os.Exit(2)
	case *queryName != "":
		err = runQuery(ctx, cfg, httpClient, logger)
	case *catalogName != "":
		err = runCatalog(ctx, cfg, httpClient)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func runQuery(ctx context.Context, cfg config.Config, httpClient *http.Client, logger *slog.Logger) error {
	opts, err := queryOptions()
	if err != nil {
		return err
	}

	client := fmi.NewClientWithHTTP(httpClient)
	client.SetBaseURL(cfg.BaseURL)
	client.SetLogger(logger)

	var observations []fmi.Observation
	switch *queryName {
	case "weather":
		observations, err = client.GetWeather(ctx, *fmisid, opts)
	case "radiation":
		observations, err = client.GetRadiation(ctx, *fmisid, opts)
	case "airquality":
		observations, err = client.GetAirQuality(ctx, *fmisid, opts)
	case "weather-forecast":
		observations, err = client.GetWeatherForecast(ctx, *fmisid, opts)
	case "radiation-forecast":
		observations, err = client.GetRadiationForecast(ctx, *fmisid, opts)
	case "airquality-forecast":
		observations, err = client.GetAirQualityForecast(ctx, *fmisid, opts)
	default:
		return fmt.Errorf("unknown query %q", *queryName)
	}
	if err != nil {
		return err
	}

	for _, o := range observations {
		fmt.Printf("%s\t%s\t%v\n", o.Time.Format(time.RFC3339), o.Parameter, o.Value)
	}
	return nil
}

func queryOptions() (fmi.QueryOptions, error) {
	opts := fmi.QueryOptions{
		Resolution: *resolution,
		Strict:     *strict,
	}
	var err error
	if opts.StartTime, err = parseTimeFlag(*startStr); err != nil {
		return fmi.QueryOptions{}, fmt.Errorf("invalid -start: %w", err)
	}
	if opts.EndTime, err = parseTimeFlag(*endStr); err != nil {
		return fmi.QueryOptions{}, fmt.Errorf("invalid -end: %w", err)
	}
	if *paramList != "" {
		opts.Parameters = splitParams(*paramList)
	}
	return opts, nil
}

func runCatalog(ctx context.Context, cfg config.Config, httpClient *http.Client) error {
	switch *catalogName {
	case "stations":
		return runStations(ctx, cfg, httpClient)
	case "queries":
		return runStoredQueries(ctx, cfg, httpClient)
	case "properties":
		return runProperties(ctx, cfg, httpClient)
	default:
		return fmt.Errorf("unknown catalog %q", *catalogName)
	}
}

func runStations(ctx context.Context, cfg config.Config, httpClient *http.Client) error {
	catalog, err := stations.NewQuery(cfg.BaseURL, httpClient).Get(ctx)
	if err != nil {
		return err
	}

	var matches []stations.Station
	switch *kind {
	case "":
		matches, err = catalog.FindMatches(*pattern)
	case "weather":
		matches, err = catalog.Weather(*pattern)
	case "radiation":
		matches, err = catalog.Radiation(*pattern)
	case "airquality":
		matches, err = catalog.AirQuality(*pattern)
	default:
		return fmt.Errorf("unknown station kind %q", *kind)
	}
	if err != nil {
		return err
	}
	for _, s := range matches {
		fmt.Println(s)
	}
	return nil
}

func runStoredQueries(ctx context.Context, cfg config.Config, httpClient *http.Client) error {
	catalog, err := storedqueries.NewQuery(cfg.BaseURL, httpClient).Get(ctx)
	if err != nil {
		return err
	}
	matches, err := catalog.FindMatches(*pattern)
	if err != nil {
		return err
	}
	for _, q := range matches {
		fmt.Println(q)
	}
	return nil
}

func runProperties(ctx context.Context, cfg config.Config, httpClient *http.Client) error {
	propScope, err := parseScope(*scope)
	if err != nil {
		return err
	}
	catalog, err := properties.NewQuery(cfg.MetaURL, httpClient).Get(ctx)
	if err != nil {
		return err
	}
	matches, err := catalog.FindMatches(*pattern, propScope)
	if err != nil {
		return err
	}
	for _, p := range matches {
		fmt.Println(p)
	}
	return nil
}

func parseTimeFlag(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func splitParams(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseScope(s string) (properties.Scope, error) {
	switch s {
	case "all", "":
		return properties.ScopeAll, nil
	case "observations":
		return properties.ScopeObservations, nil
	case "forecasts":
		return properties.ScopeForecasts, nil
	default:
		return properties.ScopeAll, fmt.Errorf("unknown scope %q", s)
	}
}
